package dsl

import (
	"errors"
	"fmt"
)

var (
	ErrEntityNameRequired = errors.New("entity name is required")
	ErrNothingToGenerate  = errors.New("nothing to generate: no fields and no relationships")
)

// GrammarError — отклонённая запись. Не фатальна: цикл сбора сообщает её
// оператору и запрашивает следующую строку.
type GrammarError struct {
	Entry   string // исходная строка
	Reason  string
	Example string // подсказка с корректным форматом
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("invalid entry %q: %s", e.Entry, e.Reason)
}

// IsGrammarError сообщает, является ли err отклонением записи.
func IsGrammarError(err error) bool {
	var ge *GrammarError
	return errors.As(err, &ge)
}
