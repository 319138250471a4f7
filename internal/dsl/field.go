package dsl

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	FieldGrammar = "name:Type[:length][:positive]"
	fieldExample = "nome:String"
)

// ParseField разбирает строку вида nome:String:100 или idade:Integer::positive.
//
// Нечисловая длина не является ошибкой: поле просто остаётся без длины.
func ParseField(line string) (Field, error) {
	parts := strings.Split(line, ":")
	if len(parts) < 2 {
		return Field{}, &GrammarError{
			Entry:   line,
			Reason:  "at least name and type are required (" + FieldGrammar + ")",
			Example: fieldExample,
		}
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return Field{}, &GrammarError{Entry: line, Reason: "field name is empty", Example: fieldExample}
	}

	rawType := strings.TrimSpace(parts[1])
	typ, ok := LookupFieldType(rawType)
	if !ok {
		return Field{}, &GrammarError{
			Entry:   line,
			Reason:  fmt.Sprintf("type %q is not supported, use one of: %s", rawType, typeNames(FieldTypes)),
			Example: fieldExample,
		}
	}

	f := Field{
		Name:    name,
		Type:    typ,
		NotNull: true,
	}
	if len(parts) > 2 {
		f.Length = parseLength(parts[2])
	}
	if len(parts) > 3 {
		f.Positive = strings.EqualFold(strings.TrimSpace(parts[3]), "positive")
	}
	return f, nil
}

// parseLength: только десятичные цифры ASCII; всё прочее (и переполнение) — нет длины.
func parseLength(tok string) *int {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return nil
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return nil
		}
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return nil
	}
	return &n
}
