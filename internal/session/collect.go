package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"crudgen/internal/dsl"
)

var (
	ErrInputClosed = errors.New("input closed before the list was terminated")
	ErrCancelled   = errors.New("generation cancelled by operator")
)

var (
	okColor   = color.New(color.FgGreen)
	errColor  = color.New(color.FgRed)
	warnColor = color.New(color.FgYellow)
	headColor = color.New(color.FgCyan, color.Bold)
)

// readLine читает одну строку. Конец ввода без завершённой строки — ErrInputClosed.
// Последняя строка без перевода строки ещё возвращается.
func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Collect запрашивает записи, пока оператор не введёт пустую строку.
// Отклонённая запись сообщается и не добавляется; порядок ввода сохраняется.
func Collect[T any](in *bufio.Reader, out io.Writer, prompt string, parse func(string) (T, error), ack func(T) string) ([]T, error) {
	items := []T{}
	for {
		fmt.Fprint(out, prompt)
		line, err := readLine(in)
		if err != nil {
			return nil, err
		}
		if line == "" {
			return items, nil
		}

		item, err := parse(line)
		if err != nil {
			reportRejection(out, err)
			continue
		}
		items = append(items, item)
		okColor.Fprintf(out, "✅ Adicionado: %s\n", ack(item))
	}
}

func reportRejection(out io.Writer, err error) {
	var ge *dsl.GrammarError
	if errors.As(err, &ge) {
		errColor.Fprintf(out, "❌ Erro: %s\n", ge.Reason)
		if ge.Example != "" {
			fmt.Fprintf(out, "   Exemplo: %s\n", ge.Example)
		}
		return
	}
	errColor.Fprintf(out, "❌ Erro: %v\n", err)
}

func fieldAck(f dsl.Field) string { return fmt.Sprintf("%s (%s)", f.Name, f.Type) }

func relationshipAck(r dsl.Relationship) string {
	return fmt.Sprintf("%s (%s -> %s)", r.Name, r.Type, r.Target)
}
