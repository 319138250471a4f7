package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

// Confirmer спрашивает оператора, генерировать ли файлы.
type Confirmer func() (bool, error)

var acceptAnswers = map[string]bool{"s": true, "sim": true, "y": true, "yes": true}

// Accepts сообщает, является ли ответ согласием. Регистр не важен.
func Accepts(answer string) bool {
	return acceptAnswers[strings.ToLower(strings.TrimSpace(answer))]
}

// LineConfirmer читает ответ строкой из того же ввода, что и записи.
func LineConfirmer(in *bufio.Reader, out io.Writer) Confirmer {
	return func() (bool, error) {
		fmt.Fprint(out, "\n✅ Confirma a geração dos arquivos? (s/N): ")
		line, err := readLine(in)
		if err != nil {
			return false, err
		}
		return Accepts(line), nil
	}
}

// PromptConfirmer показывает выбор стрелками; для интерактивного терминала.
func PromptConfirmer(stdin io.ReadCloser, stdout io.WriteCloser) Confirmer {
	return func() (bool, error) {
		prompt := promptui.Select{
			Label:  "Confirma a geração dos arquivos?",
			Items:  []string{"Sim", "Não"},
			Stdin:  stdin,
			Stdout: stdout,
		}
		_, choice, err := prompt.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return choice == "Sim", nil
	}
}

// AutoConfirm — для --yes.
func AutoConfirm() (bool, error) { return true, nil }
