// Package console — строчный адаптер диалогового движка: читает ввод
// построчно и печатает ответы. Служит локальной заменой мессенджера,
// контракт тот же: текст на входе, сообщения и метки действий на выходе.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/retailops/workforce-bot/internal/dialog"
)

type Runner struct {
	engine     *dialog.Engine
	externalID int64
	in         io.Reader
	out        io.Writer
}

func NewRunner(engine *dialog.Engine, externalID int64, in io.Reader, out io.Writer) *Runner {
	return &Runner{engine: engine, externalID: externalID, in: in, out: out}
}

// Run гоняет диалог до EOF или отмены контекста.
// Первый ход — команда старта, как при открытии чата.
func (r *Runner) Run(ctx context.Context) error {
	r.print(r.engine.HandleTurn(ctx, r.externalID, dialog.CommandStart))

	scanner := bufio.NewScanner(r.in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		r.print(r.engine.HandleTurn(ctx, r.externalID, line))
	}
	return scanner.Err()
}

func (r *Runner) print(rep dialog.Reply) {
	for _, msg := range rep.Messages {
		fmt.Fprintln(r.out, msg)
	}
	if len(rep.Actions) > 0 {
		fmt.Fprintf(r.out, "[%s]\n", strings.Join(rep.Actions, " | "))
	}
	fmt.Fprint(r.out, "> ")
}
