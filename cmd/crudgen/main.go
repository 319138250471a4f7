package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:])
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

// run — вся логика main, без os.Exit, чтобы её можно было тестировать.
func run(ctx context.Context, in io.Reader, out, errOut io.Writer, args []string) error {
	cmd := newRootCmd(in, out, errOut)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
