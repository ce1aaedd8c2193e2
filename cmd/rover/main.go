package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nagyist/rover-android/internal/cli"
	rerrors "github.com/nagyist/rover-android/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

// exitCode prints err and maps it onto a process status: 2 for bad input,
// 130 for an interrupt, 1 otherwise.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	}

	fmt.Fprintln(os.Stderr, "rover:", err)
	switch rerrors.GetCode(err) {
	case rerrors.ErrCodeInvalidInput, rerrors.ErrCodeInvalidDocument, rerrors.ErrCodeInvalidFormat,
		rerrors.ErrCodeInvalidConstraints, rerrors.ErrCodeInvalidPath, rerrors.ErrCodeFileNotFound:
		return 2
	}
	return 1
}
