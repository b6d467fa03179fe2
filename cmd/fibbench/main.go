package main

import (
	"context"
	"os"

	"github.com/agbru/fibbench/internal/app"
	apperrors "github.com/agbru/fibbench/internal/errors"
)

func main() {
	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		// Anything else from construction is a flag or validation problem.
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
