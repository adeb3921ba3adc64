package main

import (
	"errors"

	"github.com/mcdev12/teamsheet/go/internal/importer"
)

type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string {
	return e.err.Error()
}

func (e *cliError) Unwrap() error {
	return e.err
}

const (
	exitOK      = 0
	exitFailure = 1
	exitInvalid = 2
)

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitFailure
}

// importExitCode maps an importer error onto the process exit code
func importExitCode(err error) error {
	if importer.IsInvalidInput(err) {
		return withCode(exitInvalid, err)
	}
	return withCode(exitFailure, err)
}
