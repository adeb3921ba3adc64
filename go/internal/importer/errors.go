package importer

import (
	"errors"

	"github.com/mcdev12/teamsheet/go/internal/models"
)

var (
	// ErrSourceNotFound is returned when the workbook asset is absent or unreadable
	ErrSourceNotFound = errors.New("source workbook not found")
	// ErrSheetMissing is returned when the workbook lacks the teams or players sheet
	ErrSheetMissing = errors.New("required sheet missing")
	// ErrInvalidWorkbook is returned when the source cannot be decoded as xlsx
	ErrInvalidWorkbook = errors.New("source is not a readable workbook")
)

// IsInvalidInput reports whether err is a setup error caused by the input file
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrSourceNotFound) ||
		errors.Is(err, ErrSheetMissing) ||
		errors.Is(err, ErrInvalidWorkbook)
}

// RunStatus classifies the error returned by Run
func RunStatus(err error) models.ImportRunStatus {
	switch {
	case err == nil:
		return models.ImportRunSucceeded
	case IsInvalidInput(err):
		return models.ImportRunInvalid
	default:
		return models.ImportRunFailed
	}
}
