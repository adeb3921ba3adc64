package importer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/mcdev12/teamsheet/go/internal/sheet"
)

// rule is one check on one column. Rules run in declared order and the first
// failure wins, so presence rules must come before type rules for a column.
type rule struct {
	field   string
	column  int
	tag     string
	message string
}

// ValidationError describes the first rule a row violated
type ValidationError struct {
	Row     int
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// RowValidator evaluates rule lists against spreadsheet rows
type RowValidator struct {
	validate *validator.Validate
}

// NewRowValidator creates a validator with the numeric rules registered.
// int32value bounds values stored in INTEGER columns.
func NewRowValidator() *RowValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// registration only fails for an empty tag or nil func
	_ = v.RegisterValidation("numericvalue", func(fl validator.FieldLevel) bool {
		_, err := parseNumber(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("wholenumber", func(fl validator.FieldLevel) bool {
		_, err := parseWhole(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("int32value", func(fl validator.FieldLevel) bool {
		n, err := parseWhole(fl.Field().String())
		return err == nil && n >= math.MinInt32 && n <= math.MaxInt32
	})
	return &RowValidator{validate: v}
}

// Check returns a *ValidationError for the first failing rule, or nil
func (rv *RowValidator) Check(row sheet.Row, rules []rule) error {
	for _, r := range rules {
		value, _ := row.Cell(r.column)
		if err := rv.validate.Var(value, r.tag); err != nil {
			return &ValidationError{Row: row.Number, Field: r.field, Message: r.message}
		}
	}
	return nil
}

func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return f, nil
}

func parseWhole(s string) (int64, error) {
	f, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int64(f), nil
}
