package models

import (
	"errors"
	"fmt"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// ErrTemplateApplicationConflict is returned when a template has been applied
	// to the same month by a concurrent request. Retrying the request is safe.
	ErrTemplateApplicationConflict = errors.New("the templates are being applied to this month by another request, please retry")

	// ErrValidation is matched by every error caused by invalid client input.
	ErrValidation = errors.New("the request is invalid")
)

// validationError is an error caused by invalid client input.
// It satisfies errors.Is(err, ErrValidation).
type validationError string

func (e validationError) Error() string {
	return string(e)
}

func (e validationError) Is(target error) bool {
	return target == ErrValidation
}

var (
	ErrAmountNotPositive      = validationError("the amount must be larger than zero")
	ErrTransactionTypeInvalid = validationError("the type must be either 'income' or 'expense'")
	ErrDateInvalid            = validationError("could not parse the date, did you use YYYY-MM-DD format?")
	ErrMonthInvalid           = validationError("could not parse the specified month, did you use YYYY-MM format?")
	ErrYearInvalid            = validationError("could not parse the specified year, did you use YYYY format?")
	ErrCategoryNameEmpty      = validationError("the category name must not be empty")
	ErrBudgetNegative         = validationError("the budget must not be negative")
	ErrGoalAmountNegative     = validationError("the goal target amount must not be negative")
	ErrGoalTargetMissing      = validationError("the goal target amount must be set")
)

// Validation wraps err so that it is reported as invalid client input.
func Validation(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrValidation) {
		return err
	}

	return fmt.Errorf("%w: %s", ErrValidation, err.Error())
}
