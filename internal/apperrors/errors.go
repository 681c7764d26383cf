package apperrors

import (
	"errors"
	"fmt"
)

// Category sentinels. Every specific error below wraps exactly one of them so
// callers can match either the precise failure or its kind with errors.Is.
var (
	// ErrValidation indicates that input data failed validation checks.
	ErrValidation = errors.New("validation error")

	// ErrBusinessRule indicates the request was well formed but breaks a ledger rule.
	ErrBusinessRule = errors.New("business rule violation")

	// ErrResource indicates the store could not serve the request (lock or storage fault).
	ErrResource = errors.New("resource unavailable")

	// ErrFatalStartup indicates the process cannot continue (unmigrated schema, unreadable database).
	ErrFatalStartup = errors.New("fatal startup error")

	// ErrNotFound indicates that a requested resource could not be found.
	ErrNotFound = errors.New("resource not found")
)

// Validation errors.
var (
	ErrInvalidAccountType = fmt.Errorf("%w: invalid account type. Must be one of: Asset, Liability, Equity, Income, Expense", ErrValidation)
	ErrInvalidName        = fmt.Errorf("%w: account name must not be empty", ErrValidation)
	ErrDuplicateName      = fmt.Errorf("%w: an account with this name already exists", ErrValidation)
	ErrParentNotFound     = fmt.Errorf("%w: parent account does not exist", ErrValidation)
	ErrParentCycle        = fmt.Errorf("%w: parent assignment would create a cycle", ErrValidation)
	ErrAccountNotFound    = fmt.Errorf("%w: referenced account does not exist", ErrValidation)
	ErrInvalidAmount      = fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	ErrInvalidDate        = fmt.Errorf("%w: transaction date is required", ErrValidation)
)

// Business rule violations.
var (
	ErrCannotDeactivateWithHistory = fmt.Errorf("%w: cannot deactivate account with transaction history", ErrBusinessRule)
	ErrSelfReferentialTransaction  = fmt.Errorf("%w: debit and credit accounts must differ", ErrBusinessRule)
	ErrAccountInactive             = fmt.Errorf("%w: account is inactive", ErrBusinessRule)
)

// Resource errors.
var (
	ErrLockUnavailable = fmt.Errorf("%w: database lock unavailable", ErrResource)
	ErrStorage         = fmt.Errorf("%w: storage fault", ErrResource)
)

// Kind classifies an error for the boundary layer.
type Kind string

const (
	KindNone         Kind = ""
	KindValidation   Kind = "VALIDATION"
	KindBusinessRule Kind = "BUSINESS_RULE"
	KindNotFound     Kind = "NOT_FOUND"
	KindResource     Kind = "RESOURCE"
	KindFatal        Kind = "FATAL"
)

// KindOf reports the category of err. Unknown errors are treated as resource
// faults so their text never reaches a boundary caller.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrBusinessRule):
		return KindBusinessRule
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrFatalStartup):
		return KindFatal
	default:
		return KindResource
	}
}

// AppError carries a boundary-facing status code and a safe message while
// keeping the underlying cause for logs.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
