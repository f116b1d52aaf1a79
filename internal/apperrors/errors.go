package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Generic sentinels. More specific errors below wrap these so callers can
// match either the broad category or the precise condition.
var (
	// ErrNotFound indicates that a requested resource could not be found.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation indicates that input data failed validation checks.
	ErrValidation = errors.New("validation error")
	// ErrDuplicate indicates an attempt to create a resource that already exists.
	ErrDuplicate = errors.New("resource already exists")
	// ErrConflict indicates the operation conflicts with the current resource state.
	ErrConflict = errors.New("resource state conflict")
	// ErrForbidden indicates the caller is not allowed to perform the operation.
	ErrForbidden = errors.New("operation not allowed")
	// ErrInternal indicates an unexpected internal failure.
	ErrInternal = errors.New("internal error")
)

// Configuration errors: always caller-correctable, never retried automatically.
var (
	ErrDuplicateCode      = fmt.Errorf("code already in use: %w", ErrDuplicate)
	ErrInvalidParent      = fmt.Errorf("parent account does not resolve: %w", ErrValidation)
	ErrProtectedAccount   = fmt.Errorf("account is system protected: %w", ErrForbidden)
	ErrAccountNotFound    = fmt.Errorf("account not found: %w", ErrNotFound)
	ErrJournalNotFound    = fmt.Errorf("journal not found: %w", ErrNotFound)
	ErrAccountHasChildren = fmt.Errorf("account has child accounts: %w", ErrConflict)
	ErrJournalReferenced  = fmt.Errorf("journal has committed postings: %w", ErrConflict)
)

// Period-state errors: a workflow ordering violation.
var (
	ErrClosedExercise        = fmt.Errorf("fiscal exercise is closed: %w", ErrConflict)
	ErrExerciseNotFound      = fmt.Errorf("fiscal exercise not found: %w", ErrNotFound)
	ErrExerciseAlreadyActive = fmt.Errorf("another fiscal exercise is already active: %w", ErrConflict)
	ErrDuplicateYear         = fmt.Errorf("fiscal exercise already exists for year: %w", ErrDuplicate)
	ErrAlreadyClosed         = fmt.Errorf("fiscal exercise already closed: %w", ErrConflict)
	ErrUnbalancedExercise    = fmt.Errorf("exercise contains unbalanced reference groups: %w", ErrConflict)
)

// Posting-integrity errors: the entire batch is rejected before any write.
var (
	ErrDuplicateReference = fmt.Errorf("reference key already posted: %w", ErrDuplicate)
	ErrTenantNotFound     = fmt.Errorf("tenant not found: %w", ErrNotFound)
)

// UnbalancedEntryError rejects a posting whose debit and credit totals differ
// by more than the tenant tolerance. It carries both totals for diagnostics.
type UnbalancedEntryError struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("entry lines do not balance: debits=%s credits=%s", e.Debits.String(), e.Credits.String())
}

// Is makes UnbalancedEntryError match ErrValidation for category handling.
func (e *UnbalancedEntryError) Is(target error) bool {
	return target == ErrValidation
}

// NewUnbalancedEntryError builds an UnbalancedEntryError from the two totals.
func NewUnbalancedEntryError(debits, credits decimal.Decimal) *UnbalancedEntryError {
	return &UnbalancedEntryError{Debits: debits, Credits: credits}
}

// AppError wraps a lower-level error with an HTTP-ish code and message for
// the transport layer.
type AppError struct {
	Code    int
	Message string
	Err     error
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

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
