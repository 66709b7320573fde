package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Validation errors
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeMissingField  = "MISSING_FIELD"
	ErrCodeInvalidFormat = "INVALID_FORMAT"

	// Resource errors
	ErrCodeNotFound  = "NOT_FOUND"
	ErrCodeReference = "UNKNOWN_REFERENCE"

	// Allocation errors
	ErrCodeAllocationConflict   = "ALLOCATION_CONFLICT"
	ErrCodeAllocationUnverified = "ALLOCATION_UNVERIFIED"

	// Store errors
	ErrCodeStoreUnavailable   = "STORE_UNAVAILABLE"
	ErrCodeLedgerInconsistent = "LEDGER_INCONSISTENT"

	// Service errors
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// ValidationError reports a malformed or missing required input field. It is
// raised locally, before any write is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// ReferenceError reports a row that does not exist in the named table, e.g. a
// completion pointing at a task ID the Items table does not contain.
type ReferenceError struct {
	Table string
	ID    int
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("no row with ID %d in table %q", e.ID, e.Table)
}

// AllocationConflictError reports a duplicate-ID race that survived the
// allocator's bounded retry loop. Retrying the whole operation is safe.
type AllocationConflictError struct {
	Table    string
	Attempts int
}

func (e *AllocationConflictError) Error() string {
	return fmt.Sprintf("could not allocate a unique ID in table %q after %d attempts", e.Table, e.Attempts)
}

// AllocationUnverifiedError reports an append that committed but whose
// verification read failed. The row with ID exists in the table; retrying the
// whole operation would duplicate its content.
type AllocationUnverifiedError struct {
	Table string
	ID    int
	Err   error
}

func (e *AllocationUnverifiedError) Error() string {
	return fmt.Sprintf("row %d appended to table %q but could not be verified: %v", e.ID, e.Table, e.Err)
}

func (e *AllocationUnverifiedError) Unwrap() error { return e.Err }

// StoreUnavailableError reports a failed read or write round-trip against the
// record store. The core does not retry; the caller decides.
type StoreUnavailableError struct {
	Table string
	Op    string
	Err   error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("record store %s on table %q failed: %v", e.Op, e.Table, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// InconsistencyError reports a completion that was appended to the ledger while
// the task projection update failed. The ledger row exists; re-patching the
// task is safe and sufficient to recover.
type InconsistencyError struct {
	CompletionID int
	TaskID       int
	Err          error
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("completion %d recorded but task %d projection update failed: %v", e.CompletionID, e.TaskID, e.Err)
}

func (e *InconsistencyError) Unwrap() error { return e.Err }

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Respond maps a domain error to the matching HTTP response. Unknown errors
// become an opaque 500.
func Respond(c *gin.Context, err error) {
	var (
		validationErr    *ValidationError
		referenceErr     *ReferenceError
		allocationErr    *AllocationConflictError
		unverifiedErr    *AllocationUnverifiedError
		storeErr         *StoreUnavailableError
		inconsistencyErr *InconsistencyError
	)

	switch {
	case errors.As(err, &validationErr):
		RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, validationErr.Error()))
	case errors.As(err, &referenceErr):
		RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeReference, referenceErr.Error()))
	case errors.As(err, &allocationErr):
		RespondWithError(c, http.StatusConflict, NewAPIError(ErrCodeAllocationConflict, allocationErr.Error()+"; it is safe to retry"))
	case errors.As(err, &unverifiedErr):
		RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeAllocationUnverified, unverifiedErr.Error()+"; do not retry before checking the table"))
	case errors.As(err, &inconsistencyErr):
		RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeLedgerInconsistent, inconsistencyErr.Error()))
	case errors.As(err, &storeErr):
		RespondWithError(c, http.StatusServiceUnavailable, NewAPIError(ErrCodeStoreUnavailable, storeErr.Error()))
	default:
		RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, "Internal server error"))
	}
}

// Helper functions for common error responses

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}
