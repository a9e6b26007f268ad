package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeBadRequest     = "BAD_REQUEST"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeInternal       = "INTERNAL_ERROR"
	ErrCodeDatabaseError  = "DATABASE_ERROR"
	ErrCodeDuplicateEntry = "DUPLICATE_ENTRY"
	ErrCodeTooManyLogins  = "TOO_MANY_REQUESTS"

	// Checkout taxonomy. Funds/stock failures mean the backing state moved
	// between the client's last read and the commit; the client must
	// refresh and retry, so they surface as 400s rather than 409s.
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeInvalidTotal      = "INVALID_TOTAL"
	ErrCodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeCommitFailed      = "COMMIT_FAILED"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func DatabaseError(message string) *AppError {
	return NewAppError(ErrCodeDatabaseError, message, http.StatusInternalServerError)
}

func DuplicateEntryError(message string) *AppError {
	return NewAppError(ErrCodeDuplicateEntry, message, http.StatusConflict)
}

func TooManyLoginsError(message string) *AppError {
	return NewAppError(ErrCodeTooManyLogins, message, http.StatusTooManyRequests)
}

func EmptyCartError() *AppError {
	return NewAppError(ErrCodeEmptyCart, "Cart is empty", http.StatusBadRequest)
}

func InvalidTotalError() *AppError {
	return NewAppError(ErrCodeInvalidTotal, "Checkout total must be positive", http.StatusBadRequest)
}

func InsufficientFundsError() *AppError {
	return NewAppError(ErrCodeInsufficientFunds, "Insufficient funds", http.StatusBadRequest)
}

func InsufficientStockError(productName string) *AppError {
	return NewAppError(ErrCodeInsufficientStock, fmt.Sprintf("Insufficient stock for %s", productName), http.StatusBadRequest)
}

func CommitFailedError() *AppError {
	return NewAppError(ErrCodeCommitFailed, "Checkout could not be committed", http.StatusInternalServerError)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}
