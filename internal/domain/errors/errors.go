// Package errors defines the business error taxonomy shared by the use cases and the delivery layer.
package errors

import (
	"net/http"

	"member/internal/errors"
)

// AppError is an error that knows how it is presented to API clients.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Machine readable code, e.g. DUPLICATE_EMAIL
	Message() string   // Display message
	Details() string   // Optional diagnostic context, never sent for 5xx
}

// BaseError is a fixed business error. Values are compared by code.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{httpCode: httpCode, errorCode: errorCode, message: message, details: details}
}

func (e *BaseError) Error() string { return e.message }
func (e *BaseError) HTTPCode() int { return e.httpCode }
func (e *BaseError) ErrorCode() string { return e.errorCode }
func (e *BaseError) Message() string { return e.message }
func (e *BaseError) Details() string { return e.details }

// Is matches on the business error code.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)

	return ok && e.errorCode == other.errorCode
}

// WrapMessage returns e annotated with message and a stack trace.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

func clientError(code, message string) *BaseError {
	return NewBaseError(http.StatusBadRequest, code, message, "")
}

func serverError(code, message string) *BaseError {
	return NewBaseError(http.StatusInternalServerError, code, message, "")
}

// Account operation outcomes. These travel inside usecase.Result rather than as Go errors.
var (
	ErrInvalidCredentials = clientError("INVALID_CREDENTIALS", "帳號或密碼錯誤")
	ErrAccountSuspended   = clientError("ACCOUNT_SUSPENDED", "此帳號已被停權")
	ErrDuplicateEmail     = clientError("DUPLICATE_EMAIL", "此 Email 已經被註冊")
	ErrInvalidID          = clientError("INVALID_ID", "使用者 ID 格式錯誤")
	ErrAccountNotFound    = clientError("ACCOUNT_NOT_FOUND", "找不到該使用者資料")
)

// Request errors raised by the HTTP layer before a use case runs.
var (
	ErrInvalidInput     = clientError("INVALID_INPUT", "請求內容格式錯誤")
	ErrValidationFailed = clientError("VALIDATION_FAILED", "輸入資料驗證失敗")
)

// Infrastructure faults. Clients only ever see ErrInternalError.
var (
	ErrAccountCreationFailed = serverError("ACCOUNT_CREATION_FAILED", "建立使用者失敗")
	ErrAccountUpdateFailed   = serverError("ACCOUNT_UPDATE_FAILED", "更新使用者失敗")
	ErrInternalError         = serverError("INTERNAL_ERROR", "系統內部錯誤")
)

// DatabaseExecuteError wraps a driver or GORM failure.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{err: err, details: details}
}

func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error so constraint codes stay inspectable.
func (e *DatabaseExecuteError) Unwrap() error { return e.err }

func (e *DatabaseExecuteError) HTTPCode() int { return http.StatusInternalServerError }
func (e *DatabaseExecuteError) ErrorCode() string { return "DATABASE_EXECUTE_FAILED" }
func (e *DatabaseExecuteError) Message() string { return "資料庫執行失敗" }
func (e *DatabaseExecuteError) Details() string { return e.details }
