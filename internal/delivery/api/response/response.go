// Package response writes the JSON envelope shared by every API endpoint.
package response

import (
	"net/http"

	deliverycontext "member/internal/delivery/context"
	domainerrors "member/internal/domain/errors"
	"member/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Envelope is the body of every API response. It mirrors usecase.Result and adds the
// request metadata.
type Envelope struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Code    string    `json:"code,omitempty"`
	Data    any       `json:"data"`
	Details any       `json:"details,omitempty"` // Validation context, only for 4xx errors
	Meta    *MetaInfo `json:"meta"`
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string `json:"request_id"` // Request tracking ID
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, Envelope{
		Success: true,
		Message: usecase.MessageSuccess,
		Data:    data,
		Meta:    meta(c),
	})
}

// Result writes a use case result. Business failures are always 400; successes use successStatus.
func Result[T any](c echo.Context, successStatus int, result *usecase.Result[T]) error {
	statusCode := successStatus
	if !result.Success {
		statusCode = http.StatusBadRequest
	}

	return c.JSON(statusCode, Envelope{
		Success: result.Success,
		Message: result.Message,
		Code:    result.Code,
		Data:    result.Data,
		Meta:    meta(c),
	})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	// Details are never exposed for 5xx errors
	if statusCode >= http.StatusInternalServerError {
		details = nil
	}

	return c.JSON(statusCode, Envelope{
		Success: false,
		Message: message,
		Code:    errorCode,
		Details: details,
		Meta:    meta(c),
	})
}

// BadRequest returns a 400 error
func BadRequest(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, nil)
}

// BadRequestWithDetails returns a 400 error with details
func BadRequestWithDetails(c echo.Context, errorCode string, message string, details any) error {
	return Error(c, http.StatusBadRequest, errorCode, message, details)
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, nil)
}

// HandleAppError handles application errors, converting domain errors to appropriate HTTP responses
func HandleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), nil)
	}

	return errors.WithStack(err)
}

func meta(c echo.Context) *MetaInfo {
	return &MetaInfo{
		RequestID: deliverycontext.RequestID(c),
	}
}
