// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	domainerrors "member/internal/domain/errors"
)

// --- Input DTOs ---

// LoginInput defines the credentials presented at login.
type LoginInput struct {
	Email    string
	Password string
}

// RegisterInput defines the data required to open a new account.
// Birthday is free text; blank or unparseable values are stored as unknown.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Birthday string
	Address  *string
}

// UpdateInput defines the mutable state of an existing account.
// Status and Address always overwrite the stored values. Password is only applied when
// ChangePassword is set.
type UpdateInput struct {
	ID             string
	ChangePassword bool
	Password       string
	Status         int
	Address        string
}

// --- Output DTOs ---

// AccountView is the projection returned by login and registration.
type AccountView struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Birthday string `json:"birthday"`
	Address  string `json:"address"`
	Email    string `json:"email"`
	RoleID   int    `json:"roleId"`
}

// LoginOutput is returned after a successful login.
type LoginOutput = AccountView

// RegisterOutput is returned after a successful registration.
type RegisterOutput = AccountView

// MessageSuccess is the display message of every successful result.
const MessageSuccess = "成功"

// Result is the envelope every account operation returns. Expected business failures are
// carried as Success=false with a display message and a machine code; they are never Go errors.
type Result[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Data    T      `json:"data"`
}

// Succeed builds a successful result.
func Succeed[T any](data T) *Result[T] {
	return &Result[T]{
		Success: true,
		Message: MessageSuccess,
		Data:    data,
	}
}

// Fail builds a business failure from a predefined application error.
func Fail[T any](appErr domainerrors.AppError) *Result[T] {
	return &Result[T]{
		Success: false,
		Message: appErr.Message(),
		Code:    appErr.ErrorCode(),
	}
}

// AccountUsecase defines the account operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
// A returned error always means an infrastructure fault.
type AccountUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*Result[*LoginOutput], error)
	Register(ctx context.Context, input *RegisterInput) (*Result[*RegisterOutput], error)
	Update(ctx context.Context, input *UpdateInput) (*Result[bool], error)
}
