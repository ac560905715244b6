// Package handler contains the echo handlers of the API.
package handler

import (
	"net/http"

	"member/internal/delivery/api/response"
	"member/internal/delivery/api/validator"
	domainerrors "member/internal/domain/errors"
	"member/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AccountHandlerParams holds dependencies for AccountHandler, injected by Fx.
type AccountHandlerParams struct {
	fx.In

	AccountUC usecase.AccountUsecase
}

// AccountHandler holds dependencies for account-related handlers
type AccountHandler struct {
	accountUC usecase.AccountUsecase
}

// NewAccountHandler is the constructor for AccountHandler
func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{
		accountUC: params.AccountUC,
	}
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required"`
}

// CreateRequest represents the request body for registration
type CreateRequest struct {
	Email    string  `json:"email" validate:"required,email,max=254"`
	Password string  `json:"password" validate:"required"`
	FullName string  `json:"fullName" validate:"required,max=100"`
	Birthday *string `json:"birthday"`
	Address  *string `json:"address"`
}

// UpdateRequest represents the request body for updating an account.
// An empty password keeps the current one.
type UpdateRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
	Status   int    `json:"status"`
	Address  string `json:"address"`
}

// Login handles authentication by email and password
func (h *AccountHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return invalidInput(c)
	}

	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	result, err := h.accountUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return response.Result(c, http.StatusOK, result)
}

// Create handles account registration
func (h *AccountHandler) Create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return invalidInput(c)
	}

	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	input := &usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Address:  req.Address,
	}
	if req.Birthday != nil {
		input.Birthday = *req.Birthday
	}

	result, err := h.accountUC.Register(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return response.Result(c, http.StatusCreated, result)
}

// Update handles status, password and address changes
func (h *AccountHandler) Update(c echo.Context) error {
	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return invalidInput(c)
	}

	result, err := h.accountUC.Update(c.Request().Context(), &usecase.UpdateInput{
		ID:             req.ID,
		ChangePassword: req.Password != "",
		Password:       req.Password,
		Status:         req.Status,
		Address:        req.Address,
	})
	if err != nil {
		return err
	}

	return response.Result(c, http.StatusOK, result)
}

// HealthCheck reports that the process is serving requests
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

func invalidInput(c echo.Context) error {
	return response.BadRequest(c, domainerrors.ErrInvalidInput.ErrorCode(), domainerrors.ErrInvalidInput.Message())
}

func validationFailed(c echo.Context, err error) error {
	var validationErr *validator.ValidationError
	if errors.As(err, &validationErr) {
		return response.BadRequestWithDetails(c,
			domainerrors.ErrValidationFailed.ErrorCode(),
			domainerrors.ErrValidationFailed.Message(),
			validationErr.Fields,
		)
	}

	return response.BadRequest(c, domainerrors.ErrValidationFailed.ErrorCode(), domainerrors.ErrValidationFailed.Message())
}
