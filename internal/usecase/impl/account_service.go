// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "member/internal/delivery/context"
	"member/internal/domain/entity"
	domainerrors "member/internal/domain/errors"
	"member/internal/domain/repository"
	"member/internal/domain/service"
	"member/internal/infra/metrics"
	"member/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	profileRepo repository.ProfileRepository
	hasher      service.PasswordHasher
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	ProfileRepo repository.ProfileRepository
	Hasher      service.PasswordHasher
	Logger      *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		profileRepo: params.ProfileRepo,
		hasher:      params.Hasher,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, srv.logger)
}

// Login authenticates by email and password. Checks run in the order existence, status,
// password so a suspended account is reported even when the password is wrong.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.Result[*usecase.LoginOutput], error) {
	started := time.Now()

	record, err := srv.accountRepo.FindLoginRecord(ctx, input.Email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		srv.log(ctx).Info("Login rejected", slog.String("reason", "unknown email"))

		return rejected[*usecase.LoginOutput](metrics.OperationLogin, domainerrors.ErrInvalidCredentials, started), nil
	}
	if err != nil {
		metrics.ObserveAccountOperation(metrics.OperationLogin, metrics.OutcomeError, started)

		return nil, errors.Wrap(err, "failed to find login record")
	}

	if !record.Account.Status.IsActive() {
		srv.log(ctx).Info("Login rejected",
			slog.String("reason", "inactive account"),
			slog.String("account_id", record.Account.ID.String()),
			slog.Int("status", int(record.Account.Status)),
		)

		return rejected[*usecase.LoginOutput](metrics.OperationLogin, domainerrors.ErrAccountSuspended, started), nil
	}

	if !srv.hasher.Check(input.Password, record.Account.PasswordHash) {
		srv.log(ctx).Info("Login rejected",
			slog.String("reason", "password mismatch"),
			slog.String("account_id", record.Account.ID.String()),
		)

		return rejected[*usecase.LoginOutput](metrics.OperationLogin, domainerrors.ErrInvalidCredentials, started), nil
	}

	output := &usecase.LoginOutput{
		ID:       record.Account.ID.String(),
		FullName: record.FullName,
		Birthday: record.BirthdayText(),
		Address:  record.Address,
		Email:    record.Account.Email,
		RoleID:   int(record.RoleID),
	}

	metrics.ObserveAccountOperation(metrics.OperationLogin, metrics.OutcomeSuccess, started)
	srv.log(ctx).Debug("Login succeeded", slog.String("account_id", output.ID))

	return usecase.Succeed(output), nil
}

// Register opens a new account. The account, its profile and its Member role are written in
// one transaction; a concurrent registration that wins the unique email index turns this one
// into a duplicate email failure.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.Result[*usecase.RegisterOutput], error) {
	started := time.Now()

	exists, err := srv.accountRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		metrics.ObserveAccountOperation(metrics.OperationRegister, metrics.OutcomeError, started)

		return nil, errors.Wrap(err, "failed to check email availability")
	}
	if exists {
		srv.log(ctx).Info("Registration rejected", slog.String("reason", "email already registered"))

		return rejected[*usecase.RegisterOutput](metrics.OperationRegister, domainerrors.ErrDuplicateEmail, started), nil
	}

	accountID, err := uuid.NewV7()
	if err != nil {
		metrics.ObserveAccountOperation(metrics.OperationRegister, metrics.OutcomeError, started)

		return nil, errors.Wrap(err, "failed to generate account id")
	}

	account := &entity.Account{
		ID:           accountID,
		Email:        input.Email,
		PasswordHash: srv.hasher.Hash(input.Password),
		Status:       entity.StatusActive,
		CreatedAt:    time.Now().UTC(),
	}
	profile := &entity.Profile{
		AccountID: accountID,
		FullName:  input.FullName,
		Birthday:  entity.ParseBirthday(input.Birthday),
		Address:   input.Address,
	}
	assignment := &entity.RoleAssignment{
		AccountID: accountID,
		RoleID:    entity.RoleMember,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.AccountRepo().Create(ctx, account); err != nil {
			return errors.Wrap(err, "failed to create account")
		}

		if err := repoFactory.ProfileRepo().Create(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to create profile")
		}

		if err := repoFactory.RoleRepo().Assign(ctx, assignment); err != nil {
			return errors.Wrap(err, "failed to assign member role")
		}

		return nil
	})

	if errors.Is(err, repository.ErrEmailTaken) {
		srv.log(ctx).Info("Registration rejected", slog.String("reason", "email taken concurrently"))

		return rejected[*usecase.RegisterOutput](metrics.OperationRegister, domainerrors.ErrDuplicateEmail, started), nil
	}
	if err != nil {
		srv.log(ctx).Error("Failed to execute registration transaction", slog.Any("error", err))
		metrics.ObserveAccountOperation(metrics.OperationRegister, metrics.OutcomeError, started)

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	output := &usecase.RegisterOutput{
		ID:       accountID.String(),
		FullName: profile.FullName,
		Birthday: profile.BirthdayText(),
		Address:  profile.AddressText(),
		Email:    account.Email,
		RoleID:   int(entity.RoleMember),
	}

	metrics.ObserveAccountOperation(metrics.OperationRegister, metrics.OutcomeSuccess, started)
	srv.log(ctx).Info("Registration completed", slog.String("account_id", output.ID))

	return usecase.Succeed(output), nil
}

// Update overwrites the status and address of an account and, when requested, its password.
func (srv *accountService) Update(ctx context.Context, input *usecase.UpdateInput) (*usecase.Result[bool], error) {
	started := time.Now()

	accountID, err := uuid.Parse(input.ID)
	if err != nil {
		return rejected[bool](metrics.OperationUpdate, domainerrors.ErrInvalidID, started), nil
	}

	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return rejected[bool](metrics.OperationUpdate, domainerrors.ErrAccountNotFound, started), nil
	}
	if err != nil {
		metrics.ObserveAccountOperation(metrics.OperationUpdate, metrics.OutcomeError, started)

		return nil, errors.Wrap(err, "failed to find account")
	}

	profile, err := srv.profileRepo.FindByAccountID(ctx, accountID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return rejected[bool](metrics.OperationUpdate, domainerrors.ErrAccountNotFound, started), nil
	}
	if err != nil {
		metrics.ObserveAccountOperation(metrics.OperationUpdate, metrics.OutcomeError, started)

		return nil, errors.Wrap(err, "failed to find profile")
	}

	now := time.Now().UTC()
	account.Status = entity.AccountStatus(input.Status)
	account.UpdatedAt = &now
	if input.ChangePassword {
		account.PasswordHash = srv.hasher.Hash(input.Password)
	}

	address := input.Address
	profile.Address = &address

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.AccountRepo().Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to update account")
		}

		if err := repoFactory.ProfileRepo().UpdateAddress(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to update profile")
		}

		return nil
	})

	if errors.Is(err, repository.ErrAccountNotFound) || errors.Is(err, repository.ErrProfileNotFound) {
		return rejected[bool](metrics.OperationUpdate, domainerrors.ErrAccountNotFound, started), nil
	}
	if err != nil {
		srv.log(ctx).Error("Failed to execute update transaction",
			slog.String("account_id", accountID.String()),
			slog.Any("error", err),
		)
		metrics.ObserveAccountOperation(metrics.OperationUpdate, metrics.OutcomeError, started)

		return nil, errors.Wrap(err, "failed to execute update transaction")
	}

	metrics.ObserveAccountOperation(metrics.OperationUpdate, metrics.OutcomeSuccess, started)
	srv.log(ctx).Info("Account updated",
		slog.String("account_id", accountID.String()),
		slog.Int("status", input.Status),
		slog.Bool("password_changed", input.ChangePassword),
	)

	return usecase.Succeed(true), nil
}

// rejected records a business failure and builds its result.
func rejected[T any](operation string, appErr domainerrors.AppError, started time.Time) *usecase.Result[T] {
	metrics.ObserveAccountOperation(operation, appErr.ErrorCode(), started)

	return usecase.Fail[T](appErr)
}
