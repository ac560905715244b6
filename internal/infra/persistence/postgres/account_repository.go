// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"member/internal/domain/entity"
	domainerrors "member/internal/domain/errors"
	"member/internal/domain/repository"
	"member/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// loginSelect projects an account with its profile and its lowest role id in one round trip.
// Missing profile columns collapse to '' and a missing role to 0.
const loginSelect = `users.id, users.email, users.password_hash, users.status, users.created_at, users.updated_at,
	COALESCE(user_profiles.full_name, '') AS full_name,
	user_profiles.birthday,
	COALESCE(user_profiles.address, '') AS address,
	COALESCE((SELECT MIN(user_roles.role_id) FROM user_roles WHERE user_roles.user_id = users.id), 0) AS role_id`

// loginRow receives the loginSelect projection.
type loginRow struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Status       int
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	FullName     string
	Birthday     *time.Time
	Address      string
	RoleID       int
}

// accountRepository implements the domain.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a domain.AccountRepository interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindLoginRecord retrieves the login projection for an exact email match.
func (repo *accountRepository) FindLoginRecord(ctx context.Context, email string) (*entity.LoginRecord, error) {
	var row loginRow
	err := repo.db.WithContext(ctx).
		Table(model.AccountModel{}.TableName()).
		Select(loginSelect).
		Joins("LEFT JOIN user_profiles ON user_profiles.user_id = users.id").
		Where("users.email = ?", email).
		Take(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find account by email")
	}

	return &entity.LoginRecord{
		Account: entity.Account{
			ID:           row.ID,
			Email:        row.Email,
			PasswordHash: row.PasswordHash,
			Status:       entity.AccountStatus(row.Status),
			CreatedAt:    row.CreatedAt,
			UpdatedAt:    row.UpdatedAt,
		},
		FullName: row.FullName,
		Birthday: row.Birthday,
		Address:  row.Address,
		RoleID:   entity.RoleID(row.RoleID),
	}, nil
}

// ExistsByEmail checks for an account with this email without loading it.
func (repo *accountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("email = ?", email).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check account email")
	}

	return count > 0, nil
}

// FindByID retrieves a single account by its ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&accountM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find account by id")
	}

	return toAccountDomain(&accountM), nil
}

// Create inserts a new account row.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Omit("Profile", "Roles").Create(accountM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return errors.Wrap(repository.ErrEmailTaken, "email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("missing required account information")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("account violates a check constraint")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	return nil
}

// Update writes the mutable account columns. Email, id and creation time are never touched.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", account.ID).
		Updates(map[string]any{
			"status":        int(account.Status),
			"password_hash": account.PasswordHash,
			"updated_at":    account.UpdatedAt,
		})

	if err := result.Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAccountUpdateFailed.WrapMessage("missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update account")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:           data.ID,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Status:       entity.AccountStatus(data.Status),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel for persistence.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:           data.ID,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Status:       int(data.Status),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
