package postgres

import (
	"context"

	"member/internal/domain/entity"
	domainerrors "member/internal/domain/errors"
	"member/internal/domain/repository"
	"member/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// FindByAccountID retrieves the profile keyed by the account ID.
func (repo *profileRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.Profile, error) {
	var profileM model.ProfileModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", accountID).
		First(&profileM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find profile")
	}

	return toProfileDomain(&profileM), nil
}

// Create inserts the profile row of a new account.
func (repo *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	if err := repo.db.WithContext(ctx).Create(fromProfileDomain(profile)).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("profile references a missing account")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create profile")
	}

	return nil
}

// UpdateAddress overwrites the address column, storing NULL when the address is nil.
func (repo *profileRepository) UpdateAddress(ctx context.Context, profile *entity.Profile) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("user_id = ?", profile.AccountID).
		Update("address", profile.Address)

	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update profile address")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

func toProfileDomain(data *model.ProfileModel) *entity.Profile {
	if data == nil {
		return nil
	}

	profile := &entity.Profile{
		AccountID: data.UserID,
		Birthday:  data.Birthday,
		Address:   data.Address,
	}
	if data.FullName != nil {
		profile.FullName = *data.FullName
	}

	return profile
}

func fromProfileDomain(data *entity.Profile) *model.ProfileModel {
	if data == nil {
		return nil
	}

	fullName := data.FullName

	return &model.ProfileModel{
		UserID:   data.AccountID,
		FullName: &fullName,
		Birthday: data.Birthday,
		Address:  data.Address,
	}
}
