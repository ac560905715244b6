package postgres

import (
	"context"

	"member/internal/domain/entity"
	domainerrors "member/internal/domain/errors"
	"member/internal/domain/repository"
	"member/internal/infra/persistence/model"

	"gorm.io/gorm"
)

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository is the constructor for roleRepository.
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

// Assign inserts a (user_id, role_id) pair.
func (repo *roleRepository) Assign(ctx context.Context, assignment *entity.RoleAssignment) error {
	roleM := &model.AccountRoleModel{
		UserID: assignment.AccountID,
		RoleID: int(assignment.RoleID),
	}

	if err := repo.db.WithContext(ctx).Create(roleM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("role assignment references a missing account or role")
		}
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("role already assigned")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to assign role")
	}

	return nil
}
