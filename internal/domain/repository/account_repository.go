// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"member/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for account persistence.
var (
	// ErrAccountNotFound is returned when no account matches the lookup key.
	ErrAccountNotFound = errors.New("account not found")
	// ErrProfileNotFound is returned when an account has no profile row.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrEmailTaken is returned when an insert hits the unique email index.
	ErrEmailTaken = errors.New("email already registered")
)

// AccountRepository defines the standard operations for account persistence.
type AccountRepository interface {
	// FindLoginRecord retrieves the account with the given email joined with its profile
	// and its lowest role id. Returns ErrAccountNotFound when no account matches.
	FindLoginRecord(ctx context.Context, email string) (*entity.LoginRecord, error)

	// ExistsByEmail reports whether an account with this exact email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindByID retrieves a single account by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// Create inserts a new account. Returns ErrEmailTaken on a unique violation.
	Create(ctx context.Context, account *entity.Account) error

	// Update persists the mutable columns (status, password hash, updated at).
	Update(ctx context.Context, account *entity.Account) error
}

// ProfileRepository defines the operations for the 1:1 account profile.
type ProfileRepository interface {
	// FindByAccountID retrieves the profile owned by the account.
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.Profile, error)

	// Create inserts the profile of a freshly created account.
	Create(ctx context.Context, profile *entity.Profile) error

	// UpdateAddress overwrites the profile address.
	UpdateAddress(ctx context.Context, profile *entity.Profile) error
}

// RoleRepository manages role assignments.
type RoleRepository interface {
	// Assign grants a role to an account.
	Assign(ctx context.Context, assignment *entity.RoleAssignment) error
}
