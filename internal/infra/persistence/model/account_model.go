package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'users' table. IDs are UUIDv7 values generated by the application.
// It is an exported type so the mappers in the postgres package can build it.
type AccountModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email        string     `gorm:"type:varchar(300);not null;uniqueIndex:ux_users_email"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	Status       int        `gorm:"not null;index:ix_users_status"`
	CreatedAt    time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt    *time.Time `gorm:"autoUpdateTime:false"`

	Profile *ProfileModel      `gorm:"foreignKey:UserID"`
	Roles   []AccountRoleModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "users"
}

// ProfileModel mirrors the 'user_profiles' table. UserID references users.id.
type ProfileModel struct {
	UserID   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FullName *string    `gorm:"type:varchar(100)"`
	Birthday *time.Time `gorm:"type:date"`
	Address  *string    `gorm:"type:varchar(500)"`
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "user_profiles"
}

// RoleModel mirrors the 'roles' lookup table.
type RoleModel struct {
	ID   int    `gorm:"primaryKey;autoIncrement:false"`
	Name string `gorm:"type:varchar(50);not null"`
}

// TableName explicitly sets the table name for GORM.
func (RoleModel) TableName() string {
	return "roles"
}

// AccountRoleModel mirrors the 'user_roles' association table, keyed by (user_id, role_id).
type AccountRoleModel struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleID int       `gorm:"primaryKey;autoIncrement:false"`
}

// TableName explicitly sets the table name for GORM.
func (AccountRoleModel) TableName() string {
	return "user_roles"
}
