// Package domain holds the user profile model and contract.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Profile stores display attributes for a user. Created lazily the first
// time the user creates a campaign.
type Profile struct {
	UserID      snowflake.ID `gorm:"primaryKey" json:"user_id"`
	DisplayName string       `gorm:"type:text;not null" json:"display_name"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Profile) TableName() string { return "profiles" }

// Repository persists profiles.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Get(ctx context.Context, userID snowflake.ID) (*Profile, error)

	// EnsureExists creates the profile when absent and is a no-op when
	// the row is already there.
	EnsureExists(ctx context.Context, userID snowflake.ID, displayName string) error
}
