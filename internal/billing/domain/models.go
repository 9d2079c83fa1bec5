// Package domain holds the billing rollup written by the privileged path.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// AccountUsage is the per-user billing rollup. It lives outside any single
// organization, so only the elevated-trust writer may touch it.
type AccountUsage struct {
	UserID           snowflake.ID `gorm:"primaryKey" json:"user_id"`
	CampaignsCreated int64        `gorm:"not null;default:0" json:"campaigns_created"`
	UpdatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (AccountUsage) TableName() string { return "account_usage" }

// AccountUsageWriter increments billing rollups on behalf of application
// flows. Implementations hold admin credentials, never the caller's.
type AccountUsageWriter interface {
	IncrementCampaignsCreated(ctx context.Context, userID snowflake.ID) error
}
