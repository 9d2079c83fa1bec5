// Package domain holds the immutable usage log written by the metering pass.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// UsageLogRecord is one metered quantity for one user in one run. Records
// are append-only; a correction is a new record, never an update.
type UsageLogRecord struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID      snowflake.ID `gorm:"not null;index" json:"org_id"`
	UserID     snowflake.ID `gorm:"not null;index" json:"user_id"`
	Metric     string       `gorm:"type:text;not null" json:"metric"`
	Quantity   int64        `gorm:"not null" json:"quantity"`
	RunID      string       `gorm:"type:text;not null;index" json:"run_id"`
	RecordedAt time.Time    `gorm:"not null" json:"recorded_at"`
}

// TableName sets the database table name.
func (UsageLogRecord) TableName() string { return "usage_logs" }

// Repository appends usage records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	BatchInsert(ctx context.Context, records []UsageLogRecord) error
	ListByRun(ctx context.Context, runID string) ([]UsageLogRecord, error)
}
