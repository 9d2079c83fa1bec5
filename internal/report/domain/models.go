// Package domain holds the daily metric rows and the report fold over them.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var ErrInvalidDateRange = errors.New("invalid_date_range")

// CampaignMetricDaily is one day of campaign metrics. Rows are written by
// the ingestion pipeline; this service only reads them.
type CampaignMetricDaily struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID       snowflake.ID `gorm:"not null;index:idx_metrics_org_campaign_date" json:"org_id"`
	CampaignID  snowflake.ID `gorm:"not null;index:idx_metrics_org_campaign_date" json:"campaign_id"`
	Date        time.Time    `gorm:"type:date;not null;index:idx_metrics_org_campaign_date" json:"date"`
	Impressions int64        `gorm:"not null;default:0" json:"impressions"`
	Clicks      int64        `gorm:"not null;default:0" json:"clicks"`
	Conversions int64        `gorm:"not null;default:0" json:"conversions"`
	SpendCents  int64        `gorm:"not null;default:0" json:"spend_cents"`
}

// TableName sets the database table name.
func (CampaignMetricDaily) TableName() string { return "campaign_metrics_daily" }

// ReportAggregate is the transient fold over a date range. Field names
// follow the wire contract of the report endpoint.
type ReportAggregate struct {
	TotalImpressions int64 `json:"totalImpressions"`
	TotalClicks      int64 `json:"totalClicks"`
	TotalConversions int64 `json:"totalConversions"`
	TotalSpendCents  int64 `json:"totalSpendCents"`
}

// Add folds one day into the aggregate. Commutative, so row order never
// changes the result.
func (a *ReportAggregate) Add(row CampaignMetricDaily) {
	a.TotalImpressions += row.Impressions
	a.TotalClicks += row.Clicks
	a.TotalConversions += row.Conversions
	a.TotalSpendCents += row.SpendCents
}

// ReportRequest identifies the caller and the inclusive date range.
type ReportRequest struct {
	OrgID      snowflake.ID
	CampaignID snowflake.ID
	UserID     snowflake.ID
	StartDate  time.Time
	EndDate    time.Time
}

// Repository reads daily metric rows.
type Repository interface {
	// ListRange returns rows with start <= date <= end, in no guaranteed order.
	ListRange(ctx context.Context, orgID, campaignID snowflake.ID, start, end time.Time) ([]CampaignMetricDaily, error)
}

// Service aggregates a campaign's metrics for a member of the owning
// organization.
type Service interface {
	Aggregate(ctx context.Context, req ReportRequest) (ReportAggregate, error)
}
