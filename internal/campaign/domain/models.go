// Package domain contains persistence models and contracts for campaigns.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Campaign stores a validated campaign owned by a user inside an organization.
type Campaign struct {
	ID            snowflake.ID   `gorm:"primaryKey" json:"id"`
	OrgID         snowflake.ID   `gorm:"not null;index" json:"org_id"`
	UserID        snowflake.ID   `gorm:"not null;index" json:"user_id"`
	Name          string         `gorm:"type:text;not null" json:"name"`
	Slug          string         `gorm:"type:text;not null" json:"slug"`
	Objective     string         `gorm:"type:text;not null" json:"objective"`
	Platforms     datatypes.JSON `gorm:"not null" json:"platforms"`
	Niches        datatypes.JSON `gorm:"not null" json:"niches"`
	BudgetCents   *int64         `json:"budget_cents,omitempty"`
	Currency      string         `gorm:"type:text;not null" json:"currency"`
	StartDate     *time.Time     `json:"start_date,omitempty"`
	EndDate       *time.Time     `json:"end_date,omitempty"`
	FollowerMin   *int64         `json:"follower_min,omitempty"`
	FollowerMax   *int64         `json:"follower_max,omitempty"`
	MinEngagement *float64       `json:"min_engagement,omitempty"`
	Missing       datatypes.JSON `json:"missing"`
	Confirmed     bool           `gorm:"not null;default:false" json:"confirmed"`
	CreatedAt     time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Campaign) TableName() string { return "campaigns" }

// CampaignTarget is one creator/audience target row attached to a campaign.
type CampaignTarget struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	CampaignID snowflake.ID `gorm:"not null;index" json:"campaign_id"`
	OrgID      snowflake.ID `gorm:"not null;index" json:"org_id"`
	Handle     string       `gorm:"type:text;not null" json:"handle"`
	Platform   string       `gorm:"type:text;not null" json:"platform"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (CampaignTarget) TableName() string { return "campaign_targets" }
