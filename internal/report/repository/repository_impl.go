package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/reachloop/reachloop/internal/report/domain"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) ListRange(ctx context.Context, orgID, campaignID snowflake.ID, start, end time.Time) ([]domain.CampaignMetricDaily, error) {
	var rows []domain.CampaignMetricDaily
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND campaign_id = ?", orgID, campaignID).
		Where("date >= ? AND date <= ?", start, end).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
