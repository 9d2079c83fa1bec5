package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/reachloop/reachloop/internal/campaign/domain"
	"github.com/reachloop/reachloop/pkg/db/option"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) Insert(ctx context.Context, campaign *domain.Campaign) error {
	return r.db.WithContext(ctx).Create(campaign).Error
}

func (r *repository) InsertTargets(ctx context.Context, targets []domain.CampaignTarget) error {
	if len(targets) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&targets).Error
}

func (r *repository) GetByID(ctx context.Context, orgID, id snowflake.ID) (*domain.Campaign, error) {
	var campaign domain.Campaign
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&campaign).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

func (r *repository) List(ctx context.Context, orgID snowflake.ID, opts ...option.QueryOption) ([]*domain.Campaign, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.Campaign{}).
		Where("org_id = ?", orgID)
	for _, opt := range opts {
		query = opt.Apply(query)
	}

	var campaigns []*domain.Campaign
	if err := query.Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *repository) DistinctOwnerIDs(ctx context.Context, orgID snowflake.ID) ([]snowflake.ID, error) {
	var ids []snowflake.ID
	err := r.db.WithContext(ctx).
		Model(&domain.Campaign{}).
		Where("org_id = ?", orgID).
		Distinct("user_id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
