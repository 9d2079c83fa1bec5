package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/reachloop/reachloop/pkg/db/option"
)

// Repository persists campaigns and answers the metering scan.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Insert(ctx context.Context, campaign *Campaign) error
	InsertTargets(ctx context.Context, targets []CampaignTarget) error
	GetByID(ctx context.Context, orgID, id snowflake.ID) (*Campaign, error)
	List(ctx context.Context, orgID snowflake.ID, opts ...option.QueryOption) ([]*Campaign, error)

	// DistinctOwnerIDs returns each user that owns at least one campaign
	// in the organization, exactly once, in no guaranteed order.
	DistinctOwnerIDs(ctx context.Context, orgID snowflake.ID) ([]snowflake.ID, error)
}
