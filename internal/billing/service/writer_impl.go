package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reachloop/reachloop/internal/billing/domain"
	"github.com/reachloop/reachloop/pkg/db"
)

type WriterParam struct {
	fx.In

	Log   *zap.Logger
	Admin db.Admin
}

type accountUsageWriter struct {
	log   *zap.Logger
	admin db.Admin
}

func NewAccountUsageWriter(p WriterParam) domain.AccountUsageWriter {
	return &accountUsageWriter{
		log:   p.Log.Named("billing.usage_writer"),
		admin: p.Admin,
	}
}

func (w *accountUsageWriter) IncrementCampaignsCreated(ctx context.Context, userID snowflake.ID) error {
	usage := domain.AccountUsage{
		UserID:           userID,
		CampaignsCreated: 1,
	}
	err := w.admin.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"campaigns_created": gorm.Expr("account_usage.campaigns_created + 1"),
				"updated_at":        gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Create(&usage).Error
	if err != nil {
		w.log.Error("failed to increment campaigns_created",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}
