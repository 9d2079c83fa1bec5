package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/reachloop/reachloop/internal/authorization"
	billingdomain "github.com/reachloop/reachloop/internal/billing/domain"
	"github.com/reachloop/reachloop/internal/campaign/domain"
	"github.com/reachloop/reachloop/internal/clock"
	orgdomain "github.com/reachloop/reachloop/internal/organization/domain"
	profiledomain "github.com/reachloop/reachloop/internal/profile/domain"
	"github.com/reachloop/reachloop/pkg/db/option"
	"github.com/reachloop/reachloop/pkg/db/pagination"
	"github.com/reachloop/reachloop/pkg/rls"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        domain.Repository
	Profiles    profiledomain.Repository
	Guard       orgdomain.Guard
	Authz       authorization.Service
	UsageWriter billingdomain.AccountUsageWriter
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        domain.Repository
	profiles    profiledomain.Repository
	guard       orgdomain.Guard
	authz       authorization.Service
	usageWriter billingdomain.AccountUsageWriter
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("campaign.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		profiles:    p.Profiles,
		guard:       p.Guard,
		authz:       p.Authz,
		usageWriter: p.UsageWriter,
	}
}

// Create runs the creation flow in order: membership, authorization,
// validation, then one transaction for profile + campaign + targets, then
// the privileged billing upsert. Any step's failure stops the flow.
func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Campaign, error) {
	if req.OrgID == 0 {
		return nil, orgdomain.ErrInvalidOrganization
	}
	if req.UserID == 0 {
		return nil, orgdomain.ErrInvalidUser
	}

	if err := s.guard.EnsureMember(ctx, req.OrgID, req.UserID); err != nil {
		return nil, err
	}
	actor := fmt.Sprintf("user:%s", req.UserID)
	if err := s.authz.Authorize(ctx, actor, req.OrgID.String(), authorization.ObjectCampaign, authorization.ActionCampaignCreate); err != nil {
		return nil, err
	}

	intake := req.Intake
	if err := intake.Validate(); err != nil {
		return nil, err
	}
	intake.Normalize()

	campaign, targets, err := s.buildRows(req.OrgID, req.UserID, intake)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rls.WithTenant(tx, int64(req.OrgID)); err != nil {
			return err
		}
		if err := s.profiles.WithTx(tx).EnsureExists(ctx, req.UserID, defaultDisplayName(req.UserID)); err != nil {
			return err
		}
		repo := s.repo.WithTx(tx)
		if err := repo.Insert(ctx, campaign); err != nil {
			return err
		}
		if len(targets) > 0 {
			if err := repo.InsertTargets(ctx, targets); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Cross-tenant billing rollup, written with admin credentials after the
	// tenant-scoped transaction commits.
	if err := s.usageWriter.IncrementCampaignsCreated(ctx, req.UserID); err != nil {
		return nil, err
	}

	s.log.Info("campaign created",
		zap.String("org_id", req.OrgID.String()),
		zap.String("campaign_id", campaign.ID.String()),
		zap.Int("targets", len(targets)),
	)
	return campaign, nil
}

func (s *Service) Get(ctx context.Context, orgID, userID, id snowflake.ID) (*domain.Campaign, error) {
	if err := s.guard.EnsureMember(ctx, orgID, userID); err != nil {
		return nil, err
	}
	campaign, err := s.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, domain.ErrCampaignNotFound
	}
	return campaign, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	if err := s.guard.EnsureMember(ctx, req.OrgID, req.UserID); err != nil {
		return domain.ListResponse{}, err
	}
	actor := fmt.Sprintf("user:%s", req.UserID)
	if err := s.authz.Authorize(ctx, actor, req.OrgID.String(), authorization.ObjectCampaign, authorization.ActionCampaignView); err != nil {
		return domain.ListResponse{}, err
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, req.OrgID, option.ApplyPagination(pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	}))
	if err != nil {
		return domain.ListResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(campaign *domain.Campaign) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        campaign.ID.String(),
			CreatedAt: campaign.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	campaigns := make([]domain.Campaign, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		campaigns = append(campaigns, *item)
	}

	resp := domain.ListResponse{Campaigns: campaigns}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) buildRows(orgID, userID snowflake.ID, intake domain.CampaignIntake) (*domain.Campaign, []domain.CampaignTarget, error) {
	platforms, err := json.Marshal(intake.Platforms)
	if err != nil {
		return nil, nil, err
	}
	niches, err := json.Marshal(intake.Niches)
	if err != nil {
		return nil, nil, err
	}
	missing, err := json.Marshal(intake.Missing)
	if err != nil {
		return nil, nil, err
	}

	now := s.clock.Now()
	campaign := &domain.Campaign{
		ID:            s.genID.Generate(),
		OrgID:         orgID,
		UserID:        userID,
		Name:          intake.Name,
		Slug:          slug.Make(intake.Name),
		Objective:     intake.Objective,
		Platforms:     datatypes.JSON(platforms),
		Niches:        datatypes.JSON(niches),
		BudgetCents:   intake.BudgetCents,
		Currency:      intake.Currency,
		StartDate:     intake.StartDate,
		EndDate:       intake.EndDate,
		FollowerMin:   intake.FollowerMin,
		FollowerMax:   intake.FollowerMax,
		MinEngagement: intake.MinEngagement,
		Missing:       datatypes.JSON(missing),
		Confirmed:     intake.Confirmed != nil && *intake.Confirmed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	targets := make([]domain.CampaignTarget, 0, len(intake.Targets))
	for _, t := range intake.Targets {
		targets = append(targets, domain.CampaignTarget{
			ID:         s.genID.Generate(),
			CampaignID: campaign.ID,
			OrgID:      orgID,
			Handle:     t.Handle,
			Platform:   t.Platform,
			CreatedAt:  now,
		})
	}
	return campaign, targets, nil
}

func defaultDisplayName(userID snowflake.ID) string {
	return fmt.Sprintf("user-%s", userID)
}
