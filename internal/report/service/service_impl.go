package service

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/reachloop/reachloop/internal/authorization"
	orgdomain "github.com/reachloop/reachloop/internal/organization/domain"
	"github.com/reachloop/reachloop/internal/report/domain"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	Repo  domain.Repository
	Guard orgdomain.Guard
	Authz authorization.Service
}

type Service struct {
	log   *zap.Logger
	repo  domain.Repository
	guard orgdomain.Guard
	authz authorization.Service
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("report.service"),
		repo:  p.Repo,
		guard: p.Guard,
		authz: p.Authz,
	}
}

// Aggregate checks membership before touching any metric row, then folds
// the inclusive date range into a zero-initialized aggregate. An empty
// range is a valid all-zero report, not an error.
func (s *Service) Aggregate(ctx context.Context, req domain.ReportRequest) (domain.ReportAggregate, error) {
	if req.OrgID == 0 {
		return domain.ReportAggregate{}, orgdomain.ErrInvalidOrganization
	}
	if req.UserID == 0 {
		return domain.ReportAggregate{}, orgdomain.ErrInvalidUser
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() || req.EndDate.Before(req.StartDate) {
		return domain.ReportAggregate{}, domain.ErrInvalidDateRange
	}

	if err := s.guard.EnsureMember(ctx, req.OrgID, req.UserID); err != nil {
		return domain.ReportAggregate{}, err
	}
	actor := fmt.Sprintf("user:%s", req.UserID)
	if err := s.authz.Authorize(ctx, actor, req.OrgID.String(), authorization.ObjectReport, authorization.ActionReportView); err != nil {
		return domain.ReportAggregate{}, err
	}

	rows, err := s.repo.ListRange(ctx, req.OrgID, req.CampaignID, req.StartDate, req.EndDate)
	if err != nil {
		return domain.ReportAggregate{}, err
	}

	var aggregate domain.ReportAggregate
	for _, row := range rows {
		aggregate.Add(row)
	}
	return aggregate, nil
}
