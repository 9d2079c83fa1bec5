package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/reachloop/reachloop/internal/cache"
	"github.com/reachloop/reachloop/internal/organization/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type GuardParam struct {
	fx.In

	Log        *zap.Logger
	Repo       domain.Repository
	Membership cache.MembershipCache `optional:"true"`
}

type guard struct {
	log        *zap.Logger
	repo       domain.Repository
	membership cache.MembershipCache
}

// NewGuard builds the membership access guard.
func NewGuard(p GuardParam) domain.Guard {
	return &guard{
		log:        p.Log.Named("organization.guard"),
		repo:       p.Repo,
		membership: p.Membership,
	}
}

func (g *guard) EnsureMember(ctx context.Context, orgID snowflake.ID, userID snowflake.ID) error {
	if orgID == 0 {
		return domain.ErrInvalidOrganization
	}
	if userID == 0 {
		return domain.ErrInvalidUser
	}

	if g.membership != nil {
		if member, ok := g.membership.GetMember(orgID.String(), userID.String()); ok && member {
			return nil
		}
	}

	member, err := g.repo.IsMember(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if !member {
		return domain.ErrNotMember
	}

	if g.membership != nil {
		g.membership.SetMember(orgID.String(), userID.String(), true)
	}
	return nil
}
