package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/reachloop/reachloop/internal/cache"
	"github.com/reachloop/reachloop/internal/organization/domain"
)

type stubRepo struct {
	domain.Repository

	members map[string]bool
	calls   int
}

func (s *stubRepo) IsMember(_ context.Context, orgID, userID snowflake.ID) (bool, error) {
	s.calls++
	return s.members[orgID.String()+":"+userID.String()], nil
}

func (s *stubRepo) WithTx(*gorm.DB) domain.Repository { return s }

func newTestGuard(repo *stubRepo, membership cache.MembershipCache) domain.Guard {
	return NewGuard(GuardParam{
		Log:        zap.NewNop(),
		Repo:       repo,
		Membership: membership,
	})
}

func TestEnsureMemberValidatesIDs(t *testing.T) {
	guard := newTestGuard(&stubRepo{}, nil)

	err := guard.EnsureMember(context.Background(), 0, 1)
	require.ErrorIs(t, err, domain.ErrInvalidOrganization)

	err = guard.EnsureMember(context.Background(), 1, 0)
	require.ErrorIs(t, err, domain.ErrInvalidUser)
}

func TestEnsureMemberRejectsNonMember(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	guard := newTestGuard(&stubRepo{members: map[string]bool{}}, nil)

	err = guard.EnsureMember(context.Background(), node.Generate(), node.Generate())
	require.ErrorIs(t, err, domain.ErrNotMember)
}

func TestEnsureMemberCachesPositiveResult(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	orgID := node.Generate()
	userID := node.Generate()

	repo := &stubRepo{members: map[string]bool{orgID.String() + ":" + userID.String(): true}}
	guard := newTestGuard(repo, cache.NewMembershipCache())

	require.NoError(t, guard.EnsureMember(context.Background(), orgID, userID))
	require.NoError(t, guard.EnsureMember(context.Background(), orgID, userID))

	assert.Equal(t, 1, repo.calls, "second check must come from the cache")
}

func TestEnsureMemberDoesNotCacheNegative(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	orgID := node.Generate()
	userID := node.Generate()

	repo := &stubRepo{members: map[string]bool{}}
	guard := newTestGuard(repo, cache.NewMembershipCache())

	require.ErrorIs(t, guard.EnsureMember(context.Background(), orgID, userID), domain.ErrNotMember)

	repo.members[orgID.String()+":"+userID.String()] = true
	require.NoError(t, guard.EnsureMember(context.Background(), orgID, userID),
		"a just-granted membership must be visible immediately")
}
