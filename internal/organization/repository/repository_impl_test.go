package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/reachloop/reachloop/internal/organization/domain"
)

func newTestRepo(t *testing.T) (domain.Repository, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Organization{}, &domain.OrganizationMember{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return NewRepository(db), node
}

func seedOrgs(t *testing.T, repo domain.Repository, node *snowflake.Node, n int) []snowflake.ID {
	t.Helper()
	ids := make([]snowflake.ID, 0, n)
	for i := 0; i < n; i++ {
		org := domain.Organization{
			ID:   node.Generate(),
			Name: "Org",
			Slug: "org-" + node.Generate().String(),
		}
		require.NoError(t, repo.CreateOrganization(context.Background(), org))
		ids = append(ids, org.ID)
	}
	return ids
}

func TestIterateIDsVisitsEveryOrg(t *testing.T) {
	repo, node := newTestRepo(t)
	want := seedOrgs(t, repo, node, 5)

	var got []snowflake.ID
	err := repo.IterateIDs(context.Background(), 2, func(id snowflake.ID) error {
		got = append(got, id)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, want, got, "keyset walk must visit every org in id order")
}

func TestIterateIDsEmptyTable(t *testing.T) {
	repo, _ := newTestRepo(t)

	calls := 0
	err := repo.IterateIDs(context.Background(), 10, func(snowflake.ID) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, calls)
}

func TestIterateIDsStopsOnCallbackError(t *testing.T) {
	repo, node := newTestRepo(t)
	seedOrgs(t, repo, node, 3)

	wantErr := errors.New("stop")
	calls := 0
	err := repo.IterateIDs(context.Background(), 10, func(snowflake.ID) error {
		calls++
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
}

func TestIsMember(t *testing.T) {
	repo, node := newTestRepo(t)
	orgID := seedOrgs(t, repo, node, 1)[0]
	userID := node.Generate()

	ok, err := repo.IsMember(context.Background(), orgID, userID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.AddMember(context.Background(), domain.OrganizationMember{
		ID:     node.Generate(),
		OrgID:  orgID,
		UserID: userID,
		Role:   domain.RoleMember,
	}))

	ok, err = repo.IsMember(context.Background(), orgID, userID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemberRole(t *testing.T) {
	repo, node := newTestRepo(t)
	orgID := seedOrgs(t, repo, node, 1)[0]
	userID := node.Generate()

	role, err := repo.MemberRole(context.Background(), orgID, userID)
	require.NoError(t, err)
	assert.Empty(t, role)

	require.NoError(t, repo.AddMember(context.Background(), domain.OrganizationMember{
		ID:     node.Generate(),
		OrgID:  orgID,
		UserID: userID,
		Role:   domain.RoleAdmin,
	}))

	role, err = repo.MemberRole(context.Background(), orgID, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)
}
