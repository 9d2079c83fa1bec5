package authorization

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/casbin/casbin/v2"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	organizationdomain "github.com/reachloop/reachloop/internal/organization/domain"
)

type authzFixture struct {
	svc      Service
	db       *gorm.DB
	enforcer *casbin.SyncedEnforcer
	node     *snowflake.Node
}

func newFixture(t *testing.T) *authzFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&organizationdomain.OrganizationMember{}))

	enforcer, err := NewEnforcer(db)
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return &authzFixture{
		svc:      NewService(Params{DB: db, Log: zap.NewNop(), Enforcer: enforcer}),
		db:       db,
		enforcer: enforcer,
		node:     node,
	}
}

func (f *authzFixture) addMember(t *testing.T, orgID, userID snowflake.ID, role string) {
	t.Helper()
	require.NoError(t, f.db.Create(&organizationdomain.OrganizationMember{
		ID:     f.node.Generate(),
		OrgID:  orgID,
		UserID: userID,
		Role:   role,
	}).Error)
}

func TestAuthorizeMemberAllowed(t *testing.T) {
	f := newFixture(t)
	orgID := f.node.Generate()
	userID := f.node.Generate()
	f.addMember(t, orgID, userID, organizationdomain.RoleMember)

	ctx := context.Background()
	actor := "user:" + userID.String()
	require.NoError(t, f.svc.Authorize(ctx, actor, orgID.String(), ObjectCampaign, ActionCampaignCreate))
	require.NoError(t, f.svc.Authorize(ctx, actor, orgID.String(), ObjectReport, ActionReportView))
}

func TestAuthorizeNonMemberDenied(t *testing.T) {
	f := newFixture(t)
	orgID := f.node.Generate()
	outsider := f.node.Generate()

	err := f.svc.Authorize(context.Background(), "user:"+outsider.String(), orgID.String(), ObjectReport, ActionReportView)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorizeMemberDeniedOutsideOwnOrg(t *testing.T) {
	f := newFixture(t)
	homeOrg := f.node.Generate()
	otherOrg := f.node.Generate()
	userID := f.node.Generate()
	f.addMember(t, homeOrg, userID, organizationdomain.RoleAdmin)

	err := f.svc.Authorize(context.Background(), "user:"+userID.String(), otherOrg.String(), ObjectCampaign, ActionCampaignView)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorizeInvalidActor(t *testing.T) {
	f := newFixture(t)
	orgID := f.node.Generate()

	for _, actor := range []string{"", "bogus", "user:", "user:not-a-number"} {
		err := f.svc.Authorize(context.Background(), actor, orgID.String(), ObjectCampaign, ActionCampaignView)
		assert.ErrorIs(t, err, ErrInvalidActor, "actor %q", actor)
	}
}

func TestAuthorizeEmptyArguments(t *testing.T) {
	f := newFixture(t)
	orgID := f.node.Generate()
	userID := f.node.Generate()
	actor := "user:" + userID.String()
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.Authorize(ctx, actor, "", ObjectCampaign, ActionCampaignView), ErrInvalidOrganization)
	assert.ErrorIs(t, f.svc.Authorize(ctx, actor, orgID.String(), "", ActionCampaignView), ErrInvalidObject)
	assert.ErrorIs(t, f.svc.Authorize(ctx, actor, orgID.String(), ObjectCampaign, " "), ErrInvalidAction)
}

func TestAuthorizeSystemActorMetersUsage(t *testing.T) {
	f := newFixture(t)
	orgID := f.node.Generate()
	ctx := context.Background()

	require.NoError(t, f.svc.Authorize(ctx, "system", orgID.String(), ObjectUsage, ActionUsageMeter))

	err := f.svc.Authorize(ctx, "system", orgID.String(), ObjectCampaign, ActionCampaignCreate)
	assert.ErrorIs(t, err, ErrForbidden, "system actor must hold the metering grant only")
}

func TestAuthorizeRoleChangeReplacesGrouping(t *testing.T) {
	f := newFixture(t)
	orgID := f.node.Generate()
	userID := f.node.Generate()
	f.addMember(t, orgID, userID, organizationdomain.RoleMember)

	ctx := context.Background()
	actor := "user:" + userID.String()
	require.NoError(t, f.svc.Authorize(ctx, actor, orgID.String(), ObjectCampaign, ActionCampaignView))

	err := f.db.Model(&organizationdomain.OrganizationMember{}).
		Where("org_id = ? AND user_id = ?", orgID, userID).
		Update("role", organizationdomain.RoleAdmin).Error
	require.NoError(t, err)

	require.NoError(t, f.svc.Authorize(ctx, actor, orgID.String(), ObjectCampaign, ActionCampaignView))

	domain := "org:" + orgID.String()
	hasOld, err := f.enforcer.HasGroupingPolicy(actor, "role:member", domain)
	require.NoError(t, err)
	assert.False(t, hasOld, "demoted role link must not linger")
	hasNew, err := f.enforcer.HasGroupingPolicy(actor, "role:admin", domain)
	require.NoError(t, err)
	assert.True(t, hasNew)
}
