package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/reachloop/reachloop/internal/campaign/domain"
	campaignrepository "github.com/reachloop/reachloop/internal/campaign/repository"
	"github.com/reachloop/reachloop/internal/clock"
	organizationdomain "github.com/reachloop/reachloop/internal/organization/domain"
	profiledomain "github.com/reachloop/reachloop/internal/profile/domain"
	profilerepository "github.com/reachloop/reachloop/internal/profile/repository"
)

type stubGuard struct {
	err error
}

func (g *stubGuard) EnsureMember(context.Context, snowflake.ID, snowflake.ID) error {
	return g.err
}

type stubAuthz struct {
	err error
}

func (a *stubAuthz) Authorize(context.Context, string, string, string, string) error {
	return a.err
}

type recordingUsageWriter struct {
	calls []snowflake.ID
	err   error
}

func (w *recordingUsageWriter) IncrementCampaignsCreated(_ context.Context, userID snowflake.ID) error {
	if w.err != nil {
		return w.err
	}
	w.calls = append(w.calls, userID)
	return nil
}

type fixture struct {
	db     *gorm.DB
	svc    domain.Service
	writer *recordingUsageWriter
	guard  *stubGuard
	node   *snowflake.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Campaign{},
		&domain.CampaignTarget{},
		&profiledomain.Profile{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	writer := &recordingUsageWriter{}
	guard := &stubGuard{}

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       clock.NewFakeClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)),
		Repo:        campaignrepository.NewRepository(db),
		Profiles:    profilerepository.NewRepository(db),
		Guard:       guard,
		Authz:       &stubAuthz{},
		UsageWriter: writer,
	})

	return &fixture{db: db, svc: svc, writer: writer, guard: guard, node: node}
}

func validIntake() domain.CampaignIntake {
	return domain.CampaignIntake{
		Name:      "Spring Launch",
		Objective: "awareness",
		Platforms: []string{"instagram"},
		Niches:    []string{"fitness"},
	}
}

func (f *fixture) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(model).Count(&count).Error)
	return count
}

func TestCreateCampaignFlow(t *testing.T) {
	f := newFixture(t)
	orgID := f.node.Generate()
	userID := f.node.Generate()

	intake := validIntake()
	intake.Targets = []domain.TargetIntake{
		{Handle: "creator_one", Platform: "instagram"},
		{Handle: "creator_two", Platform: "instagram"},
	}

	campaign, err := f.svc.Create(context.Background(), domain.CreateRequest{
		OrgID:  orgID,
		UserID: userID,
		Intake: intake,
	})
	require.NoError(t, err)
	require.NotNil(t, campaign)

	assert.Equal(t, orgID, campaign.OrgID)
	assert.Equal(t, "spring-launch", campaign.Slug)
	assert.Equal(t, "USD", campaign.Currency)
	assert.False(t, campaign.Confirmed)

	var profile profiledomain.Profile
	require.NoError(t, f.db.Where("user_id = ?", userID).First(&profile).Error)

	assert.Equal(t, int64(1), f.countRows(t, &domain.Campaign{}))
	assert.Equal(t, int64(2), f.countRows(t, &domain.CampaignTarget{}))
	assert.Equal(t, []snowflake.ID{userID}, f.writer.calls)
}

func TestCreateCampaignWithoutTargets(t *testing.T) {
	f := newFixture(t)

	campaign, err := f.svc.Create(context.Background(), domain.CreateRequest{
		OrgID:  f.node.Generate(),
		UserID: f.node.Generate(),
		Intake: validIntake(),
	})
	require.NoError(t, err)
	require.NotNil(t, campaign)

	assert.Equal(t, int64(0), f.countRows(t, &domain.CampaignTarget{}))
}

func TestCreateCampaignMissingUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), domain.CreateRequest{
		OrgID:  f.node.Generate(),
		Intake: validIntake(),
	})
	require.ErrorIs(t, err, organizationdomain.ErrInvalidUser)

	assert.Equal(t, int64(0), f.countRows(t, &domain.Campaign{}))
	assert.Equal(t, int64(0), f.countRows(t, &profiledomain.Profile{}))
	assert.Empty(t, f.writer.calls)
}

func TestCreateCampaignNonMember(t *testing.T) {
	f := newFixture(t)
	f.guard.err = organizationdomain.ErrNotMember

	_, err := f.svc.Create(context.Background(), domain.CreateRequest{
		OrgID:  f.node.Generate(),
		UserID: f.node.Generate(),
		Intake: validIntake(),
	})
	require.ErrorIs(t, err, organizationdomain.ErrNotMember)

	assert.Equal(t, int64(0), f.countRows(t, &domain.Campaign{}))
	assert.Empty(t, f.writer.calls)
}

func TestCreateCampaignInvalidIntake(t *testing.T) {
	f := newFixture(t)

	intake := validIntake()
	intake.Platforms = nil

	_, err := f.svc.Create(context.Background(), domain.CreateRequest{
		OrgID:  f.node.Generate(),
		UserID: f.node.Generate(),
		Intake: intake,
	})

	var intakeErr *domain.IntakeError
	require.True(t, errors.As(err, &intakeErr))
	assert.Equal(t, int64(0), f.countRows(t, &domain.Campaign{}))
	assert.Empty(t, f.writer.calls)
}

func TestCreateCampaignUsageWriteFailureSurfaces(t *testing.T) {
	f := newFixture(t)
	f.writer.err = errors.New("billing unavailable")

	_, err := f.svc.Create(context.Background(), domain.CreateRequest{
		OrgID:  f.node.Generate(),
		UserID: f.node.Generate(),
		Intake: validIntake(),
	})
	require.Error(t, err)
}

func TestCreateCampaignProfileReused(t *testing.T) {
	f := newFixture(t)
	orgID := f.node.Generate()
	userID := f.node.Generate()

	for range 2 {
		_, err := f.svc.Create(context.Background(), domain.CreateRequest{
			OrgID:  orgID,
			UserID: userID,
			Intake: validIntake(),
		})
		require.NoError(t, err)
	}

	assert.Equal(t, int64(1), f.countRows(t, &profiledomain.Profile{}))
	assert.Equal(t, int64(2), f.countRows(t, &domain.Campaign{}))
}
