package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/reachloop/reachloop/internal/usage/domain"
)

func newTestRepo(t *testing.T) (domain.Repository, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.UsageLogRecord{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return NewRepository(db), node
}

func TestBatchInsertAndListByRun(t *testing.T) {
	repo, node := newTestRepo(t)
	orgID := node.Generate()
	recorded := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	records := []domain.UsageLogRecord{
		{ID: node.Generate(), OrgID: orgID, UserID: node.Generate(), Metric: "ai_tokens", Quantity: 500, RunID: "run-1", RecordedAt: recorded},
		{ID: node.Generate(), OrgID: orgID, UserID: node.Generate(), Metric: "ai_tokens", Quantity: 500, RunID: "run-1", RecordedAt: recorded},
		{ID: node.Generate(), OrgID: orgID, UserID: node.Generate(), Metric: "ai_tokens", Quantity: 123, RunID: "run-2", RecordedAt: recorded},
	}
	require.NoError(t, repo.BatchInsert(context.Background(), records))

	got, err := repo.ListByRun(context.Background(), "run-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, record := range got {
		assert.Equal(t, "run-1", record.RunID)
		assert.Equal(t, int64(500), record.Quantity)
	}
}

func TestBatchInsertEmptyIsNoop(t *testing.T) {
	repo, _ := newTestRepo(t)
	require.NoError(t, repo.BatchInsert(context.Background(), nil))
}
