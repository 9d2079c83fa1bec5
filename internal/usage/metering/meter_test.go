package metering

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

func TestNewRunSamplesOnce(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	run := NewRun(now, func() float64 { return 0.5 }, 1000)
	assert.Equal(t, int64(500), run.Quantity)
	assert.Equal(t, now, run.At)
	assert.NotEmpty(t, run.ID)
}

func TestNewRunQuantityBounds(t *testing.T) {
	now := time.Now()

	low := NewRun(now, func() float64 { return 0 }, 1000)
	assert.Equal(t, int64(0), low.Quantity)

	high := NewRun(now, func() float64 { return 0.9999999 }, 1000)
	assert.Equal(t, int64(999), high.Quantity)
}

func TestNewRunDistinctIDs(t *testing.T) {
	now := time.Now()
	a := NewRun(now, DefaultDraw, 1000)
	b := NewRun(now, DefaultDraw, 1000)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestMeterOneRecordPerDistinctOwner(t *testing.T) {
	node := testNode(t)
	orgID := node.Generate()
	ownerA := node.Generate()
	ownerB := node.Generate()

	run := NewRun(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), func() float64 { return 0.25 }, 1000)
	records := Meter(node, orgID, []snowflake.ID{ownerA, ownerB, ownerA}, run, "ai_tokens")

	require.Len(t, records, 2)
	assert.Equal(t, ownerA, records[0].UserID)
	assert.Equal(t, ownerB, records[1].UserID)
	for _, record := range records {
		assert.Equal(t, orgID, record.OrgID)
		assert.Equal(t, "ai_tokens", record.Metric)
		assert.Equal(t, run.Quantity, record.Quantity)
		assert.Equal(t, run.At, record.RecordedAt)
		assert.Equal(t, run.ID, record.RunID)
	}
}

func TestMeterNoOwnersNoRecords(t *testing.T) {
	node := testNode(t)
	run := NewRun(time.Now(), DefaultDraw, 1000)

	assert.Nil(t, Meter(node, node.Generate(), nil, run, "ai_tokens"))
	assert.Nil(t, Meter(node, node.Generate(), []snowflake.ID{}, run, "ai_tokens"))
}

func TestMeterSkipsZeroOwner(t *testing.T) {
	node := testNode(t)
	owner := node.Generate()
	run := NewRun(time.Now(), DefaultDraw, 1000)

	records := Meter(node, node.Generate(), []snowflake.ID{0, owner}, run, "ai_tokens")
	require.Len(t, records, 1)
	assert.Equal(t, owner, records[0].UserID)
}
