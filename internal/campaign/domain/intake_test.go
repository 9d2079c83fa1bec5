package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validIntake() CampaignIntake {
	return CampaignIntake{
		Name:      "Spring Launch",
		Objective: "awareness",
		Platforms: []string{"instagram", "tiktok"},
		Niches:    []string{"fitness"},
	}
}

func violationsOf(t *testing.T, err error) []FieldViolation {
	t.Helper()
	var intakeErr *IntakeError
	require.True(t, errors.As(err, &intakeErr), "expected IntakeError, got %v", err)
	return intakeErr.Violations
}

func hasViolation(violations []FieldViolation, field string) bool {
	for _, v := range violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

func TestIntakeValidMinimalPayload(t *testing.T) {
	in := validIntake()
	require.NoError(t, in.Validate())

	in.Normalize()
	assert.Equal(t, "USD", in.Currency)
	require.NotNil(t, in.Confirmed)
	assert.False(t, *in.Confirmed)
	require.NotNil(t, in.Missing)
	assert.Empty(t, in.Missing)
}

func TestIntakeNormalizeKeepsExplicitValues(t *testing.T) {
	confirmed := true
	in := validIntake()
	in.Currency = "EUR"
	in.Confirmed = &confirmed
	in.Missing = []string{"budget_cents"}
	require.NoError(t, in.Validate())

	in.Normalize()
	assert.Equal(t, "EUR", in.Currency)
	assert.True(t, *in.Confirmed)
	assert.Equal(t, []string{"budget_cents"}, in.Missing)
}

func TestIntakeRejectsEmptyPlatforms(t *testing.T) {
	in := validIntake()
	in.Platforms = []string{}

	violations := violationsOf(t, in.Validate())
	assert.True(t, hasViolation(violations, "platforms"))
}

func TestIntakeRejectsUnknownPlatform(t *testing.T) {
	in := validIntake()
	in.Platforms = []string{"instagram", "myspace"}

	violations := violationsOf(t, in.Validate())
	assert.True(t, hasViolation(violations, "platforms[1]"))
}

func TestIntakeRejectsShortName(t *testing.T) {
	in := validIntake()
	in.Name = "A"

	violations := violationsOf(t, in.Validate())
	assert.True(t, hasViolation(violations, "name"))
}

func TestIntakeRejectsShortObjective(t *testing.T) {
	in := validIntake()
	in.Objective = "hi"

	violations := violationsOf(t, in.Validate())
	assert.True(t, hasViolation(violations, "objective"))
}

func TestIntakeRejectsEngagementAboveOne(t *testing.T) {
	engagement := 1.5
	in := validIntake()
	in.MinEngagement = &engagement

	violations := violationsOf(t, in.Validate())
	assert.True(t, hasViolation(violations, "min_engagement"))
}

func TestIntakeRejectsInvertedFollowerRange(t *testing.T) {
	min := int64(50_000)
	max := int64(1_000)
	in := validIntake()
	in.FollowerMin = &min
	in.FollowerMax = &max

	violations := violationsOf(t, in.Validate())
	assert.True(t, hasViolation(violations, "follower_min"))
}

func TestIntakeAllowsEqualFollowerBounds(t *testing.T) {
	bound := int64(10_000)
	in := validIntake()
	in.FollowerMin = &bound
	in.FollowerMax = &bound

	assert.NoError(t, in.Validate())
}

func TestIntakeCollectsAllViolations(t *testing.T) {
	in := CampaignIntake{
		Name:      "X",
		Objective: "ok",
		Platforms: []string{},
		Niches:    []string{},
	}

	violations := violationsOf(t, in.Validate())
	assert.True(t, hasViolation(violations, "name"))
	assert.True(t, hasViolation(violations, "objective"))
	assert.True(t, hasViolation(violations, "platforms"))
	assert.True(t, hasViolation(violations, "niches"))
}

func TestIntakeRejectsNegativeBudget(t *testing.T) {
	budget := int64(-1)
	in := validIntake()
	in.BudgetCents = &budget

	violations := violationsOf(t, in.Validate())
	assert.True(t, hasViolation(violations, "budget_cents"))
}

func TestIntakeValidatesTargetRows(t *testing.T) {
	in := validIntake()
	in.Targets = []TargetIntake{
		{Handle: "creator_one", Platform: "instagram"},
		{Handle: "", Platform: "geocities"},
	}

	violations := violationsOf(t, in.Validate())
	assert.True(t, hasViolation(violations, "targets[1].handle"))
	assert.True(t, hasViolation(violations, "targets[1].platform"))
}
