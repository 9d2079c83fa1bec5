package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Platforms a campaign may target.
var Platforms = []string{"instagram", "tiktok", "youtube", "twitter", "facebook", "linkedin"}

// TargetIntake is one optional target row of a creation request.
type TargetIntake struct {
	Handle   string `json:"handle" validate:"required,min=1"`
	Platform string `json:"platform" validate:"required,platform"`
}

// CampaignIntake is the validated shape of a campaign-creation request.
// Optional bounds stay nil when absent so defaults are distinguishable
// from explicit zeroes.
type CampaignIntake struct {
	Name          string         `json:"name" validate:"required,min=2"`
	Objective     string         `json:"objective" validate:"required,min=4"`
	Platforms     []string       `json:"platforms" validate:"required,min=1,dive,platform"`
	Niches        []string       `json:"niches" validate:"required,min=1,dive,min=1"`
	BudgetCents   *int64         `json:"budget_cents,omitempty" validate:"omitempty,gte=0"`
	Currency      string         `json:"currency,omitempty" validate:"omitempty,len=3"`
	StartDate     *time.Time     `json:"start_date,omitempty"`
	EndDate       *time.Time     `json:"end_date,omitempty"`
	FollowerMin   *int64         `json:"follower_min,omitempty" validate:"omitempty,gte=0"`
	FollowerMax   *int64         `json:"follower_max,omitempty" validate:"omitempty,gte=0"`
	MinEngagement *float64       `json:"min_engagement,omitempty" validate:"omitempty,gte=0,lte=1"`
	Missing       []string       `json:"missing,omitempty"`
	Confirmed     *bool          `json:"confirmed,omitempty"`
	Targets       []TargetIntake `json:"targets,omitempty" validate:"omitempty,dive"`
}

// FieldViolation is one failed constraint on an intake field.
type FieldViolation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// IntakeError carries every violation found in a rejected payload.
type IntakeError struct {
	Violations []FieldViolation `json:"violations"`
}

func (e *IntakeError) Error() string {
	if len(e.Violations) == 0 {
		return "invalid_campaign_intake"
	}
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return "invalid_campaign_intake: " + strings.Join(fields, ", ")
}

var intakeValidator = newIntakeValidator()

func newIntakeValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		for _, p := range Platforms {
			if val == p {
				return true
			}
		}
		return false
	})
	return v
}

// Validate checks every declarative constraint plus the follower-range
// cross check and returns an *IntakeError listing all violations.
func (in *CampaignIntake) Validate() error {
	var violations []FieldViolation
	if err := intakeValidator.Struct(in); err != nil {
		var ferrs validator.ValidationErrors
		if !errors.As(err, &ferrs) {
			return err
		}
		for _, fe := range ferrs {
			violations = append(violations, FieldViolation{
				Field:   fieldPath(fe),
				Rule:    fe.Tag(),
				Message: violationMessage(fe),
			})
		}
	}
	if in.FollowerMin != nil && in.FollowerMax != nil && *in.FollowerMin > *in.FollowerMax {
		violations = append(violations, FieldViolation{
			Field:   "follower_min",
			Rule:    "lte_follower_max",
			Message: "follower_min must not exceed follower_max",
		})
	}
	if len(violations) > 0 {
		return &IntakeError{Violations: violations}
	}
	return nil
}

// Normalize fills request defaults in place. Call after Validate.
func (in *CampaignIntake) Normalize() {
	if in.Currency == "" {
		in.Currency = "USD"
	}
	if in.Missing == nil {
		in.Missing = []string{}
	}
	if in.Confirmed == nil {
		confirmed := false
		in.Confirmed = &confirmed
	}
}

// fieldPath converts validator's struct namespace (CampaignIntake.Platforms[1])
// into the request's json path (platforms[1]).
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	parts := strings.Split(ns, ".")
	for i, p := range parts {
		idx := ""
		if j := strings.Index(p, "["); j >= 0 {
			idx = p[j:]
			p = p[:j]
		}
		parts[i] = snakeCase(p) + idx
	}
	return strings.Join(parts, ".")
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "platform":
		return "must be one of: " + strings.Join(Platforms, ", ")
	default:
		return "is invalid"
	}
}
