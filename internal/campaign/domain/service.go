package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"

	"github.com/reachloop/reachloop/pkg/db/pagination"
)

var (
	ErrCampaignNotFound = errors.New("campaign_not_found")
	ErrInvalidCampaign  = errors.New("invalid_campaign")
)

// CreateRequest is the resolved input of the creation flow: an
// authenticated principal plus a validated intake payload.
type CreateRequest struct {
	OrgID  snowflake.ID
	UserID snowflake.ID
	Intake CampaignIntake
}

// ListRequest pages through an organization's campaigns.
type ListRequest struct {
	OrgID  snowflake.ID
	UserID snowflake.ID
	pagination.Pagination
}

type ListResponse struct {
	Campaigns []Campaign          `json:"campaigns"`
	PageInfo  pagination.PageInfo `json:"page_info"`
}

// Service runs the campaign-creation flow and read paths.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Campaign, error)
	Get(ctx context.Context, orgID, userID, id snowflake.ID) (*Campaign, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
}
