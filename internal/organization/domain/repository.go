package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrganization(ctx context.Context, org Organization) error
	AddMember(ctx context.Context, member OrganizationMember) error
	GetByID(ctx context.Context, orgID snowflake.ID) (*Organization, error)
	IsMember(ctx context.Context, orgID snowflake.ID, userID snowflake.ID) (bool, error)
	MemberRole(ctx context.Context, orgID snowflake.ID, userID snowflake.ID) (string, error)

	// IterateIDs walks every organization id in ascending order, reading the
	// store in batches of batchSize. Each invocation starts a fresh scan.
	// Returning an error from fn stops the walk.
	IterateIDs(ctx context.Context, batchSize int, fn func(snowflake.ID) error) error
}
