package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

const (
	RoleOwner  = "OWNER"
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

// Guard gates access to an organization's aggregates.
type Guard interface {
	// EnsureMember returns ErrNotMember when userID has no membership in
	// orgID. It must be consulted before any tenant-scoped read is released.
	EnsureMember(ctx context.Context, orgID snowflake.ID, userID snowflake.ID) error
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidUser         = errors.New("invalid_user")
	ErrNotMember           = errors.New("not_a_member")
)
