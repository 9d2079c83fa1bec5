package cache

import (
	"strings"
	"time"
)

const defaultMembershipTTL = 30 * time.Second

// MembershipCache stores recent membership-check results for the report path.
// Only positive results are cached so a revoked membership is never served
// longer than the TTL and a just-granted one is visible immediately.
type MembershipCache interface {
	GetMember(orgID, userID string) (bool, bool)
	SetMember(orgID, userID string, member bool)
}

type membershipCache struct {
	members Cache[string, bool]
	ttl     time.Duration
}

func NewMembershipCache() MembershipCache {
	return &membershipCache{
		members: NewTTLCache[string, bool](),
		ttl:     defaultMembershipTTL,
	}
}

func (c *membershipCache) GetMember(orgID, userID string) (bool, bool) {
	return c.members.Get(cacheKey(orgID, userID))
}

func (c *membershipCache) SetMember(orgID, userID string, member bool) {
	if !member {
		return
	}
	c.members.Set(cacheKey(orgID, userID), member, c.ttl)
}

func cacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}
