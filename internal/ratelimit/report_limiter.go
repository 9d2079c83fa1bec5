package ratelimit

import (
	"context"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/reachloop/reachloop/internal/config"
)

const keyReport = "report:org:%s:user:%s"

// ReportLimiter throttles report reads per (org, user). Disabled limiter
// allows everything, so redis stays optional in development.
type ReportLimiter struct {
	enabled bool

	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewReportLimiter(cfg config.Config, client *redis.Client) *ReportLimiter {
	if !cfg.RateLimit.Enabled || client == nil {
		return nil
	}
	return &ReportLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		rate:    cfg.RateLimit.Rate,
		burst:   cfg.RateLimit.Burst,
	}
}

func (l *ReportLimiter) Enabled() bool {
	return l != nil && l.enabled
}

func (l *ReportLimiter) Allow(ctx context.Context, orgID, userID string) (Result, error) {
	if !l.Enabled() {
		return Result{Allowed: true}, nil
	}
	key := fmt.Sprintf(keyReport, strings.TrimSpace(orgID), strings.TrimSpace(userID))
	return l.bucket.Allow(ctx, key, l.rate, l.burst)
}
