package metering

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/reachloop/reachloop/internal/authorization"
	"github.com/reachloop/reachloop/internal/clock"
	"github.com/reachloop/reachloop/internal/config"
	"github.com/reachloop/reachloop/internal/observability/metrics"
	"github.com/reachloop/reachloop/internal/ratelimit"
	"github.com/reachloop/reachloop/internal/usage/domain"
)

const (
	lockKey     = "metering:pass"
	systemActor = "system"
)

// OwnerScanner yields the distinct campaign owners of one organization.
// Satisfied by the campaign repository.
type OwnerScanner interface {
	DistinctOwnerIDs(ctx context.Context, orgID snowflake.ID) ([]snowflake.ID, error)
}

// TenantIterator walks every organization id. Satisfied by the
// organization repository.
type TenantIterator interface {
	IterateIDs(ctx context.Context, batchSize int, fn func(snowflake.ID) error) error
}

// Summary reports what one pass did.
type Summary struct {
	RunID        string
	Tenants      int
	TenantErrors int
	Records      int
}

type WorkerParams struct {
	fx.In

	Log     *zap.Logger
	Config  config.Config
	GenID   *snowflake.Node
	Clock   clock.Clock
	Tenants TenantIterator
	Owners  OwnerScanner
	Usage   domain.Repository
	Authz   authorization.Service
	Metrics *metrics.MeteringMetrics `optional:"true"`
	Locker  *ratelimit.Locker        `optional:"true"`
}

// Worker runs the metering pass: one usage record per distinct campaign
// owner per organization, all records of a pass sharing one run.
type Worker struct {
	log     *zap.Logger
	cfg     config.MeteringConfig
	genID   *snowflake.Node
	clock   clock.Clock
	tenants TenantIterator
	owners  OwnerScanner
	usage   domain.Repository
	authz   authorization.Service
	metrics *metrics.MeteringMetrics
	locker  *ratelimit.Locker
	draw    func() float64
}

func NewWorker(p WorkerParams) *Worker {
	return &Worker{
		log:     p.Log.Named("metering.worker"),
		cfg:     p.Config.Metering,
		genID:   p.GenID,
		clock:   p.Clock,
		tenants: p.Tenants,
		owners:  p.Owners,
		usage:   p.Usage,
		authz:   p.Authz,
		metrics: p.Metrics,
		locker:  p.Locker,
		draw:    DefaultDraw,
	}
}

// WithDraw overrides the quantity sampler. Used by tests to fix the draw.
func (w *Worker) WithDraw(draw func() float64) *Worker {
	w.draw = draw
	return w
}

// RunOnce executes a single metering pass. A tenant that fails to scan or
// write is logged and skipped; it never aborts the rest of the pass.
func (w *Worker) RunOnce(ctx context.Context) (Summary, error) {
	if w.locker != nil {
		token, ok, err := w.locker.TryLock(ctx, lockKey, w.cfg.LockTTL)
		if err != nil {
			return Summary{}, err
		}
		if !ok {
			w.log.Info("metering pass already running elsewhere, skipping")
			return Summary{}, nil
		}
		defer func() {
			if err := w.locker.Release(context.WithoutCancel(ctx), lockKey, token); err != nil {
				w.log.Warn("failed to release metering lock", zap.Error(err))
			}
		}()
	}

	start := w.clock.Now()
	run := NewRun(start, w.draw, w.cfg.QuantityScale)
	summary := Summary{RunID: run.ID}

	err := w.tenants.IterateIDs(ctx, w.cfg.TenantBatch, func(orgID snowflake.ID) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		summary.Tenants++
		if w.metrics != nil {
			w.metrics.IncTenant()
		}

		if err := w.meterTenant(ctx, orgID, run, &summary); err != nil {
			summary.TenantErrors++
			if w.metrics != nil {
				w.metrics.IncTenantError()
			}
			w.log.Error("metering tenant failed",
				zap.String("run_id", run.ID),
				zap.String("org_id", orgID.String()),
				zap.Error(err),
			)
		}
		return nil
	})
	if err != nil {
		return summary, err
	}

	if w.metrics != nil {
		w.metrics.ObservePass(w.clock.Now().Sub(start))
	}
	w.log.Info("metering pass complete",
		zap.String("run_id", run.ID),
		zap.Int("tenants", summary.Tenants),
		zap.Int("tenant_errors", summary.TenantErrors),
		zap.Int("records", summary.Records),
	)
	return summary, nil
}

func (w *Worker) meterTenant(ctx context.Context, orgID snowflake.ID, run Run, summary *Summary) error {
	if err := w.authz.Authorize(ctx, systemActor, orgID.String(), authorization.ObjectUsage, authorization.ActionUsageMeter); err != nil {
		return err
	}

	owners, err := w.owners.DistinctOwnerIDs(ctx, orgID)
	if err != nil {
		return err
	}

	records := Meter(w.genID, orgID, owners, run, w.cfg.Metric)
	if len(records) == 0 {
		return nil
	}
	if err := w.usage.BatchInsert(ctx, records); err != nil {
		return err
	}

	summary.Records += len(records)
	if w.metrics != nil {
		w.metrics.AddRecords(len(records))
	}
	return nil
}

// Start runs the pass on the configured interval until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runCtx, cancel := context.WithTimeout(ctx, w.cfg.RunTimeout)
			if _, err := w.RunOnce(runCtx); err != nil {
				w.log.Error("scheduled metering pass failed", zap.Error(err))
			}
			cancel()
		}
	}
}
