package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/reachloop/reachloop/internal/usage/domain"
	"github.com/reachloop/reachloop/pkg/db/option"
	store "github.com/reachloop/reachloop/pkg/repository"
)

// listByRunCap bounds a single run listing; a pass writes at most one record
// per campaign owner, so this is generous.
const listByRunCap = 10000

type repository struct {
	records store.Repository[domain.UsageLogRecord]
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{records: store.ProvideStore[domain.UsageLogRecord](db)}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{records: r.records.WithTrx(tx)}
}

func (r *repository) BatchInsert(ctx context.Context, records []domain.UsageLogRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]*domain.UsageLogRecord, 0, len(records))
	for i := range records {
		rows = append(rows, &records[i])
	}
	return r.records.BatchCreate(ctx, rows)
}

func (r *repository) ListByRun(ctx context.Context, runID string) ([]domain.UsageLogRecord, error) {
	rows, err := r.records.Find(ctx, &domain.UsageLogRecord{RunID: runID},
		option.WithSortBy(option.QuerySortBy{Allow: map[string]bool{"recorded_at": true}, Field: "recorded_at"}),
		option.WithLimit(listByRunCap),
	)
	if err != nil {
		return nil, err
	}
	records := make([]domain.UsageLogRecord, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		records = append(records, *row)
	}
	return records, nil
}
