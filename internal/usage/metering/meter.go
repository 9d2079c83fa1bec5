package metering

import (
	"github.com/bwmarrin/snowflake"

	"github.com/reachloop/reachloop/internal/usage/domain"
)

// Meter builds the usage records for one organization in one run: exactly
// one record per distinct owner, all carrying the run's quantity and
// timestamp. No owners means no records.
func Meter(genID *snowflake.Node, orgID snowflake.ID, owners []snowflake.ID, run Run, metric string) []domain.UsageLogRecord {
	if len(owners) == 0 {
		return nil
	}

	seen := make(map[snowflake.ID]struct{}, len(owners))
	records := make([]domain.UsageLogRecord, 0, len(owners))
	for _, owner := range owners {
		if owner == 0 {
			continue
		}
		if _, ok := seen[owner]; ok {
			continue
		}
		seen[owner] = struct{}{}

		records = append(records, domain.UsageLogRecord{
			ID:         genID.Generate(),
			OrgID:      orgID,
			UserID:     owner,
			Metric:     metric,
			Quantity:   run.Quantity,
			RunID:      run.ID,
			RecordedAt: run.At,
		})
	}
	return records
}
