// Package rls scopes a postgres transaction to one tenant via row-level
// security. Other dialects have no RLS policies, so scoping is a no-op.
package rls

import (
	"fmt"

	"gorm.io/gorm"
)

// WithTenant pins the transaction to the given org for RLS policies.
// Uses set_config because SET LOCAL rejects bind parameters.
func WithTenant(tx *gorm.DB, tenantID int64) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec(
		"SELECT set_config('app.current_org_id', ?, true)",
		fmt.Sprintf("%d", tenantID),
	).Error
}
