// Package option provides composable gorm query options used by repositories.
package option

import (
	"github.com/reachloop/reachloop/pkg/db/pagination"
	"gorm.io/gorm"
)

// QueryOption mutates a gorm statement before execution.
type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type queryOptionFunc func(*gorm.DB) *gorm.DB

func (f queryOptionFunc) Apply(db *gorm.DB) *gorm.DB {
	return f(db)
}

// WithLimit caps the number of returned rows.
func WithLimit(limit int) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	})
}

// ApplyPagination applies cursor pagination: newest first, keyset on
// (created_at, id), fetching one extra row so callers can detect has-more.
func ApplyPagination(p pagination.Pagination) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		size := p.PageSize
		if size <= 0 {
			size = 10
		}

		if p.PageToken != "" {
			cursor, err := pagination.DecodeCursor(p.PageToken)
			if err == nil && cursor != nil && cursor.ID != "" {
				if cursor.CreatedAt != "" {
					db = db.Where(
						"(created_at < ?) OR (created_at = ? AND id < ?)",
						cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
					)
				} else {
					db = db.Where("id < ?", cursor.ID)
				}
			}
		}

		return db.Order("created_at DESC, id DESC").Limit(size + 1)
	})
}

// QuerySortBy constrains caller-supplied sort fields to an allow list.
type QuerySortBy struct {
	Allow map[string]bool
	Field string
	Desc  bool
}

// WithSortBy orders by the requested field when allowed, otherwise leaves the
// statement untouched.
func WithSortBy(s QuerySortBy) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if s.Field == "" || !s.Allow[s.Field] {
			return db
		}
		order := s.Field
		if s.Desc {
			order += " DESC"
		}
		return db.Order(order)
	})
}
