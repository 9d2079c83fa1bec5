// Package repository provides a generic gorm-backed store shared by the
// feature repositories.
package repository

import (
	"context"

	"github.com/reachloop/reachloop/pkg/db/option"
	"gorm.io/gorm"
)

// Repository is the generic persistence contract for a single model type.
type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error)
	FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error)
	Create(ctx context.Context, resource *T) error
	BatchCreate(ctx context.Context, resources []*T) error
	Count(ctx context.Context, query *T) (int64, error)
	Delete(ctx context.Context, resourceID string) error
}
