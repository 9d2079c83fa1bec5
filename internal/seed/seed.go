// Package seed bootstraps the default organization so a fresh install has
// a tenant to work in.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	organizationdomain "github.com/reachloop/reachloop/internal/organization/domain"
	"github.com/reachloop/reachloop/pkg/db"
)

const (
	defaultOrgName = "Main"
	defaultOrgSlug = "main"
)

// EnsureMainOrg seeds the default organization for startup bootstrap.
func EnsureMainOrg(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ensureMainOrgTx(ctx, tx, node.Generate())
		return err
	})
}

// EnsureMainOrgWithID pins the default organization to a fixed id, used
// when other systems reference the tenant by a known identifier.
func EnsureMainOrgWithID(db *gorm.DB, id int64) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if id == 0 {
		return errors.New("seed organization id is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ensureMainOrgTx(ctx, tx, snowflake.ID(id))
		return err
	})
}

func ensureMainOrgTx(ctx context.Context, tx *gorm.DB, id snowflake.ID) (organizationdomain.Organization, error) {
	var org organizationdomain.Organization
	err := tx.WithContext(ctx).
		Where("slug = ?", defaultOrgSlug).
		First(&org).Error
	if err == nil {
		return org, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return organizationdomain.Organization{}, err
	}

	now := time.Now().UTC()
	org = organizationdomain.Organization{
		ID:        id,
		Name:      defaultOrgName,
		Slug:      defaultOrgSlug,
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&org).Error; err != nil {
		// Two instances bootstrapping at once race on the slug index; the
		// loser reads the winner's row.
		if db.IsDuplicateKeyErr(err) {
			var existing organizationdomain.Organization
			if ferr := tx.WithContext(ctx).
				Where("slug = ?", defaultOrgSlug).
				First(&existing).Error; ferr == nil {
				return existing, nil
			}
		}
		return organizationdomain.Organization{}, err
	}
	return org, nil
}
