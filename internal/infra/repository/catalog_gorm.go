package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// categories / products テーブルからカタログを読む
type CatalogGormSource struct {
	db *gorm.DB
}

// DI
func NewCatalogGormSource(db *gorm.DB) *CatalogGormSource {
	return &CatalogGormSource{db: db}
}

// 非公開も含めて全件をID順で読む（絞り込みはCatalogStore側）
func (r *CatalogGormSource) ReadSnapshot(ctx context.Context) (repo.CatalogSnapshot, error) {
	var snap repo.CatalogSnapshot

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("id asc").Find(&snap.Categories).Error; err != nil {
			return errors.Wrap(err, "load categories")
		}
		if err := tx.Order("id asc").Find(&snap.Products).Error; err != nil {
			return errors.Wrap(err, "load products")
		}
		return nil
	})
	if err != nil {
		return repo.CatalogSnapshot{}, err
	}

	if snap.Categories == nil {
		snap.Categories = []model.Category{}
	}
	if snap.Products == nil {
		snap.Products = []model.Product{}
	}
	return snap, nil
}
