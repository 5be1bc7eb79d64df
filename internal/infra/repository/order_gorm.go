package repository

import (
	"context"

	"storefront/internal/domain/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// OrderLedgerの保存先
type OrderGormArchive struct {
	db *gorm.DB
}

func NewOrderGormArchive(db *gorm.DB) *OrderGormArchive {
	return &OrderGormArchive{db: db}
}

// 注文と明細を1トランザクションで保存
func (r *OrderGormArchive) SaveOrder(ctx context.Context, order model.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := order.Items
		order.Items = nil

		if err := tx.Create(&order).Error; err != nil {
			return errors.Wrapf(err, "insert order %d", order.ID)
		}

		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].ID = 0
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return errors.Wrapf(err, "insert items of order %d", order.ID)
		}
		return nil
	})
}

// 起動時の復元用。ID順
func (r *OrderGormArchive) ListOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Order("id asc").
		Find(&orders).Error
	if err != nil {
		return nil, errors.Wrap(err, "load orders")
	}
	return orders, nil
}
