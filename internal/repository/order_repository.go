package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type OrderCreator interface {
	Create(ctx context.Context, order model.Order) (model.Order, error)
}

// 追記のみ。IDは単調増加
type OrderRepository interface {
	OrderCreator
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// 新しい順
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	// レビューの購入済み判定
	HasPurchased(ctx context.Context, userID, productID int64) (bool, error)
}

// 永続化が必要な場合の保存先
type OrderArchive interface {
	SaveOrder(ctx context.Context, order model.Order) error
	ListOrders(ctx context.Context) ([]model.Order, error)
}
