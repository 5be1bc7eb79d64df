package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CartRepository interface {
	// 無ければ空のカート（保存はしない）
	GetCart(ctx context.Context, userID int64) (model.Cart, error)
	// 同一商品は数量を加算
	AddItem(ctx context.Context, userID, productID, quantity int64) (model.Cart, error)
	// 数量を置き換える
	UpdateQuantity(ctx context.Context, userID, productID, quantity int64) (model.Cart, error)
	// 無い明細の削除はエラーにしない
	RemoveItem(ctx context.Context, userID, productID int64) (model.Cart, error)
	// 注文を作成してからカートを空にする
	Checkout(ctx context.Context, userID int64, catalog ProductFinder, orders OrderCreator) (model.Order, error)
}
