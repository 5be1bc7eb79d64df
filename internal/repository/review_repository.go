package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 追記のみ。(product_id, user_id) は一意
type ReviewRepository interface {
	Create(ctx context.Context, review model.Review) (model.Review, error)
	// 新しい順
	ListByProduct(ctx context.Context, productID int64) ([]model.Review, error)
}

type ReviewArchive interface {
	SaveReview(ctx context.Context, review model.Review) error
	ListReviews(ctx context.Context) ([]model.Review, error)
}
