package usecase

import (
	"context"
	"log/slog"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type ReviewUsecase struct {
	reviews repo.ReviewRepository
	catalog repo.ProductFinder
	orders  repo.OrderRepository
	logger  *slog.Logger
}

func NewReviewUsecase(reviews repo.ReviewRepository, catalog repo.ProductFinder, orders repo.OrderRepository, logger *slog.Logger) *ReviewUsecase {
	return &ReviewUsecase{
		reviews: reviews,
		catalog: catalog,
		orders:  orders,
		logger:  logger,
	}
}

type CreateReviewInput struct {
	Rating  int
	Title   string
	Comment string
}

type ReviewListOutput struct {
	Items   []model.Review      `json:"items"`
	Summary model.ReviewSummary `json:"summary"`
}

// 購入済みなら verified_purchase=true
func (u *ReviewUsecase) CreateReview(ctx context.Context, userID, productID int64, in CreateReviewInput) (model.Review, error) {
	if userID <= 0 {
		return model.Review{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Rating < model.MinReviewRating || in.Rating > model.MaxReviewRating {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid rating")
	}

	if err := u.ensureProduct(ctx, productID); err != nil {
		return model.Review{}, err
	}

	verified, err := u.orders.HasPurchased(ctx, userID, productID)
	if err != nil {
		return model.Review{}, fromStoreError(ctx, u.logger, "check purchase", err,
			slog.Int64("user_id", userID), slog.Int64("product_id", productID))
	}

	draft, err := model.NewReview(model.ReviewInput{
		UserID:           userID,
		ProductID:        productID,
		Rating:           in.Rating,
		Title:            in.Title,
		Comment:          in.Comment,
		VerifiedPurchase: verified,
	})
	if err != nil {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}

	created, err := u.reviews.Create(ctx, draft)
	if err != nil {
		return model.Review{}, fromStoreError(ctx, u.logger, "create review", err,
			slog.Int64("user_id", userID), slog.Int64("product_id", productID))
	}
	return created, nil
}

// 一覧と集計をまとめて返す。集計は返す一覧から計算する
// レビューが無ければ（未知の商品でも）空の一覧
func (u *ReviewUsecase) ListReviews(ctx context.Context, productID int64) (ReviewListOutput, error) {
	if productID <= 0 {
		return ReviewListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	items, err := u.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return ReviewListOutput{}, fromStoreError(ctx, u.logger, "list reviews", err, slog.Int64("product_id", productID))
	}
	if items == nil {
		items = []model.Review{}
	}
	return ReviewListOutput{Items: items, Summary: model.SummarizeReviews(items)}, nil
}

func (u *ReviewUsecase) ensureProduct(ctx context.Context, productID int64) error {
	if _, err := u.catalog.GetProduct(ctx, productID); err != nil {
		return fromStoreError(ctx, u.logger, "get product", err, slog.Int64("product_id", productID))
	}
	return nil
}
