package repository

import (
	"context"

	"storefront/internal/domain/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ReviewLedgerの保存先
type ReviewGormArchive struct {
	db *gorm.DB
}

func NewReviewGormArchive(db *gorm.DB) *ReviewGormArchive {
	return &ReviewGormArchive{db: db}
}

func (r *ReviewGormArchive) SaveReview(ctx context.Context, review model.Review) error {
	if err := r.db.WithContext(ctx).Create(&review).Error; err != nil {
		return errors.Wrapf(err, "insert review %d", review.ID)
	}
	return nil
}

func (r *ReviewGormArchive) ListReviews(ctx context.Context) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).Order("id asc").Find(&reviews).Error; err != nil {
		return nil, errors.Wrap(err, "load reviews")
	}
	return reviews, nil
}
