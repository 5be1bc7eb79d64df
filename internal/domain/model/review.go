package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

var ErrInvalidReview = errors.New("invalid review")

// (product_id, user_id) ごとに1件だけ
type Review struct {
	ID               int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	UserID           int64     `gorm:"not null;uniqueIndex:idx_reviews_product_user" json:"user_id"`
	ProductID        int64     `gorm:"not null;uniqueIndex:idx_reviews_product_user;index" json:"product_id"`
	Rating           int       `gorm:"not null" json:"rating"`
	Title            string    `gorm:"type:varchar(255)" json:"title"`
	Comment          string    `gorm:"type:text" json:"comment"`
	VerifiedPurchase bool      `gorm:"not null;default:false" json:"verified_purchase"`
	HelpfulVotes     int64     `gorm:"not null;default:0" json:"helpful_votes"`
	CreatedAt        time.Time `gorm:"not null;autoCreateTime:false" json:"created_at"`
}

type ReviewInput struct {
	UserID           int64
	ProductID        int64
	Rating           int
	Title            string
	Comment          string
	VerifiedPurchase bool
}

// NewReview は入力を検証してIDなしのReviewを作る。
func NewReview(in ReviewInput) (Review, error) {
	if in.UserID <= 0 {
		return Review{}, fmt.Errorf("%w: user_id must be positive", ErrInvalidReview)
	}
	if in.ProductID <= 0 {
		return Review{}, fmt.Errorf("%w: product_id must be positive", ErrInvalidReview)
	}
	if in.Rating < MinReviewRating || in.Rating > MaxReviewRating {
		return Review{}, fmt.Errorf("%w: rating must be %d-%d", ErrInvalidReview, MinReviewRating, MaxReviewRating)
	}
	return Review{
		UserID:           in.UserID,
		ProductID:        in.ProductID,
		Rating:           in.Rating,
		Title:            strings.TrimSpace(in.Title),
		Comment:          strings.TrimSpace(in.Comment),
		VerifiedPurchase: in.VerifiedPurchase,
	}, nil
}

// 商品ごとの集計
type ReviewSummary struct {
	Count         int     `json:"count"`
	AverageRating float64 `json:"average_rating"`
}

// 件数と平均評価（小数2桁）。空なら0
func SummarizeReviews(reviews []Review) ReviewSummary {
	if len(reviews) == 0 {
		return ReviewSummary{}
	}
	var sum int64
	for _, r := range reviews {
		sum += int64(r.Rating)
	}
	avg, _ := decimal.NewFromInt(sum).
		DivRound(decimal.NewFromInt(int64(len(reviews))), 2).
		Float64()
	return ReviewSummary{Count: len(reviews), AverageRating: avg}
}
