package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type reviewKey struct {
	productID int64
	userID    int64
}

// ReviewLedger は追記のみのレビュー台帳。
// 重複チェックと追記は mu の中で行う。
type ReviewLedger struct {
	mu        sync.Mutex
	lastID    int64
	reviews   []model.Review
	byProduct map[int64][]int
	pairs     map[reviewKey]int64
	clock     repo.Clock
	archive   repo.ReviewArchive
}

func NewReviewLedger(clock repo.Clock, archive repo.ReviewArchive) *ReviewLedger {
	if clock == nil {
		clock = repo.SystemClock
	}
	return &ReviewLedger{
		byProduct: make(map[int64][]int),
		pairs:     make(map[reviewKey]int64),
		clock:     clock,
		archive:   archive,
	}
}

// 起動時に保存済みレビューを読み込む
func (l *ReviewLedger) Restore(reviews []model.Review) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	seen := make(map[int64]struct{}, len(reviews))
	for _, r := range reviews {
		if r.ID <= 0 {
			return fmt.Errorf("%w: restored review id must be positive", repo.ErrInvalidArgument)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("%w: duplicate restored review id %d", repo.ErrInvalidArgument, r.ID)
		}
		key := reviewKey{productID: r.ProductID, userID: r.UserID}
		if _, dup := l.pairs[key]; dup {
			return fmt.Errorf("product %d user %d: %w", r.ProductID, r.UserID, repo.ErrDuplicateReview)
		}
		seen[r.ID] = struct{}{}
		l.appendLocked(r)
		if r.ID > l.lastID {
			l.lastID = r.ID
		}
	}
	return nil
}

func (l *ReviewLedger) appendLocked(r model.Review) {
	l.pairs[reviewKey{productID: r.ProductID, userID: r.UserID}] = r.ID
	l.byProduct[r.ProductID] = append(l.byProduct[r.ProductID], len(l.reviews))
	l.reviews = append(l.reviews, r)
}

func (l *ReviewLedger) Create(ctx context.Context, review model.Review) (model.Review, error) {
	//IDや日時以外の項目は検証し直す
	r, err := model.NewReview(model.ReviewInput{
		UserID:           review.UserID,
		ProductID:        review.ProductID,
		Rating:           review.Rating,
		Title:            review.Title,
		Comment:          review.Comment,
		VerifiedPurchase: review.VerifiedPurchase,
	})
	if err != nil {
		return model.Review{}, fmt.Errorf("%w: %v", repo.ErrInvalidArgument, err)
	}
	if review.HelpfulVotes < 0 {
		return model.Review{}, fmt.Errorf("%w: helpful_votes must be >= 0", repo.ErrInvalidArgument)
	}
	r.HelpfulVotes = review.HelpfulVotes

	l.mu.Lock()
	defer l.mu.Unlock()

	key := reviewKey{productID: r.ProductID, userID: r.UserID}
	if _, dup := l.pairs[key]; dup {
		return model.Review{}, fmt.Errorf("product %d user %d: %w", r.ProductID, r.UserID, repo.ErrDuplicateReview)
	}

	r.ID = l.lastID + 1
	r.CreatedAt = l.clock.Now()

	if l.archive != nil {
		if err := l.archive.SaveReview(ctx, r); err != nil {
			return model.Review{}, fmt.Errorf("archive review %d: %w", r.ID, err)
		}
	}

	l.lastID = r.ID
	l.appendLocked(r)
	return r, nil
}

// 作成日時の降順、同時刻はIDの降順
func (l *ReviewLedger) ListByProduct(ctx context.Context, productID int64) ([]model.Review, error) {
	l.mu.Lock()
	idx := l.byProduct[productID]
	out := make([]model.Review, 0, len(idx))
	for _, i := range idx {
		out = append(out, l.reviews[i])
	}
	l.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// 件数と平均評価（小数2桁）
func (l *ReviewLedger) Summary(ctx context.Context, productID int64) (model.ReviewSummary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.byProduct[productID]
	items := make([]model.Review, 0, len(idx))
	for _, i := range idx {
		items = append(items, l.reviews[i])
	}
	return model.SummarizeReviews(items), nil
}
