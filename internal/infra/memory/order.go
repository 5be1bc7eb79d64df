package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// OrderLedger は追記のみの注文台帳。
// 採番と追記は mu の中で1回の操作として行う。
type OrderLedger struct {
	mu      sync.Mutex
	lastID  int64
	orders  []model.Order
	byID    map[int64]int
	byUser  map[int64][]int
	clock   repo.Clock
	archive repo.OrderArchive
}

// archive は nil でもよい（メモリのみ）
func NewOrderLedger(clock repo.Clock, archive repo.OrderArchive) *OrderLedger {
	if clock == nil {
		clock = repo.SystemClock
	}
	return &OrderLedger{
		byID:    make(map[int64]int),
		byUser:  make(map[int64][]int),
		clock:   clock,
		archive: archive,
	}
}

// Restore は保存済みの注文を読み込む。採番は最大IDの次から続ける。
// 起動時、Createより前に1回だけ呼ぶ。
func (l *OrderLedger) Restore(orders []model.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, o := range orders {
		if o.ID <= 0 {
			return fmt.Errorf("%w: restored order id must be positive", repo.ErrInvalidArgument)
		}
		if _, dup := l.byID[o.ID]; dup {
			return fmt.Errorf("%w: duplicate restored order id %d", repo.ErrInvalidArgument, o.ID)
		}
		l.appendLocked(o.Clone())
		if o.ID > l.lastID {
			l.lastID = o.ID
		}
	}
	return nil
}

func (l *OrderLedger) appendLocked(o model.Order) {
	l.byID[o.ID] = len(l.orders)
	l.byUser[o.UserID] = append(l.byUser[o.UserID], len(l.orders))
	l.orders = append(l.orders, o)
}

func (l *OrderLedger) Create(ctx context.Context, order model.Order) (model.Order, error) {
	if order.UserID <= 0 {
		return model.Order{}, fmt.Errorf("%w: user_id must be positive", repo.ErrInvalidArgument)
	}
	if len(order.Items) == 0 {
		return model.Order{}, fmt.Errorf("%w: order has no items", repo.ErrInvalidArgument)
	}
	for _, it := range order.Items {
		if err := it.Validate(); err != nil {
			return model.Order{}, fmt.Errorf("%w: %v", repo.ErrInvalidArgument, err)
		}
	}
	if order.Status == "" {
		order.Status = model.OrderStatusPending
	}
	if !order.Status.IsValid() {
		return model.Order{}, fmt.Errorf("%w: unknown status %q", repo.ErrInvalidArgument, order.Status)
	}

	o := order.Clone()

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	o.ID = l.lastID + 1
	o.CreatedAt = now
	o.UpdatedAt = now
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}

	//保存に失敗したらIDは消費しない
	if l.archive != nil {
		if err := l.archive.SaveOrder(ctx, o.Clone()); err != nil {
			return model.Order{}, fmt.Errorf("archive order %d: %w", o.ID, err)
		}
	}

	l.lastID = o.ID
	l.appendLocked(o)
	return o.Clone(), nil
}

func (l *OrderLedger) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.byID[orderID]
	if !ok {
		return model.Order{}, fmt.Errorf("order %d: %w", orderID, repo.ErrNotFound)
	}
	return l.orders[i].Clone(), nil
}

// 作成日時の降順、同時刻はIDの降順
func (l *OrderLedger) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	l.mu.Lock()
	idx := l.byUser[userID]
	out := make([]model.Order, 0, len(idx))
	for _, i := range idx {
		out = append(out, l.orders[i].Clone())
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

// 指定ユーザーの注文にこの商品が含まれるか
func (l *OrderLedger) HasPurchased(ctx context.Context, userID, productID int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, i := range l.byUser[userID] {
		for _, it := range l.orders[i].Items {
			if it.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}
