package memory

import (
	"context"
	"fmt"
	"math"
	"sync"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// ユーザーごとのカート。mu がそのユーザーの操作を直列化する
type userCart struct {
	mu    sync.Mutex
	items []model.CartItem
}

func (c *userCart) index(productID int64) int {
	for i, it := range c.items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *userCart) snapshot(userID int64) model.Cart {
	items := make([]model.CartItem, len(c.items))
	copy(items, c.items)
	return model.Cart{UserID: userID, Items: items}
}

// CartStore はユーザー単位でロックするカート置き場。
// mu はmapの参照・追加だけを守り、明細の更新は userCart.mu で行う。
type CartStore struct {
	mu    sync.RWMutex
	carts map[int64]*userCart
	clock repo.Clock
}

func NewCartStore(clock repo.Clock) *CartStore {
	if clock == nil {
		clock = repo.SystemClock
	}
	return &CartStore{
		carts: make(map[int64]*userCart),
		clock: clock,
	}
}

func (s *CartStore) lookup(userID int64) (*userCart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[userID]
	return c, ok
}

// 初回追加時にだけ作る
func (s *CartStore) getOrCreate(userID int64) *userCart {
	if c, ok := s.lookup(userID); ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[userID]; ok {
		return c
	}
	c := &userCart{}
	s.carts[userID] = c
	return c
}

func (s *CartStore) GetCart(ctx context.Context, userID int64) (model.Cart, error) {
	c, ok := s.lookup(userID)
	if !ok {
		return model.Cart{UserID: userID, Items: []model.CartItem{}}, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot(userID), nil
}

func (s *CartStore) AddItem(ctx context.Context, userID, productID, quantity int64) (model.Cart, error) {
	if quantity <= 0 {
		return model.Cart{}, fmt.Errorf("%w: quantity must be positive", repo.ErrInvalidArgument)
	}

	c := s.getOrCreate(userID)
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(productID); i >= 0 {
		if quantity > math.MaxInt64-c.items[i].Quantity {
			return model.Cart{}, fmt.Errorf("%w: quantity overflow for product %d", repo.ErrInvalidArgument, productID)
		}
		c.items[i].Quantity += quantity
		return c.snapshot(userID), nil
	}

	c.items = append(c.items, model.CartItem{
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   s.clock.Now(),
	})
	return c.snapshot(userID), nil
}

func (s *CartStore) UpdateQuantity(ctx context.Context, userID, productID, quantity int64) (model.Cart, error) {
	if quantity < 1 {
		return model.Cart{}, fmt.Errorf("%w: quantity must be >= 1", repo.ErrInvalidArgument)
	}

	c, ok := s.lookup(userID)
	if !ok {
		return model.Cart{}, fmt.Errorf("cart of user %d: %w", userID, repo.ErrNotFound)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(productID)
	if i < 0 {
		return model.Cart{}, fmt.Errorf("cart line for product %d: %w", productID, repo.ErrNotFound)
	}
	c.items[i].Quantity = quantity
	return c.snapshot(userID), nil
}

func (s *CartStore) RemoveItem(ctx context.Context, userID, productID int64) (model.Cart, error) {
	c, ok := s.lookup(userID)
	if !ok {
		return model.Cart{UserID: userID, Items: []model.CartItem{}}, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(productID); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
	return c.snapshot(userID), nil
}

// Checkout はカートを注文に変換する。
// ユーザーのロックを握ったまま、商品解決→注文作成→カートを空にする。
// 途中で失敗した場合カートは変更しない。
func (s *CartStore) Checkout(ctx context.Context, userID int64, catalog repo.ProductFinder, orders repo.OrderCreator) (model.Order, error) {
	c, ok := s.lookup(userID)
	if !ok {
		return model.Order{}, repo.ErrEmptyCart
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return model.Order{}, repo.ErrEmptyCart
	}

	items := make([]model.OrderItem, 0, len(c.items))
	for _, it := range c.items {
		p, err := catalog.GetProduct(ctx, it.ProductID)
		if err != nil {
			return model.Order{}, fmt.Errorf("product %d: %w", it.ProductID, repo.ErrProductUnavailable)
		}
		if !p.IsActive {
			return model.Order{}, fmt.Errorf("product %d inactive: %w", it.ProductID, repo.ErrProductUnavailable)
		}
		//カートではなくカタログの現在価格を使う
		items = append(items, model.NewOrderItem(p, it.Quantity))
	}

	draft := model.Order{
		UserID: userID,
		Items:  items,
		Status: model.OrderStatusPending,
	}
	draft.TotalAmount = draft.SumItems()

	created, err := orders.Create(ctx, draft)
	if err != nil {
		return model.Order{}, err
	}

	//注文が記録できてから空にする
	c.items = nil
	return created, nil
}
