package memory_test

import (
	"sync"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// 呼ぶたびに1秒進む時計
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// 常に同じ時刻を返す時計（同時刻のID順を確認する）
func frozenClock() repo.Clock {
	t := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	return repo.ClockFunc(func() time.Time { return t })
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleSnapshot() repo.CatalogSnapshot {
	return repo.CatalogSnapshot{
		Categories: []model.Category{
			{ID: 1, Name: "Kitchen", IsActive: true},
			{ID: 2, Name: "Garden", IsActive: false},
			{ID: 3, Name: "Office", IsActive: true},
		},
		Products: []model.Product{
			{ID: 1, Name: "Red Mug", Description: "ceramic", Price: price("10"), CategoryID: 1, Brand: "Acme", SKU: "MUG-R", StockQuantity: 5, IsActive: true},
			{ID: 2, Name: "Blue Mug", Description: "ceramic", Price: price("12"), CategoryID: 1, Brand: "Acme", SKU: "MUG-B", IsActive: false},
			{ID: 3, Name: "Desk Lamp", Description: "warm light for mugs of tea", Price: price("40"), CategoryID: 3, Brand: "Lumo", StockQuantity: 2, DiscountPercentage: price("25"), IsActive: true},
			{ID: 4, Name: "Stapler", Description: "metal", Price: price("7.50"), CategoryID: 3, Brand: "ACME Office", IsActive: true},
			{ID: 5, Name: "Notebook", Description: "A5 paper", Price: price("3.20"), CategoryID: 3, Brand: "Paperly", IsActive: true},
		},
	}
}
