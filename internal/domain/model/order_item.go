package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidOrderItem = errors.New("invalid order item")

// 注文時点のスナップショット
// 後でカタログが変わっても注文内容は変わらない
type OrderItem struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID     int64           `gorm:"not null;index" json:"-"`
	ProductID   int64           `gorm:"not null;index" json:"product_id"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"line_total"`
}

// 商品の現在価格から明細を作る
func NewOrderItem(p Product, quantity int64) OrderItem {
	unit := p.DiscountedPrice()
	return OrderItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    quantity,
		UnitPrice:   unit,
		LineTotal:   unit.Mul(decimal.NewFromInt(quantity)).Round(2),
	}
}

func (it OrderItem) Validate() error {
	if it.ProductID <= 0 {
		return fmt.Errorf("%w: product_id must be positive", ErrInvalidOrderItem)
	}
	if it.Quantity <= 0 {
		return fmt.Errorf("%w: product %d: quantity must be positive", ErrInvalidOrderItem, it.ProductID)
	}
	if it.UnitPrice.IsNegative() || it.LineTotal.IsNegative() {
		return fmt.Errorf("%w: product %d: negative amount", ErrInvalidOrderItem, it.ProductID)
	}
	return nil
}
