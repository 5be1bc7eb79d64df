package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	AvailabilityInStock    = "In Stock"
	AvailabilityOutOfStock = "Out of Stock"
)

var (
	hundred = decimal.NewFromInt(100)

	ErrInvalidProduct = errors.New("invalid product")
)

// カタログ読み込み後は変更しない
type Product struct {
	ID                 int64           `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name               string          `gorm:"type:varchar(255);not null" json:"name"`
	Description        string          `gorm:"type:text" json:"description"`
	Price              decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	CategoryID         int64           `gorm:"not null;index" json:"category_id"`
	Brand              string          `gorm:"type:varchar(255)" json:"brand"`
	SKU                string          `gorm:"column:sku;type:varchar(100)" json:"sku,omitempty"`
	StockQuantity      int64           `gorm:"not null;default:0" json:"stock_quantity"`
	Rating             float64         `gorm:"not null;default:0" json:"rating"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percentage"`
	Images             []string        `gorm:"serializer:json;type:text" json:"images"`
	IsActive           bool            `gorm:"not null;default:true" json:"is_active"`
}

// 割引後の価格（小数2桁）
func (p Product) DiscountedPrice() decimal.Decimal {
	if !p.DiscountPercentage.IsPositive() {
		return p.Price
	}
	rate := decimal.NewFromInt(1).Sub(p.DiscountPercentage.Div(hundred))
	return p.Price.Mul(rate).Round(2)
}

// 在庫があるかどうか
func (p Product) AvailabilityStatus() string {
	if p.StockQuantity > 0 {
		return AvailabilityInStock
	}
	return AvailabilityOutOfStock
}

// Validate はカタログ投入前の値チェック。
func (p Product) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidProduct)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product %d: name required", ErrInvalidProduct, p.ID)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: product %d: price must be >= 0", ErrInvalidProduct, p.ID)
	}
	if p.StockQuantity < 0 {
		return fmt.Errorf("%w: product %d: stock must be >= 0", ErrInvalidProduct, p.ID)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("%w: product %d: rating must be 0-5", ErrInvalidProduct, p.ID)
	}
	if p.DiscountPercentage.IsNegative() || p.DiscountPercentage.GreaterThan(hundred) {
		return fmt.Errorf("%w: product %d: discount must be 0-100", ErrInvalidProduct, p.ID)
	}
	return nil
}

// 派生項目もJSONに含める
func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		DiscountedPrice    decimal.Decimal `json:"discounted_price"`
		AvailabilityStatus string          `json:"availability_status"`
	}{
		plain:              plain(p),
		DiscountedPrice:    p.DiscountedPrice(),
		AvailabilityStatus: p.AvailabilityStatus(),
	})
}
