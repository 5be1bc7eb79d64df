package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// 許可される遷移
// PENDING → PROCESSING → SHIPPED → DELIVERED
// PENDING → CANCELLED
var orderTransitions = map[OrderStatus]OrderStatus{
	OrderStatusPending:    OrderStatusProcessing,
	OrderStatusProcessing: OrderStatusShipped,
	OrderStatusShipped:    OrderStatusDelivered,
}

// 外部の出荷処理が使う遷移ガード
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == OrderStatusPending && next == OrderStatusCancelled {
		return true
	}
	to, ok := orderTransitions[s]
	return ok && to == next
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IDはOrderLedgerが採番する
type Order struct {
	ID          int64           `gorm:"primaryKey;autoIncrement:false" json:"id"`
	UserID      int64           `gorm:"not null;index" json:"user_id"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_amount"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}

// 明細はスライスごとコピーする
func (o Order) Clone() Order {
	items := make([]OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

// 明細の合計
func (o Order) SumItems() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.LineTotal)
	}
	return total
}
