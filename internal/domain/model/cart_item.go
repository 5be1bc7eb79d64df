package model

import "time"

// カートの明細
// 価格は持たず、表示・注文時にカタログの現在価格を使う
type CartItem struct {
	ProductID int64     `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}
