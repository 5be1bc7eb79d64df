package model

// 1ユーザーにつきカートは1つ
// 同じ商品の明細は1行だけ
type Cart struct {
	UserID int64      `json:"user_id"`
	Items  []CartItem `json:"items"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// 商品の明細を探す
func (c Cart) Find(productID int64) (CartItem, bool) {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return CartItem{}, false
}

// 呼び出し側に渡すためのコピー
func (c Cart) Clone() Cart {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return Cart{UserID: c.UserID, Items: items}
}
