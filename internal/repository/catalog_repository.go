package repository

import (
	"context"

	"storefront/internal/domain/model"
)

const (
	DefaultListLimit = 20
)

// 一覧検索
// 指定された条件はANDで絞り込む
type ProductListQuery struct {
	CategoryID *int64
	Brand      string
	Search     string
	Offset     int
	// 0なら空の結果。省略時の既定値(DefaultListLimit)は呼び出し側で入れる
	Limit      int
}

// 読み込み後は参照のみ
type CatalogRepository interface {
	ListProducts(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}

// チェックアウト時に商品を引く
type ProductFinder interface {
	GetProduct(ctx context.Context, id int64) (model.Product, error)
}

// カタログのスナップショット（起動時に1回だけ読む）
type CatalogSnapshot struct {
	Categories []model.Category `json:"categories"`
	Products   []model.Product  `json:"products"`
}

type SnapshotSource interface {
	ReadSnapshot(ctx context.Context) (CatalogSnapshot, error)
}
