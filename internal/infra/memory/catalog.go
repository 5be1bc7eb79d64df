package memory

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// CatalogStore は起動時に読み込んだ商品・カテゴリの索引。
// 構築後は書き込まないのでロックなしで読める。
type CatalogStore struct {
	products   []model.Product
	byID       map[int64]int
	categories []model.Category
}

// スナップショットを検証して索引を作る
func NewCatalogStore(snap repo.CatalogSnapshot) (*CatalogStore, error) {
	s := &CatalogStore{
		products:   make([]model.Product, 0, len(snap.Products)),
		byID:       make(map[int64]int, len(snap.Products)),
		categories: make([]model.Category, 0, len(snap.Categories)),
	}

	categoryIDs := make(map[int64]struct{}, len(snap.Categories))
	categoryNames := make(map[string]struct{}, len(snap.Categories))
	for _, c := range snap.Categories {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := categoryIDs[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate category id %d", model.ErrInvalidCategory, c.ID)
		}
		if _, dup := categoryNames[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate category name %q", model.ErrInvalidCategory, c.Name)
		}
		categoryIDs[c.ID] = struct{}{}
		categoryNames[c.Name] = struct{}{}
		s.categories = append(s.categories, c)
	}

	skus := make(map[string]int64, len(snap.Products))
	for _, p := range snap.Products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %d", model.ErrInvalidProduct, p.ID)
		}
		if _, ok := categoryIDs[p.CategoryID]; !ok && len(categoryIDs) > 0 {
			return nil, fmt.Errorf("%w: product %d: unknown category %d", model.ErrInvalidProduct, p.ID, p.CategoryID)
		}
		if p.SKU != "" {
			if other, dup := skus[p.SKU]; dup {
				return nil, fmt.Errorf("%w: sku %q used by %d and %d", model.ErrInvalidProduct, p.SKU, other, p.ID)
			}
			skus[p.SKU] = p.ID
		}
		p.Images = append([]string(nil), p.Images...)
		s.byID[p.ID] = len(s.products)
		s.products = append(s.products, p)
	}

	return s, nil
}

// 公開商品のみを読み込み順で返す
func (s *CatalogStore) ListProducts(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	if q.Offset < 0 || q.Limit < 0 {
		return nil, fmt.Errorf("%w: offset and limit must be >= 0", repo.ErrInvalidArgument)
	}

	brand := strings.ToLower(strings.TrimSpace(q.Brand))
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]model.Product, 0)
	if q.Limit == 0 {
		return out, nil
	}

	skipped := 0
	for _, p := range s.products {
		if !matches(p, q.CategoryID, brand, search) {
			continue
		}
		if skipped < q.Offset {
			skipped++
			continue
		}
		out = append(out, clonedProduct(p))
		if len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func matches(p model.Product, categoryID *int64, brand, search string) bool {
	if !p.IsActive {
		return false
	}
	if categoryID != nil && p.CategoryID != *categoryID {
		return false
	}
	if brand != "" && !strings.Contains(strings.ToLower(p.Brand), brand) {
		return false
	}
	if search != "" &&
		!strings.Contains(strings.ToLower(p.Name), search) &&
		!strings.Contains(strings.ToLower(p.Description), search) {
		return false
	}
	return true
}

// 単品取得は公開状態を見ない
func (s *CatalogStore) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return model.Product{}, fmt.Errorf("product %d: %w", id, repo.ErrNotFound)
	}
	return clonedProduct(s.products[i]), nil
}

func (s *CatalogStore) ListCategories(ctx context.Context) ([]model.Category, error) {
	out := make([]model.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func clonedProduct(p model.Product) model.Product {
	p.Images = append([]string(nil), p.Images...)
	return p
}
