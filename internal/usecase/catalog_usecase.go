package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

const maxSearchLength = 100

type CatalogUsecase struct {
	catalog      repo.CatalogRepository
	defaultLimit int
	maxLimit     int
	logger       *slog.Logger
}

// DI
func NewCatalogUsecase(catalog repo.CatalogRepository, defaultLimit, maxLimit int, logger *slog.Logger) *CatalogUsecase {
	if defaultLimit < 1 {
		defaultLimit = repo.DefaultListLimit
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &CatalogUsecase{
		catalog:      catalog,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		logger:       logger,
	}
}

// GET /productsの入力DTO
// Limit が nil ならデフォルト値
type ListProductsInput struct {
	CategoryID *int64
	Brand      string
	Search     string
	Offset     int
	Limit      *int
}

type ProductListOutput struct {
	Items  []model.Product `json:"items"`
	Offset int             `json:"offset"`
	Limit  int             `json:"limit"`
}

type CategoryListOutput struct {
	Items []model.Category `json:"items"`
}

func (u *CatalogUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	limit := u.defaultLimit
	if in.Limit != nil {
		limit = *in.Limit
	}
	if limit < 0 || limit > u.maxLimit {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if in.Offset < 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid offset")
	}
	if in.CategoryID != nil && *in.CategoryID <= 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid category_id")
	}
	if len(in.Search) > maxSearchLength || len(in.Brand) > maxSearchLength {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid search")
	}

	items, err := u.catalog.ListProducts(ctx, repo.ProductListQuery{
		CategoryID: in.CategoryID,
		Brand:      strings.TrimSpace(in.Brand),
		Search:     strings.TrimSpace(in.Search),
		Offset:     in.Offset,
		Limit:      limit,
	})
	if err != nil {
		return ProductListOutput{}, fromStoreError(ctx, u.logger, "list products", err)
	}

	return ProductListOutput{Items: items, Offset: in.Offset, Limit: limit}, nil
}

// 非公開の商品もIDで引ける
func (u *CatalogUsecase) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.catalog.GetProduct(ctx, productID)
	if err != nil {
		return model.Product{}, fromStoreError(ctx, u.logger, "get product", err, slog.Int64("product_id", productID))
	}
	return p, nil
}

func (u *CatalogUsecase) ListCategories(ctx context.Context) (CategoryListOutput, error) {
	items, err := u.catalog.ListCategories(ctx)
	if err != nil {
		return CategoryListOutput{}, fromStoreError(ctx, u.logger, "list categories", err)
	}
	return CategoryListOutput{Items: items}, nil
}
