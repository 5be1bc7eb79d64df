package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジック
type CartUsecase struct {
	carts   repo.CartRepository
	catalog repo.ProductFinder
	logger  *slog.Logger
}

func NewCartUsecase(carts repo.CartRepository, catalog repo.ProductFinder, logger *slog.Logger) *CartUsecase {
	return &CartUsecase{
		carts:   carts,
		catalog: catalog,
		logger:  logger,
	}
}

// 表示用の明細。価格はカタログの現在値
// 商品が消えた・非公開の明細は available=false で合計に含めない
type CartLineResponse struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	Available bool            `json:"available"`
	AddedAt   time.Time       `json:"added_at"`
}

type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.carts.GetCart(ctx, userID)
	if err != nil {
		return CartResponse{}, fromStoreError(ctx, u.logger, "get cart", err, slog.Int64("user_id", userID))
	}
	return u.buildCartResponse(ctx, cart), nil
}

// 同一商品は数量加算
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// 商品チェック（公開のみ）
	p, err := u.catalog.GetProduct(ctx, in.ProductID)
	if err != nil || !p.IsActive {
		return CartResponse{}, NewHTTPError(http.StatusConflict, "product unavailable")
	}

	cart, err := u.carts.AddItem(ctx, userID, in.ProductID, in.Quantity)
	if err != nil {
		return CartResponse{}, fromStoreError(ctx, u.logger, "add cart item", err,
			slog.Int64("user_id", userID), slog.Int64("product_id", in.ProductID))
	}
	return u.buildCartResponse(ctx, cart), nil
}

func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID, productID int64, in UpdateCartItemInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	cart, err := u.carts.UpdateQuantity(ctx, userID, productID, in.Quantity)
	if err != nil {
		return CartResponse{}, fromStoreError(ctx, u.logger, "update cart item", err,
			slog.Int64("user_id", userID), slog.Int64("product_id", productID))
	}
	return u.buildCartResponse(ctx, cart), nil
}

// 無い明細の削除もエラーにしない
func (u *CartUsecase) DeleteCartItem(ctx context.Context, userID, productID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	cart, err := u.carts.RemoveItem(ctx, userID, productID)
	if err != nil {
		return CartResponse{}, fromStoreError(ctx, u.logger, "remove cart item", err,
			slog.Int64("user_id", userID), slog.Int64("product_id", productID))
	}
	return u.buildCartResponse(ctx, cart), nil
}

// カタログの現在価格で明細と合計を作る
func (u *CartUsecase) buildCartResponse(ctx context.Context, cart model.Cart) CartResponse {
	resp := CartResponse{
		Items: make([]CartLineResponse, 0, len(cart.Items)),
		Total: decimal.Zero,
	}

	for _, it := range cart.Items {
		line := CartLineResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			AddedAt:   it.AddedAt,
			UnitPrice: decimal.Zero,
			LineTotal: decimal.Zero,
		}

		p, err := u.catalog.GetProduct(ctx, it.ProductID)
		if err == nil {
			line.Name = p.Name
			line.UnitPrice = p.DiscountedPrice()
			line.LineTotal = line.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)).Round(2)
			line.Available = p.IsActive
		}
		if line.Available {
			resp.Total = resp.Total.Add(line.LineTotal)
		}
		resp.Items = append(resp.Items, line)
	}

	return resp
}
