package usecase

import (
	"context"
	"log/slog"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type OrderUsecase struct {
	carts   repo.CartRepository
	catalog repo.ProductFinder
	orders  repo.OrderRepository
	logger  *slog.Logger
}

// DI
func NewOrderUsecase(carts repo.CartRepository, catalog repo.ProductFinder, orders repo.OrderRepository, logger *slog.Logger) *OrderUsecase {
	return &OrderUsecase{
		carts:   carts,
		catalog: catalog,
		orders:  orders,
		logger:  logger,
	}
}

type OrderListOutput struct {
	Items []model.Order `json:"items"`
}

// カートから注文を作る（POST /orders）
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64) (model.Order, error) {
	if userID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	order, err := u.carts.Checkout(ctx, userID, u.catalog, u.orders)
	if err != nil {
		return model.Order{}, fromStoreError(ctx, u.logger, "checkout", err, slog.Int64("user_id", userID))
	}

	u.logger.LogAttrs(ctx, slog.LevelInfo, "order created",
		slog.Int64("order_id", order.ID),
		slog.Int64("user_id", userID),
		slog.Int("lines", len(order.Items)),
		slog.String("total", order.TotalAmount.StringFixed(2)),
	)
	return order, nil
}

// 新しい順
func (u *OrderUsecase) ListOrders(ctx context.Context, userID int64) (OrderListOutput, error) {
	if userID <= 0 {
		return OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.orders.ListByUser(ctx, userID)
	if err != nil {
		return OrderListOutput{}, fromStoreError(ctx, u.logger, "list orders", err, slog.Int64("user_id", userID))
	}
	return OrderListOutput{Items: items}, nil
}

// 他人の注文は not found
func (u *OrderUsecase) GetOrder(ctx context.Context, userID, orderID int64) (model.Order, error) {
	if userID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return model.Order{}, fromStoreError(ctx, u.logger, "get order", err, slog.Int64("order_id", orderID))
	}
	if o.UserID != userID {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return o, nil
}
