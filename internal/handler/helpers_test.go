package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/memory"
	"storefront/internal/middleware"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

type errorBody struct {
	Error string `json:"error"`
}

type testClient struct {
	e *echo.Echo
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testSnapshot() repo.CatalogSnapshot {
	return repo.CatalogSnapshot{
		Categories: []model.Category{
			{ID: 1, Name: "Kitchen", IsActive: true},
			{ID: 2, Name: "Garden", IsActive: false},
			{ID: 3, Name: "Office", IsActive: true},
		},
		Products: []model.Product{
			{ID: 1, Name: "Red Mug", Price: price("10"), CategoryID: 1, Brand: "Acme", StockQuantity: 3, IsActive: true},
			{ID: 2, Name: "Blue Mug", Price: price("12"), CategoryID: 1, Brand: "Acme", IsActive: false},
			{ID: 3, Name: "Desk Lamp", Price: price("40"), CategoryID: 3, Brand: "Lumo", DiscountPercentage: price("25"), IsActive: true},
			{ID: 4, Name: "Stapler", Price: price("7.50"), CategoryID: 3, Brand: "ACME Office", IsActive: true},
		},
	}
}

// メモリストアで組み立てたecho
func newTestClient(t *testing.T) *testClient {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog, err := memory.NewCatalogStore(testSnapshot())
	require.NoError(t, err)
	carts := memory.NewCartStore(nil)
	orders := memory.NewOrderLedger(nil, nil)
	reviews := memory.NewReviewLedger(nil, nil)

	e := echo.New()
	e.Validator = validator.New()
	auth := middleware.AuthJWT(config.Config{JWTSecret: testSecret})

	handler.NewProductHandler(usecase.NewCatalogUsecase(catalog, 20, 100, logger)).RegisterRoutes(e)
	handler.NewCartHandler(usecase.NewCartUsecase(carts, catalog, logger)).RegisterRoutes(e, auth)
	handler.NewOrderHandler(usecase.NewOrderUsecase(carts, catalog, orders, logger)).RegisterRoutes(e, auth)
	handler.NewReviewHandler(usecase.NewReviewUsecase(reviews, catalog, orders, logger)).RegisterRoutes(e, auth)

	return &testClient{e: e}
}

func tokenFor(t *testing.T, userID int64) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

// userID が 0 なら Authorization なし
func (c *testClient) do(t *testing.T, method, path string, userID int64, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if userID > 0 {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, userID))
	}
	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body=%s", rec.Body.String())
	return v
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body=%s", rec.Body.String())
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	requireStatus(t, rec, status)
	require.Equal(t, msg, decode[errorBody](t, rec).Error)
}

