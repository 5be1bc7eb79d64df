package handler_test

import (
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
)

type productListBody struct {
	Items  []model.Product `json:"items"`
	Offset int             `json:"offset"`
	Limit  int             `json:"limit"`
}

func productIDs(ps []model.Product) []int64 {
	out := make([]int64, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestProductHandler_List(t *testing.T) {
	c := newTestClient(t)

	cases := []struct {
		query string
		want  []int64
	}{
		{"", []int64{1, 3, 4}},
		{"?search=MUG", []int64{1}},
		{"?brand=acme", []int64{1, 4}},
		{"?brand=acme&category_id=3", []int64{4}},
		{"?limit=1&offset=1", []int64{3}},
		{"?offset=10", []int64{}},
		{"?limit=0", []int64{}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			rec := c.do(t, http.MethodGet, "/products"+tc.query, 0, nil)
			requireStatus(t, rec, http.StatusOK)

			body := decode[productListBody](t, rec)
			assert.Equal(t, tc.want, productIDs(body.Items))
		})
	}
}

func TestProductHandler_List_DefaultLimitAndBadQuery(t *testing.T) {
	c := newTestClient(t)

	rec := c.do(t, http.MethodGet, "/products", 0, nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, 20, decode[productListBody](t, rec).Limit)

	requireError(t, c.do(t, http.MethodGet, "/products?limit=abc", 0, nil), http.StatusBadRequest, "invalid limit")
	requireError(t, c.do(t, http.MethodGet, "/products?limit=1000", 0, nil), http.StatusBadRequest, "invalid limit")
	requireError(t, c.do(t, http.MethodGet, "/products?offset=-1", 0, nil), http.StatusBadRequest, "invalid offset")
	requireError(t, c.do(t, http.MethodGet, "/products?category_id=x", 0, nil), http.StatusBadRequest, "invalid category_id")
}

func TestProductHandler_Get(t *testing.T) {
	c := newTestClient(t)

	rec := c.do(t, http.MethodGet, "/products/3", 0, nil)
	requireStatus(t, rec, http.StatusOK)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "Desk Lamp", body["name"])
	assert.Equal(t, "30", body["discounted_price"])
	assert.Equal(t, model.AvailabilityOutOfStock, body["availability_status"])

	// 非公開でもIDでは引ける
	requireStatus(t, c.do(t, http.MethodGet, "/products/2", 0, nil), http.StatusOK)

	requireError(t, c.do(t, http.MethodGet, "/products/99", 0, nil), http.StatusNotFound, "not found")
	requireError(t, c.do(t, http.MethodGet, "/products/abc", 0, nil), http.StatusBadRequest, "invalid id")
}

func TestProductHandler_ListCategories(t *testing.T) {
	c := newTestClient(t)

	rec := c.do(t, http.MethodGet, "/categories", 0, nil)
	requireStatus(t, rec, http.StatusOK)

	body := decode[usecase.CategoryListOutput](t, rec)
	names := []string{}
	for _, cat := range body.Items {
		names = append(names, cat.Name)
	}
	assert.Equal(t, []string{"Kitchen", "Office"}, names)
}
