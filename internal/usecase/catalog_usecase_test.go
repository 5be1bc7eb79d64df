package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestCatalogUsecase_ListProducts_DefaultLimit(t *testing.T) {
	catalog := new(CatalogRepoMock)
	uc := usecase.NewCatalogUsecase(catalog, 20, 100, discardLogger())

	q := repo.ProductListQuery{Search: "mug", Limit: 20}
	catalog.On("ListProducts", mock.Anything, q).Return([]model.Product{{ID: 1, IsActive: true}}, nil)

	out, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Search: "  mug "})
	require.NoError(t, err)
	assert.Equal(t, 20, out.Limit)
	assert.Len(t, out.Items, 1)

	catalog.AssertExpectations(t)
}

func TestCatalogUsecase_ListProducts_ExplicitZeroLimitIsPassedThrough(t *testing.T) {
	catalog := new(CatalogRepoMock)
	uc := usecase.NewCatalogUsecase(catalog, 20, 100, discardLogger())

	catalog.On("ListProducts", mock.Anything, repo.ProductListQuery{Offset: 5, Limit: 0}).Return([]model.Product{}, nil)

	out, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Offset: 5, Limit: intPtr(0)})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	catalog.AssertExpectations(t)
}

func TestCatalogUsecase_ListProducts_InvalidInput(t *testing.T) {
	uc := usecase.NewCatalogUsecase(new(CatalogRepoMock), 20, 100, discardLogger())
	bad := int64(0)

	cases := []struct {
		name string
		in   usecase.ListProductsInput
		want string
	}{
		{"limit over max", usecase.ListProductsInput{Limit: intPtr(101)}, "invalid limit"},
		{"negative limit", usecase.ListProductsInput{Limit: intPtr(-1)}, "invalid limit"},
		{"negative offset", usecase.ListProductsInput{Offset: -1}, "invalid offset"},
		{"category", usecase.ListProductsInput{CategoryID: &bad}, "invalid category_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.ListProducts(context.Background(), tc.in)
			assertErrContains(t, err, tc.want)
			assertStatus(t, err, http.StatusBadRequest)
		})
	}
}

func TestCatalogUsecase_GetProduct(t *testing.T) {
	catalog := new(CatalogRepoMock)
	uc := usecase.NewCatalogUsecase(catalog, 20, 100, discardLogger())

	catalog.On("GetProduct", mock.Anything, int64(2)).Return(model.Product{ID: 2, IsActive: false}, nil)
	catalog.On("GetProduct", mock.Anything, int64(9)).Return(model.Product{}, fmt.Errorf("product 9: %w", repo.ErrNotFound))

	p, err := uc.GetProduct(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.ID)

	_, err = uc.GetProduct(context.Background(), 9)
	assertStatus(t, err, http.StatusNotFound)

	_, err = uc.GetProduct(context.Background(), 0)
	assertStatus(t, err, http.StatusBadRequest)
}

func TestCatalogUsecase_ListCategories_StoreFailure(t *testing.T) {
	catalog := new(CatalogRepoMock)
	uc := usecase.NewCatalogUsecase(catalog, 20, 100, discardLogger())

	catalog.On("ListCategories", mock.Anything).Return(nil, errors.New("boom"))

	_, err := uc.ListCategories(context.Background())
	assertErrContains(t, err, "internal error")
	assertStatus(t, err, http.StatusInternalServerError)
}
