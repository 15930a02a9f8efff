package service

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/car-marketplace/internal/domain"
	"github.com/spec-kit/car-marketplace/internal/repository"
	apperrors "github.com/spec-kit/car-marketplace/pkg/util"
)

func newBrandService(brands *mockBrandRepo) *BrandService {
	return NewBrandService(marketConfig(), brands, nil, zap.NewNop())
}

func TestBrandService_CreateBrand(t *testing.T) {
	t.Run("new brands start active", func(t *testing.T) {
		brands := new(mockBrandRepo)
		brands.On("GetByName", "Toyota").Return(nil, pgx.ErrNoRows).Once()
		brands.On("Create", mock.MatchedBy(func(b *domain.Brand) bool {
			return b.Name == "Toyota" && b.Active
		})).Return(nil).Once()

		svc := newBrandService(brands)
		brand, err := svc.CreateBrand(context.Background(), BrandCreateInput{Name: "Toyota"})

		require.NoError(t, err)
		assert.True(t, brand.Active)
		brands.AssertExpectations(t)
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		brands := new(mockBrandRepo)
		brands.On("GetByName", "Toyota").
			Return(&domain.Brand{ID: "brand-1", Name: "Toyota"}, nil).Once()

		svc := newBrandService(brands)
		_, err := svc.CreateBrand(context.Background(), BrandCreateInput{Name: "Toyota"})

		require.Error(t, err)
		assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
		brands.AssertNotCalled(t, "Create")
	})

	t.Run("overlong description rejected", func(t *testing.T) {
		brands := new(mockBrandRepo)
		svc := NewBrandService(marketConfig(), brands, nil, zap.NewNop())
		svc.maxDescription = 10

		description := strings.Repeat("x", 11)
		_, err := svc.CreateBrand(context.Background(), BrandCreateInput{
			Name:        "Toyota",
			Description: &description,
		})

		require.Error(t, err)
		assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
		brands.AssertNotCalled(t, "Create")
	})
}

func TestBrandService_UpdateBrand(t *testing.T) {
	t.Run("keeping own name skips conflict check", func(t *testing.T) {
		brands := new(mockBrandRepo)
		brands.On("GetByID", "brand-1").
			Return(&domain.Brand{ID: "brand-1", Name: "Toyota", Active: true}, nil).Once()
		brands.On("Update", mock.Anything).Return(nil).Once()

		svc := newBrandService(brands)
		name := "Toyota"
		brand, err := svc.UpdateBrand(context.Background(), "brand-1", BrandUpdateInput{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "Toyota", brand.Name)
		brands.AssertNotCalled(t, "GetByName")
	})

	t.Run("renaming onto another brand conflicts", func(t *testing.T) {
		brands := new(mockBrandRepo)
		brands.On("GetByID", "brand-1").
			Return(&domain.Brand{ID: "brand-1", Name: "Toyota"}, nil).Once()
		brands.On("GetByName", "Honda").
			Return(&domain.Brand{ID: "brand-2", Name: "Honda"}, nil).Once()

		svc := newBrandService(brands)
		name := "Honda"
		_, err := svc.UpdateBrand(context.Background(), "brand-1", BrandUpdateInput{Name: &name})

		require.Error(t, err)
		assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
		brands.AssertNotCalled(t, "Update")
	})

	t.Run("unknown brand is not found", func(t *testing.T) {
		brands := new(mockBrandRepo)
		brands.On("GetByID", "missing").Return(nil, pgx.ErrNoRows).Once()

		svc := newBrandService(brands)
		_, err := svc.UpdateBrand(context.Background(), "missing", BrandUpdateInput{})

		require.Error(t, err)
		assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
	})
}

func TestBrandService_SetActive(t *testing.T) {
	brands := new(mockBrandRepo)
	brands.On("GetByID", "brand-1").
		Return(&domain.Brand{ID: "brand-1", Name: "Toyota", Active: true}, nil).Once()
	brands.On("Update", mock.MatchedBy(func(b *domain.Brand) bool {
		return !b.Active
	})).Return(nil).Once()

	svc := newBrandService(brands)
	brand, err := svc.SetActive(context.Background(), "brand-1", false)

	require.NoError(t, err)
	assert.False(t, brand.Active)
	brands.AssertExpectations(t)
}

func TestBrandService_DeleteBrand(t *testing.T) {
	t.Run("blocked while vehicles reference it", func(t *testing.T) {
		brands := new(mockBrandRepo)
		brands.On("HasVehicles", "brand-1").Return(true, nil).Once()

		svc := newBrandService(brands)
		err := svc.DeleteBrand(context.Background(), "brand-1")

		require.Error(t, err)
		assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
		brands.AssertNotCalled(t, "Delete")
	})

	t.Run("unreferenced brand is removed", func(t *testing.T) {
		brands := new(mockBrandRepo)
		brands.On("HasVehicles", "brand-1").Return(false, nil).Once()
		brands.On("Delete", "brand-1").Return(nil).Once()

		svc := newBrandService(brands)
		err := svc.DeleteBrand(context.Background(), "brand-1")

		require.NoError(t, err)
		brands.AssertExpectations(t)
	})
}

func TestBrandService_ListBrands(t *testing.T) {
	brands := new(mockBrandRepo)
	active := true
	filter := repository.BrandFilter{Search: "to", Active: &active, Limit: 10, Offset: 0}
	brands.On("List", filter).
		Return([]*domain.Brand{{ID: "brand-1", Name: "Toyota", Active: true}}, int64(1), nil).Once()

	svc := newBrandService(brands)
	list, err := svc.ListBrands(context.Background(), filter)

	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	require.Len(t, list.Brands, 1)
	assert.Equal(t, "Toyota", list.Brands[0].Name)
}
