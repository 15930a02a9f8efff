package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/car-marketplace/internal/config"
	"github.com/spec-kit/car-marketplace/internal/domain"
	"github.com/spec-kit/car-marketplace/internal/repository"
	apperrors "github.com/spec-kit/car-marketplace/pkg/util"
)

const brandCacheTTL = 5 * time.Minute

// BrandList is the paginated result of a catalog query.
type BrandList struct {
	Brands []*domain.Brand `json:"brands"`
	Offset int             `json:"offset"`
	Limit  int             `json:"limit"`
	Total  int64           `json:"total"`
}

// BrandService manages the brand catalog. Public listings are served from a
// Redis cache which admin mutations invalidate.
type BrandService struct {
	brands         repository.BrandRepository
	cache          Cache
	logger         *zap.Logger
	maxDescription int
}

// NewBrandService builds the service. Cache may be nil, in which case every
// read goes to the database.
func NewBrandService(cfg config.Config, brands repository.BrandRepository, cache Cache, logger *zap.Logger) *BrandService {
	return &BrandService{
		brands:         brands,
		cache:          cache,
		logger:         logger,
		maxDescription: cfg.Market.MaxBrandDescription,
	}
}

// GetBrand returns a single brand by ID.
func (s *BrandService) GetBrand(ctx context.Context, id string) (*domain.Brand, error) {
	brand, err := s.brands.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("brand", nil)
		}
		return nil, err
	}
	return brand, nil
}

// ListBrands returns a filtered page of brands, cached per filter.
func (s *BrandService) ListBrands(ctx context.Context, filter repository.BrandFilter) (*BrandList, error) {
	key := brandCacheKey(filter)
	if cached, ok := s.cacheGet(ctx, key); ok {
		return cached, nil
	}

	brands, total, err := s.brands.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	list := &BrandList{Brands: brands, Offset: filter.Offset, Limit: filter.Limit, Total: total}
	s.cacheSet(ctx, key, list)
	return list, nil
}

// BrandCreateInput describes the admin creation payload.
type BrandCreateInput struct {
	Name        string
	Description *string
}

// BrandUpdateInput carries optional changes. Nil fields are left as-is.
type BrandUpdateInput struct {
	Name        *string
	Description *string
}

// CreateBrand adds a brand with a unique name (admin operation).
func (s *BrandService) CreateBrand(ctx context.Context, input BrandCreateInput) (*domain.Brand, error) {
	if err := s.validateDescription(input.Description); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, input.Name, ""); err != nil {
		return nil, err
	}

	brand := &domain.Brand{
		Name:        input.Name,
		Description: input.Description,
		Active:      true,
	}
	if err := s.brands.Create(ctx, brand); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return brand, nil
}

// UpdateBrand applies partial changes (admin operation).
func (s *BrandService) UpdateBrand(ctx context.Context, id string, input BrandUpdateInput) (*domain.Brand, error) {
	brand, err := s.GetBrand(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != brand.Name {
		if err := s.ensureNameFree(ctx, *input.Name, id); err != nil {
			return nil, err
		}
		brand.Name = *input.Name
	}
	if input.Description != nil {
		if err := s.validateDescription(input.Description); err != nil {
			return nil, err
		}
		brand.Description = input.Description
	}

	if err := s.brands.Update(ctx, brand); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return brand, nil
}

// SetActive flips a brand's active flag (admin operation).
func (s *BrandService) SetActive(ctx context.Context, id string, active bool) (*domain.Brand, error) {
	brand, err := s.GetBrand(ctx, id)
	if err != nil {
		return nil, err
	}
	brand.Active = active
	if err := s.brands.Update(ctx, brand); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return brand, nil
}

// DeleteBrand removes a brand unless vehicles still reference it.
func (s *BrandService) DeleteBrand(ctx context.Context, id string) error {
	inUse, err := s.brands.HasVehicles(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return apperrors.NewConflict("brand has associated vehicles", nil)
	}

	if err := s.brands.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("brand", nil)
		}
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *BrandService) ensureNameFree(ctx context.Context, name, excludeID string) error {
	existing, err := s.brands.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return apperrors.NewConflict("brand name already exists", nil)
	}
	return nil
}

func (s *BrandService) validateDescription(description *string) error {
	if description == nil || s.maxDescription <= 0 {
		return nil
	}
	if len(*description) > s.maxDescription {
		return apperrors.NewValidationError("brand description too long", map[string]any{
			"max_length": s.maxDescription,
		})
	}
	return nil
}

func brandCacheKey(filter repository.BrandFilter) string {
	active := "any"
	if filter.Active != nil {
		active = strconv.FormatBool(*filter.Active)
	}
	return fmt.Sprintf("brands:%s:%s:%d:%d", filter.Search, active, filter.Limit, filter.Offset)
}

func (s *BrandService) cacheGet(ctx context.Context, key string) (*BrandList, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var list BrandList
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, false
	}
	return &list, true
}

func (s *BrandService) cacheSet(ctx context.Context, key string, list *BrandList) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, brandCacheTTL).Err(); err != nil {
		s.logger.Debug("brand cache write failed", zap.Error(err))
	}
}

func (s *BrandService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	iter := s.cache.Scan(ctx, 0, "brands:*", 0).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if len(keys) > 0 {
		_ = s.cache.Del(ctx, keys...).Err()
	}
}
