package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/brandloom/brandloom-backend/internal/common"
	"github.com/brandloom/brandloom-backend/internal/domain"
	"github.com/brandloom/brandloom-backend/internal/repository"
	"github.com/brandloom/brandloom-backend/pkg/cache"
	"github.com/brandloom/brandloom-backend/pkg/logger"
)

// BrandContextService resolves stored brand guides into read-only
// BrandContext snapshots. Resolution is a pure read; the optional Redis
// cache is read-through with a bounded TTL and failures fall back to the DB.
type BrandContextService struct {
	guideRepo repository.BrandGuideRepository
	cache     cache.Service
}

// NewBrandContextService creates a new BrandContextService
func NewBrandContextService(guideRepo repository.BrandGuideRepository) *BrandContextService {
	return &BrandContextService{guideRepo: guideRepo}
}

// SetCache sets the cache service (optional dependency)
func (s *BrandContextService) SetCache(cacheService cache.Service) {
	s.cache = cacheService
}

// Resolve loads and normalizes the brand guide for one evaluation call
func (s *BrandContextService) Resolve(ctx context.Context, brandID string) (*domain.BrandContext, error) {
	if strings.TrimSpace(brandID) == "" {
		return nil, common.ErrInvalidInput
	}

	if s.cache != nil {
		var cached domain.BrandContext
		if err := s.cache.GetBrandContext(ctx, brandID, &cached); err == nil {
			return &cached, nil
		}
	}

	guide, err := s.guideRepo.FindByBrandID(brandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrBrandNotFound
		}
		return nil, fmt.Errorf("load brand guide: %w", err)
	}

	brandCtx, err := guide.ToContext()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidBrandGuide, err)
	}

	if s.cache != nil {
		if err := s.cache.SetBrandContext(ctx, brandID, brandCtx); err != nil {
			logger.Warn("brand context cache write failed for %s: %v", brandID, err)
		}
	}

	return brandCtx, nil
}

// UpsertGuide writes a brand guide and invalidates its cached context.
// Legacy field aliases are resolved by the caller at the API boundary.
func (s *BrandContextService) UpsertGuide(ctx context.Context, brandID string, in domain.BrandGuideInput) (*domain.BrandContext, error) {
	if strings.TrimSpace(brandID) == "" {
		return nil, common.ErrInvalidInput
	}

	guide := &domain.BrandGuide{
		BrandID:        brandID,
		BrandName:      strings.TrimSpace(in.BrandName),
		Tone:           strings.TrimSpace(in.Tone),
		TargetAudience: strings.TrimSpace(in.TargetAudience),
		UpdatedAt:      time.Now(),
	}

	var err error
	if guide.Values, err = marshalStringList(in.Values); err != nil {
		return nil, err
	}
	if guide.ForbiddenPhrases, err = marshalStringList(in.ForbiddenPhrases); err != nil {
		return nil, err
	}
	if guide.RequiredDisclaimers, err = marshalStringList(in.RequiredDisclaimers); err != nil {
		return nil, err
	}
	if guide.AllowedToneDescriptors, err = marshalStringList(in.AllowedToneDescriptors); err != nil {
		return nil, err
	}
	if guide.BrandPalette, err = marshalStringList(in.BrandPalette); err != nil {
		return nil, err
	}

	if err := s.guideRepo.Upsert(guide); err != nil {
		return nil, fmt.Errorf("upsert brand guide: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateBrandContext(ctx, brandID); err != nil {
			logger.Warn("brand context cache invalidation failed for %s: %v", brandID, err)
		}
	}

	return guide.ToContext()
}

func marshalStringList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
