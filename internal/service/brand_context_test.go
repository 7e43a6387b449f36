package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/brandloom/brandloom-backend/internal/common"
	"github.com/brandloom/brandloom-backend/internal/domain"
)

// --- Mock BrandGuideRepository ---

type mockGuideRepo struct {
	mock.Mock
}

func (m *mockGuideRepo) FindByBrandID(brandID string) (*domain.BrandGuide, error) {
	args := m.Called(brandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BrandGuide), args.Error(1)
}

func (m *mockGuideRepo) Upsert(guide *domain.BrandGuide) error {
	return m.Called(guide).Error(0)
}

// --- Tests ---

func TestResolve_Success(t *testing.T) {
	repo := new(mockGuideRepo)
	svc := NewBrandContextService(repo)

	repo.On("FindByBrandID", "brand-1").Return(&domain.BrandGuide{
		BrandID:                "brand-1",
		BrandName:              "Acme Coffee",
		Tone:                   "warm",
		Values:                 `["craft","community"]`,
		ForbiddenPhrases:       `["cheap"]`,
		RequiredDisclaimers:    `["Caffeine content varies."]`,
		AllowedToneDescriptors: `["warm","friendly"]`,
		BrandPalette:           `["#6F4E37"]`,
	}, nil)

	ctx, err := svc.Resolve(context.Background(), "brand-1")

	assert.NoError(t, err)
	assert.Equal(t, "Acme Coffee", ctx.BrandName)
	assert.Equal(t, []string{"craft", "community"}, ctx.Values)
	assert.Equal(t, []string{"cheap"}, ctx.Guardrails.ForbiddenPhrases)
	assert.Equal(t, []string{"Caffeine content varies."}, ctx.Guardrails.RequiredDisclaimers)
	repo.AssertExpectations(t)
}

func TestResolve_NotFound(t *testing.T) {
	repo := new(mockGuideRepo)
	svc := NewBrandContextService(repo)

	repo.On("FindByBrandID", "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Resolve(context.Background(), "ghost")

	assert.ErrorIs(t, err, common.ErrBrandNotFound)
}

func TestResolve_EmptyBrandID(t *testing.T) {
	svc := NewBrandContextService(new(mockGuideRepo))

	_, err := svc.Resolve(context.Background(), "  ")

	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestResolve_EmptyListColumnsDefaultToEmptySlices(t *testing.T) {
	repo := new(mockGuideRepo)
	svc := NewBrandContextService(repo)

	repo.On("FindByBrandID", "brand-2").Return(&domain.BrandGuide{
		BrandID:   "brand-2",
		BrandName: "Minimal Brand",
		Values:    "null",
	}, nil)

	ctx, err := svc.Resolve(context.Background(), "brand-2")

	assert.NoError(t, err)
	assert.Empty(t, ctx.Values)
	assert.Empty(t, ctx.Guardrails.ForbiddenPhrases)
	assert.Empty(t, ctx.AllowedToneDescriptors)
	assert.NotNil(t, ctx.Values)
}

func TestResolve_MalformedGuide(t *testing.T) {
	repo := new(mockGuideRepo)
	svc := NewBrandContextService(repo)

	repo.On("FindByBrandID", "brand-3").Return(&domain.BrandGuide{
		BrandID: "brand-3",
		Values:  `{"not":"a list"}`,
	}, nil)

	_, err := svc.Resolve(context.Background(), "brand-3")

	assert.ErrorIs(t, err, common.ErrInvalidBrandGuide)
}

func TestUpsertGuide_MarshalsListsAndReturnsContext(t *testing.T) {
	repo := new(mockGuideRepo)
	svc := NewBrandContextService(repo)

	repo.On("Upsert", mock.MatchedBy(func(g *domain.BrandGuide) bool {
		return g.BrandID == "brand-1" &&
			g.ForbiddenPhrases == `["cheap","free money"]` &&
			g.Values == `["craft"]`
	})).Return(nil)

	ctx, err := svc.UpsertGuide(context.Background(), "brand-1", domain.BrandGuideInput{
		BrandName:        "Acme Coffee",
		Tone:             "warm",
		Values:           []string{"craft"},
		ForbiddenPhrases: []string{"cheap", "free money"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "Acme Coffee", ctx.BrandName)
	assert.Equal(t, []string{"cheap", "free money"}, ctx.Guardrails.ForbiddenPhrases)
	repo.AssertExpectations(t)
}

func TestUpsertGuide_NilListsBecomeEmptyArrays(t *testing.T) {
	repo := new(mockGuideRepo)
	svc := NewBrandContextService(repo)

	repo.On("Upsert", mock.MatchedBy(func(g *domain.BrandGuide) bool {
		return g.Values == "[]" && g.BrandPalette == "[]"
	})).Return(nil)

	_, err := svc.UpsertGuide(context.Background(), "brand-1", domain.BrandGuideInput{
		BrandName: "Bare Brand",
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
