package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/brandloom/brandloom-backend/internal/common"
	"github.com/brandloom/brandloom-backend/internal/domain"
)

// --- Mock GenerationProvider ---

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Generate(ctx context.Context, req GenerationRequest) ([]RawCandidate, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]RawCandidate), args.Error(1)
}

func newTestVariantService(provider GenerationProvider) *VariantService {
	return NewVariantService(provider, nil, NewBrandBrain(), DefaultReviewScoreMin)
}

func docRequest(count int) domain.AiDocGenerationRequest {
	return domain.AiDocGenerationRequest{
		BrandID:      "brand-1",
		Tone:         "warm",
		Platform:     "instagram",
		VariantCount: count,
		BrandContext: testBrand(),
	}
}

func cleanCandidates(n int) []RawCandidate {
	out := make([]RawCandidate, n)
	for i := range out {
		out[i] = RawCandidate{
			Label: fmt.Sprintf("Option %d", i+1),
			Text:  fmt.Sprintf("Candidate %d: hand-roasted beans for the neighborhood. Caffeine content varies.", i+1),
		}
	}
	return out
}

// --- Tests ---

func TestGenerateDocVariants_Success(t *testing.T) {
	provider := new(mockProvider)
	svc := newTestVariantService(provider)

	provider.On("Generate", mock.Anything, mock.Anything).Return(cleanCandidates(3), nil).Once()

	resp, err := svc.GenerateDocVariants(context.Background(), docRequest(3))

	assert.NoError(t, err)
	assert.Equal(t, domain.ResponseOK, resp.Status)
	assert.Len(t, resp.Variants, 3)
	assert.False(t, resp.Metadata.RetryAttempted)
	assert.NotNil(t, resp.BrandBrainEvaluation)
	for i, v := range resp.Variants {
		assert.NotEmpty(t, v.ID)
		assert.Equal(t, fmt.Sprintf("Option %d", i+1), v.Label)
		assert.Equal(t, domain.VariantDraft, v.Status)
		assert.Equal(t, 1.0, v.BrandFidelityScore)
	}
	provider.AssertExpectations(t)
}

func TestGenerateDocVariants_EmptyBrandID(t *testing.T) {
	svc := newTestVariantService(new(mockProvider))

	_, err := svc.GenerateDocVariants(context.Background(), domain.AiDocGenerationRequest{})

	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestGenerateDocVariants_ProviderFailureBecomesErrorResponse(t *testing.T) {
	provider := new(mockProvider)
	svc := newTestVariantService(provider)

	provider.On("Generate", mock.Anything, mock.Anything).
		Return(nil, errors.New("upstream rejected the request")).Once()

	resp, err := svc.GenerateDocVariants(context.Background(), docRequest(3))

	assert.NoError(t, err)
	assert.Equal(t, domain.ResponseError, resp.Status)
	assert.Empty(t, resp.Variants)
	assert.Len(t, resp.Warnings, 1)
	assert.Equal(t, domain.SeverityCritical, resp.Warnings[0].Severity)
	provider.AssertExpectations(t)
}

func TestGenerateDocVariants_RetriesOnceOnTransientError(t *testing.T) {
	provider := new(mockProvider)
	svc := newTestVariantService(provider)

	provider.On("Generate", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: timeout", ErrProviderTransient)).Once()
	provider.On("Generate", mock.Anything, mock.Anything).
		Return(cleanCandidates(3), nil).Once()

	resp, err := svc.GenerateDocVariants(context.Background(), docRequest(3))

	assert.NoError(t, err)
	assert.Equal(t, domain.ResponseOK, resp.Status)
	assert.True(t, resp.Metadata.RetryAttempted)
	provider.AssertNumberOfCalls(t, "Generate", 2)
}

func TestGenerateDocVariants_NoRetryOnPermanentError(t *testing.T) {
	provider := new(mockProvider)
	svc := newTestVariantService(provider)

	provider.On("Generate", mock.Anything, mock.Anything).
		Return(nil, errors.New("invalid api key")).Once()

	resp, err := svc.GenerateDocVariants(context.Background(), docRequest(3))

	assert.NoError(t, err)
	assert.Equal(t, domain.ResponseError, resp.Status)
	provider.AssertNumberOfCalls(t, "Generate", 1)
}

func TestGenerateDocVariants_PartialWhenFewerReturned(t *testing.T) {
	provider := new(mockProvider)
	svc := newTestVariantService(provider)

	provider.On("Generate", mock.Anything, mock.Anything).Return(cleanCandidates(2), nil).Once()

	resp, err := svc.GenerateDocVariants(context.Background(), docRequest(4))

	assert.NoError(t, err)
	assert.Equal(t, domain.ResponsePartial, resp.Status)
	assert.Len(t, resp.Variants, 2)
	assert.Len(t, resp.Warnings, 1)
	assert.Equal(t, domain.SeverityWarning, resp.Warnings[0].Severity)
}

func TestGenerateDocVariants_LowScoreNeedsReview(t *testing.T) {
	provider := new(mockProvider)
	svc := newTestVariantService(provider)

	// forbidden phrase (-30) plus missing disclaimer (-20) lands under the
	// review threshold
	provider.On("Generate", mock.Anything, mock.Anything).Return([]RawCandidate{
		{Label: "Option 1", Text: "Get our cheap blend while supplies last, friends of the roast."},
	}, nil).Once()

	resp, err := svc.GenerateDocVariants(context.Background(), docRequest(1))

	assert.NoError(t, err)
	assert.Equal(t, domain.VariantNeedsReview, resp.Variants[0].Status)
	assert.Contains(t, resp.Variants[0].ComplianceTags, "forbidden_phrase")
}

func TestGenerateDocVariants_MetadataAggregation(t *testing.T) {
	provider := new(mockProvider)
	svc := newTestVariantService(provider)

	provider.On("Generate", mock.Anything, mock.Anything).Return([]RawCandidate{
		{Label: "A", Text: "Hand-roasted beans for the neighborhood, always. Caffeine content varies."},
		{Label: "B", Text: "Get our cheap blend while supplies last, friends of the roast."},
	}, nil).Once()

	resp, err := svc.GenerateDocVariants(context.Background(), docRequest(2))

	assert.NoError(t, err)
	assert.Greater(t, resp.Metadata.AverageBrandFidelityScore, 0.0)
	assert.Less(t, resp.Metadata.AverageBrandFidelityScore, 1.0)
	assert.Equal(t, 1, resp.Metadata.ComplianceTagCounts["forbidden_phrase"])
	assert.False(t, resp.Metadata.GeneratedAt.IsZero())
	// best evaluation is the clean candidate
	assert.Equal(t, 100, resp.BrandBrainEvaluation.Score)
}

func TestGenerateDesignVariants_Success(t *testing.T) {
	provider := new(mockProvider)
	svc := newTestVariantService(provider)

	provider.On("Generate", mock.Anything, mock.Anything).Return([]RawCandidate{
		{Label: "Minimal", Text: "A minimal flat-lay of beans on warm linen, soft morning light.", LayoutStyle: "minimal"},
	}, nil).Once()

	resp, err := svc.GenerateDesignVariants(context.Background(), domain.AiDesignGenerationRequest{
		BrandID:      "brand-1",
		Format:       domain.FormatSocialSquare,
		AspectRatio:  "1:1",
		VariantCount: 1,
		BrandContext: testBrand(),
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.ResponseOK, resp.Status)
	assert.Len(t, resp.Variants, 1)
	assert.Equal(t, "minimal", resp.Variants[0].LayoutStyle)
	assert.Equal(t, "1:1", resp.Variants[0].AspectRatio)
}

func TestClampVariantCount(t *testing.T) {
	assert.Equal(t, defaultVariantCount, clampVariantCount(0))
	assert.Equal(t, defaultVariantCount, clampVariantCount(-2))
	assert.Equal(t, 4, clampVariantCount(4))
	assert.Equal(t, maxVariantCount, clampVariantCount(50))
}

func TestCandidateLabel_FallsBackToIndexed(t *testing.T) {
	assert.Equal(t, "Custom", candidateLabel("Custom", 0))
	assert.Equal(t, "Variant 3", candidateLabel("  ", 2))
}
