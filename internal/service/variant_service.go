package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brandloom/brandloom-backend/internal/common"
	"github.com/brandloom/brandloom-backend/internal/domain"
	"github.com/brandloom/brandloom-backend/pkg/logger"
)

const (
	defaultVariantCount = 3
	maxVariantCount     = 5

	// DefaultReviewScoreMin is the brand fidelity score (0-100) below which
	// a variant is returned as needs_review instead of draft
	DefaultReviewScoreMin = 70
)

// VariantService generates doc/design variants through the external
// provider and scores each candidate with the Brand Brain. Provider
// failures become typed error responses, never propagated panics or errors
// past this boundary.
type VariantService struct {
	provider       GenerationProvider
	brandCtxSvc    *BrandContextService
	brain          *BrandBrain
	reviewScoreMin int
}

// NewVariantService creates a new VariantService
func NewVariantService(provider GenerationProvider, brandCtxSvc *BrandContextService, brain *BrandBrain, reviewScoreMin int) *VariantService {
	if reviewScoreMin <= 0 {
		reviewScoreMin = DefaultReviewScoreMin
	}
	return &VariantService{
		provider:       provider,
		brandCtxSvc:    brandCtxSvc,
		brain:          brain,
		reviewScoreMin: reviewScoreMin,
	}
}

// GenerateDocVariants produces scored caption/document variants.
// The returned error is only for validation-class failures (bad brand,
// malformed request); provider trouble is reported in the response status.
func (s *VariantService) GenerateDocVariants(ctx context.Context, req domain.AiDocGenerationRequest) (*domain.AiDocGenerationResponse, error) {
	if strings.TrimSpace(req.BrandID) == "" {
		return nil, common.ErrInvalidInput
	}

	brand, err := s.resolveBrand(ctx, req.BrandID, req.BrandContext)
	if err != nil {
		return nil, err
	}

	count := clampVariantCount(req.VariantCount)
	genReq := GenerationRequest{
		System: buildDocSystemPrompt(brand),
		Prompt: buildDocUserPrompt(req, count),
		Count:  count,
	}

	candidates, retried, genErr := s.generateWithRetry(ctx, genReq)
	if genErr != nil {
		return &domain.AiDocGenerationResponse{
			Status:       domain.ResponseError,
			Variants:     []domain.AiDocVariant{},
			BrandContext: brand,
			Metadata:     errorMetadata(retried),
			Warnings: []domain.Warning{
				{Severity: domain.SeverityCritical, Message: fmt.Sprintf("generation provider failed: %v", genErr)},
			},
		}, nil
	}
	if ctx.Err() != nil {
		// Caller aborted; discard partial work rather than returning it
		return nil, ctx.Err()
	}

	evals := s.evaluateAll(brand, candidates, func(c RawCandidate) domain.EvaluationContent {
		return domain.EvaluationContent{Text: c.Text, Tone: req.Tone}
	})

	variants := make([]domain.AiDocVariant, len(candidates))
	for i, c := range candidates {
		eval := evals[i]
		variants[i] = domain.AiDocVariant{
			ID:                 uuid.New().String(),
			Label:              candidateLabel(c.Label, i),
			Content:            c.Text,
			Tone:               req.Tone,
			Platform:           req.Platform,
			BrandFidelityScore: eval.FidelityScore(),
			ComplianceTags:     eval.ComplianceTags(),
			Status:             s.variantStatus(eval.Score),
		}
	}

	resp := &domain.AiDocGenerationResponse{
		Status:               domain.ResponseOK,
		Variants:             variants,
		BrandContext:         brand,
		Metadata:             aggregateMetadata(evals, retried),
		BrandBrainEvaluation: bestEvaluation(evals),
	}
	if len(variants) < count {
		resp.Status = domain.ResponsePartial
		resp.Warnings = append(resp.Warnings, domain.Warning{
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("provider returned %d of %d requested variants", len(variants), count),
		})
	}

	logger.WithBrandID(req.BrandID).Info().
		Int("variants", len(variants)).
		Float64("avg_fidelity", resp.Metadata.AverageBrandFidelityScore).
		Bool("retried", retried).
		Msg("doc variants generated")

	return resp, nil
}

// GenerateDesignVariants produces scored design prompt variants
func (s *VariantService) GenerateDesignVariants(ctx context.Context, req domain.AiDesignGenerationRequest) (*domain.AiDesignGenerationResponse, error) {
	if strings.TrimSpace(req.BrandID) == "" {
		return nil, common.ErrInvalidInput
	}

	brand, err := s.resolveBrand(ctx, req.BrandID, req.BrandContext)
	if err != nil {
		return nil, err
	}

	count := clampVariantCount(req.VariantCount)
	genReq := GenerationRequest{
		System: buildDesignSystemPrompt(brand),
		Prompt: buildDesignUserPrompt(req, count),
		Count:  count,
	}

	candidates, retried, genErr := s.generateWithRetry(ctx, genReq)
	if genErr != nil {
		return &domain.AiDesignGenerationResponse{
			Status:       domain.ResponseError,
			Variants:     []domain.AiDesignVariant{},
			BrandContext: brand,
			Metadata:     errorMetadata(retried),
			Warnings: []domain.Warning{
				{Severity: domain.SeverityCritical, Message: fmt.Sprintf("generation provider failed: %v", genErr)},
			},
		}, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	evals := s.evaluateAll(brand, candidates, func(c RawCandidate) domain.EvaluationContent {
		return domain.EvaluationContent{Text: c.Text, Tone: req.Tone}
	})

	variants := make([]domain.AiDesignVariant, len(candidates))
	for i, c := range candidates {
		eval := evals[i]
		variants[i] = domain.AiDesignVariant{
			ID:                 uuid.New().String(),
			Label:              candidateLabel(c.Label, i),
			Prompt:             c.Text,
			LayoutStyle:        c.LayoutStyle,
			Platform:           req.Platform,
			AspectRatio:        req.AspectRatio,
			BrandFidelityScore: eval.FidelityScore(),
			ComplianceTags:     eval.ComplianceTags(),
			Status:             s.variantStatus(eval.Score),
		}
	}

	resp := &domain.AiDesignGenerationResponse{
		Status:               domain.ResponseOK,
		Variants:             variants,
		BrandContext:         brand,
		Metadata:             aggregateMetadata(evals, retried),
		BrandBrainEvaluation: bestEvaluation(evals),
	}
	if len(variants) < count {
		resp.Status = domain.ResponsePartial
		resp.Warnings = append(resp.Warnings, domain.Warning{
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("provider returned %d of %d requested variants", len(variants), count),
		})
	}

	logger.WithBrandID(req.BrandID).Info().
		Int("variants", len(variants)).
		Float64("avg_fidelity", resp.Metadata.AverageBrandFidelityScore).
		Bool("retried", retried).
		Msg("design variants generated")

	return resp, nil
}

// resolveBrand uses the caller-supplied context override when present,
// otherwise resolves from storage
func (s *VariantService) resolveBrand(ctx context.Context, brandID string, override *domain.BrandContext) (*domain.BrandContext, error) {
	if override != nil {
		return override, nil
	}
	return s.brandCtxSvc.Resolve(ctx, brandID)
}

// generateWithRetry calls the provider, retrying exactly once on transient
// (network/timeout class) failures
func (s *VariantService) generateWithRetry(ctx context.Context, req GenerationRequest) ([]RawCandidate, bool, error) {
	candidates, err := s.provider.Generate(ctx, req)
	if err == nil {
		return candidates, false, nil
	}
	if !errors.Is(err, ErrProviderTransient) || ctx.Err() != nil {
		return nil, false, err
	}

	logger.Warn("provider call failed transiently, retrying once: %v", err)
	candidates, err = s.provider.Generate(ctx, req)
	return candidates, true, err
}

// evaluateAll fans out one Brand Brain evaluation per candidate and waits
// for all to finish. Each evaluation is pure and independent, so ordering
// of completion does not matter; results land at their candidate's index.
// The brand context is read-only across goroutines.
func (s *VariantService) evaluateAll(brand *domain.BrandContext, candidates []RawCandidate, toContent func(RawCandidate) domain.EvaluationContent) []*domain.BrandBrainEvaluation {
	evals := make([]*domain.BrandBrainEvaluation, len(candidates))

	var wg sync.WaitGroup
	for i, c := range candidates {
		wg.Add(1)
		go func(idx int, cand RawCandidate) {
			defer wg.Done()
			evals[idx] = s.brain.Evaluate(toContent(cand), brand)
		}(i, c)
	}
	wg.Wait()

	return evals
}

func (s *VariantService) variantStatus(score int) string {
	if score < s.reviewScoreMin {
		return domain.VariantNeedsReview
	}
	return domain.VariantDraft
}

func clampVariantCount(n int) int {
	if n <= 0 {
		return defaultVariantCount
	}
	if n > maxVariantCount {
		return maxVariantCount
	}
	return n
}

func candidateLabel(label string, idx int) string {
	if strings.TrimSpace(label) != "" {
		return label
	}
	return fmt.Sprintf("Variant %d", idx+1)
}

func errorMetadata(retried bool) domain.GenerationMetadata {
	return domain.GenerationMetadata{
		ComplianceTagCounts: map[string]int{},
		RetryAttempted:      retried,
		GeneratedAt:         time.Now().UTC(),
	}
}

// aggregateMetadata computes the fan-in observability fields over all
// per-variant evaluations
func aggregateMetadata(evals []*domain.BrandBrainEvaluation, retried bool) domain.GenerationMetadata {
	meta := domain.GenerationMetadata{
		ComplianceTagCounts: map[string]int{},
		RetryAttempted:      retried,
		GeneratedAt:         time.Now().UTC(),
	}

	if len(evals) == 0 {
		return meta
	}

	var sum float64
	for _, eval := range evals {
		sum += eval.FidelityScore()
		for _, tag := range eval.ComplianceTags() {
			meta.ComplianceTagCounts[tag]++
		}
	}
	meta.AverageBrandFidelityScore = sum / float64(len(evals))

	return meta
}

// bestEvaluation returns the highest-scoring evaluation for the optional
// response field; ties keep the earliest variant
func bestEvaluation(evals []*domain.BrandBrainEvaluation) *domain.BrandBrainEvaluation {
	var best *domain.BrandBrainEvaluation
	for _, eval := range evals {
		if best == nil || eval.Score > best.Score {
			best = eval
		}
	}
	return best
}
