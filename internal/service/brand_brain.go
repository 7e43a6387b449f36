package service

import (
	"time"

	"github.com/brandloom/brandloom-backend/internal/domain"
	"github.com/brandloom/brandloom-backend/pkg/logger"
)

// BrandBrain runs the registered brand checks against a piece of content.
// Evaluation is deterministic, pure, and advisory: a low score never blocks
// content creation or package assembly downstream.
type BrandBrain struct {
	checks []BrandCheck
}

// NewBrandBrain creates an evaluator with the default rule set
func NewBrandBrain() *BrandBrain {
	return &BrandBrain{checks: DefaultChecks()}
}

// NewBrandBrainWithChecks creates an evaluator with an explicit rule set,
// in the given order
func NewBrandBrainWithChecks(checks []BrandCheck) *BrandBrain {
	return &BrandBrain{checks: checks}
}

// Evaluate runs every registered check in declared order and aggregates a
// 0-100 score. A panicking check is recorded as a fail and evaluation
// continues; the aggregate never errors for well-formed input.
func (b *BrandBrain) Evaluate(content domain.EvaluationContent, brand *domain.BrandContext) *domain.BrandBrainEvaluation {
	result := &domain.BrandBrainEvaluation{
		Score:             100,
		Checks:            make([]domain.EvaluationCheck, 0, len(b.checks)),
		Recommendations:   []string{},
		EvaluatedAt:       time.Now().UTC(),
		EvaluationVersion: domain.EvaluationVersion,
	}

	seen := make(map[string]bool)
	for _, check := range b.checks {
		outcome := runCheck(check, content, brand)
		result.Checks = append(result.Checks, outcome)

		switch outcome.Status {
		case domain.CheckFail:
			result.Score -= check.FailPenalty()
		case domain.CheckWarn:
			result.Score -= check.WarnPenalty()
		default:
			continue
		}

		rec := recommendationFor(outcome)
		if !seen[rec] {
			seen[rec] = true
			result.Recommendations = append(result.Recommendations, rec)
		}
	}

	if result.Score < 0 {
		result.Score = 0
	}

	return result
}

// runCheck isolates a single check so one broken rule cannot abort the
// whole evaluation.
func runCheck(check BrandCheck, content domain.EvaluationContent, brand *domain.BrandContext) (outcome domain.EvaluationCheck) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("brand check %s panicked: %v", check.Name(), r)
			outcome = domain.EvaluationCheck{
				Name:    check.Name(),
				Status:  domain.CheckFail,
				Message: "check errored and could not be evaluated",
			}
		}
	}()

	return check.Evaluate(content, brand)
}

// recommendationFor turns a non-passing check into one human-readable
// suggestion
func recommendationFor(c domain.EvaluationCheck) string {
	switch c.Status {
	case domain.CheckFail:
		return "Fix: " + c.Message
	default:
		return "Consider: " + c.Message
	}
}
