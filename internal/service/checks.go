package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/brandloom/brandloom-backend/internal/domain"
)

// Readability bounds (runes). Social copy under the lower bound reads as
// filler; past the upper bound it gets truncated by most platforms.
const (
	readabilityMinRunes = 20
	readabilityMaxRunes = 2200
)

// BrandCheck is one registered rule. Evaluate must be pure: same content and
// context always produce the same outcome.
type BrandCheck interface {
	Name() string
	FailPenalty() int
	WarnPenalty() int
	Evaluate(content domain.EvaluationContent, brand *domain.BrandContext) domain.EvaluationCheck
}

// brandCheck is the common implementation: a named pure function plus its
// penalty weights.
type brandCheck struct {
	name        string
	failPenalty int
	warnPenalty int
	evaluate    func(content domain.EvaluationContent, brand *domain.BrandContext) domain.EvaluationCheck
}

func (c *brandCheck) Name() string     { return c.name }
func (c *brandCheck) FailPenalty() int { return c.failPenalty }
func (c *brandCheck) WarnPenalty() int { return c.warnPenalty }
func (c *brandCheck) Evaluate(content domain.EvaluationContent, brand *domain.BrandContext) domain.EvaluationCheck {
	return c.evaluate(content, brand)
}

func pass(name, message string) domain.EvaluationCheck {
	return domain.EvaluationCheck{Name: name, Status: domain.CheckPass, Message: message}
}

func warn(name, message string) domain.EvaluationCheck {
	return domain.EvaluationCheck{Name: name, Status: domain.CheckWarn, Message: message}
}

func fail(name, message string) domain.EvaluationCheck {
	return domain.EvaluationCheck{Name: name, Status: domain.CheckFail, Message: message}
}

// DefaultChecks returns the registered rule set in its fixed declared order.
// Ordering is part of the contract: checks[] must be stable across calls.
func DefaultChecks() []BrandCheck {
	return []BrandCheck{
		newForbiddenPhraseCheck(),
		newRequiredDisclaimerCheck(),
		newToneAlignmentCheck(),
		newReadabilityCheck(),
		newColorThemeCheck(),
	}
}

// newForbiddenPhraseCheck flags any guardrail forbidden phrase appearing in
// the text, case-insensitively.
func newForbiddenPhraseCheck() BrandCheck {
	const name = "forbidden_phrase"
	return &brandCheck{
		name:        name,
		failPenalty: 30,
		warnPenalty: 10,
		evaluate: func(content domain.EvaluationContent, brand *domain.BrandContext) domain.EvaluationCheck {
			if content.Text == "" || len(brand.Guardrails.ForbiddenPhrases) == 0 {
				return pass(name, "no forbidden phrases found")
			}

			lower := strings.ToLower(content.Text)
			var found []string
			for _, phrase := range brand.Guardrails.ForbiddenPhrases {
				if phrase == "" {
					continue
				}
				if strings.Contains(lower, strings.ToLower(phrase)) {
					found = append(found, phrase)
				}
			}

			if len(found) > 0 {
				return fail(name, fmt.Sprintf("content uses forbidden phrase(s): %s", strings.Join(found, ", ")))
			}
			return pass(name, "no forbidden phrases found")
		},
	}
}

// newRequiredDisclaimerCheck verifies every required disclaimer appears in
// the text.
func newRequiredDisclaimerCheck() BrandCheck {
	const name = "required_disclaimer"
	return &brandCheck{
		name:        name,
		failPenalty: 20,
		warnPenalty: 10,
		evaluate: func(content domain.EvaluationContent, brand *domain.BrandContext) domain.EvaluationCheck {
			if len(brand.Guardrails.RequiredDisclaimers) == 0 {
				return pass(name, "no disclaimers required")
			}

			lower := strings.ToLower(content.Text)
			var missing []string
			for _, disclaimer := range brand.Guardrails.RequiredDisclaimers {
				if disclaimer == "" {
					continue
				}
				if !strings.Contains(lower, strings.ToLower(disclaimer)) {
					missing = append(missing, disclaimer)
				}
			}

			if len(missing) > 0 {
				return fail(name, fmt.Sprintf("missing required disclaimer(s): %s", strings.Join(missing, ", ")))
			}
			return pass(name, "all required disclaimers present")
		},
	}
}

// newToneAlignmentCheck validates the claimed tone against the brand's
// allowed tone descriptors. An empty whitelist is permissive, not empty.
func newToneAlignmentCheck() BrandCheck {
	const name = "tone_alignment"
	return &brandCheck{
		name:        name,
		failPenalty: 20,
		warnPenalty: 10,
		evaluate: func(content domain.EvaluationContent, brand *domain.BrandContext) domain.EvaluationCheck {
			tone := strings.TrimSpace(strings.ToLower(content.Tone))
			if tone == "" || len(brand.AllowedToneDescriptors) == 0 {
				return pass(name, "tone unconstrained")
			}

			for _, allowed := range brand.AllowedToneDescriptors {
				if strings.EqualFold(strings.TrimSpace(allowed), tone) {
					return pass(name, fmt.Sprintf("tone %q is on the brand's allowed list", content.Tone))
				}
			}
			return warn(name, fmt.Sprintf("tone %q is not among the brand's allowed tone descriptors", content.Tone))
		},
	}
}

// newReadabilityCheck applies simple length heuristics to text content
func newReadabilityCheck() BrandCheck {
	const name = "readability"
	return &brandCheck{
		name:        name,
		failPenalty: 20,
		warnPenalty: 10,
		evaluate: func(content domain.EvaluationContent, brand *domain.BrandContext) domain.EvaluationCheck {
			if content.Text == "" {
				return pass(name, "no text content to assess")
			}

			runes := utf8.RuneCountInString(strings.TrimSpace(content.Text))
			switch {
			case runes < readabilityMinRunes:
				return warn(name, fmt.Sprintf("copy is very short (%d characters); consider adding substance", runes))
			case runes > readabilityMaxRunes:
				return warn(name, fmt.Sprintf("copy is very long (%d characters); most platforms truncate past %d", runes, readabilityMaxRunes))
			default:
				return pass(name, "copy length within readable range")
			}
		},
	}
}

// newColorThemeCheck verifies visual color usage overlaps the brand palette
func newColorThemeCheck() BrandCheck {
	const name = "color_theme"
	return &brandCheck{
		name:        name,
		failPenalty: 20,
		warnPenalty: 10,
		evaluate: func(content domain.EvaluationContent, brand *domain.BrandContext) domain.EvaluationCheck {
			if content.VisualMetadata == nil || len(content.VisualMetadata.ColorUsage) == 0 || len(brand.BrandPalette) == 0 {
				return pass(name, "no visual color data to assess")
			}

			palette := make(map[string]bool, len(brand.BrandPalette))
			for _, c := range brand.BrandPalette {
				palette[normalizeColor(c)] = true
			}

			for _, used := range content.VisualMetadata.ColorUsage {
				if palette[normalizeColor(used)] {
					return pass(name, "visual colors overlap the brand palette")
				}
			}
			return warn(name, "none of the visual's colors appear in the brand palette")
		},
	}
}

func normalizeColor(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}
