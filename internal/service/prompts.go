package service

import (
	"fmt"
	"strings"

	"github.com/brandloom/brandloom-backend/internal/domain"
)

// buildDocSystemPrompt frames the model as the brand's copywriter and pins
// the JSON output contract
func buildDocSystemPrompt(brand *domain.BrandContext) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("You are the social media copywriter for the brand %q.", brand.BrandName))
	parts = append(parts, "Write platform-ready marketing copy that matches the brand profile below.")
	parts = append(parts, "")
	parts = append(parts, brandProfileSection(brand)...)
	parts = append(parts, "")
	parts = append(parts, "## Output format")
	parts = append(parts, "Return ONLY a JSON array, no other text:")
	parts = append(parts, `[{"label": string, "text": string}]`)
	parts = append(parts, `"text" is the complete copy for one variant.`)

	return strings.Join(parts, "\n")
}

// buildDocUserPrompt describes one generation request
func buildDocUserPrompt(req domain.AiDocGenerationRequest, count int) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Write %d distinct copy variants.", count))
	if req.ContentType != "" {
		parts = append(parts, fmt.Sprintf("- Content type: %s", req.ContentType))
	}
	if req.Platform != "" {
		parts = append(parts, fmt.Sprintf("- Platform: %s", req.Platform))
	}
	if req.Tone != "" {
		parts = append(parts, fmt.Sprintf("- Requested tone: %s", req.Tone))
	}
	if req.AdditionalContext != "" {
		parts = append(parts, fmt.Sprintf("- Additional context: %s", req.AdditionalContext))
	}

	return strings.Join(parts, "\n")
}

// buildDesignSystemPrompt frames the model as the brand's art director
func buildDesignSystemPrompt(brand *domain.BrandContext) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("You are the art director for the brand %q.", brand.BrandName))
	parts = append(parts, "Produce design briefs an image generator can execute, matching the brand profile below.")
	parts = append(parts, "")
	parts = append(parts, brandProfileSection(brand)...)
	parts = append(parts, "")
	parts = append(parts, "## Output format")
	parts = append(parts, "Return ONLY a JSON array, no other text:")
	parts = append(parts, `[{"label": string, "text": string, "layout_style": string}]`)
	parts = append(parts, `"text" is the full design prompt; "layout_style" is a short layout descriptor (e.g. "hero-centered", "split-grid").`)

	return strings.Join(parts, "\n")
}

// buildDesignUserPrompt describes one design generation request
func buildDesignUserPrompt(req domain.AiDesignGenerationRequest, count int) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Write %d distinct design briefs.", count))
	if req.Format != "" {
		parts = append(parts, fmt.Sprintf("- Format: %s", req.Format))
	}
	if req.Platform != "" {
		parts = append(parts, fmt.Sprintf("- Platform: %s", req.Platform))
	}
	if req.AspectRatio != "" {
		parts = append(parts, fmt.Sprintf("- Aspect ratio: %s", req.AspectRatio))
	}
	if req.Tone != "" {
		parts = append(parts, fmt.Sprintf("- Requested tone: %s", req.Tone))
	}
	if req.AdditionalContext != "" {
		parts = append(parts, fmt.Sprintf("- Additional context: %s", req.AdditionalContext))
	}

	return strings.Join(parts, "\n")
}

// brandProfileSection renders the shared brand rules block
func brandProfileSection(brand *domain.BrandContext) []string {
	var parts []string

	parts = append(parts, "## Brand profile")
	if brand.Tone != "" {
		parts = append(parts, fmt.Sprintf("- Tone: %s", brand.Tone))
	}
	if len(brand.Values) > 0 {
		parts = append(parts, fmt.Sprintf("- Values: %s", strings.Join(brand.Values, ", ")))
	}
	if brand.TargetAudience != "" {
		parts = append(parts, fmt.Sprintf("- Target audience: %s", brand.TargetAudience))
	}
	if len(brand.AllowedToneDescriptors) > 0 {
		parts = append(parts, fmt.Sprintf("- Allowed tone descriptors: %s", strings.Join(brand.AllowedToneDescriptors, ", ")))
	}
	if len(brand.Guardrails.ForbiddenPhrases) > 0 {
		parts = append(parts, fmt.Sprintf("- NEVER use these phrases: %s", strings.Join(brand.Guardrails.ForbiddenPhrases, ", ")))
	}
	if len(brand.Guardrails.RequiredDisclaimers) > 0 {
		parts = append(parts, fmt.Sprintf("- ALWAYS include these disclaimers verbatim: %s", strings.Join(brand.Guardrails.RequiredDisclaimers, ", ")))
	}
	if len(brand.BrandPalette) > 0 {
		parts = append(parts, fmt.Sprintf("- Brand palette: %s", strings.Join(brand.BrandPalette, ", ")))
	}

	return parts
}
