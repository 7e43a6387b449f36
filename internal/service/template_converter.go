package service

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/brandloom/brandloom-backend/internal/domain"
)

// actionWordPattern marks call-to-action text
var actionWordPattern = regexp.MustCompile(`(?i)\b(shop|buy|learn|get|try|start|join|subscribe|order|discover)\b`)

// formatPlatforms maps design formats to publishing platforms
var formatPlatforms = map[string]string{
	domain.FormatSocialSquare: "instagram",
	domain.FormatSocialStory:  "instagram",
	domain.FormatBlogFeatured: "linkedin",
	domain.FormatBannerWide:   "facebook",
}

// boldHeadlineBonus nudges bold text above same-size regular text when
// picking the headline
const boldHeadlineBonus = 4.0

// TemplateConverter derives a ContentPackage from a static design template.
// Pure transform: no AI call, no I/O. Used as the fallback/starting point
// when a brand starts from a studio template instead of generation.
type TemplateConverter struct {
	assembler *PackageAssembler
}

// NewTemplateConverter creates a new TemplateConverter
func NewTemplateConverter(assembler *PackageAssembler) *TemplateConverter {
	return &TemplateConverter{assembler: assembler}
}

// CreateContentPackageFromTemplate extracts copy roles from the design's
// text items and assembles a draft package. A design with no text items
// falls through to the assembler's literal defaults.
func (c *TemplateConverter) CreateContentPackageFromTemplate(design domain.Design, brandID, templateID, createdBy string) *domain.ContentPackage {
	textItems := design.TextItems()

	headline, headlineIdx := pickHeadline(textItems)
	cta, ctaIdx := pickCallToAction(textItems, headlineIdx)
	body := pickBody(textItems, headlineIdx, ctaIdx)

	designCtx := &domain.DesignContext{
		SuggestedLayout:     suggestedLayout(design.Format),
		ComponentPrecedence: DeriveComponentPrecedence(design.Items),
		ColorTheme:          colorTheme(design),
		AccessibilityNotes:  []string{"verify text contrast against the background meets WCAG AA"},
	}

	templateRef := templateID
	if templateRef == "" {
		templateRef = design.ID
	}

	visual := domain.Visual{
		ID:          fmt.Sprintf("%s-visual-1", design.ID),
		Type:        "template",
		Format:      design.Format,
		TemplateRef: templateRef,
		Metadata: domain.VisualMetadata{
			ColorUsage:    collectColors(design),
			TypeStructure: typeStructure(textItems),
			Emotion:       "neutral",
			LayoutStyle:   suggestedLayout(design.Format),
			AspectRatio:   aspectRatio(design),
		},
	}

	return c.assembler.Assemble(AssembleInput{
		BrandID:   brandID,
		Platform:  PlatformForFormat(design.Format),
		Copy:      domain.Copy{Headline: headline, Body: body, CallToAction: cta},
		DesignContext: designCtx,
		Visuals:   []domain.Visual{visual},
		CreatedBy: createdBy,
		Agent:     "template_converter",
		Action:    ActionTemplateSelected,
		Notes:     fmt.Sprintf("converted from design %q", design.Name),
	})
}

// PlatformForFormat maps a design format to its platform; unknown formats
// fall back to "general"
func PlatformForFormat(format string) string {
	if platform, ok := formatPlatforms[format]; ok {
		return platform
	}
	return "general"
}

// pickHeadline scores each text item by font size, with a bonus for bold
// weight, and returns the winner. Order-independent: ties keep the first
// item by source order.
func pickHeadline(items []domain.DesignItem) (string, int) {
	best := -1
	bestScore := 0.0
	for i, item := range items {
		score := item.FontSize
		if isBold(item.FontWeight) {
			score += boldHeadlineBonus
		}
		if best == -1 || score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best == -1 {
		return "", -1
	}
	return strings.TrimSpace(items[best].Text), best
}

// pickCallToAction prefers the first non-headline item whose text matches
// the action-word pattern; failing that, the last non-headline item wins.
func pickCallToAction(items []domain.DesignItem, headlineIdx int) (string, int) {
	for i, item := range items {
		if i == headlineIdx {
			continue
		}
		if actionWordPattern.MatchString(item.Text) {
			return strings.TrimSpace(item.Text), i
		}
	}

	for i := len(items) - 1; i >= 0; i-- {
		if i != headlineIdx {
			return strings.TrimSpace(items[i].Text), i
		}
	}
	return "", -1
}

// pickBody chooses among the remaining items the one whose font size is
// closest to the median of the remaining sizes (the mid-range text is the
// body in practice; headline is biggest, CTA is matched by words).
func pickBody(items []domain.DesignItem, headlineIdx, ctaIdx int) string {
	var remaining []int
	for i := range items {
		if i != headlineIdx && i != ctaIdx {
			remaining = append(remaining, i)
		}
	}
	if len(remaining) == 0 {
		return ""
	}
	if len(remaining) == 1 {
		return strings.TrimSpace(items[remaining[0]].Text)
	}

	sizes := make([]float64, len(remaining))
	for i, idx := range remaining {
		sizes[i] = items[idx].FontSize
	}
	sort.Float64s(sizes)
	median := sizes[len(sizes)/2]

	best := remaining[0]
	bestDist := distance(items[best].FontSize, median)
	for _, idx := range remaining[1:] {
		if d := distance(items[idx].FontSize, median); d < bestDist {
			best = idx
			bestDist = d
		}
	}
	return strings.TrimSpace(items[best].Text)
}

func distance(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

func isBold(weight string) bool {
	switch strings.ToLower(strings.TrimSpace(weight)) {
	case "bold", "bolder", "600", "700", "800", "900":
		return true
	}
	return false
}

// collectColors gathers the design palette plus item colors, in first-seen
// order; the assembler dedupes and caps the list
func collectColors(design domain.Design) []string {
	var colors []string
	colors = append(colors, design.Palette...)
	if design.Background != "" {
		colors = append(colors, design.Background)
	}
	for _, item := range design.Items {
		if item.Color != "" {
			colors = append(colors, item.Color)
		}
	}
	return colors
}

func suggestedLayout(format string) string {
	switch format {
	case domain.FormatSocialStory:
		return "vertical-stack"
	case domain.FormatBannerWide:
		return "horizontal-banner"
	case domain.FormatBlogFeatured:
		return "hero-image-left"
	default:
		return "centered-card"
	}
}

func colorTheme(design domain.Design) string {
	if len(design.Palette) > 0 {
		return design.Palette[0]
	}
	return design.Background
}

func typeStructure(textItems []domain.DesignItem) string {
	switch len(textItems) {
	case 0:
		return "none"
	case 1:
		return "headline-only"
	case 2:
		return "headline-cta"
	default:
		return "headline-body-cta"
	}
}

func aspectRatio(design domain.Design) string {
	if design.AspectRatio != "" {
		return design.AspectRatio
	}
	switch design.Format {
	case domain.FormatSocialSquare:
		return "1:1"
	case domain.FormatSocialStory:
		return "9:16"
	case domain.FormatBannerWide:
		return "16:9"
	case domain.FormatBlogFeatured:
		return "1.91:1"
	default:
		return ""
	}
}
