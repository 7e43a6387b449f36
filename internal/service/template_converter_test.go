package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brandloom/brandloom-backend/internal/domain"
)

func newTestConverter() *TemplateConverter {
	return NewTemplateConverter(NewPackageAssembler())
}

func threeItemDesign() domain.Design {
	return domain.Design{
		ID:      "design-1",
		Name:    "Summer Promo",
		Format:  domain.FormatSocialSquare,
		Palette: []string{"#6F4E37", "#F5E9DA"},
		Items: []domain.DesignItem{
			{ID: "t1", Type: domain.ItemText, Text: "Fresh roasts, every morning", FontSize: 24, ZIndex: 2},
			{ID: "t2", Type: domain.ItemText, Text: "Summer Blend Is Here", FontSize: 48, FontWeight: "bold", ZIndex: 3},
			{ID: "t3", Type: domain.ItemText, Text: "Shop the collection", FontSize: 28, ZIndex: 1},
			{ID: "img", Type: domain.ItemImage, AssetRef: "hero.png", ZIndex: 0},
		},
	}
}

func TestCreateContentPackageFromTemplate_RoleExtraction(t *testing.T) {
	conv := newTestConverter()

	pkg := conv.CreateContentPackageFromTemplate(threeItemDesign(), "brand-1", "tmpl-9", "user-1")

	assert.Equal(t, "Summer Blend Is Here", pkg.Copy.Headline)
	assert.Equal(t, "Fresh roasts, every morning", pkg.Copy.Body)
	assert.Equal(t, "Shop the collection", pkg.Copy.CallToAction)
	assert.Equal(t, "brand-1", pkg.BrandID)
	assert.Equal(t, "instagram", pkg.Platform)
	assert.Equal(t, domain.PackageDraft, pkg.Status)
}

func TestCreateContentPackageFromTemplate_RoleExtractionIsOrderIndependent(t *testing.T) {
	conv := newTestConverter()
	design := threeItemDesign()
	design.Items[0], design.Items[2] = design.Items[2], design.Items[0]

	pkg := conv.CreateContentPackageFromTemplate(design, "brand-1", "tmpl-9", "user-1")

	assert.Equal(t, "Summer Blend Is Here", pkg.Copy.Headline)
	assert.Equal(t, "Fresh roasts, every morning", pkg.Copy.Body)
	assert.Equal(t, "Shop the collection", pkg.Copy.CallToAction)
}

func TestCreateContentPackageFromTemplate_BoldBreaksFontSizeTies(t *testing.T) {
	conv := newTestConverter()
	design := domain.Design{
		ID:     "design-2",
		Format: domain.FormatBannerWide,
		Items: []domain.DesignItem{
			{ID: "a", Type: domain.ItemText, Text: "Regular title", FontSize: 32},
			{ID: "b", Type: domain.ItemText, Text: "Bold title", FontSize: 32, FontWeight: "700"},
		},
	}

	pkg := conv.CreateContentPackageFromTemplate(design, "brand-1", "", "user-1")

	assert.Equal(t, "Bold title", pkg.Copy.Headline)
}

func TestCreateContentPackageFromTemplate_EmptyDesignUsesLiteralDefaults(t *testing.T) {
	conv := newTestConverter()
	design := domain.Design{ID: "design-3", Format: domain.FormatCustom}

	pkg := conv.CreateContentPackageFromTemplate(design, "brand-1", "tmpl-1", "user-1")

	assert.Equal(t, "Template Headline", pkg.Copy.Headline)
	assert.Equal(t, "Template body text", pkg.Copy.Body)
	assert.Equal(t, "Learn More", pkg.Copy.CallToAction)
	assert.Equal(t, "general", pkg.Platform)
}

func TestCreateContentPackageFromTemplate_Idempotent(t *testing.T) {
	conv := newTestConverter()
	design := threeItemDesign()

	first := conv.CreateContentPackageFromTemplate(design, "brand-1", "tmpl-9", "user-1")
	second := conv.CreateContentPackageFromTemplate(design, "brand-1", "tmpl-9", "user-1")

	assert.Equal(t, first.Copy, second.Copy)
	assert.Equal(t, first.Visuals[0].ID, second.Visuals[0].ID)
	assert.Equal(t, first.Visuals[0].Metadata, second.Visuals[0].Metadata)
	assert.Equal(t, first.DesignContext.SuggestedLayout, second.DesignContext.SuggestedLayout)
	assert.Equal(t, first.DesignContext.ComponentPrecedence, second.DesignContext.ComponentPrecedence)
}

func TestCreateContentPackageFromTemplate_ComponentPrecedenceByZOrder(t *testing.T) {
	conv := newTestConverter()

	pkg := conv.CreateContentPackageFromTemplate(threeItemDesign(), "brand-1", "", "user-1")

	// headline z=3, body z=2, cta z=1, image z=0
	assert.Equal(t, []string{"text", "text", "text", "image"}, pkg.DesignContext.ComponentPrecedence)
}

func TestCreateContentPackageFromTemplate_ColorUsageCapped(t *testing.T) {
	conv := newTestConverter()
	design := domain.Design{
		ID:         "design-4",
		Format:     domain.FormatSocialStory,
		Background: "#FFFFFF",
		Palette: []string{
			"#111111", "#222222", "#333333", "#444444",
			"#555555", "#666666", "#777777",
		},
		Items: []domain.DesignItem{
			{ID: "t1", Type: domain.ItemText, Text: "Story headline here", FontSize: 40, Color: "#888888"},
			{ID: "t2", Type: domain.ItemText, Text: "Join us for the launch", FontSize: 20, Color: "#999999"},
		},
	}

	pkg := conv.CreateContentPackageFromTemplate(design, "brand-1", "", "user-1")

	assert.Len(t, pkg.Visuals, 1)
	assert.Len(t, pkg.Visuals[0].Metadata.ColorUsage, domain.MaxColorUsage)
	assert.Equal(t, []string{"#111111", "#222222", "#333333", "#444444", "#555555"},
		pkg.Visuals[0].Metadata.ColorUsage)
}

func TestPlatformForFormat(t *testing.T) {
	assert.Equal(t, "instagram", PlatformForFormat(domain.FormatSocialSquare))
	assert.Equal(t, "instagram", PlatformForFormat(domain.FormatSocialStory))
	assert.Equal(t, "linkedin", PlatformForFormat(domain.FormatBlogFeatured))
	assert.Equal(t, "facebook", PlatformForFormat(domain.FormatBannerWide))
	assert.Equal(t, "general", PlatformForFormat(domain.FormatCustom))
	assert.Equal(t, "general", PlatformForFormat("something_new"))
}

func TestCreateContentPackageFromTemplate_AspectRatioDerived(t *testing.T) {
	conv := newTestConverter()

	square := conv.CreateContentPackageFromTemplate(domain.Design{ID: "d", Format: domain.FormatSocialSquare}, "b", "", "u")
	assert.Equal(t, "1:1", square.Visuals[0].Metadata.AspectRatio)

	story := conv.CreateContentPackageFromTemplate(domain.Design{ID: "d", Format: domain.FormatSocialStory}, "b", "", "u")
	assert.Equal(t, "9:16", story.Visuals[0].Metadata.AspectRatio)

	explicit := conv.CreateContentPackageFromTemplate(domain.Design{ID: "d", Format: domain.FormatSocialStory, AspectRatio: "4:5"}, "b", "", "u")
	assert.Equal(t, "4:5", explicit.Visuals[0].Metadata.AspectRatio)
}

func TestCreateContentPackageFromTemplate_CreationLogEntry(t *testing.T) {
	conv := newTestConverter()

	pkg := conv.CreateContentPackageFromTemplate(threeItemDesign(), "brand-1", "tmpl-9", "user-1")

	assert.Len(t, pkg.CollaborationLog, 1)
	assert.Equal(t, "template_converter", pkg.CollaborationLog[0].Agent)
	assert.Equal(t, ActionTemplateSelected, pkg.CollaborationLog[0].Action)
}
