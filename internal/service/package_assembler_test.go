package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brandloom/brandloom-backend/internal/domain"
)

func TestAssemble_LiteralDefaultsForMissingCopy(t *testing.T) {
	a := NewPackageAssembler()

	pkg := a.Assemble(AssembleInput{BrandID: "brand-1"})

	assert.Equal(t, DefaultHeadline, pkg.Copy.Headline)
	assert.Equal(t, DefaultBody, pkg.Copy.Body)
	assert.Equal(t, DefaultCallToAction, pkg.Copy.CallToAction)
	assert.Equal(t, domain.PackageDraft, pkg.Status)
	assert.Equal(t, "general", pkg.Platform)
	assert.NotEmpty(t, pkg.ContentID)
}

func TestAssemble_ProvidedCopyKept(t *testing.T) {
	a := NewPackageAssembler()

	pkg := a.Assemble(AssembleInput{
		BrandID:  "brand-1",
		Platform: "instagram",
		Copy: domain.Copy{
			Headline:     "Big Launch",
			Body:         "We are opening our doors this weekend.",
			CallToAction: "Join us",
		},
	})

	assert.Equal(t, "Big Launch", pkg.Copy.Headline)
	assert.Equal(t, "We are opening our doors this weekend.", pkg.Copy.Body)
	assert.Equal(t, "Join us", pkg.Copy.CallToAction)
	assert.Equal(t, "instagram", pkg.Platform)
}

func TestAssemble_StableContentIDWhenProvided(t *testing.T) {
	a := NewPackageAssembler()

	pkg := a.Assemble(AssembleInput{BrandID: "brand-1", ContentID: "content-42"})

	assert.Equal(t, "content-42", pkg.ContentID)
}

func TestAssemble_SingleCreationLogEntry(t *testing.T) {
	a := NewPackageAssembler()

	pkg := a.Assemble(AssembleInput{
		BrandID: "brand-1",
		Agent:   "studio",
		Action:  ActionVariantSelected,
		Notes:   "picked variant 2",
	})

	assert.Len(t, pkg.CollaborationLog, 1)
	assert.Equal(t, "studio", pkg.CollaborationLog[0].Agent)
	assert.Equal(t, ActionVariantSelected, pkg.CollaborationLog[0].Action)
	assert.Equal(t, "picked variant 2", pkg.CollaborationLog[0].Notes)
	assert.False(t, pkg.CollaborationLog[0].Timestamp.IsZero())
}

func TestAssemble_VisualColorUsageDedupedAndCapped(t *testing.T) {
	a := NewPackageAssembler()

	pkg := a.Assemble(AssembleInput{
		BrandID: "brand-1",
		Visuals: []domain.Visual{{
			Type: "generated",
			Metadata: domain.VisualMetadata{
				ColorUsage: []string{
					"#111111", "#111111", "#222222", "#333333",
					"#444444", "#555555", "#666666", "#777777",
				},
			},
		}},
	})

	got := pkg.Visuals[0].Metadata.ColorUsage
	assert.Len(t, got, domain.MaxColorUsage)
	assert.Equal(t, []string{"#111111", "#222222", "#333333", "#444444", "#555555"}, got)
	assert.NotEmpty(t, pkg.Visuals[0].ID)
}

func TestAssemble_ComponentPrecedenceTruncated(t *testing.T) {
	a := NewPackageAssembler()

	pkg := a.Assemble(AssembleInput{
		BrandID: "brand-1",
		DesignContext: &domain.DesignContext{
			ComponentPrecedence: []string{"text", "image", "shape", "text", "image", "shape", "text"},
		},
	})

	assert.Len(t, pkg.DesignContext.ComponentPrecedence, 5)
}

func TestDeriveComponentPrecedence_StableForEqualZIndex(t *testing.T) {
	items := []domain.DesignItem{
		{Type: "text", ZIndex: 1},
		{Type: "image", ZIndex: 1},
		{Type: "shape", ZIndex: 2},
	}

	assert.Equal(t, []string{"shape", "text", "image"}, DeriveComponentPrecedence(items))
}

func TestEstimateReadTime(t *testing.T) {
	assert.Equal(t, "<1 min", estimateReadTime(""))
	assert.Equal(t, "<1 min", estimateReadTime("a handful of words"))
	assert.Equal(t, "2 min", estimateReadTime(strings.Repeat("word ", 350)))
}
