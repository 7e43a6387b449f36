package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brandloom/brandloom-backend/internal/domain"
)

// Literal fallbacks for missing copy fields. Downstream renderers never
// branch on absence, so these are real strings, not empties.
const (
	DefaultHeadline     = "Template Headline"
	DefaultBody         = "Template body text"
	DefaultCallToAction = "Learn More"
)

// maxComponentPrecedence bounds the derived component precedence list
const maxComponentPrecedence = 5

// Package creation actions recorded in the collaboration log
const (
	ActionTemplateSelected = "template_selected"
	ActionVariantSelected  = "variant_selected"
)

// AssembleInput is everything the assembler merges into a new package
type AssembleInput struct {
	BrandID       string                `json:"brand_id"`
	ContentID     string                `json:"content_id"`
	RequestID     string                `json:"request_id"`
	Platform      string                `json:"platform"`
	Copy          domain.Copy           `json:"copy"`
	DesignContext *domain.DesignContext `json:"design_context,omitempty"`
	Visuals       []domain.Visual       `json:"visuals,omitempty"`
	CreatedBy     string                `json:"created_by"`
	Agent         string                `json:"agent"`
	Action        string                `json:"action"`
	Notes         string                `json:"notes"`
}

// PackageAssembler exclusively owns ContentPackage construction. Inputs are
// merged, never mutated in place, into a fresh package instance.
type PackageAssembler struct{}

// NewPackageAssembler creates a new PackageAssembler
func NewPackageAssembler() *PackageAssembler {
	return &PackageAssembler{}
}

// Assemble builds the canonical artifact. Pure: no I/O, no clock beyond the
// creation timestamps.
func (a *PackageAssembler) Assemble(in AssembleInput) *domain.ContentPackage {
	now := time.Now().UTC()

	contentID := in.ContentID
	if contentID == "" {
		contentID = uuid.New().String()
	}

	platform := in.Platform
	if platform == "" {
		platform = "general"
	}

	agent := in.Agent
	if agent == "" {
		agent = "assembler"
	}
	action := in.Action
	if action == "" {
		action = ActionVariantSelected
	}

	pkg := &domain.ContentPackage{
		BrandID:   in.BrandID,
		ContentID: contentID,
		RequestID: in.RequestID,
		Platform:  platform,
		Copy:      normalizeCopy(in.Copy),
		Visuals:   normalizeVisuals(in.Visuals),
		Status:    domain.PackageDraft,
		CollaborationLog: []domain.CollaborationEntry{
			{Agent: agent, Action: action, Timestamp: now, Notes: in.Notes},
		},
		CreatedBy: in.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if in.DesignContext != nil {
		pkg.DesignContext = *in.DesignContext
	}
	if len(pkg.DesignContext.ComponentPrecedence) > maxComponentPrecedence {
		pkg.DesignContext.ComponentPrecedence = pkg.DesignContext.ComponentPrecedence[:maxComponentPrecedence]
	}

	return pkg
}

// normalizeCopy fills missing copy fields with the documented literals
func normalizeCopy(c domain.Copy) domain.Copy {
	if strings.TrimSpace(c.Headline) == "" {
		c.Headline = DefaultHeadline
	}
	if strings.TrimSpace(c.Body) == "" {
		c.Body = DefaultBody
	}
	if strings.TrimSpace(c.CallToAction) == "" {
		c.CallToAction = DefaultCallToAction
	}
	if c.EstimatedReadTime == "" {
		c.EstimatedReadTime = estimateReadTime(c.Body)
	}
	return c
}

// normalizeVisuals copies visuals, assigning IDs and bounding each
// metadata color list
func normalizeVisuals(visuals []domain.Visual) []domain.Visual {
	out := make([]domain.Visual, len(visuals))
	for i, v := range visuals {
		if v.ID == "" {
			v.ID = uuid.New().String()
		}
		v.Metadata.ColorUsage = dedupeColors(v.Metadata.ColorUsage)
		out[i] = v
	}
	return out
}

// dedupeColors removes duplicates preserving first-seen order and caps the
// list at MaxColorUsage
func dedupeColors(colors []string) []string {
	seen := make(map[string]bool, len(colors))
	out := make([]string, 0, domain.MaxColorUsage)
	for _, c := range colors {
		key := normalizeColor(c)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
		if len(out) == domain.MaxColorUsage {
			break
		}
	}
	return out
}

// DeriveComponentPrecedence sorts design items by z-order descending and
// returns the types of the top items. Sorting is stable so equal z-orders
// keep source order, which keeps the derivation deterministic.
func DeriveComponentPrecedence(items []domain.DesignItem) []string {
	sorted := make([]domain.DesignItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ZIndex > sorted[j].ZIndex
	})

	out := make([]string, 0, maxComponentPrecedence)
	for _, item := range sorted {
		if item.Type == "" {
			continue
		}
		out = append(out, item.Type)
		if len(out) == maxComponentPrecedence {
			break
		}
	}
	return out
}

// estimateReadTime approximates reading time at ~200 words per minute
func estimateReadTime(body string) string {
	words := len(strings.Fields(body))
	if words == 0 {
		return "<1 min"
	}
	minutes := (words + 199) / 200
	if minutes <= 1 {
		return "<1 min"
	}
	return fmt.Sprintf("%d min", minutes)
}
