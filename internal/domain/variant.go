package domain

import "time"

// Variant statuses
const (
	VariantDraft       = "draft"
	VariantApproved    = "approved"
	VariantNeedsReview = "needs_review"
)

// Generation response statuses
const (
	ResponseOK      = "ok"
	ResponsePartial = "partial"
	ResponseError   = "error"
)

// Warning severities
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
)

// Warning is a non-fatal problem surfaced on a generation response
type Warning struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// AiDocVariant is one generated copy candidate. Immutable once returned;
// human selection promotes at most one variant into a ContentPackage.
type AiDocVariant struct {
	ID                 string   `json:"id"`
	Label              string   `json:"label"`
	Content            string   `json:"content"`
	Tone               string   `json:"tone,omitempty"`
	Platform           string   `json:"platform,omitempty"`
	BrandFidelityScore float64  `json:"brand_fidelity_score"`
	ComplianceTags     []string `json:"compliance_tags"`
	Status             string   `json:"status"`
}

// AiDesignVariant is one generated design candidate
type AiDesignVariant struct {
	ID                 string   `json:"id"`
	Label              string   `json:"label"`
	Prompt             string   `json:"prompt"`
	LayoutStyle        string   `json:"layout_style,omitempty"`
	Platform           string   `json:"platform,omitempty"`
	AspectRatio        string   `json:"aspect_ratio,omitempty"`
	BrandFidelityScore float64  `json:"brand_fidelity_score"`
	ComplianceTags     []string `json:"compliance_tags"`
	Status             string   `json:"status"`
}

// AiDocGenerationRequest is the inbound contract from the AI doc routes
type AiDocGenerationRequest struct {
	BrandID           string        `json:"brand_id" binding:"required"`
	ContentType       string        `json:"content_type"`
	Tone              string        `json:"tone"`
	Platform          string        `json:"platform"`
	AdditionalContext string        `json:"additional_context"`
	VariantCount      int           `json:"variant_count"`
	BrandContext      *BrandContext `json:"brand_context,omitempty"` // caller-supplied override, skips resolution
}

// AiDesignGenerationRequest is the inbound contract from the AI design routes
type AiDesignGenerationRequest struct {
	BrandID           string        `json:"brand_id" binding:"required"`
	Format            string        `json:"format"`
	Tone              string        `json:"tone"`
	Platform          string        `json:"platform"`
	AspectRatio       string        `json:"aspect_ratio"`
	AdditionalContext string        `json:"additional_context"`
	VariantCount      int           `json:"variant_count"`
	BrandContext      *BrandContext `json:"brand_context,omitempty"`
}

// GenerationMetadata aggregates observability fields across all variants of
// one generation call
type GenerationMetadata struct {
	AverageBrandFidelityScore float64        `json:"average_brand_fidelity_score"`
	ComplianceTagCounts       map[string]int `json:"compliance_tag_counts"`
	RetryAttempted            bool           `json:"retry_attempted"`
	GeneratedAt               time.Time      `json:"generated_at"`
}

// AiDocGenerationResponse is the outbound contract of the doc adapter
type AiDocGenerationResponse struct {
	Status               string                `json:"status"`
	Variants             []AiDocVariant        `json:"variants"`
	BrandContext         *BrandContext         `json:"brand_context,omitempty"`
	Metadata             GenerationMetadata    `json:"metadata"`
	Warnings             []Warning             `json:"warnings,omitempty"`
	BrandBrainEvaluation *BrandBrainEvaluation `json:"brand_brain_evaluation,omitempty"`
}

// AiDesignGenerationResponse is the outbound contract of the design adapter
type AiDesignGenerationResponse struct {
	Status               string                `json:"status"`
	Variants             []AiDesignVariant     `json:"variants"`
	BrandContext         *BrandContext         `json:"brand_context,omitempty"`
	Metadata             GenerationMetadata    `json:"metadata"`
	Warnings             []Warning             `json:"warnings,omitempty"`
	BrandBrainEvaluation *BrandBrainEvaluation `json:"brand_brain_evaluation,omitempty"`
}
