package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Content package statuses
const (
	PackageDraft     = "draft"
	PackageInReview  = "in_review"
	PackageApproved  = "approved"
	PackagePublished = "published"
	PackageArchived  = "archived"
)

// MaxColorUsage caps Visual.Metadata.ColorUsage so downstream rendering
// stays bounded
const MaxColorUsage = 5

// packageTransitions is the allowed status transition map. Archived is
// terminal; packages are archived, never deleted.
var packageTransitions = map[string][]string{
	PackageDraft:     {PackageInReview, PackageArchived},
	PackageInReview:  {PackageApproved, PackageDraft, PackageArchived},
	PackageApproved:  {PackagePublished, PackageArchived},
	PackagePublished: {PackageArchived},
	PackageArchived:  {},
}

// CanTransition reports whether a package may move from one status to another
func CanTransition(from, to string) bool {
	for _, allowed := range packageTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Copy is the textual content of a package
type Copy struct {
	Headline          string   `json:"headline"`
	Body              string   `json:"body"`
	CallToAction      string   `json:"call_to_action"`
	Tone              string   `json:"tone,omitempty"`
	Keywords          []string `json:"keywords,omitempty"`
	EstimatedReadTime string   `json:"estimated_read_time,omitempty"`
}

// DesignContext carries layout guidance for downstream renderers
type DesignContext struct {
	SuggestedLayout      string   `json:"suggested_layout,omitempty"`
	ComponentPrecedence  []string `json:"component_precedence,omitempty"`
	ColorTheme           string   `json:"color_theme,omitempty"`
	MotionConsiderations []string `json:"motion_considerations,omitempty"`
	AccessibilityNotes   []string `json:"accessibility_notes,omitempty"`
}

// VisualMetadata describes one visual's styling
type VisualMetadata struct {
	ColorUsage    []string `json:"color_usage"`
	TypeStructure string   `json:"type_structure,omitempty"`
	Emotion       string   `json:"emotion,omitempty"`
	LayoutStyle   string   `json:"layout_style,omitempty"`
	AspectRatio   string   `json:"aspect_ratio,omitempty"`
}

// Visual is one visual asset reference inside a package
type Visual struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Format      string         `json:"format,omitempty"`
	TemplateRef string         `json:"template_ref,omitempty"`
	Metadata    VisualMetadata `json:"metadata"`
}

// CollaborationEntry is one append-only audit trail record
type CollaborationEntry struct {
	Agent     string    `json:"agent"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

// ContentPackage is the canonical cross-agent artifact bundling copy,
// visual metadata, and collaboration history for one piece of content.
// Only the assembler constructs these; upstream components produce inputs
// that are merged into a new instance.
type ContentPackage struct {
	BrandID          string               `json:"brand_id"`
	ContentID        string               `json:"content_id"`
	RequestID        string               `json:"request_id,omitempty"`
	Platform         string               `json:"platform"`
	Copy             Copy                 `json:"copy"`
	DesignContext    DesignContext        `json:"design_context"`
	Visuals          []Visual             `json:"visuals"`
	Status           string               `json:"status"`
	CollaborationLog []CollaborationEntry `json:"collaboration_log"`
	CreatedBy        string               `json:"created_by"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// ContentPackageRow is the persisted form of a ContentPackage. Structured
// parts live in JSON columns; status is a plain column so transitions and
// listing stay queryable.
type ContentPackageRow struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ContentID        string    `gorm:"column:content_id;size:64;uniqueIndex" json:"content_id"`
	BrandID          string    `gorm:"column:brand_id;size:64;index" json:"brand_id"`
	RequestID        string    `gorm:"column:request_id;size:64" json:"request_id"`
	Platform         string    `gorm:"column:platform;size:32" json:"platform"`
	Copy             string    `gorm:"column:copy;type:json" json:"copy"`
	DesignContext    string    `gorm:"column:design_context;type:json" json:"design_context"`
	Visuals          string    `gorm:"column:visuals;type:json" json:"visuals"`
	Status           string    `gorm:"column:status;size:16;index" json:"status"`
	CollaborationLog string    `gorm:"column:collaboration_log;type:json" json:"collaboration_log"`
	CreatedBy        string    `gorm:"column:created_by;size:64" json:"created_by"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName returns the table name
func (ContentPackageRow) TableName() string {
	return "content_packages"
}

// ToRow marshals a package into its persisted form
func (p *ContentPackage) ToRow() (*ContentPackageRow, error) {
	copyJSON, err := json.Marshal(p.Copy)
	if err != nil {
		return nil, fmt.Errorf("marshal copy: %w", err)
	}
	designJSON, err := json.Marshal(p.DesignContext)
	if err != nil {
		return nil, fmt.Errorf("marshal design context: %w", err)
	}
	visualsJSON, err := json.Marshal(p.Visuals)
	if err != nil {
		return nil, fmt.Errorf("marshal visuals: %w", err)
	}
	logJSON, err := json.Marshal(p.CollaborationLog)
	if err != nil {
		return nil, fmt.Errorf("marshal collaboration log: %w", err)
	}

	return &ContentPackageRow{
		ContentID:        p.ContentID,
		BrandID:          p.BrandID,
		RequestID:        p.RequestID,
		Platform:         p.Platform,
		Copy:             string(copyJSON),
		DesignContext:    string(designJSON),
		Visuals:          string(visualsJSON),
		Status:           p.Status,
		CollaborationLog: string(logJSON),
		CreatedBy:        p.CreatedBy,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}, nil
}

// ToPackage unmarshals a row back into the canonical artifact
func (r *ContentPackageRow) ToPackage() (*ContentPackage, error) {
	p := &ContentPackage{
		ContentID: r.ContentID,
		BrandID:   r.BrandID,
		RequestID: r.RequestID,
		Platform:  r.Platform,
		Status:    r.Status,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	if err := json.Unmarshal([]byte(r.Copy), &p.Copy); err != nil {
		return nil, fmt.Errorf("unmarshal copy: %w", err)
	}
	if err := json.Unmarshal([]byte(r.DesignContext), &p.DesignContext); err != nil {
		return nil, fmt.Errorf("unmarshal design context: %w", err)
	}
	if err := json.Unmarshal([]byte(r.Visuals), &p.Visuals); err != nil {
		return nil, fmt.Errorf("unmarshal visuals: %w", err)
	}
	if err := json.Unmarshal([]byte(r.CollaborationLog), &p.CollaborationLog); err != nil {
		return nil, fmt.Errorf("unmarshal collaboration log: %w", err)
	}

	return p, nil
}
