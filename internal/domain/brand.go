package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// BrandGuide is the stored brand guide row. List-valued fields are kept as
// JSON columns and unmarshalled when the guide is resolved into a context.
type BrandGuide struct {
	ID                     int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BrandID                string    `gorm:"column:brand_id;size:64;uniqueIndex" json:"brand_id"`
	BrandName              string    `gorm:"column:brand_name;size:255" json:"brand_name"`
	Tone                   string    `gorm:"column:tone;size:255" json:"tone"`
	Values                 string    `gorm:"column:brand_values;type:json" json:"brand_values"`
	TargetAudience         string    `gorm:"column:target_audience" json:"target_audience"`
	ForbiddenPhrases       string    `gorm:"column:forbidden_phrases;type:json" json:"forbidden_phrases"`
	RequiredDisclaimers    string    `gorm:"column:required_disclaimers;type:json" json:"required_disclaimers"`
	AllowedToneDescriptors string    `gorm:"column:allowed_tone_descriptors;type:json" json:"allowed_tone_descriptors"`
	BrandPalette           string    `gorm:"column:brand_palette;type:json" json:"brand_palette"`
	CreatedAt              time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt              time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName returns the table name
func (BrandGuide) TableName() string {
	return "brand_guides"
}

// Guardrails are the hard constraints of a brand
type Guardrails struct {
	ForbiddenPhrases    []string `json:"forbidden_phrases"`
	RequiredDisclaimers []string `json:"required_disclaimers"`
}

// BrandContext is the resolved, read-only snapshot of a brand's rules for
// one evaluation call. It is never mutated by the evaluator or adapters.
type BrandContext struct {
	BrandID                string     `json:"brand_id"`
	BrandName              string     `json:"brand_name"`
	Tone                   string     `json:"tone"`
	Values                 []string   `json:"values"`
	TargetAudience         string     `json:"target_audience"`
	Guardrails             Guardrails `json:"guardrails"`
	AllowedToneDescriptors []string   `json:"allowed_tone_descriptors"`
	BrandPalette           []string   `json:"brand_palette"`
}

// ToContext normalizes a stored guide into a BrandContext.
// Missing or null JSON arrays default to empty slices: an absent
// allowed-tone whitelist means "anything allowed", not "nothing allowed".
func (g *BrandGuide) ToContext() (*BrandContext, error) {
	ctx := &BrandContext{
		BrandID:        g.BrandID,
		BrandName:      g.BrandName,
		Tone:           strings.TrimSpace(g.Tone),
		TargetAudience: strings.TrimSpace(g.TargetAudience),
	}

	var err error
	if ctx.Values, err = parseStringList(g.Values); err != nil {
		return nil, err
	}
	if ctx.Guardrails.ForbiddenPhrases, err = parseStringList(g.ForbiddenPhrases); err != nil {
		return nil, err
	}
	if ctx.Guardrails.RequiredDisclaimers, err = parseStringList(g.RequiredDisclaimers); err != nil {
		return nil, err
	}
	if ctx.AllowedToneDescriptors, err = parseStringList(g.AllowedToneDescriptors); err != nil {
		return nil, err
	}
	if ctx.BrandPalette, err = parseStringList(g.BrandPalette); err != nil {
		return nil, err
	}

	return ctx, nil
}

// parseStringList unmarshals a JSON array column, treating empty and
// SQL-null-ish values as an empty list. Blank entries are dropped.
func parseStringList(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return []string{}, nil
	}

	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
