package domain

// LegacyBrandGuidePayload accepts brand guide writes from older clients that
// still send pre-rename field names. All alias resolution lives here, at the
// boundary, so the rest of the codebase only ever sees the canonical shape.
type LegacyBrandGuidePayload struct {
	BrandName string `json:"brand_name"`
	// canonical names
	Tone                   string   `json:"tone"`
	Values                 []string `json:"values"`
	TargetAudience         string   `json:"target_audience"`
	ForbiddenPhrases       []string `json:"forbidden_phrases"`
	RequiredDisclaimers    []string `json:"required_disclaimers"`
	AllowedToneDescriptors []string `json:"allowed_tone_descriptors"`
	BrandPalette           []string `json:"brand_palette"`
	// legacy aliases (older studio clients)
	BrandVoice     string   `json:"brand_voice,omitempty"`
	CoreValues     []string `json:"core_values,omitempty"`
	Audience       string   `json:"audience,omitempty"`
	BannedPhrases  []string `json:"banned_phrases,omitempty"`
	Disclaimers    []string `json:"disclaimers,omitempty"`
	ToneWhitelist  []string `json:"tone_whitelist,omitempty"`
	PrimaryPalette []string `json:"primary_palette,omitempty"`
}

// BrandGuideInput is the canonical guide write shape
type BrandGuideInput struct {
	BrandName              string
	Tone                   string
	Values                 []string
	TargetAudience         string
	ForbiddenPhrases       []string
	RequiredDisclaimers    []string
	AllowedToneDescriptors []string
	BrandPalette           []string
}

// Canonicalize resolves legacy aliases into the canonical input. Canonical
// fields win when both forms are present.
func (p *LegacyBrandGuidePayload) Canonicalize() BrandGuideInput {
	in := BrandGuideInput{
		BrandName:              p.BrandName,
		Tone:                   p.Tone,
		Values:                 p.Values,
		TargetAudience:         p.TargetAudience,
		ForbiddenPhrases:       p.ForbiddenPhrases,
		RequiredDisclaimers:    p.RequiredDisclaimers,
		AllowedToneDescriptors: p.AllowedToneDescriptors,
		BrandPalette:           p.BrandPalette,
	}

	if in.Tone == "" {
		in.Tone = p.BrandVoice
	}
	if len(in.Values) == 0 {
		in.Values = p.CoreValues
	}
	if in.TargetAudience == "" {
		in.TargetAudience = p.Audience
	}
	if len(in.ForbiddenPhrases) == 0 {
		in.ForbiddenPhrases = p.BannedPhrases
	}
	if len(in.RequiredDisclaimers) == 0 {
		in.RequiredDisclaimers = p.Disclaimers
	}
	if len(in.AllowedToneDescriptors) == 0 {
		in.AllowedToneDescriptors = p.ToneWhitelist
	}
	if len(in.BrandPalette) == 0 {
		in.BrandPalette = p.PrimaryPalette
	}

	return in
}
