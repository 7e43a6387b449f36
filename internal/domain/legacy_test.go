package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalize_LegacyAliasesResolved(t *testing.T) {
	p := &LegacyBrandGuidePayload{
		BrandName:      "Acme Coffee",
		BrandVoice:     "warm",
		CoreValues:     []string{"craft"},
		Audience:       "urban coffee lovers",
		BannedPhrases:  []string{"cheap"},
		Disclaimers:    []string{"Caffeine content varies."},
		ToneWhitelist:  []string{"warm", "friendly"},
		PrimaryPalette: []string{"#6F4E37"},
	}

	in := p.Canonicalize()

	assert.Equal(t, "warm", in.Tone)
	assert.Equal(t, []string{"craft"}, in.Values)
	assert.Equal(t, "urban coffee lovers", in.TargetAudience)
	assert.Equal(t, []string{"cheap"}, in.ForbiddenPhrases)
	assert.Equal(t, []string{"Caffeine content varies."}, in.RequiredDisclaimers)
	assert.Equal(t, []string{"warm", "friendly"}, in.AllowedToneDescriptors)
	assert.Equal(t, []string{"#6F4E37"}, in.BrandPalette)
}

func TestCanonicalize_CanonicalFieldsWin(t *testing.T) {
	p := &LegacyBrandGuidePayload{
		Tone:             "playful",
		BrandVoice:       "stern",
		ForbiddenPhrases: []string{"new-banned"},
		BannedPhrases:    []string{"old-banned"},
	}

	in := p.Canonicalize()

	assert.Equal(t, "playful", in.Tone)
	assert.Equal(t, []string{"new-banned"}, in.ForbiddenPhrases)
}

func TestCanonicalize_CanonicalOnlyPassesThrough(t *testing.T) {
	p := &LegacyBrandGuidePayload{
		BrandName:        "Modern Brand",
		Tone:             "bold",
		ForbiddenPhrases: []string{"x"},
	}

	in := p.Canonicalize()

	assert.Equal(t, "bold", in.Tone)
	assert.Empty(t, in.AllowedToneDescriptors)
	assert.Empty(t, in.BrandPalette)
}
