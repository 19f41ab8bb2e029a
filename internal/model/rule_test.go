package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleRecord_AppliesTo(t *testing.T) {
	rec := RuleRecord{SystemTypes: []SystemType{SystemShuttle, SystemMiniLoad}}

	assert.True(t, rec.AppliesTo(SystemShuttle))
	assert.True(t, rec.AppliesTo(SystemMiniLoad))
	assert.False(t, rec.AppliesTo(SystemTopLoading))
	assert.False(t, RuleRecord{}.AppliesTo(SystemShuttle))
}

func TestRuleRecord_MatchesCommodity(t *testing.T) {
	rec := RuleRecord{Commodities: "combustible, plastic_unexpanded"}

	assert.True(t, rec.MatchesCommodity(MaterialCombustible))
	assert.True(t, rec.MatchesCommodity(MaterialPlasticUnexpanded))
	assert.False(t, rec.MatchesCommodity(MaterialNoncombustible))
	assert.False(t, rec.MatchesCommodity(MaterialPlasticExpanded))

	all := RuleRecord{Commodities: "all"}
	assert.True(t, all.MatchesCommodity(MaterialNoncombustible))
	assert.True(t, all.MatchesCommodity(MaterialUnknown))
}

func TestRuleRecord_MatchesCommodity_CaseInsensitive(t *testing.T) {
	rec := RuleRecord{Commodities: "Combustible, Cartoned Unexpanded Plastic"}
	assert.True(t, rec.MatchesCommodity(MaterialCombustible))
}

func TestRuleRecord_MatchesArrangement(t *testing.T) {
	rec := RuleRecord{
		Title:       "Shuttle rack elevation",
		Arrangement: "shuttle open-top vertical IRAS layout",
	}

	assert.True(t, rec.MatchesArrangement("shuttle closed_top"))
	// Underscored config tokens match their hyphenated metadata form.
	assert.True(t, rec.MatchesArrangement("mini-load open_top"))
	// Title text counts as metadata too.
	assert.True(t, rec.MatchesArrangement("elevation"))
	assert.False(t, rec.MatchesArrangement("mini-load grid"))
	assert.False(t, rec.MatchesArrangement(""))
}

func TestRuleRecord_MatchesArrangement_SkipsUnknownTokens(t *testing.T) {
	rec := RuleRecord{Arrangement: "unknown storage layout"}

	// "unknown" is a filler token from unclassified descriptions, never a
	// match criterion.
	assert.False(t, rec.MatchesArrangement("unknown unknown"))
	assert.True(t, rec.MatchesArrangement("unknown storage"))
}
