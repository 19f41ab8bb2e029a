package pipeline

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/asrs-advisor/internal/model"
	"github.com/sells-group/asrs-advisor/internal/ruleset"
)

// failingIndex simulates an unavailable rule dataset.
type failingIndex struct{}

func (failingIndex) SearchByType(context.Context, model.SystemType) (map[string]model.RuleRecord, error) {
	return nil, eris.New("dataset unavailable")
}

func (failingIndex) FiguresFor(context.Context, string) (map[string]model.RuleRecord, error) {
	return nil, eris.New("dataset unavailable")
}

func builtinIndex() ruleset.Index {
	return ruleset.NewMemory(ruleset.Builtin())
}

func shuttleCombustibleDesc() model.SystemDescription {
	height := 30.0
	width := 6.0
	return model.SystemDescription{
		SystemType:        model.SystemShuttle,
		ContainerMaterial: model.MaterialCombustible,
		ContainerConfig:   model.ConfigOpenTop,
		CommodityClass:    model.CommodityUnknown,
		Dimensions:        model.Dimensions{StorageHeightFt: &height, AisleWidthFt: &width},
		ResolutionPath:    model.PathShuttleCombustible,
	}
}

func TestResolve_Comprehensive(t *testing.T) {
	res := Resolve(context.Background(), shuttleCombustibleDesc(), model.ScopeComprehensive, builtinIndex())

	require.True(t, res.Success)
	bundle := res.Bundle

	require.NotNil(t, bundle.Ceiling)
	assert.Equal(t, "wet_pipe", bundle.Ceiling.SystemType)
	assert.NotEmpty(t, bundle.Ceiling.TableReference)

	require.NotNil(t, bundle.InRack)
	assert.True(t, bundle.InRack.Required)
	assert.Equal(t, "Table 14", bundle.InRack.TableReference)
	assert.Equal(t, 150.0, bundle.InRack.DesignFlowGPM)
	assert.Equal(t, 8.0, bundle.InRack.Arrangement.VerticalSpacingFt)
	assert.Equal(t, 5.0, bundle.InRack.Arrangement.HorizontalSpacingFt)

	require.NotNil(t, bundle.Hydraulic)
	assert.Equal(t, 1200.0, bundle.Hydraulic.TotalDemandGPM)
	assert.Equal(t, 500.0, bundle.Hydraulic.HoseDemandGPM)

	assert.Equal(t, shuttleSpecialRequirements, bundle.SpecialRequirements)

	require.Len(t, bundle.Optimizations, 1)
	assert.Equal(t, "Switch to closed-top containers", bundle.Optimizations[0].Change)
}

func TestResolve_NoInRackForNoncombustible(t *testing.T) {
	desc := shuttleCombustibleDesc()
	desc.ContainerMaterial = model.MaterialNoncombustible
	desc.ContainerConfig = model.ConfigClosedTop

	res := Resolve(context.Background(), desc, model.ScopeComprehensive, builtinIndex())

	require.True(t, res.Success)
	// Section omitted entirely, not emitted with Required=false.
	assert.Nil(t, res.Bundle.InRack)
	assert.Empty(t, res.Bundle.Optimizations)
	require.NotNil(t, res.Bundle.Ceiling)
}

func TestResolve_CeilingOnlyScope(t *testing.T) {
	res := Resolve(context.Background(), shuttleCombustibleDesc(), model.ScopeCeilingOnly, builtinIndex())

	require.True(t, res.Success)
	assert.NotNil(t, res.Bundle.Ceiling)
	assert.Nil(t, res.Bundle.InRack)
	assert.Nil(t, res.Bundle.Hydraulic)
}

func TestResolve_TablesOnlyScope(t *testing.T) {
	res := Resolve(context.Background(), shuttleCombustibleDesc(), model.ScopeTablesOnly, builtinIndex())

	require.True(t, res.Success)
	assert.Nil(t, res.Bundle.Ceiling)
	assert.Nil(t, res.Bundle.InRack)
	assert.Nil(t, res.Bundle.Hydraulic)
	// References still carry the routing section and matching figures.
	assert.Equal(t, []string{string(model.PathShuttleCombustible)}, res.Bundle.References.PrimarySections)
}

func TestResolve_CeilingCommodityMatching(t *testing.T) {
	// A mini-load system matches table_10 via the "all" sentinel even for
	// a material no record names explicitly.
	desc := model.SystemDescription{
		SystemType:        model.SystemMiniLoad,
		ContainerMaterial: model.MaterialNoncombustible,
		ContainerConfig:   model.ConfigClosedTop,
		ResolutionPath:    model.PathMiniLoad,
	}
	res := Resolve(context.Background(), desc, model.ScopeCeilingOnly, builtinIndex())

	require.True(t, res.Success)
	require.NotNil(t, res.Bundle.Ceiling)
	assert.Equal(t, "Table 10", res.Bundle.Ceiling.TableReference)
}

func TestResolve_NoCeilingMatchOmitsSection(t *testing.T) {
	// An index whose only ceiling record names a different commodity.
	idx := ruleset.NewMemory([]model.RuleRecord{{
		ID:          "table_99",
		Category:    model.CategoryCeiling,
		SystemTypes: []model.SystemType{model.SystemShuttle},
		Commodities: "plastic_expanded",
		TableNumber: "99",
	}})

	desc := shuttleCombustibleDesc()
	desc.ContainerMaterial = model.MaterialNoncombustible
	res := Resolve(context.Background(), desc, model.ScopeCeilingOnly, idx)

	require.True(t, res.Success)
	assert.Nil(t, res.Bundle.Ceiling)
}

func TestResolve_ReferencesDeduplicated(t *testing.T) {
	res := Resolve(context.Background(), shuttleCombustibleDesc(), model.ScopeComprehensive, builtinIndex())

	require.True(t, res.Success)
	refs := res.Bundle.References
	seen := make(map[string]bool)
	for _, table := range refs.Tables {
		assert.False(t, seen[table], "duplicate table reference %s", table)
		seen[table] = true
		assert.NotEmpty(t, table)
	}
	// Figures include everything the lookup matched for the arrangement,
	// cited in a section or not.
	assert.NotEmpty(t, refs.Figures)
}

func TestResolve_LookupFailure(t *testing.T) {
	res := Resolve(context.Background(), shuttleCombustibleDesc(), model.ScopeComprehensive, failingIndex{})

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "rule lookup failed")
	assert.Nil(t, res.Bundle.Ceiling)
	assert.Nil(t, res.Bundle.InRack)
}

func TestResolve_DefaultScopeIsComprehensive(t *testing.T) {
	res := Resolve(context.Background(), shuttleCombustibleDesc(), "", builtinIndex())

	require.True(t, res.Success)
	assert.NotNil(t, res.Bundle.Hydraulic)
}

func TestParseSprinklerSpec(t *testing.T) {
	specs := parseSprinklerSpec("K25.2 pendent quick-response 160F")
	assert.Equal(t, "K25.2", specs.KFactor)
	assert.Equal(t, "pendent", specs.Orientation)
	assert.Equal(t, "quick_response", specs.ResponseType)
	assert.Equal(t, "160F", specs.TemperatureRating)
}
