package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/asrs-advisor/internal/model"
	"github.com/sells-group/asrs-advisor/internal/ruleset"
)

// Hydraulic design baselines. These are placeholder constants standing in
// for a table-driven lookup that does not exist yet; see DESIGN.md.
const (
	defaultTotalDemandGPM      = 1200
	defaultHoseDemandGPM       = 500
	defaultSupplyDurationMin   = 90
	defaultResidualPressurePSI = 20
)

// Fixed in-rack structural template emitted whenever in-rack protection
// applies.
var inRackTemplate = model.InRackProtection{
	Required: true,
	Arrangement: model.RackArrangement{
		SprinklerType:       "K8.0_quick_response_160F",
		VerticalSpacingFt:   8,
		HorizontalSpacingFt: 5,
		InstallationLevel:   "every_tier",
	},
	DesignFlowGPM: 150,
}

// Caveats appended for shuttle systems regardless of scope.
var shuttleSpecialRequirements = []string{
	"Minimum 3 ft clearance to ceiling sprinklers",
	"Transverse flue spaces minimum 3 inches wide",
}

// Resolve queries the rule index for the classified system and assembles a
// requirement bundle for the requested scope. Lookup failures surface as a
// Resolution with Success=false and an empty bundle; Resolve never returns
// an error to the rendering path.
func Resolve(ctx context.Context, desc model.SystemDescription, scope model.Scope, idx ruleset.Index) model.Resolution {
	if scope == "" {
		scope = model.ScopeComprehensive
	}

	tables, err := idx.SearchByType(ctx, desc.SystemType)
	if err != nil {
		zap.L().Error("resolve: table lookup failed", zap.Error(err))
		return model.Resolution{Success: false, Error: fmt.Sprintf("rule lookup failed: %v", err)}
	}

	arrangement := fmt.Sprintf("%s %s", desc.SystemType, desc.ContainerConfig)
	figures, err := idx.FiguresFor(ctx, arrangement)
	if err != nil {
		zap.L().Error("resolve: figure lookup failed", zap.Error(err))
		return model.Resolution{Success: false, Error: fmt.Sprintf("figure lookup failed: %v", err)}
	}
	figureIDs := sortedKeys(figures)

	var bundle model.RequirementBundle

	if scope == model.ScopeComprehensive || scope == model.ScopeCeilingOnly {
		bundle.Ceiling = resolveCeiling(desc, tables, figureIDs)
	}

	if scope == model.ScopeComprehensive || scope == model.ScopeInRackOnly {
		bundle.InRack = resolveInRack(desc, tables, figureIDs)
	}

	if scope == model.ScopeComprehensive {
		bundle.Hydraulic = &model.HydraulicDesign{
			TotalDemandGPM:             defaultTotalDemandGPM,
			HoseDemandGPM:              defaultHoseDemandGPM,
			WaterSupplyDurationMin:     defaultSupplyDurationMin,
			MinimumResidualPressurePSI: defaultResidualPressurePSI,
		}
	}

	if desc.SystemType == model.SystemShuttle {
		bundle.SpecialRequirements = append(bundle.SpecialRequirements, shuttleSpecialRequirements...)
	}

	if desc.ContainerMaterial == model.MaterialCombustible && desc.ContainerConfig == model.ConfigOpenTop {
		bundle.Optimizations = append(bundle.Optimizations, model.Optimization{
			Change:           "Switch to closed-top containers",
			Benefit:          "Reduce in-rack sprinkler requirements",
			EstimatedSavings: "30-40% reduction in system complexity",
		})
	}

	bundle.References = collectReferences(desc, bundle, figureIDs)

	zap.L().Info("resolve: assembled requirements",
		zap.String("system_type", string(desc.SystemType)),
		zap.String("scope", string(scope)),
		zap.Int("matching_tables", len(tables)),
		zap.Int("matching_figures", len(figures)),
	)

	return model.Resolution{Success: true, Bundle: bundle}
}

// resolveCeiling picks the first ceiling record (in sorted ID order) whose
// commodity list covers the container material or carries the "all"
// sentinel. No match means no ceiling section, not a defaulted one.
func resolveCeiling(desc model.SystemDescription, tables map[string]model.RuleRecord, figureIDs []string) *model.CeilingProtection {
	var best *model.RuleRecord
	for _, id := range sortedKeys(tables) {
		rec := tables[id]
		if rec.Category != model.CategoryCeiling {
			continue
		}
		if rec.MatchesCommodity(desc.ContainerMaterial) {
			best = &rec
			break
		}
	}
	if best == nil {
		return nil
	}

	ceiling := &model.CeilingProtection{
		SystemType: "wet_pipe",
		SprinklerSpecs: model.SprinklerSpecs{
			KFactor:           "K16.8",
			TemperatureRating: "160F",
			ResponseType:      "quick_response",
			Orientation:       "pendent",
			CoverageType:      "standard",
		},
		DesignParameters: model.DesignParameters{
			MinimumPressurePSI:  25,
			SpacingRequirements: "10 ft x 10 ft maximum",
		},
		TableReference: fmt.Sprintf("Table %s", best.TableNumber),
	}
	if best.SprinklerSpec != "" {
		ceiling.SprinklerSpecs = parseSprinklerSpec(best.SprinklerSpec)
	}
	if best.PressurePSI > 0 {
		ceiling.DesignParameters.MinimumPressurePSI = best.PressurePSI
	}
	if best.SpacingFt != "" {
		ceiling.DesignParameters.SpacingRequirements = best.SpacingFt
	}
	if len(figureIDs) > 2 {
		ceiling.ApplicableFigures = figureIDs[:2]
	} else {
		ceiling.ApplicableFigures = figureIDs
	}
	return ceiling
}

// resolveInRack emits the fixed in-rack template when in-rack records
// exist and the container material is combustible. Any other material
// yields no section at all rather than a required=false section; the
// renderer's "not required" narrative stays reachable only for bundles
// assembled by hand.
func resolveInRack(desc model.SystemDescription, tables map[string]model.RuleRecord, figureIDs []string) *model.InRackProtection {
	var found *model.RuleRecord
	for _, id := range sortedKeys(tables) {
		rec := tables[id]
		if rec.Category == model.CategoryInRack {
			found = &rec
			break
		}
	}
	if found == nil || desc.ContainerMaterial != model.MaterialCombustible {
		return nil
	}

	inRack := inRackTemplate
	inRack.TableReference = fmt.Sprintf("Table %s", found.TableNumber)
	if found.SprinklerSpec != "" {
		inRack.Arrangement.SprinklerType = strings.ReplaceAll(found.SprinklerSpec, " ", "_")
	}
	if found.FlowGPM > 0 {
		inRack.DesignFlowGPM = found.FlowGPM
	}
	for _, id := range figureIDs {
		if strings.Contains(strings.ToLower(id), "iras") {
			inRack.ApplicableFigures = append(inRack.ApplicableFigures, id)
		}
	}
	return &inRack
}

// collectReferences gathers the section the classification routed to, the
// table references cited by produced sections (deduplicated), and every
// figure the lookup returned. Uncited figures are included deliberately:
// breadth over precision for the reader chasing the datasheet.
func collectReferences(desc model.SystemDescription, bundle model.RequirementBundle, figureIDs []string) model.References {
	refs := model.References{
		PrimarySections: []string{string(desc.ResolutionPath)},
		Figures:         figureIDs,
	}

	seen := make(map[string]bool)
	for _, table := range []string{
		tableRef(bundle.Ceiling),
		inRackTableRef(bundle.InRack),
	} {
		if table == "" || seen[table] {
			continue
		}
		seen[table] = true
		refs.Tables = append(refs.Tables, table)
	}
	return refs
}

func tableRef(c *model.CeilingProtection) string {
	if c == nil {
		return ""
	}
	return c.TableReference
}

func inRackTableRef(r *model.InRackProtection) string {
	if r == nil {
		return ""
	}
	return r.TableReference
}

// parseSprinklerSpec splits a stored spec string like
// "K16.8 pendent quick-response 160F" into its components, falling back to
// sensible defaults for anything it cannot place.
func parseSprinklerSpec(spec string) model.SprinklerSpecs {
	out := model.SprinklerSpecs{
		KFactor:           "K16.8",
		TemperatureRating: "160F",
		ResponseType:      "quick_response",
		Orientation:       "pendent",
		CoverageType:      "standard",
	}
	for _, tok := range strings.Fields(spec) {
		lower := strings.ToLower(tok)
		switch {
		case strings.HasPrefix(lower, "k"):
			out.KFactor = tok
		case strings.HasSuffix(lower, "f") && len(lower) > 1 && lower[0] >= '0' && lower[0] <= '9':
			out.TemperatureRating = tok
		case strings.Contains(lower, "response"):
			out.ResponseType = strings.ReplaceAll(lower, "-", "_")
		case lower == "pendent" || lower == "upright":
			out.Orientation = lower
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
