package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/asrs-advisor/internal/model"
)

// systemTypeRule assigns a system type when any of its keywords appears in
// the input. Rules are evaluated top-to-bottom with assignment, so a later
// rule's match overrides an earlier one.
type systemTypeRule struct {
	keywords   []string
	systemType model.SystemType
	confidence float64
}

var systemTypeRules = []systemTypeRule{
	{
		keywords:   []string{"shuttle", "slats", "mesh", "shelving", "horizontal loading"},
		systemType: model.SystemShuttle,
		confidence: 0.9,
	},
	{
		keywords:   []string{"mini-load", "miniload", "angle iron", "guides", "uprights"},
		systemType: model.SystemMiniLoad,
		confidence: 0.9,
	},
	{
		keywords:   []string{"top-loading", "top loading", "robot", "grid", "from above"},
		systemType: model.SystemTopLoading,
		confidence: 0.85,
	},
}

// keywordRule maps a keyword group to a field value; the first matching
// group wins and later groups are not consulted.
type keywordRule[T ~string] struct {
	keywords []string
	value    T
}

var materialRules = []keywordRule[model.ContainerMaterial]{
	{keywords: []string{"combustible"}, value: model.MaterialCombustible},
	{keywords: []string{"metal", "noncombustible"}, value: model.MaterialNoncombustible},
	{keywords: []string{"plastic"}, value: model.MaterialPlasticUnexpanded},
}

var configRules = []keywordRule[model.ContainerConfig]{
	{keywords: []string{"closed-top", "closed top"}, value: model.ConfigClosedTop},
	{keywords: []string{"open-top", "open top"}, value: model.ConfigOpenTop},
}

// Roman-numeral groups are ordered longest-first so "class iii" is not
// claimed by the "class ii" group.
var commodityRules = []keywordRule[model.CommodityClass]{
	{keywords: []string{"class 4", "class4", "class iv"}, value: model.CommodityClass4},
	{keywords: []string{"class 3", "class3", "class iii"}, value: model.CommodityClass3},
	{keywords: []string{"class 2", "class2", "class ii"}, value: model.CommodityClass2},
	{keywords: []string{"class 1", "class1", "class i"}, value: model.CommodityClass1},
}

// Dimension patterns are tried in priority order; the first successful
// match stops the search for that dimension. Input is lowercased first.
var heightPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:feet|foot|ft|')\s*(?:tall|high)`),
	regexp.MustCompile(`height[^0-9]*?(\d+(?:\.\d+)?)\s*(?:feet|foot|ft|')`),
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:feet|foot|ft|')\s*height`),
}

var widthPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:feet|foot|ft|')\s*wide`),
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:feet|foot|ft|')\s*aisle`),
	regexp.MustCompile(`aisle[^0-9]*?(\d+(?:\.\d+)?)\s*(?:feet|foot|ft|')`),
	regexp.MustCompile(`width[^0-9]*?(\d+(?:\.\d+)?)\s*(?:feet|foot|ft|')`),
}

// pathRule routes a (system type, container material) pair to a datasheet
// section. A MaterialUnknown key matches any material.
type pathRule struct {
	systemType model.SystemType
	material   model.ContainerMaterial
	path       model.ResolutionPath
}

var pathRules = []pathRule{
	{model.SystemShuttle, model.MaterialCombustible, model.PathShuttleCombustible},
	{model.SystemMiniLoad, model.MaterialUnknown, model.PathMiniLoad},
	{model.SystemTopLoading, model.MaterialUnknown, model.PathTopLoading},
}

// Confidence discounts of the extractor's completeness heuristic.
const (
	basePenalty         = 0.7
	missingFieldPenalty = 0.8
)

// Extract classifies a free-text system description into a structured
// SystemDescription. Supplemental texts are concatenated before analysis.
// Extraction never returns an error; an internal failure yields a result
// with Success=false and a zeroed description.
func Extract(raw string, supplemental ...string) (result model.Classification) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("extract: classification panicked", zap.Any("cause", r))
			result = model.Classification{
				Success:     false,
				Error:       fmt.Sprintf("classification failed: %v", r),
				Description: unknownDescription(),
			}
		}
	}()

	full := strings.ToLower(raw)
	if len(supplemental) > 0 {
		full += " " + strings.ToLower(strings.Join(supplemental, " "))
	}

	desc := unknownDescription()

	// System type: every rule is evaluated; a later match overwrites.
	for _, rule := range systemTypeRules {
		if containsAny(full, rule.keywords) {
			desc.SystemType = rule.systemType
			desc.Confidence.SystemType = rule.confidence
		}
	}

	desc.ContainerMaterial = firstMatch(full, materialRules, model.MaterialUnknown)
	// Plastic splits on expansion; "expanded" anywhere in the text counts.
	if desc.ContainerMaterial == model.MaterialPlasticUnexpanded && strings.Contains(full, "expanded") {
		desc.ContainerMaterial = model.MaterialPlasticExpanded
	}
	desc.ContainerConfig = firstMatch(full, configRules, model.ConfigUnknown)
	desc.CommodityClass = firstMatch(full, commodityRules, model.CommodityUnknown)

	desc.Dimensions.StorageHeightFt = extractDimension(full, heightPatterns)
	desc.Dimensions.AisleWidthFt = extractDimension(full, widthPatterns)

	desc.MissingFields = missingFields(desc)

	if desc.ContainerMaterial != model.MaterialUnknown {
		desc.Confidence.ContainerMaterial = 0.8
	}
	desc.Confidence.Overall = desc.Confidence.SystemType * basePenalty
	if len(desc.MissingFields) > 0 {
		desc.Confidence.Overall *= missingFieldPenalty
	}

	desc.ResolutionPath = resolutionPath(desc.SystemType, desc.ContainerMaterial)

	zap.L().Debug("extract: classified system",
		zap.String("system_type", string(desc.SystemType)),
		zap.String("container_material", string(desc.ContainerMaterial)),
		zap.String("resolution_path", string(desc.ResolutionPath)),
		zap.Float64("overall_confidence", desc.Confidence.Overall),
	)

	return model.Classification{Success: true, Description: desc}
}

func unknownDescription() model.SystemDescription {
	return model.SystemDescription{
		SystemType:        model.SystemUnknown,
		ContainerMaterial: model.MaterialUnknown,
		ContainerConfig:   model.ConfigUnknown,
		CommodityClass:    model.CommodityUnknown,
		ResolutionPath:    model.PathUnknown,
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func firstMatch[T ~string](text string, rules []keywordRule[T], fallback T) T {
	for _, rule := range rules {
		if containsAny(text, rule.keywords) {
			return rule.value
		}
	}
	return fallback
}

func extractDimension(text string, patterns []*regexp.Regexp) *float64 {
	for _, p := range patterns {
		m := p.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return &v
	}
	return nil
}

// missingFields lists the hard gaps in a description. Commodity class and
// system type are soft fields and never flagged.
func missingFields(desc model.SystemDescription) []string {
	var missing []string
	if desc.Dimensions.StorageHeightFt == nil {
		missing = append(missing, "Storage height not specified")
	}
	if desc.Dimensions.AisleWidthFt == nil {
		missing = append(missing, "Aisle width not specified")
	}
	if desc.ContainerMaterial == model.MaterialUnknown {
		missing = append(missing, "Container material not specified")
	}
	if desc.ContainerConfig == model.ConfigUnknown {
		missing = append(missing, "Container configuration (open/closed top) not specified")
	}
	return missing
}

func resolutionPath(st model.SystemType, material model.ContainerMaterial) model.ResolutionPath {
	for _, rule := range pathRules {
		if rule.systemType != st {
			continue
		}
		if rule.material == model.MaterialUnknown || rule.material == material {
			return rule.path
		}
	}
	return model.PathUnknown
}
