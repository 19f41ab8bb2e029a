package pipeline

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/asrs-advisor/internal/model"
)

// RenderOptions controls report style and content.
type RenderOptions struct {
	Style               model.Style
	IncludeOptimization bool
	Debug               bool
	IncludeReferences   bool
}

// titleCase capitalizes enum values for display. A cases.Caser carries
// internal state, so each call gets its own instance; RenderReport runs
// concurrently under the batch and serve commands.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// RenderReport converts a description and requirement bundle into the
// fixed-format plain-text report. Rendering the same pair twice yields
// byte-identical output. A rendering failure returns a one-line error
// string; RenderReport never panics out to the caller.
func RenderReport(desc model.SystemDescription, bundle model.RequirementBundle, opts RenderOptions) (report string) {
	defer func() {
		if r := recover(); r != nil {
			report = fmt.Sprintf("Error generating design requirements: %v", r)
		}
	}()

	if opts.Style == "" {
		opts.Style = model.StyleProfessional
	}

	var b strings.Builder

	b.WriteString(restatement(desc))
	b.WriteString("\n\n")

	if opts.Debug || opts.Style == model.StyleDetailed {
		writeClassificationDetail(&b, desc)
	}

	if opts.Style == model.StyleSummary {
		writeSummary(&b, bundle)
	} else {
		writeCeiling(&b, bundle.Ceiling)
		writeInRack(&b, bundle.InRack)
		writeHydraulic(&b, bundle.Hydraulic)
	}

	writeSpecialRequirements(&b, bundle.SpecialRequirements)
	writeReferences(&b, bundle.References, opts.IncludeReferences)

	if opts.IncludeOptimization {
		writeOptimizations(&b, bundle.Optimizations)
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// restatement builds the fixed opening sentence, substituting "?" for any
// absent dimension.
func restatement(desc model.SystemDescription) string {
	heightStr := fmt.Sprintf("%s-foot tall", dimensionString(desc.Dimensions.StorageHeightFt))
	widthStr := fmt.Sprintf("%s-foot wide aisles", dimensionString(desc.Dimensions.AisleWidthFt))

	containerDesc := fmt.Sprintf("%s %s containers", displayValue(string(desc.ContainerConfig)), desc.ContainerMaterial)
	if desc.ContainerConfig == model.ConfigUnknown {
		containerDesc = fmt.Sprintf("%s containers", desc.ContainerMaterial)
	}

	return fmt.Sprintf(
		"Based on the fact that you are using %s-type ASRS with %s in %s, %s, "+
			"your design requirements per FM Global 8-34 are:",
		desc.SystemType, containerDesc, heightStr, widthStr,
	)
}

func dimensionString(v *float64) string {
	if v == nil {
		return "?"
	}
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", *v), "0"), ".")
}

// displayValue turns an enum value like "open_top" into "open-top".
func displayValue(v string) string {
	return strings.ReplaceAll(v, "_", "-")
}

func writeClassificationDetail(b *strings.Builder, desc model.SystemDescription) {
	b.WriteString("## System Classification\n")
	fmt.Fprintf(b, "- **System Type**: %s (confidence %.2f)\n", titleCase(displayValue(string(desc.SystemType))), desc.Confidence.SystemType)
	fmt.Fprintf(b, "- **Container Material**: %s (confidence %.2f)\n", titleCase(displayValue(string(desc.ContainerMaterial))), desc.Confidence.ContainerMaterial)
	fmt.Fprintf(b, "- **Container Configuration**: %s\n", titleCase(displayValue(string(desc.ContainerConfig))))
	fmt.Fprintf(b, "- **Commodity Class**: %s\n", titleCase(displayValue(string(desc.CommodityClass))))
	fmt.Fprintf(b, "- **Resolution Path**: %s\n", desc.ResolutionPath)
	fmt.Fprintf(b, "- **Overall Confidence**: %.2f\n", desc.Confidence.Overall)
	for _, missing := range desc.MissingFields {
		fmt.Fprintf(b, "- **Missing**: %s\n", missing)
	}
	b.WriteString("\n")
}

func writeCeiling(b *strings.Builder, ceiling *model.CeilingProtection) {
	if ceiling == nil {
		return
	}
	b.WriteString("## Ceiling Sprinkler Protection\n")

	systemType := ceiling.SystemType
	if systemType == "" {
		systemType = "Wet pipe"
	}
	fmt.Fprintf(b, "- **System Type**: %s sprinkler system\n", titleCase(displayValue(systemType)))

	specs := ceiling.SprinklerSpecs
	kFactor := specs.KFactor
	if kFactor == "" {
		kFactor = "K16.8"
	}
	tempRating := specs.TemperatureRating
	if tempRating == "" {
		tempRating = "160F"
	}
	responseType := specs.ResponseType
	if responseType == "" {
		responseType = "quick-response"
	}
	fmt.Fprintf(b, "- **Sprinkler Specification**: %s, %s %s\n", kFactor, tempRating, displayValue(responseType))

	fmt.Fprintf(b, "- **Design Parameters**: Minimum %g psi\n", ceiling.DesignParameters.MinimumPressurePSI)
	if ceiling.DesignParameters.SpacingRequirements != "" {
		fmt.Fprintf(b, "- **Spacing**: %s\n", ceiling.DesignParameters.SpacingRequirements)
	}
	if ceiling.TableReference != "" {
		fmt.Fprintf(b, "- **Code Reference**: %s\n", ceiling.TableReference)
	}
	b.WriteString("\n")
}

func writeInRack(b *strings.Builder, inRack *model.InRackProtection) {
	if inRack == nil {
		return
	}
	b.WriteString("## In-Rack Sprinkler Protection (IRAS)\n")

	if !inRack.Required {
		b.WriteString("- **Requirement**: In-rack sprinklers not required for this configuration\n\n")
		return
	}

	b.WriteString("- **Requirement**: Horizontal in-rack sprinklers required\n")

	sprinklerType := inRack.Arrangement.SprinklerType
	if sprinklerType == "" {
		sprinklerType = "K8.0 quick-response 160F"
	}
	fmt.Fprintf(b, "- **Sprinkler Type**: %s\n", displayValue(sprinklerType))
	fmt.Fprintf(b, "- **Spacing**: %g ft horizontal, %g ft vertical\n",
		inRack.Arrangement.HorizontalSpacingFt, inRack.Arrangement.VerticalSpacingFt)

	level := inRack.Arrangement.InstallationLevel
	if level == "" {
		level = "every_tier"
	}
	fmt.Fprintf(b, "- **Installation**: %s\n", titleCase(strings.ReplaceAll(level, "_", " ")))

	if inRack.DesignFlowGPM > 0 {
		fmt.Fprintf(b, "- **Flow Rate**: %g GPM design demand\n", inRack.DesignFlowGPM)
	}
	if inRack.TableReference != "" {
		fmt.Fprintf(b, "- **Code Reference**: %s\n", inRack.TableReference)
	}
	b.WriteString("\n")
}

func writeHydraulic(b *strings.Builder, hydraulic *model.HydraulicDesign) {
	if hydraulic == nil {
		return
	}
	b.WriteString("## Hydraulic Design Requirements\n")
	fmt.Fprintf(b, "- **Total System Demand**: %g GPM\n", hydraulic.TotalDemandGPM)
	fmt.Fprintf(b, "- **Hose Allowance**: %g GPM per Table 2\n", hydraulic.HoseDemandGPM)
	fmt.Fprintf(b, "- **Water Supply Duration**: %g minutes minimum\n", hydraulic.WaterSupplyDurationMin)
	b.WriteString("\n")
}

func writeSummary(b *strings.Builder, bundle model.RequirementBundle) {
	b.WriteString("## Requirements Summary\n")
	if bundle.Ceiling != nil {
		fmt.Fprintf(b, "- Ceiling: %s, minimum %g psi (%s)\n",
			bundle.Ceiling.SprinklerSpecs.KFactor,
			bundle.Ceiling.DesignParameters.MinimumPressurePSI,
			bundle.Ceiling.TableReference)
	}
	if bundle.InRack != nil {
		if bundle.InRack.Required {
			fmt.Fprintf(b, "- In-rack: required, %g GPM design demand\n", bundle.InRack.DesignFlowGPM)
		} else {
			b.WriteString("- In-rack: not required\n")
		}
	}
	if bundle.Hydraulic != nil {
		fmt.Fprintf(b, "- Hydraulic: %g GPM total demand, %g minutes\n",
			bundle.Hydraulic.TotalDemandGPM, bundle.Hydraulic.WaterSupplyDurationMin)
	}
	b.WriteString("\n")
}

func writeSpecialRequirements(b *strings.Builder, reqs []string) {
	if len(reqs) == 0 {
		return
	}
	b.WriteString("## Special Requirements & Limitations\n")
	for _, req := range reqs {
		fmt.Fprintf(b, "- %s\n", req)
	}
	b.WriteString("\n")
}

func writeReferences(b *strings.Builder, refs model.References, force bool) {
	tables := make([]string, 0, len(refs.Tables))
	for _, t := range refs.Tables {
		if t != "" {
			tables = append(tables, t)
		}
	}

	figures := refs.Figures
	if len(figures) > 3 {
		figures = figures[:3]
	}

	if len(tables) == 0 && len(figures) == 0 && !force {
		return
	}

	b.WriteString("## Code References\n")
	if force && len(refs.PrimarySections) > 0 {
		fmt.Fprintf(b, "- **Primary Sections**: %s\n", strings.Join(refs.PrimarySections, ", "))
	}
	if len(tables) > 0 {
		fmt.Fprintf(b, "- **Design Tables**: %s\n", strings.Join(tables, ", "))
	}
	if len(figures) > 0 {
		fmt.Fprintf(b, "- **Installation Figures**: %s\n", strings.Join(figures, ", "))
	}
	b.WriteString("\n")
}

func writeOptimizations(b *strings.Builder, opts []model.Optimization) {
	if len(opts) == 0 {
		return
	}
	b.WriteString("## Cost Optimization Opportunities\n")
	for _, opt := range opts {
		change := opt.Change
		if change == "" {
			change = "Configuration change"
		}
		benefit := opt.Benefit
		if benefit == "" {
			benefit = "Compliance benefit"
		}
		savings := opt.EstimatedSavings
		if savings == "" {
			savings = "Cost savings available"
		}
		fmt.Fprintf(b, "**%s**: %s - %s\n", change, benefit, savings)
	}
	b.WriteString("\n")
}
