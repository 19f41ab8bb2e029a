package model

// SprinklerSpecs describes a ceiling sprinkler specification.
type SprinklerSpecs struct {
	KFactor           string `json:"k_factor"`
	TemperatureRating string `json:"temperature_rating"`
	ResponseType      string `json:"response_type"`
	Orientation       string `json:"orientation"`
	CoverageType      string `json:"coverage_type"`
}

// DesignParameters holds ceiling design constraints.
type DesignParameters struct {
	MinimumPressurePSI  float64 `json:"minimum_pressure_psi"`
	SpacingRequirements string  `json:"spacing_requirements,omitempty"`
}

// CeilingProtection is the ceiling-sprinkler section of a requirement
// bundle.
type CeilingProtection struct {
	SystemType        string           `json:"system_type"`
	SprinklerSpecs    SprinklerSpecs   `json:"sprinkler_specs"`
	DesignParameters  DesignParameters `json:"design_parameters"`
	TableReference    string           `json:"table_reference,omitempty"`
	ApplicableFigures []string         `json:"applicable_figures,omitempty"`
}

// RackArrangement describes the horizontal in-rack sprinkler layout.
type RackArrangement struct {
	SprinklerType       string  `json:"sprinkler_type"`
	VerticalSpacingFt   float64 `json:"vertical_spacing_ft"`
	HorizontalSpacingFt float64 `json:"horizontal_spacing_ft"`
	InstallationLevel   string  `json:"installation_level"`
}

// InRackProtection is the in-rack (IRAS) section of a requirement bundle.
// The resolver only emits this section when in-rack protection is
// required; Required exists for callers that assemble bundles directly
// and want the renderer's "not required" narrative.
type InRackProtection struct {
	Required          bool            `json:"required"`
	Arrangement       RackArrangement `json:"horizontal_arrangement"`
	DesignFlowGPM     float64         `json:"design_flow_gpm,omitempty"`
	TableReference    string          `json:"table_reference,omitempty"`
	ApplicableFigures []string        `json:"applicable_figures,omitempty"`
}

// HydraulicDesign holds system-wide water demand figures.
type HydraulicDesign struct {
	TotalDemandGPM             float64 `json:"total_demand_gpm"`
	HoseDemandGPM              float64 `json:"hose_demand_gpm"`
	WaterSupplyDurationMin     float64 `json:"water_supply_duration_min"`
	MinimumResidualPressurePSI float64 `json:"minimum_residual_pressure_psi"`
}

// Optimization is a configuration change that would reduce protection
// requirements or cost.
type Optimization struct {
	Change           string `json:"change"`
	Benefit          string `json:"benefit"`
	EstimatedSavings string `json:"estimated_savings"`
}

// References aggregates the datasheet sections, tables, and figures
// consulted while resolving a bundle. Tables are deduplicated against the
// sections that cite them; Figures intentionally list everything the
// lookup returned, cited or not.
type References struct {
	PrimarySections []string `json:"primary_sections,omitempty"`
	Tables          []string `json:"tables_referenced,omitempty"`
	Figures         []string `json:"figures_referenced,omitempty"`
}

// RequirementBundle is the resolver's output: one optional section per
// protection category plus caveats, optimizations, and references.
type RequirementBundle struct {
	Ceiling             *CeilingProtection `json:"ceiling_protection,omitempty"`
	InRack              *InRackProtection  `json:"in_rack_protection,omitempty"`
	Hydraulic           *HydraulicDesign   `json:"hydraulic_design,omitempty"`
	SpecialRequirements []string           `json:"special_requirements,omitempty"`
	Optimizations       []Optimization     `json:"optimization_opportunities,omitempty"`
	References          References         `json:"references"`
}

// Resolution is the tagged outcome of the requirement resolver.
type Resolution struct {
	Success bool              `json:"success"`
	Error   string            `json:"error,omitempty"`
	Bundle  RequirementBundle `json:"requirements"`
}
