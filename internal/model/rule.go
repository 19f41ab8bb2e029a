package model

import "strings"

// RuleCategory groups rule records by the protection concern they govern.
type RuleCategory string

const (
	CategoryCeiling   RuleCategory = "ceiling"
	CategoryInRack    RuleCategory = "in-rack"
	CategoryFigure    RuleCategory = "figure"
	CategoryHydraulic RuleCategory = "hydraulic"
)

// RuleRecord is one reference-table or reference-figure entry from the
// protection datasheet. Records are loaded once at startup and read-only
// during request handling.
type RuleRecord struct {
	ID          string       `json:"id" yaml:"id"`
	Category    RuleCategory `json:"category" yaml:"category"`
	Title       string       `json:"title" yaml:"title"`
	SystemTypes []SystemType `json:"system_types" yaml:"system_types"`

	// Commodities is a descriptive list of applicable commodity/material
	// terms ("combustible, cartoned unexpanded plastic"), or "all".
	// Matching is substring-based, not exact.
	Commodities string `json:"commodities" yaml:"commodities"`

	// Arrangement is free-text metadata describing the storage arrangement
	// a figure applies to ("shuttle open-top vertical IRAS layout").
	Arrangement string `json:"arrangement,omitempty" yaml:"arrangement,omitempty"`

	TableNumber  string `json:"table_number,omitempty" yaml:"table_number,omitempty"`
	FigureNumber string `json:"figure_number,omitempty" yaml:"figure_number,omitempty"`

	// Category-specific payload.
	SprinklerSpec string  `json:"sprinkler_spec,omitempty" yaml:"sprinkler_spec,omitempty"`
	SpacingFt     string  `json:"spacing_ft,omitempty" yaml:"spacing_ft,omitempty"`
	FlowGPM       float64 `json:"flow_gpm,omitempty" yaml:"flow_gpm,omitempty"`
	PressurePSI   float64 `json:"pressure_psi,omitempty" yaml:"pressure_psi,omitempty"`
	MaxHeightFt   float64 `json:"max_height_ft,omitempty" yaml:"max_height_ft,omitempty"`
}

// AppliesTo reports whether the record covers the given system type.
func (r RuleRecord) AppliesTo(st SystemType) bool {
	for _, t := range r.SystemTypes {
		if t == st {
			return true
		}
	}
	return false
}

// MatchesCommodity reports whether the record's commodity list contains
// the given material term (case-insensitive substring) or the "all"
// sentinel.
func (r RuleRecord) MatchesCommodity(material ContainerMaterial) bool {
	commodities := strings.ToLower(r.Commodities)
	if strings.Contains(commodities, "all") {
		return true
	}
	return strings.Contains(commodities, strings.ToLower(string(material)))
}

// MatchesArrangement reports whether any whitespace-separated token of the
// arrangement descriptor appears in the record's metadata. A figure tagged
// "shuttle" matches the descriptor "shuttle open_top".
func (r RuleRecord) MatchesArrangement(descriptor string) bool {
	meta := strings.ToLower(r.Arrangement + " " + r.Title)
	for _, token := range strings.Fields(strings.ToLower(descriptor)) {
		if token == string(SystemUnknown) || token == string(ConfigUnknown) {
			continue
		}
		if strings.Contains(meta, strings.ReplaceAll(token, "_", "-")) ||
			strings.Contains(meta, token) {
			return true
		}
	}
	return false
}
