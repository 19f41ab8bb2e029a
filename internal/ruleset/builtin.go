package ruleset

import "github.com/sells-group/asrs-advisor/internal/model"

// Builtin returns the default rule dataset compiled into the binary. It is
// a condensed rendition of the ASRS protection datasheet tables and
// figures; deployments with a fuller dataset point the index at a YAML
// file or database instead.
func Builtin() []model.RuleRecord {
	return []model.RuleRecord{
		{
			ID:            "table_5",
			Category:      model.CategoryCeiling,
			Title:         "Ceiling protection, shuttle ASRS, closed-top combustible containers",
			SystemTypes:   []model.SystemType{model.SystemShuttle},
			Commodities:   "combustible, plastic_unexpanded",
			TableNumber:   "5",
			SprinklerSpec: "K16.8 pendent quick-response 160F",
			SpacingFt:     "10 ft x 10 ft maximum",
			PressurePSI:   25,
			MaxHeightFt:   40,
		},
		{
			ID:            "table_6",
			Category:      model.CategoryCeiling,
			Title:         "Ceiling protection, shuttle ASRS, open-top containers",
			SystemTypes:   []model.SystemType{model.SystemShuttle},
			Commodities:   "combustible, plastic_unexpanded, plastic_expanded",
			TableNumber:   "6",
			SprinklerSpec: "K25.2 pendent quick-response 160F",
			SpacingFt:     "10 ft x 10 ft maximum",
			PressurePSI:   30,
			MaxHeightFt:   35,
		},
		{
			ID:            "table_8",
			Category:      model.CategoryCeiling,
			Title:         "Ceiling protection, shuttle ASRS, noncombustible containers",
			SystemTypes:   []model.SystemType{model.SystemShuttle},
			Commodities:   "all",
			TableNumber:   "8",
			SprinklerSpec: "K11.2 pendent quick-response 160F",
			SpacingFt:     "10 ft x 12 ft maximum",
			PressurePSI:   15,
			MaxHeightFt:   45,
		},
		{
			ID:            "table_10",
			Category:      model.CategoryCeiling,
			Title:         "Ceiling protection, mini-load ASRS",
			SystemTypes:   []model.SystemType{model.SystemMiniLoad},
			Commodities:   "all",
			TableNumber:   "10",
			SprinklerSpec: "K16.8 pendent quick-response 160F",
			SpacingFt:     "10 ft x 10 ft maximum",
			PressurePSI:   20,
			MaxHeightFt:   40,
		},
		{
			ID:            "table_12",
			Category:      model.CategoryCeiling,
			Title:         "Ceiling protection, top-loading ASRS grid storage",
			SystemTypes:   []model.SystemType{model.SystemTopLoading},
			Commodities:   "all",
			TableNumber:   "12",
			SprinklerSpec: "K22.4 pendent quick-response 160F",
			SpacingFt:     "8 ft x 10 ft maximum",
			PressurePSI:   35,
			MaxHeightFt:   30,
		},
		{
			ID:            "table_14",
			Category:      model.CategoryInRack,
			Title:         "In-rack protection, shuttle ASRS, combustible containers",
			SystemTypes:   []model.SystemType{model.SystemShuttle, model.SystemMiniLoad},
			Commodities:   "combustible, plastic_unexpanded, plastic_expanded",
			TableNumber:   "14",
			SprinklerSpec: "K8.0 quick-response 160F",
			FlowGPM:       150,
		},
		{
			ID:          "table_2",
			Category:    model.CategoryHydraulic,
			Title:       "Hose demand and water supply duration",
			SystemTypes: []model.SystemType{model.SystemShuttle, model.SystemMiniLoad, model.SystemTopLoading},
			Commodities: "all",
			TableNumber: "2",
			FlowGPM:     500,
		},
		{
			ID:           "figure_4",
			Category:     model.CategoryFigure,
			Title:        "Shuttle ASRS rack elevation, closed-top containers",
			SystemTypes:  []model.SystemType{model.SystemShuttle},
			Commodities:  "all",
			Arrangement:  "shuttle closed-top rack elevation",
			FigureNumber: "4",
		},
		{
			ID:           "figure_5",
			Category:     model.CategoryFigure,
			Title:        "Shuttle ASRS rack elevation, open-top containers",
			SystemTypes:  []model.SystemType{model.SystemShuttle},
			Commodities:  "all",
			Arrangement:  "shuttle open-top rack elevation",
			FigureNumber: "5",
		},
		{
			ID:           "figure_9_iras",
			Category:     model.CategoryFigure,
			Title:        "Horizontal IRAS layout, shuttle racks",
			SystemTypes:  []model.SystemType{model.SystemShuttle},
			Commodities:  "all",
			Arrangement:  "shuttle iras horizontal in-rack layout",
			FigureNumber: "9",
		},
		{
			ID:           "figure_12",
			Category:     model.CategoryFigure,
			Title:        "Mini-load rack cross-section with angle iron guides",
			SystemTypes:  []model.SystemType{model.SystemMiniLoad},
			Commodities:  "all",
			Arrangement:  "mini-load angle iron cross-section",
			FigureNumber: "12",
		},
		{
			ID:           "figure_15",
			Category:     model.CategoryFigure,
			Title:        "Top-loading grid storage plan view",
			SystemTypes:  []model.SystemType{model.SystemTopLoading},
			Commodities:  "all",
			Arrangement:  "top-loading grid plan",
			FigureNumber: "15",
		},
	}
}
