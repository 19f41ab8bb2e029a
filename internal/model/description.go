package model

// SystemType identifies the ASRS sub-type of an installation.
type SystemType string

const (
	SystemShuttle    SystemType = "shuttle"
	SystemMiniLoad   SystemType = "mini-load"
	SystemTopLoading SystemType = "top-loading"
	SystemUnknown    SystemType = "unknown"
)

// ContainerMaterial classifies the combustibility of the storage containers.
type ContainerMaterial string

const (
	MaterialCombustible       ContainerMaterial = "combustible"
	MaterialNoncombustible    ContainerMaterial = "noncombustible"
	MaterialPlasticExpanded   ContainerMaterial = "plastic_expanded"
	MaterialPlasticUnexpanded ContainerMaterial = "plastic_unexpanded"
	MaterialUnknown           ContainerMaterial = "unknown"
)

// ContainerConfig describes whether containers are open or closed on top.
type ContainerConfig string

const (
	ConfigClosedTop ContainerConfig = "closed_top"
	ConfigOpenTop   ContainerConfig = "open_top"
	ConfigUnknown   ContainerConfig = "unknown"
)

// CommodityClass is the standardized combustibility rating of stored goods.
type CommodityClass string

const (
	CommodityClass1   CommodityClass = "class_1"
	CommodityClass2   CommodityClass = "class_2"
	CommodityClass3   CommodityClass = "class_3"
	CommodityClass4   CommodityClass = "class_4"
	CommodityUnknown  CommodityClass = "unknown"
)

// ResolutionPath routes a classified system to the datasheet section that
// governs it.
type ResolutionPath string

const (
	PathShuttleCombustible ResolutionPath = "section_2_2_3"
	PathMiniLoad           ResolutionPath = "section_2_2_6"
	PathTopLoading         ResolutionPath = "section_2_3"
	PathUnknown            ResolutionPath = "section_unknown"
)

// Dimensions holds the physical measurements extracted from a description.
// Nil pointers mean the dimension was not mentioned.
type Dimensions struct {
	StorageHeightFt *float64 `json:"storage_height_ft,omitempty"`
	AisleWidthFt    *float64 `json:"aisle_width_ft,omitempty"`
}

// ConfidenceScores carries per-field extraction confidence in [0,1].
// Overall discounts the system-type score for incompleteness; it is a
// heuristic completeness signal, not a probability.
type ConfidenceScores struct {
	SystemType        float64 `json:"system_type"`
	ContainerMaterial float64 `json:"container_material"`
	Overall           float64 `json:"overall"`
}

// SystemDescription is the structured classification extracted from a
// user's free-text description of their installation. Immutable once
// produced by the extractor.
type SystemDescription struct {
	SystemType        SystemType        `json:"system_type"`
	ContainerMaterial ContainerMaterial `json:"container_material"`
	ContainerConfig   ContainerConfig   `json:"container_config"`
	CommodityClass    CommodityClass    `json:"commodity_class"`
	Dimensions        Dimensions        `json:"dimensions"`
	Confidence        ConfidenceScores  `json:"confidence_scores"`
	MissingFields     []string          `json:"missing_fields,omitempty"`
	ResolutionPath    ResolutionPath    `json:"resolution_path"`
}

// Classification is the tagged outcome of the parameter extractor. A
// failed extraction carries Error and a zeroed Description; callers check
// Success rather than an error return.
type Classification struct {
	Success     bool              `json:"success"`
	Error       string            `json:"error,omitempty"`
	Description SystemDescription `json:"classification"`
}
