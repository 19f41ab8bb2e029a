package model

import "time"

// Scope selects which requirement categories the resolver produces.
type Scope string

const (
	ScopeComprehensive Scope = "comprehensive"
	ScopeCeilingOnly   Scope = "ceiling_only"
	ScopeInRackOnly    Scope = "in_rack_only"
	ScopeTablesOnly    Scope = "tables_only"
)

// Style selects the report rendering style.
type Style string

const (
	StyleProfessional Style = "professional"
	StyleDetailed     Style = "detailed"
	StyleSummary      Style = "summary"
)

// Options are per-request tone and verbosity switches.
type Options struct {
	Debug             bool `json:"debug,omitempty"`
	ProfessionalTone  bool `json:"professional_tone,omitempty"`
	IncludeReferences bool `json:"include_references,omitempty"`
}

// ConsultRequest is the single inbound entry point of the pipeline.
type ConsultRequest struct {
	Text         string   `json:"text"`
	Supplemental []string `json:"supplemental,omitempty"`
	Scope        Scope    `json:"scope,omitempty"`
	Style        Style    `json:"style,omitempty"`
	Options      Options  `json:"options,omitempty"`
}

// Consultation is the full result of one pipeline invocation: the
// rendered report plus the intermediate stages for programmatic callers.
type Consultation struct {
	ID             string         `json:"id"`
	Classification Classification `json:"classification"`
	Resolution     Resolution     `json:"resolution"`
	Report         string         `json:"report"`
	Narrated       bool           `json:"narrated,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}
