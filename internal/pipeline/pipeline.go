// Package pipeline implements the classification-and-lookup core: free
// text in, structured classification and requirement bundle out, rendered
// as a deterministic compliance report. Every stage is synchronous and
// stateless per invocation; the only shared resource is the read-only rule
// index.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/asrs-advisor/internal/model"
	"github.com/sells-group/asrs-advisor/internal/ruleset"
)

// Narrator rephrases a deterministic report conversationally. Optional;
// the advisor package provides the Claude-backed implementation.
type Narrator interface {
	Narrate(ctx context.Context, desc model.SystemDescription, report string, opts model.Options) (string, error)
}

// Consultant wires the extractor, resolver, and renderer to a rule index.
// Construct once at startup and share freely across goroutines.
type Consultant struct {
	index    ruleset.Index
	narrator Narrator
}

// New creates a Consultant over the given index. narrator may be nil.
func New(index ruleset.Index, narrator Narrator) *Consultant {
	return &Consultant{index: index, narrator: narrator}
}

// Consult runs the full pipeline for a single request. It never returns a
// process-level error: each stage folds its failures into the tagged
// outcome the caller inspects.
func (c *Consultant) Consult(ctx context.Context, req model.ConsultRequest) model.Consultation {
	consultation := model.Consultation{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}
	log := zap.L().With(zap.String("consultation_id", consultation.ID))

	consultation.Classification = Extract(req.Text, req.Supplemental...)
	if !consultation.Classification.Success {
		log.Warn("consult: extraction failed", zap.String("error", consultation.Classification.Error))
		consultation.Report = RenderReport(consultation.Classification.Description, model.RequirementBundle{}, renderOptions(req))
		return consultation
	}

	consultation.Resolution = Resolve(ctx, consultation.Classification.Description, req.Scope, c.index)
	if !consultation.Resolution.Success {
		log.Warn("consult: resolution failed", zap.String("error", consultation.Resolution.Error))
	}

	consultation.Report = RenderReport(consultation.Classification.Description, consultation.Resolution.Bundle, renderOptions(req))

	if c.narrator != nil {
		narrated, err := c.narrator.Narrate(ctx, consultation.Classification.Description, consultation.Report, req.Options)
		if err != nil {
			log.Warn("consult: narration failed, using deterministic report", zap.Error(err))
		} else {
			consultation.Report = narrated
			consultation.Narrated = true
		}
	}

	log.Info("consult: complete",
		zap.String("system_type", string(consultation.Classification.Description.SystemType)),
		zap.Float64("confidence", consultation.Classification.Description.Confidence.Overall),
		zap.Bool("narrated", consultation.Narrated),
	)

	return consultation
}

func renderOptions(req model.ConsultRequest) RenderOptions {
	style := req.Style
	if style == "" && req.Options.ProfessionalTone {
		style = model.StyleProfessional
	}
	return RenderOptions{
		Style:               style,
		IncludeOptimization: true,
		Debug:               req.Options.Debug,
		IncludeReferences:   req.Options.IncludeReferences,
	}
}
