package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/asrs-advisor/internal/advisor"
	"github.com/sells-group/asrs-advisor/internal/pipeline"
	"github.com/sells-group/asrs-advisor/internal/ruleset"
	"github.com/sells-group/asrs-advisor/pkg/anthropic"
)

// initIndex opens the rule index backend selected by config. The returned
// close function is a no-op for the memory backend.
func initIndex(ctx context.Context) (ruleset.Index, func(), error) {
	switch cfg.Ruleset.Driver {
	case "", "memory":
		records := ruleset.Builtin()
		if cfg.Ruleset.DatasetPath != "" {
			loaded, err := ruleset.LoadYAML(cfg.Ruleset.DatasetPath)
			if err != nil {
				return nil, nil, err
			}
			records = loaded
		}
		zap.L().Info("rule index loaded",
			zap.String("driver", "memory"),
			zap.Int("records", len(records)),
		)
		return ruleset.NewMemory(records), func() {}, nil

	case "sqlite":
		idx, err := ruleset.NewSQLite(cfg.Ruleset.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := idx.Migrate(ctx); err != nil {
			idx.Close()
			return nil, nil, err
		}
		return idx, func() { idx.Close() }, nil

	case "postgres":
		idx, err := ruleset.NewPostgres(ctx, cfg.Ruleset.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := idx.Migrate(ctx); err != nil {
			idx.Close()
			return nil, nil, err
		}
		return idx, idx.Close, nil

	default:
		return nil, nil, eris.Errorf("unknown ruleset driver %q", cfg.Ruleset.Driver)
	}
}

// initConsultant builds the pipeline with the configured index and, when
// enabled, the Claude narration layer.
func initConsultant(ctx context.Context, narrate bool) (*pipeline.Consultant, func(), error) {
	idx, closeIdx, err := initIndex(ctx)
	if err != nil {
		return nil, nil, err
	}

	var narrator pipeline.Narrator
	if narrate || cfg.Advisor.Enabled {
		if cfg.Advisor.Key == "" {
			closeIdx()
			return nil, nil, eris.New("advisor enabled but no API key configured")
		}
		client := anthropic.NewClient(cfg.Advisor.Key, cfg.Advisor.RequestsPerSecond)
		narrator = advisor.New(client, cfg.Advisor.Model, cfg.Advisor.MaxTokens)
	}

	return pipeline.New(idx, narrator), closeIdx, nil
}
