package ruleset

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/asrs-advisor/internal/model"
)

// MemoryIndex serves rule lookups from an in-memory slice. It is the
// default backend; the slice is never mutated after construction.
type MemoryIndex struct {
	records []model.RuleRecord
}

// NewMemory creates a MemoryIndex over the given records. Pass Builtin()
// for the compiled-in dataset.
func NewMemory(records []model.RuleRecord) *MemoryIndex {
	return &MemoryIndex{records: records}
}

func (m *MemoryIndex) SearchByType(_ context.Context, st model.SystemType) (map[string]model.RuleRecord, error) {
	out := make(map[string]model.RuleRecord)
	for _, r := range m.records {
		if r.Category == model.CategoryFigure {
			continue
		}
		if r.AppliesTo(st) {
			out[r.ID] = r
		}
	}
	return out, nil
}

func (m *MemoryIndex) FiguresFor(_ context.Context, arrangement string) (map[string]model.RuleRecord, error) {
	out := make(map[string]model.RuleRecord)
	for _, r := range m.records {
		if r.Category != model.CategoryFigure {
			continue
		}
		if r.MatchesArrangement(arrangement) {
			out[r.ID] = r
		}
	}
	return out, nil
}

// datasetFile is the on-disk YAML shape: a top-level "rules" key.
type datasetFile struct {
	Rules []model.RuleRecord `yaml:"rules"`
}

// LoadYAML reads a rule dataset from a YAML file.
func LoadYAML(path string) ([]model.RuleRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ruleset: read dataset %s", path)
	}
	var file datasetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, eris.Wrap(err, "ruleset: parse dataset")
	}
	if err := Validate(file.Rules); err != nil {
		return nil, err
	}
	return file.Rules, nil
}

// Validate checks a record set for structural problems: empty or duplicate
// IDs, missing categories, and table/figure records without a reference
// number.
func Validate(records []model.RuleRecord) error {
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if r.ID == "" {
			return eris.New("ruleset: record with empty id")
		}
		if seen[r.ID] {
			return eris.Errorf("ruleset: duplicate record id %s", r.ID)
		}
		seen[r.ID] = true
		switch r.Category {
		case model.CategoryCeiling, model.CategoryInRack, model.CategoryHydraulic:
			if r.TableNumber == "" {
				return eris.Errorf("ruleset: record %s has no table number", r.ID)
			}
		case model.CategoryFigure:
			if r.FigureNumber == "" {
				return eris.Errorf("ruleset: record %s has no figure number", r.ID)
			}
		default:
			return eris.Errorf("ruleset: record %s has unknown category %q", r.ID, r.Category)
		}
	}
	return nil
}

// Counts tallies records per category, for status reporting.
func Counts(records []model.RuleRecord) map[model.RuleCategory]int {
	out := make(map[model.RuleCategory]int)
	for _, r := range records {
		out[r.Category]++
	}
	return out
}
