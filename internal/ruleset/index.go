// Package ruleset provides the queryable index of protection rule records
// the resolver consults. Records are loaded once at process start from the
// built-in dataset, a YAML file, or a database backend, and are never
// mutated during request handling, so concurrent reads need no locking.
package ruleset

import (
	"context"

	"github.com/sells-group/asrs-advisor/internal/model"
)

// Index is the read-only rule lookup interface. SearchByType returns all
// table records (non-figure categories) applicable to a system type.
// FiguresFor returns figure records whose descriptive metadata matches any
// token of the arrangement descriptor.
type Index interface {
	SearchByType(ctx context.Context, st model.SystemType) (map[string]model.RuleRecord, error)
	FiguresFor(ctx context.Context, arrangement string) (map[string]model.RuleRecord, error)
}
