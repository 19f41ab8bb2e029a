package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/asrs-advisor/internal/model"
)

func TestValidateScope(t *testing.T) {
	valid := []model.Scope{
		"",
		model.ScopeComprehensive,
		model.ScopeCeilingOnly,
		model.ScopeInRackOnly,
		model.ScopeTablesOnly,
	}
	for _, scope := range valid {
		assert.NoError(t, validateScope(scope), string(scope))
	}

	err := validateScope("partial")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scope")
}
