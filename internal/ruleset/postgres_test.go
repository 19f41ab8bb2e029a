package ruleset

import (
	"context"
	"fmt"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/asrs-advisor/internal/model"
)

var ruleColumns = []string{
	"id", "category", "title", "system_types", "commodities", "arrangement",
	"table_number", "figure_number", "sprinkler_spec", "spacing_ft",
	"flow_gpm", "pressure_psi", "max_height_ft",
}

func ruleRow(rows *pgxmock.Rows, r model.RuleRecord) *pgxmock.Rows {
	return rows.AddRow(
		r.ID, string(r.Category), r.Title, joinSystemTypes(r.SystemTypes),
		r.Commodities, r.Arrangement, r.TableNumber, r.FigureNumber,
		r.SprinklerSpec, r.SpacingFt, r.FlowGPM, r.PressurePSI, r.MaxHeightFt,
	)
}

func TestPostgresIndex_Migrate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS rules").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	idx := NewPostgresWithPool(mock)
	assert.NoError(t, idx.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresIndex_ImportRecords(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	records := Builtin()[:2]
	for _, r := range records {
		mock.ExpectExec("INSERT INTO rules").
			WithArgs(r.ID, string(r.Category), r.Title, joinSystemTypes(r.SystemTypes),
				r.Commodities, r.Arrangement, r.TableNumber, r.FigureNumber,
				r.SprinklerSpec, r.SpacingFt, r.FlowGPM, r.PressurePSI, r.MaxHeightFt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	idx := NewPostgresWithPool(mock)
	assert.NoError(t, idx.ImportRecords(context.Background(), records))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresIndex_ImportRecords_ExecError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := Builtin()[0]
	mock.ExpectExec("INSERT INTO rules").
		WithArgs(r.ID, string(r.Category), r.Title, joinSystemTypes(r.SystemTypes),
			r.Commodities, r.Arrangement, r.TableNumber, r.FigureNumber,
			r.SprinklerSpec, r.SpacingFt, r.FlowGPM, r.PressurePSI, r.MaxHeightFt).
		WillReturnError(fmt.Errorf("connection lost"))

	idx := NewPostgresWithPool(mock)
	err = idx.ImportRecords(context.Background(), Builtin()[:1])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresIndex_SearchByType(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows(ruleColumns)
	for _, r := range Builtin() {
		if r.Category != model.CategoryFigure {
			ruleRow(rows, r)
		}
	}
	mock.ExpectQuery("SELECT (.+) FROM rules WHERE category !=").
		WithArgs(string(model.CategoryFigure)).
		WillReturnRows(rows)

	idx := NewPostgresWithPool(mock)
	tables, err := idx.SearchByType(context.Background(), model.SystemMiniLoad)
	require.NoError(t, err)
	assert.Contains(t, tables, "table_10")
	assert.Contains(t, tables, "table_14")
	assert.NotContains(t, tables, "table_5")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresIndex_FiguresFor(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows(ruleColumns)
	for _, r := range Builtin() {
		if r.Category == model.CategoryFigure {
			ruleRow(rows, r)
		}
	}
	mock.ExpectQuery("SELECT (.+) FROM rules WHERE category =").
		WithArgs(string(model.CategoryFigure)).
		WillReturnRows(rows)

	idx := NewPostgresWithPool(mock)
	figures, err := idx.FiguresFor(context.Background(), "top-loading open_top")
	require.NoError(t, err)
	assert.Contains(t, figures, "figure_15")
	assert.NotContains(t, figures, "figure_12")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresIndex_SearchByType_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM rules").
		WithArgs(string(model.CategoryFigure)).
		WillReturnError(fmt.Errorf("relation does not exist"))

	idx := NewPostgresWithPool(mock)
	_, err = idx.SearchByType(context.Background(), model.SystemShuttle)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query tables")
	assert.NoError(t, mock.ExpectationsWereMet())
}
