package ruleset

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/asrs-advisor/internal/model"
)

// SQLiteIndex serves rule lookups from a SQLite database using
// modernc.org/sqlite. Category filtering happens in SQL; the
// substring-based commodity and arrangement matching stays in Go so all
// backends share identical semantics.
type SQLiteIndex struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL
// mode.
func NewSQLite(dsn string) (*SQLiteIndex, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "ruleset: open sqlite")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "ruleset: exec %s", pragma)
		}
	}
	return &SQLiteIndex{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS rules (
	id             TEXT PRIMARY KEY,
	category       TEXT NOT NULL,
	title          TEXT NOT NULL DEFAULT '',
	system_types   TEXT NOT NULL DEFAULT '',
	commodities    TEXT NOT NULL DEFAULT '',
	arrangement    TEXT NOT NULL DEFAULT '',
	table_number   TEXT NOT NULL DEFAULT '',
	figure_number  TEXT NOT NULL DEFAULT '',
	sprinkler_spec TEXT NOT NULL DEFAULT '',
	spacing_ft     TEXT NOT NULL DEFAULT '',
	flow_gpm       REAL NOT NULL DEFAULT 0,
	pressure_psi   REAL NOT NULL DEFAULT 0,
	max_height_ft  REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_rules_category ON rules(category);
`

func (s *SQLiteIndex) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "ruleset: migrate sqlite")
}

func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}

// ImportRecords upserts rule records into the database.
func (s *SQLiteIndex) ImportRecords(ctx context.Context, records []model.RuleRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "ruleset: begin import")
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO rules
		(id, category, title, system_types, commodities, arrangement,
		 table_number, figure_number, sprinkler_spec, spacing_ft,
		 flow_gpm, pressure_psi, max_height_ft)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		 category=excluded.category, title=excluded.title,
		 system_types=excluded.system_types, commodities=excluded.commodities,
		 arrangement=excluded.arrangement, table_number=excluded.table_number,
		 figure_number=excluded.figure_number, sprinkler_spec=excluded.sprinkler_spec,
		 spacing_ft=excluded.spacing_ft, flow_gpm=excluded.flow_gpm,
		 pressure_psi=excluded.pressure_psi, max_height_ft=excluded.max_height_ft`

	for _, r := range records {
		if _, err := tx.ExecContext(ctx, upsert,
			r.ID, string(r.Category), r.Title, joinSystemTypes(r.SystemTypes),
			r.Commodities, r.Arrangement, r.TableNumber, r.FigureNumber,
			r.SprinklerSpec, r.SpacingFt, r.FlowGPM, r.PressurePSI, r.MaxHeightFt,
		); err != nil {
			return eris.Wrapf(err, "ruleset: upsert %s", r.ID)
		}
	}
	return eris.Wrap(tx.Commit(), "ruleset: commit import")
}

func (s *SQLiteIndex) SearchByType(ctx context.Context, st model.SystemType) (map[string]model.RuleRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, title, system_types, commodities, arrangement,
		        table_number, figure_number, sprinkler_spec, spacing_ft,
		        flow_gpm, pressure_psi, max_height_ft
		 FROM rules WHERE category != ?`, string(model.CategoryFigure))
	if err != nil {
		return nil, eris.Wrap(err, "ruleset: query tables")
	}
	defer rows.Close()

	out := make(map[string]model.RuleRecord)
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		if r.AppliesTo(st) {
			out[r.ID] = r
		}
	}
	return out, eris.Wrap(rows.Err(), "ruleset: scan tables")
}

func (s *SQLiteIndex) FiguresFor(ctx context.Context, arrangement string) (map[string]model.RuleRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, title, system_types, commodities, arrangement,
		        table_number, figure_number, sprinkler_spec, spacing_ft,
		        flow_gpm, pressure_psi, max_height_ft
		 FROM rules WHERE category = ?`, string(model.CategoryFigure))
	if err != nil {
		return nil, eris.Wrap(err, "ruleset: query figures")
	}
	defer rows.Close()

	out := make(map[string]model.RuleRecord)
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		if r.MatchesArrangement(arrangement) {
			out[r.ID] = r
		}
	}
	return out, eris.Wrap(rows.Err(), "ruleset: scan figures")
}

// All returns every record, for status reporting.
func (s *SQLiteIndex) All(ctx context.Context) ([]model.RuleRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, title, system_types, commodities, arrangement,
		        table_number, figure_number, sprinkler_spec, spacing_ft,
		        flow_gpm, pressure_psi, max_height_ft
		 FROM rules ORDER BY id`)
	if err != nil {
		return nil, eris.Wrap(err, "ruleset: query all")
	}
	defer rows.Close()

	var out []model.RuleRecord
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "ruleset: scan all")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRule(row rowScanner) (model.RuleRecord, error) {
	var r model.RuleRecord
	var category, systemTypes string
	err := row.Scan(&r.ID, &category, &r.Title, &systemTypes, &r.Commodities,
		&r.Arrangement, &r.TableNumber, &r.FigureNumber, &r.SprinklerSpec,
		&r.SpacingFt, &r.FlowGPM, &r.PressurePSI, &r.MaxHeightFt)
	if err != nil {
		return model.RuleRecord{}, eris.Wrap(err, "ruleset: scan rule")
	}
	r.Category = model.RuleCategory(category)
	r.SystemTypes = splitSystemTypes(systemTypes)
	return r, nil
}

func joinSystemTypes(types []model.SystemType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

func splitSystemTypes(s string) []model.SystemType {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]model.SystemType, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, model.SystemType(p))
		}
	}
	return out
}
