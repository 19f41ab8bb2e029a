package ruleset

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/asrs-advisor/internal/model"
)

// Pool is the subset of pgxpool.Pool the index uses; pgxmock satisfies it
// in tests.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close()
}

// PostgresIndex serves rule lookups from Postgres via pgxpool.
type PostgresIndex struct {
	pool Pool
}

// NewPostgres connects a PostgresIndex to the given connection string.
func NewPostgres(ctx context.Context, connString string) (*PostgresIndex, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "ruleset: connect postgres")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "ruleset: ping postgres")
	}
	return &PostgresIndex{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool, used by tests.
func NewPostgresWithPool(pool Pool) *PostgresIndex {
	return &PostgresIndex{pool: pool}
}

const postgresMigration = `
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
	flow_gpm       DOUBLE PRECISION NOT NULL DEFAULT 0,
	pressure_psi   DOUBLE PRECISION NOT NULL DEFAULT 0,
	max_height_ft  DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_rules_category ON rules(category);
`

func (p *PostgresIndex) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "ruleset: migrate postgres")
}

func (p *PostgresIndex) Close() {
	p.pool.Close()
}

// ImportRecords upserts rule records.
func (p *PostgresIndex) ImportRecords(ctx context.Context, records []model.RuleRecord) error {
	const upsert = `INSERT INTO rules
		(id, category, title, system_types, commodities, arrangement,
		 table_number, figure_number, sprinkler_spec, spacing_ft,
		 flow_gpm, pressure_psi, max_height_ft)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
		 category=EXCLUDED.category, title=EXCLUDED.title,
		 system_types=EXCLUDED.system_types, commodities=EXCLUDED.commodities,
		 arrangement=EXCLUDED.arrangement, table_number=EXCLUDED.table_number,
		 figure_number=EXCLUDED.figure_number, sprinkler_spec=EXCLUDED.sprinkler_spec,
		 spacing_ft=EXCLUDED.spacing_ft, flow_gpm=EXCLUDED.flow_gpm,
		 pressure_psi=EXCLUDED.pressure_psi, max_height_ft=EXCLUDED.max_height_ft`

	for _, r := range records {
		if _, err := p.pool.Exec(ctx, upsert,
			r.ID, string(r.Category), r.Title, joinSystemTypes(r.SystemTypes),
			r.Commodities, r.Arrangement, r.TableNumber, r.FigureNumber,
			r.SprinklerSpec, r.SpacingFt, r.FlowGPM, r.PressurePSI, r.MaxHeightFt,
		); err != nil {
			return eris.Wrapf(err, "ruleset: upsert %s", r.ID)
		}
	}
	return nil
}

const postgresSelect = `SELECT id, category, title, system_types, commodities, arrangement,
	table_number, figure_number, sprinkler_spec, spacing_ft,
	flow_gpm, pressure_psi, max_height_ft FROM rules`

func (p *PostgresIndex) SearchByType(ctx context.Context, st model.SystemType) (map[string]model.RuleRecord, error) {
	rows, err := p.pool.Query(ctx, postgresSelect+` WHERE category != $1`, string(model.CategoryFigure))
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

func (p *PostgresIndex) FiguresFor(ctx context.Context, arrangement string) (map[string]model.RuleRecord, error) {
	rows, err := p.pool.Query(ctx, postgresSelect+` WHERE category = $1`, string(model.CategoryFigure))
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
