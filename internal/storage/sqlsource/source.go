package sqlsource

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog/log"

	"booking_insights/internal/adapters/observability"
	"booking_insights/internal/dataset"
	"booking_insights/internal/domain"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Source reads the booking table from a SQL table. Any database/sql driver
// works; the command wires MySQL and SQLite.
type Source struct {
	db    *sql.DB
	name  string
	table string
}

// New returns a source over table. name labels logs and metrics ("mysql", "sqlite").
func New(db *sql.DB, name, table string) (*Source, error) {
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &Source{db: db, name: name, table: table}, nil
}

// Open opens and pings a database handle.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrDataAccess, driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", domain.ErrDataAccess, driver, err)
	}
	return db, nil
}

// Load reads every row of the table. NULL cells become missing values.
func (s *Source) Load(ctx context.Context) (*dataset.Table, error) {
	start := time.Now()

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(selectAllSQL, s.table))
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %w", domain.ErrDataAccess, s.table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: columns of %s: %w", domain.ErrDataAccess, s.table, err)
	}

	records := [][]string{cols}
	vals := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range vals {
		dest[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %w", domain.ErrDataAccess, s.table, err)
		}
		rec := make([]string, len(cols))
		for i, v := range vals {
			if !v.Valid {
				rec[i] = "NaN"
				continue
			}
			rec[i] = v.String
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrDataAccess, s.table, err)
	}

	t, err := dataset.FromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.table, err)
	}

	observability.ObserveLoad(s.name, t.Len())
	log.Debug().
		Str("source", s.name).
		Str("table", s.table).
		Int("rows", t.Len()).
		Dur("took", time.Since(start)).
		Msg("sql table loaded")
	return t, nil
}
