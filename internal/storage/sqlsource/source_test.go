package sqlsource_test

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"booking_insights/internal/domain"
	"booking_insights/internal/storage/sqlsource"
)

const seedSQLite = `
CREATE TABLE hotel_bookings (
  hotel              TEXT    NOT NULL,
  is_canceled        INTEGER NOT NULL,
  lead_time          INTEGER NOT NULL,
  adr                REAL,
  arrival_date_month TEXT    NOT NULL
);
INSERT INTO hotel_bookings VALUES ('City Hotel', 1, 88, 76.5, 'March');
INSERT INTO hotel_bookings VALUES ('Resort Hotel', 0, 12, NULL, 'July');
INSERT INTO hotel_bookings VALUES ('City Hotel', 0, 3, 120.25, 'December');
`

func TestSource_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := sqlsource.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "bookings.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.ExecContext(ctx, seedSQLite); err != nil {
		t.Fatalf("seed: %v", err)
	}

	src, err := sqlsource.New(db, "sqlite", "hotel_bookings")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tb, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if tb.Len() != 3 {
		t.Fatalf("rows: got %d, want 3", tb.Len())
	}
	cols := tb.Columns()
	if len(cols) != 5 || cols[0] != "hotel" || cols[4] != "arrival_date_month" {
		t.Fatalf("unexpected columns: %v", cols)
	}
	adr, err := tb.Floats("adr")
	if err != nil {
		t.Fatalf("Floats: %v", err)
	}
	if adr[0] != 76.5 || !math.IsNaN(adr[1]) || adr[2] != 120.25 {
		t.Fatalf("unexpected adr: %v", adr)
	}
	if !tb.IsNumeric("is_canceled") || tb.IsNumeric("hotel") {
		t.Fatalf("unexpected types: numeric=%v", tb.NumericColumns())
	}
}

func TestSource_MissingTable(t *testing.T) {
	ctx := context.Background()
	db, err := sqlsource.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "empty.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	src, err := sqlsource.New(db, "sqlite", "hotel_bookings")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := src.Load(ctx); !errors.Is(err, domain.ErrDataAccess) {
		t.Fatalf("expected ErrDataAccess, got %v", err)
	}
}

func TestNew_RejectsBadTableName(t *testing.T) {
	for _, name := range []string{"", "bookings; DROP TABLE x", "a`b", "1abc"} {
		if _, err := sqlsource.New(nil, "sqlite", name); err == nil {
			t.Fatalf("expected error for table %q", name)
		}
	}
}

func TestSource_EmptyTable(t *testing.T) {
	ctx := context.Background()
	db, err := sqlsource.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "bookings.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.ExecContext(ctx, `CREATE TABLE hotel_bookings (hotel TEXT, is_canceled INTEGER)`); err != nil {
		t.Fatalf("create: %v", err)
	}

	src, err := sqlsource.New(db, "sqlite", "hotel_bookings")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tb, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tb.Len() != 0 || len(tb.Columns()) != 2 {
		t.Fatalf("got %d rows, columns %v; want 0 rows, 2 columns", tb.Len(), tb.Columns())
	}
}
