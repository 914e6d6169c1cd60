package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"booking_insights/internal/domain"
)

// missingMarker is how gota spells an absent value in record form.
const missingMarker = "NaN"

// missingValues are the cell spellings read as absent, in any column type.
var missingValues = []string{"", "NA", "N/A", "NaN", "nan", "NULL", "null", "<nil>"}

// Table is the in-memory booking table. Column order and row order follow the
// source; column types are detected on load (int, float, bool or text).
type Table struct{ df dataframe.DataFrame }

// ReadCSV parses a delimited table with a header row.
func ReadCSV(r io.Reader, delim rune) (*Table, error) {
	if delim == 0 {
		delim = ','
	}
	cr := csv.NewReader(r)
	cr.Comma = delim
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse delimited table: %w", domain.ErrDataAccess, err)
	}
	return FromRecords(records)
}

// FromRecords builds a table from a header row followed by value rows.
// A header without rows gives an empty table whose columns are all text.
func FromRecords(records [][]string) (*Table, error) {
	switch len(records) {
	case 0:
		return nil, fmt.Errorf("%w: no header row", domain.ErrDataAccess)
	case 1:
		cols := make([]series.Series, len(records[0]))
		for i, name := range records[0] {
			cols[i] = series.New([]string{}, series.String, name)
		}
		df := dataframe.New(cols...)
		if df.Err != nil {
			return nil, fmt.Errorf("%w: load header: %w", domain.ErrDataAccess, df.Err)
		}
		return &Table{df: df}, nil
	}
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(missingValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: load records: %w", domain.ErrDataAccess, df.Err)
	}
	return &Table{df: df}, nil
}

func (t *Table) Len() int { return t.df.Nrow() }

func (t *Table) Columns() []string { return t.df.Names() }

func (t *Table) Has(col string) bool {
	for _, n := range t.df.Names() {
		if n == col {
			return true
		}
	}
	return false
}

func (t *Table) column(col string) (series.Series, error) {
	if !t.Has(col) {
		return series.Series{}, fmt.Errorf("%w: column %q not found", domain.ErrSchema, col)
	}
	s := t.df.Col(col)
	if s.Err != nil {
		return series.Series{}, fmt.Errorf("%w: column %q: %w", domain.ErrSchema, col, s.Err)
	}
	return s, nil
}

// IsNumeric reports whether col holds int, float or bool values.
func (t *Table) IsNumeric(col string) bool {
	s, err := t.column(col)
	if err != nil {
		return false
	}
	switch s.Type() {
	case series.Int, series.Float, series.Bool:
		return true
	}
	return false
}

// NumericColumns lists numeric columns in table order.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, n := range t.df.Names() {
		if t.IsNumeric(n) {
			out = append(out, n)
		}
	}
	return out
}

// Strings returns the values of col in record form; missing cells read "NaN".
func (t *Table) Strings(col string) ([]string, error) {
	s, err := t.column(col)
	if err != nil {
		return nil, err
	}
	return s.Records(), nil
}

// Missing flags the cells of col that hold no value.
func (t *Table) Missing(col string) ([]bool, error) {
	s, err := t.column(col)
	if err != nil {
		return nil, err
	}
	return s.IsNaN(), nil
}

// Floats returns a numeric column; missing cells are NaN. A column of an
// empty table has no type and reads as empty.
func (t *Table) Floats(col string) ([]float64, error) {
	s, err := t.column(col)
	if err != nil {
		return nil, err
	}
	if s.Len() == 0 {
		return []float64{}, nil
	}
	if !t.IsNumeric(col) {
		return nil, fmt.Errorf("%w: column %q is not numeric (%s)", domain.ErrSchema, col, s.Type())
	}
	return s.Float(), nil
}

// AddIntColumn appends (or replaces) an integer column. Cells flagged in
// missing are stored as absent values.
func (t *Table) AddIntColumn(name string, values []int, missing []bool) error {
	if len(values) != t.Len() || len(missing) != t.Len() {
		return fmt.Errorf("add column %q: got %d values for %d rows", name, len(values), t.Len())
	}
	recs := make([]string, len(values))
	for i, v := range values {
		if missing[i] {
			recs[i] = missingMarker
			continue
		}
		recs[i] = strconv.Itoa(v)
	}
	df := t.df.Mutate(series.New(recs, series.Int, name))
	if df.Err != nil {
		return fmt.Errorf("add column %q: %w", name, df.Err)
	}
	t.df = df
	return nil
}
