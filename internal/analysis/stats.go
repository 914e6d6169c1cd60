package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"booking_insights/internal/dataset"
	"booking_insights/internal/domain"
)

// Overview computes the headline numbers over the whole table.
func Overview(t *dataset.Table) (domain.Overview, error) {
	ov := domain.Overview{TotalBookings: t.Len()}
	for _, f := range []struct {
		col string
		dst *float64
	}{
		{domain.ColIsCanceled, &ov.CancelRate},
		{domain.ColLeadTime, &ov.AvgLeadTime},
		{domain.ColADR, &ov.AvgADR},
	} {
		v, err := t.Floats(f.col)
		if err != nil {
			return domain.Overview{}, err
		}
		*f.dst = meanPresent(v)
	}
	return ov, nil
}

func meanPresent(v []float64) float64 {
	present := make([]float64, 0, len(v))
	for _, x := range v {
		if !math.IsNaN(x) {
			present = append(present, x)
		}
	}
	if len(present) == 0 {
		return math.NaN()
	}
	return stat.Mean(present, nil)
}

// CorrMatrix is a symmetric Pearson correlation matrix across numeric columns.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// At returns r for the named pair.
func (m *CorrMatrix) At(a, b string) (float64, bool) {
	ia, ib := -1, -1
	for i, c := range m.Columns {
		if c == a {
			ia = i
		}
		if c == b {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return 0, false
	}
	return m.Values[ia][ib], true
}

// Correlate computes pairwise-complete Pearson r for every pair of numeric
// columns. Pairs with fewer than two complete rows or no variance are NaN.
func Correlate(t *dataset.Table) (*CorrMatrix, error) {
	cols := t.NumericColumns()
	data := make([][]float64, len(cols))
	for i, c := range cols {
		v, err := t.Floats(c)
		if err != nil {
			return nil, err
		}
		data[i] = v
	}

	n := len(cols)
	mat := make([][]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
		mat[i][i] = 1
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			r := pearson(data[a], data[b])
			mat[a][b], mat[b][a] = r, r
		}
	}
	return &CorrMatrix{Columns: cols, Values: mat}, nil
}

func pearson(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	switch {
	case math.IsNaN(r) || math.IsInf(r, 0):
		return math.NaN()
	case r > 1:
		return 1
	case r < -1:
		return -1
	}
	return r
}
