package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"booking_insights/internal/dataset"
	"booking_insights/internal/domain"
)

// Metric names used by the standard booking analyses.
const (
	MetricTotalBookings = "total_bookings"
	MetricCancelRate    = "cancel_rate"
	MetricAvgLeadTime   = "avg_lead_time"
	MetricAvgADR        = "avg_adr"
	MetricBookings      = "bookings"
)

type aggFunc int

const (
	aggCount aggFunc = iota
	aggMean
)

// Metric names one output column of a grouped summary.
type Metric struct {
	Name   string
	Column string
	fn     aggFunc
}

// Count counts non-missing values of column per group.
func Count(name, column string) Metric { return Metric{Name: name, Column: column, fn: aggCount} }

// Mean averages non-missing values of column per group.
func Mean(name, column string) Metric { return Metric{Name: name, Column: column, fn: aggMean} }

// Group is one distinct key tuple and its metric values (aligned with Summary.Metrics).
type Group struct {
	Key    []string
	Values []float64

	keyNum []float64
}

// Num returns key part i as a number; zero for text keys.
func (g Group) Num(i int) float64 { return g.keyNum[i] }

// Label joins the key parts for display.
func (g Group) Label() string { return strings.Join(g.Key, " / ") }

// Summary is the result table of GroupBy.
type Summary struct {
	Keys    []string
	Metrics []string
	Groups  []Group

	numericKey []bool
}

func (s *Summary) Len() int { return len(s.Groups) }

func (s *Summary) metricIndex(name string) (int, error) {
	for i, m := range s.Metrics {
		if m == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: metric %q not in summary", domain.ErrSchema, name)
}

// Column returns one metric across all groups, in group order.
func (s *Summary) Column(metric string) ([]float64, error) {
	idx, err := s.metricIndex(metric)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(s.Groups))
	for i, g := range s.Groups {
		out[i] = g.Values[idx]
	}
	return out, nil
}

// Value returns metric for the group whose key equals key.
func (s *Summary) Value(metric string, key ...string) (float64, bool) {
	idx, err := s.metricIndex(metric)
	if err != nil {
		return 0, false
	}
	for _, g := range s.Groups {
		if equalKeys(g.Key, key) {
			return g.Values[idx], true
		}
	}
	return 0, false
}

// SortBy reorders groups by metric. The sort is stable: groups with equal
// values keep their current relative order.
func (s *Summary) SortBy(metric string, desc bool) error {
	idx, err := s.metricIndex(metric)
	if err != nil {
		return err
	}
	sort.SliceStable(s.Groups, func(i, j int) bool {
		a, b := s.Groups[i].Values[idx], s.Groups[j].Values[idx]
		if desc {
			return a > b
		}
		return a < b
	})
	return nil
}

// GroupBy computes metrics for every distinct combination of key values found
// in t. Rows with a missing key value are left out. Groups come back in
// ascending key order (numeric order for numeric key columns).
func GroupBy(t *dataset.Table, keys []string, metrics ...Metric) (*Summary, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("group by: no key columns")
	}

	type keyCol struct {
		vals    []string
		missing []bool
		num     []float64
	}
	kcs := make([]keyCol, len(keys))
	numericKey := make([]bool, len(keys))
	for i, k := range keys {
		vals, err := t.Strings(k)
		if err != nil {
			return nil, err
		}
		missing, err := t.Missing(k)
		if err != nil {
			return nil, err
		}
		kcs[i] = keyCol{vals: vals, missing: missing}
		if t.IsNumeric(k) {
			numericKey[i] = true
			if kcs[i].num, err = t.Floats(k); err != nil {
				return nil, err
			}
		}
	}

	cols := make([][]float64, len(metrics))
	for i, m := range metrics {
		v, err := t.Floats(m.Column)
		if err != nil {
			return nil, err
		}
		cols[i] = v
	}

	type acc struct {
		group Group
		n     []int
		sum   []float64
	}
	index := make(map[string]int)
	var accs []*acc

rows:
	for r := 0; r < t.Len(); r++ {
		parts := make([]string, len(keys))
		for i := range kcs {
			if kcs[i].missing[r] {
				continue rows
			}
			parts[i] = kcs[i].vals[r]
		}
		id := strings.Join(parts, "\x1f")
		gi, ok := index[id]
		if !ok {
			g := Group{Key: parts, keyNum: make([]float64, len(keys))}
			for i := range kcs {
				if numericKey[i] {
					g.keyNum[i] = kcs[i].num[r]
				}
			}
			accs = append(accs, &acc{group: g, n: make([]int, len(metrics)), sum: make([]float64, len(metrics))})
			gi = len(accs) - 1
			index[id] = gi
		}
		a := accs[gi]
		for m := range metrics {
			v := cols[m][r]
			if math.IsNaN(v) {
				continue
			}
			a.n[m]++
			a.sum[m] += v
		}
	}

	out := &Summary{Keys: keys, numericKey: numericKey, Groups: make([]Group, 0, len(accs))}
	for _, m := range metrics {
		out.Metrics = append(out.Metrics, m.Name)
	}
	for _, a := range accs {
		g := a.group
		g.Values = make([]float64, len(metrics))
		for m, metric := range metrics {
			switch metric.fn {
			case aggCount:
				g.Values[m] = float64(a.n[m])
			case aggMean:
				if a.n[m] == 0 {
					g.Values[m] = math.NaN()
				} else {
					g.Values[m] = a.sum[m] / float64(a.n[m])
				}
			}
		}
		out.Groups = append(out.Groups, g)
	}
	sort.SliceStable(out.Groups, func(i, j int) bool { return out.lessKey(out.Groups[i], out.Groups[j]) })
	return out, nil
}

func (s *Summary) lessKey(a, b Group) bool {
	for i := range s.Keys {
		if s.numericKey[i] {
			if a.keyNum[i] != b.keyNum[i] {
				return a.keyNum[i] < b.keyNum[i]
			}
			continue
		}
		if a.Key[i] != b.Key[i] {
			return a.Key[i] < b.Key[i]
		}
	}
	return false
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
