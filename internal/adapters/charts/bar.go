package charts

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"booking_insights/internal/analysis"
)

var cancelStatus = []struct{ key, label string }{
	{"0", "Not canceled"},
	{"1", "Canceled"},
}

// CancellationsByCustomer draws grouped bars of booking counts per customer
// type, split by cancellation status. s is keyed by (customer_type, is_canceled).
func (r *Renderer) CancellationsByCustomer(s *analysis.Summary) error {
	if len(s.Keys) != 2 {
		return fmt.Errorf("%s: want two key columns, got %v", ChartCustomerCancellations, s.Keys)
	}
	var types []string
	seen := map[string]bool{}
	for _, g := range s.Groups {
		if !seen[g.Key[0]] {
			seen[g.Key[0]] = true
			types = append(types, g.Key[0])
		}
	}

	p := plot.New()
	p.Title.Text = "Cancellations by customer type"
	p.X.Label.Text = "Customer type"
	p.Y.Label.Text = "Bookings"
	p.Legend.Top = true

	w := vg.Points(18)
	for i, st := range cancelStatus {
		vals := make(plotter.Values, len(types))
		for j, ct := range types {
			v, _ := s.Value(analysis.MetricBookings, ct, st.key)
			vals[j] = v
		}
		bars, err := plotter.NewBarChart(vals, w)
		if err != nil {
			return fmt.Errorf("%s: %w", ChartCustomerCancellations, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = w * vg.Length(2*i-1) / 2
		p.Add(bars)
		p.Legend.Add(st.label, bars)
	}
	p.NominalX(types...)
	rotateXTicks(p)

	return r.save(ChartCustomerCancellations, p)
}
