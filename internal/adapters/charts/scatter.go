package charts

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"booking_insights/internal/analysis"
)

// ChannelScatter plots average daily rate against cancellation rate per
// market segment; point area follows total bookings.
func (r *Renderer) ChannelScatter(s *analysis.Summary) error {
	adr, err := s.Column(analysis.MetricAvgADR)
	if err != nil {
		return fmt.Errorf("%s: %w", ChartChannelScatter, err)
	}
	rate, err := s.Column(analysis.MetricCancelRate)
	if err != nil {
		return fmt.Errorf("%s: %w", ChartChannelScatter, err)
	}
	totals, err := s.Column(analysis.MetricTotalBookings)
	if err != nil {
		return fmt.Errorf("%s: %w", ChartChannelScatter, err)
	}

	pts, kept := plottable(ChartChannelScatter, adr, rate)
	names := make([]string, len(kept))
	sizes := make([]float64, len(kept))
	var maxTotal float64
	for j, i := range kept {
		names[j] = s.Groups[i].Label()
		sizes[j] = totals[i]
		maxTotal = math.Max(maxTotal, totals[i])
	}

	p := plot.New()
	p.Title.Text = "Channel performance: daily rate vs cancellation rate"
	p.X.Label.Text = "Average daily rate (€)"
	p.Y.Label.Text = "Cancellation rate"
	p.Add(plotter.NewGrid())

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("%s: %w", ChartChannelScatter, err)
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		radius := vg.Points(3)
		if maxTotal > 0 {
			radius += vg.Points(12 * math.Sqrt(sizes[i]/maxTotal))
		}
		return draw.GlyphStyle{Color: plotutil.Color(i), Radius: radius, Shape: draw.CircleGlyph{}}
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: names})
	if err != nil {
		return fmt.Errorf("%s: %w", ChartChannelScatter, err)
	}
	labels.Offset = vg.Point{X: vg.Points(8), Y: vg.Points(4)}

	p.Add(sc, labels)
	return r.save(ChartChannelScatter, p)
}
