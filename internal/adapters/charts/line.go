package charts

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"booking_insights/internal/analysis"
	"booking_insights/internal/domain"
)

// MonthlyTrend draws booking volume and cancellation rate per arrival month,
// one file each. s is keyed by arrival_month_num.
func (r *Renderer) MonthlyTrend(s *analysis.Summary) error {
	for _, c := range []struct {
		chart, metric, title, ylabel string
	}{
		{ChartMonthlyBookings, analysis.MetricTotalBookings, "Monthly bookings", "Bookings"},
		{ChartMonthlyCancelRate, analysis.MetricCancelRate, "Monthly cancellation rate", "Cancellation rate"},
	} {
		ys, err := s.Column(c.metric)
		if err != nil {
			return fmt.Errorf("%s: %w", c.chart, err)
		}
		xs := make([]float64, s.Len())
		for i, g := range s.Groups {
			xs[i] = g.Num(0)
		}
		pts, _ := plottable(c.chart, xs, ys)

		p := plot.New()
		p.Title.Text = c.title
		p.X.Label.Text = "Month"
		p.Y.Label.Text = c.ylabel
		p.X.Tick.Marker = monthTicks()
		p.Add(plotter.NewGrid())

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return fmt.Errorf("%s: %w", c.chart, err)
		}
		p.Add(line, points)

		if err := r.save(c.chart, p); err != nil {
			return err
		}
	}
	return nil
}

func monthTicks() plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, 0, 12)
	for n := 1; n <= 12; n++ {
		name, _ := domain.MonthName(n)
		ticks = append(ticks, plot.Tick{Value: float64(n), Label: name[:3]})
	}
	return ticks
}
