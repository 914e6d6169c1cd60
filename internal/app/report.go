package app

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"booking_insights/internal/analysis"
	"booking_insights/internal/domain"
)

func FormatPercent(v float64) string { return fmt.Sprintf("%.2f%%", v*100) }

func FormatDays(v float64) string { return fmt.Sprintf("%.1f days", v) }

func FormatMoney(v float64) string { return fmt.Sprintf("€%.2f", v) }

// WriteOverview prints the headline numbers.
func WriteOverview(w io.Writer, ov domain.Overview) error {
	_, err := fmt.Fprintf(w,
		"=== Booking overview ===\nTotal bookings: %d\nOverall cancellation rate: %s\nMean lead time: %s\nMean daily rate: %s\n",
		ov.TotalBookings, FormatPercent(ov.CancelRate), FormatDays(ov.AvgLeadTime), FormatMoney(ov.AvgADR))
	return err
}

// WriteSummary prints a grouped summary as an aligned table, one row per group.
func WriteSummary(w io.Writer, title string, s *analysis.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\n%s:\n", title)

	head := append(append([]string{}, s.Keys...), s.Metrics...)
	fmt.Fprintln(tw, strings.Join(head, "\t")+"\t")
	for _, g := range s.Groups {
		cells := append([]string{}, g.Key...)
		for i, m := range s.Metrics {
			cells = append(cells, formatMetric(m, g.Values[i]))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	return tw.Flush()
}

func formatMetric(name string, v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	switch name {
	case analysis.MetricTotalBookings, analysis.MetricBookings:
		return fmt.Sprintf("%d", int(v))
	case analysis.MetricCancelRate:
		return FormatPercent(v)
	case analysis.MetricAvgLeadTime:
		return fmt.Sprintf("%.1f", v)
	case analysis.MetricAvgADR:
		return FormatMoney(v)
	}
	return fmt.Sprintf("%.4f", v)
}
