package charts

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"booking_insights/internal/adapters/observability"
)

// Chart names, also used as file stems.
const (
	ChartCustomerCancellations = "customer_cancellations"
	ChartMonthlyBookings       = "monthly_bookings"
	ChartMonthlyCancelRate     = "monthly_cancel_rate"
	ChartChannelScatter        = "channel_scatter"
	ChartCorrelationHeatmap    = "correlation_heatmap"
)

// Renderer writes each chart as one self-contained file in dir.
type Renderer struct {
	dir    string
	format string
	width  vg.Length
	height vg.Length
}

func New(dir, format string, widthIn, heightIn float64) (*Renderer, error) {
	switch format {
	case "png", "svg", "pdf":
	default:
		return nil, fmt.Errorf("unsupported chart format %q", format)
	}
	if widthIn <= 0 || heightIn <= 0 {
		return nil, fmt.Errorf("chart size must be positive, got %gx%g", widthIn, heightIn)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}
	return &Renderer{
		dir:    dir,
		format: format,
		width:  vg.Length(widthIn) * vg.Inch,
		height: vg.Length(heightIn) * vg.Inch,
	}, nil
}

// SetFont selects the Liberation variant used for all chart text.
func SetFont(variant string) error {
	switch variant {
	case "Sans", "Serif", "Mono":
	default:
		return fmt.Errorf("unsupported chart font %q (want Sans, Serif or Mono)", variant)
	}
	plot.DefaultFont = font.Font{Typeface: "Liberation", Variant: font.Variant(variant)}
	return nil
}

// Path returns the file a chart is written to.
func (r *Renderer) Path(chart string) string {
	return filepath.Join(r.dir, chart+"."+r.format)
}

func (r *Renderer) save(chart string, p *plot.Plot) error {
	start := time.Now()
	err := p.Save(r.width, r.height, r.Path(chart))
	observability.ObserveChart(chart, err)
	if err != nil {
		return fmt.Errorf("save %s: %w", chart, err)
	}
	log.Info().Str("chart", chart).Str("path", r.Path(chart)).Dur("took", time.Since(start)).Msg("chart written")
	return nil
}

func rotateXTicks(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
}

// plottable pairs xs with ys, skipping points where either is NaN. kept maps
// each point back to its group index.
func plottable(chart string, xs, ys []float64) (pts plotter.XYs, kept []int) {
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
		kept = append(kept, i)
	}
	if skipped := len(xs) - len(kept); skipped > 0 {
		log.Warn().Str("chart", chart).Int("skipped", skipped).Msg("points without a value left out")
	}
	return pts, kept
}
