package charts

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"

	"booking_insights/internal/analysis"
)

// corrGrid exposes a correlation matrix as a plotter.GridXYZ.
type corrGrid struct{ m *analysis.CorrMatrix }

func (g corrGrid) Dims() (c, r int)   { n := len(g.m.Columns); return n, n }
func (g corrGrid) Z(c, r int) float64 { return g.m.Values[r][c] }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

// CorrelationHeatmap draws the matrix with annotated cells on a blue-red
// diverging scale fixed to [-1, 1].
func (r *Renderer) CorrelationHeatmap(m *analysis.CorrMatrix) error {
	n := len(m.Columns)
	if n == 0 {
		return fmt.Errorf("%s: no numeric columns", ChartCorrelationHeatmap)
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	hm := plotter.NewHeatMap(corrGrid{m}, cm.Palette(255))
	hm.Min, hm.Max = -1, 1

	pts := make(plotter.XYs, 0, n*n)
	notes := make([]string, 0, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			v := m.Values[row][col]
			pts = append(pts, plotter.XY{X: float64(col), Y: float64(row)})
			if math.IsNaN(v) {
				notes = append(notes, "")
				continue
			}
			notes = append(notes, fmt.Sprintf("%.2f", v))
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: notes})
	if err != nil {
		return fmt.Errorf("%s: %w", ChartCorrelationHeatmap, err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
	}

	p := plot.New()
	p.Title.Text = "Feature correlation"
	p.Add(hm, labels)
	p.NominalX(m.Columns...)
	p.NominalY(m.Columns...)
	rotateXTicks(p)

	return r.save(ChartCorrelationHeatmap, p)
}
