package app

import (
	"context"

	"booking_insights/internal/analysis"
	"booking_insights/internal/dataset"
)

// Source loads the booking table once per run.
type Source interface {
	Load(ctx context.Context) (*dataset.Table, error)
}

// Presenter turns finished tables into chart artifacts. It never modifies them.
type Presenter interface {
	CancellationsByCustomer(s *analysis.Summary) error
	MonthlyTrend(s *analysis.Summary) error
	ChannelScatter(s *analysis.Summary) error
	CorrelationHeatmap(m *analysis.CorrMatrix) error
}
