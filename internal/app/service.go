package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"booking_insights/internal/adapters/observability"
	"booking_insights/internal/analysis"
	"booking_insights/internal/dataset"
	"booking_insights/internal/domain"
)

// Report is everything one run computed.
type Report struct {
	Overview       domain.Overview
	Hotels         *analysis.Summary
	Customers      *analysis.Summary
	Monthly        *analysis.Summary
	Channels       *analysis.Summary
	Correlation    *analysis.CorrMatrix
	UnmappedMonths int
}

type AnalysisService struct {
	src    Source
	pres   Presenter
	policy domain.UnmappedPolicy
	out    io.Writer
}

// NewAnalysisService wires a run. pres may be nil to compute and print only.
func NewAnalysisService(src Source, pres Presenter, policy domain.UnmappedPolicy, out io.Writer) *AnalysisService {
	if policy == "" {
		policy = domain.PolicyExclude
	}
	return &AnalysisService{src: src, pres: pres, policy: policy, out: out}
}

// Run loads the table, derives the month ordinal, prints the overview and the
// per-hotel table, then computes and presents each analysis in turn.
// The first error aborts the run.
func (s *AnalysisService) Run(ctx context.Context) (*Report, error) {
	var (
		t   *dataset.Table
		rep Report
	)

	// 1) load
	if err := stage("load", func() (err error) {
		t, err = s.src.Load(ctx)
		return err
	}); err != nil {
		return nil, err
	}
	log.Info().Int("rows", t.Len()).Int("columns", len(t.Columns())).Msg("bookings loaded")

	// 2) derived month ordinal
	if err := stage("derive", func() (err error) {
		rep.UnmappedMonths, err = dataset.DeriveMonthNumber(t, s.policy)
		return err
	}); err != nil {
		return nil, err
	}
	if rep.UnmappedMonths > 0 {
		observability.ObserveUnmapped(domain.ColArrivalDateMonth, rep.UnmappedMonths)
		log.Warn().
			Int("rows", rep.UnmappedMonths).
			Str("column", domain.ColArrivalDateMonth).
			Msg("unrecognised month names; rows excluded from monthly analysis")
	}

	// 3) aggregates
	if err := stage("aggregate", func() error { return s.aggregate(t, &rep) }); err != nil {
		return nil, err
	}

	if err := WriteOverview(s.out, rep.Overview); err != nil {
		return nil, err
	}
	if err := WriteSummary(s.out, "Bookings by hotel", rep.Hotels); err != nil {
		return nil, err
	}

	// 4) charts
	if s.pres != nil {
		if err := stage("present", func() error { return s.present(&rep) }); err != nil {
			return nil, err
		}
	}

	return &rep, nil
}

func (s *AnalysisService) aggregate(t *dataset.Table, rep *Report) error {
	var err error
	if rep.Overview, err = analysis.Overview(t); err != nil {
		return fmt.Errorf("overview: %w", err)
	}

	if rep.Hotels, err = analysis.GroupBy(t, []string{domain.ColHotel},
		analysis.Count(analysis.MetricTotalBookings, domain.ColIsCanceled),
		analysis.Mean(analysis.MetricCancelRate, domain.ColIsCanceled),
		analysis.Mean(analysis.MetricAvgLeadTime, domain.ColLeadTime),
		analysis.Mean(analysis.MetricAvgADR, domain.ColADR),
	); err != nil {
		return fmt.Errorf("hotel stats: %w", err)
	}

	if rep.Customers, err = analysis.GroupBy(t, []string{domain.ColCustomerType, domain.ColIsCanceled},
		analysis.Count(analysis.MetricBookings, domain.ColIsCanceled),
	); err != nil {
		return fmt.Errorf("customer breakdown: %w", err)
	}

	if rep.Monthly, err = analysis.GroupBy(t, []string{domain.ColArrivalMonthNum},
		analysis.Count(analysis.MetricTotalBookings, domain.ColIsCanceled),
		analysis.Mean(analysis.MetricCancelRate, domain.ColIsCanceled),
	); err != nil {
		return fmt.Errorf("monthly trend: %w", err)
	}

	if rep.Channels, err = analysis.GroupBy(t, []string{domain.ColMarketSegment},
		analysis.Count(analysis.MetricTotalBookings, domain.ColIsCanceled),
		analysis.Mean(analysis.MetricCancelRate, domain.ColIsCanceled),
		analysis.Mean(analysis.MetricAvgADR, domain.ColADR),
	); err != nil {
		return fmt.Errorf("channel performance: %w", err)
	}
	if err := rep.Channels.SortBy(analysis.MetricCancelRate, true); err != nil {
		return fmt.Errorf("channel performance: %w", err)
	}

	if rep.Correlation, err = analysis.Correlate(t); err != nil {
		return fmt.Errorf("correlation: %w", err)
	}
	return nil
}

func (s *AnalysisService) present(rep *Report) error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"customer cancellations", func() error { return s.pres.CancellationsByCustomer(rep.Customers) }},
		{"monthly trend", func() error { return s.pres.MonthlyTrend(rep.Monthly) }},
		{"channel scatter", func() error { return s.pres.ChannelScatter(rep.Channels) }},
		{"correlation heatmap", func() error { return s.pres.CorrelationHeatmap(rep.Correlation) }},
	}
	for _, st := range steps {
		if err := st.fn(); err != nil {
			return fmt.Errorf("render %s: %w", st.name, err)
		}
	}
	return nil
}

func stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	observability.ObserveStage(name, time.Since(start))
	if err != nil {
		log.Error().Err(err).Str("stage", name).Msg("stage failed")
	}
	return err
}
