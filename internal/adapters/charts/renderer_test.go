package charts_test

import (
	"math"
	"os"
	"strings"
	"testing"

	"booking_insights/internal/adapters/charts"
	"booking_insights/internal/analysis"
	"booking_insights/internal/dataset"
	"booking_insights/internal/domain"
)

const bookings = `hotel,is_canceled,lead_time,adr,customer_type,arrival_date_month,market_segment
Resort Hotel,0,342,0,Transient,July,Direct
Resort Hotel,1,100,80,Transient,July,Online TA
City Hotel,1,88,76.5,Transient,March,Online TA
City Hotel,0,7,120,Contract,December,Groups
City Hotel,1,30,95,Group,March,Groups
City Hotel,0,2,60,Transient,August,Corporate
`

func fixture(t *testing.T) *dataset.Table {
	t.Helper()
	tb, err := dataset.ReadCSV(strings.NewReader(bookings), ',')
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if _, err := dataset.DeriveMonthNumber(tb, domain.PolicyExclude); err != nil {
		t.Fatalf("DeriveMonthNumber: %v", err)
	}
	return tb
}

func renderer(t *testing.T) *charts.Renderer {
	t.Helper()
	r, err := charts.New(t.TempDir(), "svg", 6, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func assertWritten(t *testing.T, path string) {
	t.Helper()
	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if st.Size() == 0 {
		t.Fatalf("%s is empty", path)
	}
}

func TestRenderer_AllCharts(t *testing.T) {
	tb := fixture(t)
	r := renderer(t)

	customers, err := analysis.GroupBy(tb, []string{domain.ColCustomerType, domain.ColIsCanceled},
		analysis.Count(analysis.MetricBookings, domain.ColIsCanceled))
	if err != nil {
		t.Fatalf("GroupBy customers: %v", err)
	}
	if err := r.CancellationsByCustomer(customers); err != nil {
		t.Fatalf("CancellationsByCustomer: %v", err)
	}
	assertWritten(t, r.Path(charts.ChartCustomerCancellations))

	monthly, err := analysis.GroupBy(tb, []string{domain.ColArrivalMonthNum},
		analysis.Count(analysis.MetricTotalBookings, domain.ColIsCanceled),
		analysis.Mean(analysis.MetricCancelRate, domain.ColIsCanceled))
	if err != nil {
		t.Fatalf("GroupBy monthly: %v", err)
	}
	if err := r.MonthlyTrend(monthly); err != nil {
		t.Fatalf("MonthlyTrend: %v", err)
	}
	assertWritten(t, r.Path(charts.ChartMonthlyBookings))
	assertWritten(t, r.Path(charts.ChartMonthlyCancelRate))

	channels, err := analysis.GroupBy(tb, []string{domain.ColMarketSegment},
		analysis.Count(analysis.MetricTotalBookings, domain.ColIsCanceled),
		analysis.Mean(analysis.MetricCancelRate, domain.ColIsCanceled),
		analysis.Mean(analysis.MetricAvgADR, domain.ColADR))
	if err != nil {
		t.Fatalf("GroupBy channels: %v", err)
	}
	if err := r.ChannelScatter(channels); err != nil {
		t.Fatalf("ChannelScatter: %v", err)
	}
	assertWritten(t, r.Path(charts.ChartChannelScatter))

	corr, err := analysis.Correlate(tb)
	if err != nil {
		t.Fatalf("Correlate: %v", err)
	}
	if err := r.CorrelationHeatmap(corr); err != nil {
		t.Fatalf("CorrelationHeatmap: %v", err)
	}
	assertWritten(t, r.Path(charts.ChartCorrelationHeatmap))
}

func TestRenderer_WrongSummaryShape(t *testing.T) {
	tb := fixture(t)
	r := renderer(t)

	byHotel, _ := analysis.GroupBy(tb, []string{domain.ColHotel},
		analysis.Count(analysis.MetricTotalBookings, domain.ColIsCanceled))
	if err := r.CancellationsByCustomer(byHotel); err == nil {
		t.Fatalf("expected error for single-key summary")
	}
	if err := r.ChannelScatter(byHotel); err == nil {
		t.Fatalf("expected error for summary without avg_adr")
	}
	if err := r.CorrelationHeatmap(&analysis.CorrMatrix{}); err == nil {
		t.Fatalf("expected error for empty matrix")
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := charts.New(t.TempDir(), "gif", 6, 4); err == nil {
		t.Fatalf("expected error for gif")
	}
	if _, err := charts.New(t.TempDir(), "png", 0, 4); err == nil {
		t.Fatalf("expected error for zero width")
	}
}

func TestSetFont(t *testing.T) {
	if err := charts.SetFont("Sans"); err != nil {
		t.Fatalf("SetFont(Sans): %v", err)
	}
	if err := charts.SetFont("SimHei"); err == nil {
		t.Fatalf("expected error for unregistered font")
	}
}

func TestRenderer_SkipsGroupsWithoutValues(t *testing.T) {
	const withGaps = `hotel,is_canceled,lead_time,adr,customer_type,arrival_date_month,market_segment
City Hotel,1,88,76.5,Transient,March,Online TA
City Hotel,0,7,,Contract,May,Aviation
City Hotel,1,30,,Transient,May,Aviation
Resort Hotel,0,12,95,Group,July,Direct
`
	tb, err := dataset.ReadCSV(strings.NewReader(withGaps), ',')
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if _, err := dataset.DeriveMonthNumber(tb, domain.PolicyExclude); err != nil {
		t.Fatalf("DeriveMonthNumber: %v", err)
	}
	r := renderer(t)

	channels, err := analysis.GroupBy(tb, []string{domain.ColMarketSegment},
		analysis.Count(analysis.MetricTotalBookings, domain.ColIsCanceled),
		analysis.Mean(analysis.MetricCancelRate, domain.ColIsCanceled),
		analysis.Mean(analysis.MetricAvgADR, domain.ColADR))
	if err != nil {
		t.Fatalf("GroupBy channels: %v", err)
	}
	if v, ok := channels.Value(analysis.MetricAvgADR, "Aviation"); !ok || !math.IsNaN(v) {
		t.Fatalf("Aviation avg_adr: got %v (ok=%v), want NaN", v, ok)
	}
	if err := r.ChannelScatter(channels); err != nil {
		t.Fatalf("ChannelScatter: %v", err)
	}
	assertWritten(t, r.Path(charts.ChartChannelScatter))

	// May has no adr at all, so its point is dropped from the line.
	monthly, err := analysis.GroupBy(tb, []string{domain.ColArrivalMonthNum},
		analysis.Count(analysis.MetricTotalBookings, domain.ColIsCanceled),
		analysis.Mean(analysis.MetricCancelRate, domain.ColADR))
	if err != nil {
		t.Fatalf("GroupBy monthly: %v", err)
	}
	if err := r.MonthlyTrend(monthly); err != nil {
		t.Fatalf("MonthlyTrend: %v", err)
	}
	assertWritten(t, r.Path(charts.ChartMonthlyCancelRate))
}
