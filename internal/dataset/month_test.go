package dataset_test

import (
	"errors"
	"math"
	"testing"

	"booking_insights/internal/dataset"
	"booking_insights/internal/domain"
)

func TestDeriveMonthNumber(t *testing.T) {
	tb := mustRead(t, sample)

	unmapped, err := dataset.DeriveMonthNumber(tb, domain.PolicyExclude)
	if err != nil {
		t.Fatalf("DeriveMonthNumber: %v", err)
	}
	if unmapped != 0 {
		t.Fatalf("unmapped: got %d, want 0", unmapped)
	}
	got, err := tb.Floats(domain.ColArrivalMonthNum)
	if err != nil {
		t.Fatalf("Floats: %v", err)
	}
	want := []float64{7, 3, 12}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: got %v, want %v", i, got[i], want[i])
		}
	}
	// source column untouched
	names, _ := tb.Strings(domain.ColArrivalDateMonth)
	if names[1] != "March" {
		t.Fatalf("source column changed: %v", names)
	}
}

const typoSample = `hotel,is_canceled,arrival_date_month
A,1,March
A,0,Marchh
B,1,December
`

func TestDeriveMonthNumber_ExcludeFlagsTypo(t *testing.T) {
	tb := mustRead(t, typoSample)

	unmapped, err := dataset.DeriveMonthNumber(tb, domain.PolicyExclude)
	if err != nil {
		t.Fatalf("DeriveMonthNumber: %v", err)
	}
	if unmapped != 1 {
		t.Fatalf("unmapped: got %d, want 1", unmapped)
	}
	got, _ := tb.Floats(domain.ColArrivalMonthNum)
	if got[0] != 3 || got[2] != 12 {
		t.Fatalf("unexpected months: %v", got)
	}
	if !math.IsNaN(got[1]) {
		t.Fatalf("typo row must be missing, got %v", got[1])
	}
	missing, _ := tb.Missing(domain.ColArrivalMonthNum)
	if !missing[1] || missing[0] {
		t.Fatalf("unexpected missing flags: %v", missing)
	}
}

func TestDeriveMonthNumber_FailFast(t *testing.T) {
	tb := mustRead(t, typoSample)

	_, err := dataset.DeriveMonthNumber(tb, domain.PolicyFail)
	if !errors.Is(err, domain.ErrUnmappedCategory) {
		t.Fatalf("expected ErrUnmappedCategory, got %v", err)
	}
	if tb.Has(domain.ColArrivalMonthNum) {
		t.Fatalf("column must not be added on failure")
	}
}

func TestDeriveMonthNumber_MissingSourceColumn(t *testing.T) {
	tb := mustRead(t, "hotel,is_canceled\nA,1\n")
	if _, err := dataset.DeriveMonthNumber(tb, domain.PolicyExclude); !errors.Is(err, domain.ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
}
