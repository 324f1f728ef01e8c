package sim

import (
	"testing"
	"time"
)

func isoDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(ISODateLayout, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

// Eight records: the opening cumulative figure plus seven daily values.
// Mirrors the shape of the published series, which starts with a lumped
// backlog number and is daily thereafter.
func backlogRecords() []DoseRecord {
	return []DoseRecord{
		{Date: "2020-12-08", Doses: 138}, // cumulative to date
		{Date: "2020-12-09", Doses: 100},
		{Date: "2020-12-10", Doses: 110},
		{Date: "2020-12-11", Doses: 120},
		{Date: "2020-12-12", Doses: 130},
		{Date: "2020-12-13", Doses: 140},
		{Date: "2020-12-14", Doses: 150},
		{Date: "2020-12-15", Doses: 160},
	}
}

func TestNewSupplySchedule_EarlyPeriodFlatMean(t *testing.T) {
	// GIVEN a series whose first record covers one day of backlog
	start := isoDate(t, "2020-12-07")
	s, err := NewSupplySchedule(backlogRecords(), start)
	if err != nil {
		t.Fatalf("NewSupplySchedule: unexpected error: %v", err)
	}

	// THEN every day from the start through the first recorded date gets the
	// backlog mean: 138 / 1 day covered
	for _, d := range []string{"2020-12-07", "2020-12-08"} {
		if got := s.SupplyFor(isoDate(t, d)); got != 138 {
			t.Errorf("SupplyFor(%s): got %d, want 138", d, got)
		}
	}
}

func TestNewSupplySchedule_RecordedValuesExact(t *testing.T) {
	// GIVEN the backlog series
	start := isoDate(t, "2020-12-07")
	s, err := NewSupplySchedule(backlogRecords(), start)
	if err != nil {
		t.Fatalf("NewSupplySchedule: unexpected error: %v", err)
	}

	// THEN recorded dates after the first return their values as-is
	if got := s.SupplyFor(isoDate(t, "2020-12-10")); got != 110 {
		t.Errorf("SupplyFor(2020-12-10): got %d, want 110", got)
	}
	if got := s.SupplyFor(isoDate(t, "2020-12-15")); got != 160 {
		t.Errorf("SupplyFor(2020-12-15): got %d, want 160", got)
	}
}

func TestNewSupplySchedule_FutureDatesUseTrailingMean(t *testing.T) {
	// GIVEN the backlog series, whose last seven daily values average 130
	start := isoDate(t, "2020-12-07")
	s, err := NewSupplySchedule(backlogRecords(), start)
	if err != nil {
		t.Fatalf("NewSupplySchedule: unexpected error: %v", err)
	}

	// THEN dates past the data horizon fall back to the trailing mean
	if got := s.TrailingMean(); got != 130 {
		t.Errorf("TrailingMean: got %d, want 130", got)
	}
	for _, d := range []string{"2020-12-16", "2021-06-01", "2025-01-01"} {
		if got := s.SupplyFor(isoDate(t, d)); got != 130 {
			t.Errorf("SupplyFor(%s): got %d, want 130", d, got)
		}
	}
}

func TestSupplySchedule_SupplyForIsPure(t *testing.T) {
	// GIVEN a built schedule
	start := isoDate(t, "2020-12-07")
	s, err := NewSupplySchedule(backlogRecords(), start)
	if err != nil {
		t.Fatalf("NewSupplySchedule: unexpected error: %v", err)
	}

	// WHEN the same dates are queried repeatedly THEN results never change
	for _, d := range []string{"2020-12-07", "2020-12-12", "2022-03-01"} {
		date := isoDate(t, d)
		first := s.SupplyFor(date)
		for i := 0; i < 3; i++ {
			if got := s.SupplyFor(date); got != first {
				t.Errorf("SupplyFor(%s) call %d: got %d, want %d", d, i+2, got, first)
			}
		}
	}
}

func TestNewSupplySchedule_ShortSeriesUsesAllValues(t *testing.T) {
	// GIVEN fewer than seven recorded values
	start := isoDate(t, "2020-12-07")
	records := []DoseRecord{
		{Date: "2020-12-09", Doses: 200}, // cumulative over two days
		{Date: "2020-12-10", Doses: 40},
		{Date: "2020-12-11", Doses: 60},
	}
	s, err := NewSupplySchedule(records, start)
	if err != nil {
		t.Fatalf("NewSupplySchedule: unexpected error: %v", err)
	}

	// THEN the early mean spreads the cumulative figure over both days
	// covered and the trailing mean averages every recorded value
	if got := s.SupplyFor(isoDate(t, "2020-12-08")); got != 100 {
		t.Errorf("early mean: got %d, want 100", got)
	}
	if got := s.TrailingMean(); got != 100 {
		t.Errorf("trailing mean: got %d, want (200+40+60)/3 = 100", got)
	}
}

func TestNewSupplySchedule_ConstructionErrors(t *testing.T) {
	start := isoDate(t, "2020-12-07")
	cases := []struct {
		name    string
		records []DoseRecord
	}{
		{"empty record set", nil},
		{"unparseable date", []DoseRecord{{Date: "8 Dec 2020", Doses: 10}}},
		{"negative dose count", []DoseRecord{{Date: "2020-12-09", Doses: -1}}},
		{"first record on start date", []DoseRecord{{Date: "2020-12-07", Doses: 10}}},
		{"first record before start date", []DoseRecord{{Date: "2020-12-01", Doses: 10}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewSupplySchedule(tc.records, start); err == nil {
				t.Errorf("expected construction error for %s, got nil", tc.name)
			}
		})
	}
}
