// Implements the dose supply estimate: a total day-indexed supply function
// projected from a sparse record of published daily figures.

package sim

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// ISODateLayout is the calendar date format used throughout: YYYY-MM-DD.
const ISODateLayout = "2006-01-02"

// trailingWindowDays is how many of the most recent recorded values feed the
// fallback mean used for dates past the data horizon.
const trailingWindowDays = 7

// DoseRecord is one published data point: first doses administered on a
// date. The earliest record in a series carries a cumulative-to-date figure
// rather than a daily one; NewSupplySchedule spreads it over the days before
// publication began.
type DoseRecord struct {
	Date  string // ISO 8601 calendar date (YYYY-MM-DD)
	Doses int64  // first doses for that date (cumulative for the earliest record)
}

// DoseSupply answers how many doses arrive on a given date. Implementations
// must be total (defined for every date) and pure.
type DoseSupply interface {
	SupplyFor(date time.Time) int64
}

// SupplySchedule is the production DoseSupply, built once from published
// records and immutable afterwards. It is a three-regime piecewise function:
// a flat mean for the pre-publication backlog period, exact recorded values
// where data exists, and a trailing mean for every other date.
type SupplySchedule struct {
	known        map[string]int64
	trailingMean int64
}

var _ DoseSupply = (*SupplySchedule)(nil)

// NewSupplySchedule builds a schedule from records, with startDate as the
// day vaccinations began. The first record must fall after startDate: its
// cumulative figure is averaged over the days in between to estimate the
// unpublished early period.
func NewSupplySchedule(records []DoseRecord, startDate time.Time) (*SupplySchedule, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("supply schedule: no dose records")
	}

	byDate := make(map[string]int64, len(records))
	for _, r := range records {
		if _, err := time.Parse(ISODateLayout, r.Date); err != nil {
			return nil, fmt.Errorf("supply schedule: bad record date %q: %w", r.Date, err)
		}
		if r.Doses < 0 {
			return nil, fmt.Errorf("supply schedule: negative dose count %d on %s", r.Doses, r.Date)
		}
		byDate[r.Date] = r.Doses
	}
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	// The publication series opens with a lumped cumulative figure. Spread
	// it evenly across the days from the rollout start up to and including
	// the first recorded date.
	firstRecorded, _ := time.Parse(ISODateLayout, dates[0])
	daysCovered := int64(firstRecorded.Sub(startDate).Hours() / 24)
	if daysCovered <= 0 {
		return nil, fmt.Errorf("supply schedule: first record %s is not after start date %s",
			dates[0], startDate.Format(ISODateLayout))
	}
	earlyMean := byDate[dates[0]] / daysCovered

	tail := dates
	if len(tail) > trailingWindowDays {
		tail = tail[len(tail)-trailingWindowDays:]
	}
	tailValues := make([]float64, len(tail))
	for i, d := range tail {
		tailValues[i] = float64(byDate[d])
	}
	trailingMean := int64(stat.Mean(tailValues, nil))

	known := make(map[string]int64)
	for d := startDate; !d.After(firstRecorded); d = d.AddDate(0, 0, 1) {
		known[d.Format(ISODateLayout)] = earlyMean
	}
	for _, d := range dates[1:] {
		known[d] = byDate[d]
	}

	return &SupplySchedule{known: known, trailingMean: trailingMean}, nil
}

// SupplyFor returns the dose supply for date: the recorded or estimated
// value where one exists, otherwise the trailing mean of the last
// trailingWindowDays recorded values. Total over all dates and pure.
func (s *SupplySchedule) SupplyFor(date time.Time) int64 {
	if doses, ok := s.known[date.Format(ISODateLayout)]; ok {
		return doses
	}
	return s.trailingMean
}

// TrailingMean returns the fallback daily supply used beyond the data
// horizon.
func (s *SupplySchedule) TrailingMean() int64 { return s.trailingMean }
