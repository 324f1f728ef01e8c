// Implements the Population ledger, which holds all dose counters for a
// single population and enforces the dosing invariants.

package sim

import "fmt"

// DefaultJabGapDays is the fixed interval between a first and second dose:
// twelve weeks, the dosing policy in force when the rollout began.
const DefaultJabGapDays = 84

// Population is the ledger of vaccination state for one population.
// All counters are cumulative and monotonically non-decreasing, except
// secondDoseDue which is drawn down as second doses are administered.
//
// The ledger schedules second-dose eligibility strictly by elapsed time
// since the first dose, so it must remember how many first doses were given
// on each individual day, not just a running total.
type Population struct {
	total            int64
	proportionImmune float64
	jabGapDays       int

	firstDoseGiven  int64
	secondDoseGiven int64
	secondDoseDue   int64
	firstDosesByDay []int64 // one entry per simulated day so far
}

// NewPopulation constructs a fresh ledger from cfg.
// A zero JabGapDays selects DefaultJabGapDays.
func NewPopulation(cfg PopulationConfig) (*Population, error) {
	if cfg.Total <= 0 {
		return nil, fmt.Errorf("population total must be positive, got %d", cfg.Total)
	}
	if cfg.ProportionImmune < 0 || cfg.ProportionImmune > 1 {
		return nil, fmt.Errorf("proportion immune must be in [0,1], got %f", cfg.ProportionImmune)
	}
	gap := cfg.JabGapDays
	if gap == 0 {
		gap = DefaultJabGapDays
	}
	if gap < 0 {
		return nil, fmt.Errorf("jab gap must be positive, got %d days", cfg.JabGapDays)
	}
	return &Population{
		total:            cfg.Total,
		proportionImmune: cfg.ProportionImmune,
		jabGapDays:       gap,
	}, nil
}

// Total returns the fixed eligible population size.
func (p *Population) Total() int64 { return p.total }

// FirstDoseGiven returns the cumulative count of first doses administered.
func (p *Population) FirstDoseGiven() int64 { return p.firstDoseGiven }

// SecondDoseGiven returns the cumulative count of second doses administered.
func (p *Population) SecondDoseGiven() int64 { return p.secondDoseGiven }

// SecondDoseDue returns how many people are currently eligible for a
// second dose and have not yet received one.
func (p *Population) SecondDoseDue() int64 { return p.secondDoseDue }

// FirstDoseDue returns how many people have not yet received a first dose.
func (p *Population) FirstDoseDue() int64 { return p.total - p.firstDoseGiven }

// TotalVaccinations returns the total number of doses administered so far.
func (p *Population) TotalVaccinations() int64 { return p.firstDoseGiven + p.secondDoseGiven }

// AdvanceDay opens simulated day `day` for allocation. It appends the day's
// first-dose placeholder and rolls any first doses given jabGapDays ago into
// the second-dose-due pool.
//
// Days must be advanced exactly once each, in increasing order from 0,
// before any doses are administered for that day.
func (p *Population) AdvanceDay(day int) error {
	if day != len(p.firstDosesByDay) {
		return fmt.Errorf("advance day out of order: got day %d, expected %d", day, len(p.firstDosesByDay))
	}
	p.firstDosesByDay = append(p.firstDosesByDay, 0)
	dueDay := day - p.jabGapDays
	if dueDay >= 0 {
		p.secondDoseDue += p.firstDosesByDay[dueDay]
	}
	return nil
}

// AdministerSecondDoses records n second doses, drawing down the due pool.
// Allocating more than is due is a caller bug and fails fast.
func (p *Population) AdministerSecondDoses(n int64) error {
	if n < 0 || n > p.secondDoseDue {
		return fmt.Errorf("cannot administer %d second doses with %d due", n, p.secondDoseDue)
	}
	p.secondDoseDue -= n
	p.secondDoseGiven += n
	return nil
}

// AdministerFirstDoses records n first doses given on `day`, overwriting the
// placeholder AdvanceDay appended for that day. Only the current day may be
// written: back-dating first doses would corrupt second-dose scheduling.
func (p *Population) AdministerFirstDoses(day int, n int64) error {
	if day != len(p.firstDosesByDay)-1 {
		return fmt.Errorf("first doses must be given on the current day %d, got day %d", len(p.firstDosesByDay)-1, day)
	}
	if n < 0 || n > p.FirstDoseDue() {
		return fmt.Errorf("cannot administer %d first doses with %d people unvaccinated", n, p.FirstDoseDue())
	}
	p.firstDoseGiven += n
	p.firstDosesByDay[day] = n
	return nil
}

// FullyVaccinated reports whether every eligible person has had both doses.
func (p *Population) FullyVaccinated() bool {
	return p.secondDoseGiven >= p.total
}

// PartiallyImmuneEstimate models everyone with a first dose as immune, plus
// the background natural-immunity fraction of everyone still unvaccinated.
func (p *Population) PartiallyImmuneEstimate() int64 {
	naturallyImmune := int64(float64(p.total-p.firstDoseGiven) * p.proportionImmune)
	return p.firstDoseGiven + naturallyImmune
}

// CoverageFraction returns n as a proportion of the total population.
func (p *Population) CoverageFraction(n int64) float64 {
	return float64(n) / float64(p.total)
}
