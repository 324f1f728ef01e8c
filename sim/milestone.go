// Implements milestones: named threshold conditions over the Population
// ledger, each detected and reported exactly once.

package sim

import "time"

// HerdImmunityThreshold is the partially-immune coverage fraction treated as
// a proxy for the reproduction number falling below one.
const HerdImmunityThreshold = 0.75

// ImmunityOnsetDelayDays is how long a first dose takes to confer immunity.
// The herd-immunity milestone's reported date is shifted by this much past
// its detection day.
const ImmunityOnsetDelayDays = 14

// Condition is a pure predicate over the ledger's current state.
type Condition func(*Population) bool

// Milestone is a named condition that latches permanently the first time it
// evaluates true. ReportingDelayDays shifts the recorded date relative to the
// detection day; it is zero for coverage milestones and
// ImmunityOnsetDelayDays for the herd-immunity proxy.
type Milestone struct {
	Description        string
	Condition          Condition
	ReportingDelayDays int

	passed bool
}

// Passed reports whether the milestone has fired.
func (m *Milestone) Passed() bool { return m.passed }

// PassedMilestone is one entry in a run's output log.
type PassedMilestone struct {
	Date        time.Time // reported date (detection day + any reporting delay)
	Description string
}

// MilestoneSet is a fixed ordered list of milestones. Order does not affect
// which milestones fire, only the reporting order of same-day crossings.
type MilestoneSet struct {
	milestones []*Milestone
}

// NewMilestoneSet builds a set from milestones in reporting order.
func NewMilestoneSet(milestones ...*Milestone) *MilestoneSet {
	return &MilestoneSet{milestones: milestones}
}

// Len returns the number of milestones in the set.
func (s *MilestoneSet) Len() int { return len(s.milestones) }

// Evaluate checks every not-yet-passed milestone against the ledger's
// current post-allocation state, latches the ones that now hold, and returns
// them as dated log entries. A milestone is returned at most once per run.
func (s *MilestoneSet) Evaluate(pop *Population, date time.Time) []PassedMilestone {
	var newlyPassed []PassedMilestone
	for _, m := range s.milestones {
		if m.passed || !m.Condition(pop) {
			continue
		}
		m.passed = true
		newlyPassed = append(newlyPassed, PassedMilestone{
			Date:        date.AddDate(0, 0, m.ReportingDelayDays),
			Description: m.Description,
		})
	}
	return newlyPassed
}

// FirstDoseMilestone fires when first-dose coverage reaches threshold.
func FirstDoseMilestone(description string, threshold float64) *Milestone {
	return &Milestone{
		Description: description,
		Condition: func(p *Population) bool {
			return p.CoverageFraction(p.FirstDoseGiven()) >= threshold
		},
	}
}

// SecondDoseMilestone fires when second-dose coverage reaches threshold.
func SecondDoseMilestone(description string, threshold float64) *Milestone {
	return &Milestone{
		Description: description,
		Condition: func(p *Population) bool {
			return p.CoverageFraction(p.SecondDoseGiven()) >= threshold
		},
	}
}

// HerdImmunityMilestone fires when the partially-immune estimate reaches
// HerdImmunityThreshold. Its reported date trails detection by
// ImmunityOnsetDelayDays because first doses do not protect immediately.
func HerdImmunityMilestone(description string) *Milestone {
	return &Milestone{
		Description: description,
		Condition: func(p *Population) bool {
			return p.CoverageFraction(p.PartiallyImmuneEstimate()) >= HerdImmunityThreshold
		},
		ReportingDelayDays: ImmunityOnsetDelayDays,
	}
}

// DefaultMilestones is the standard reporting set: 60/70/80/100% coverage
// for each dose, then the herd-immunity proxy.
func DefaultMilestones() *MilestoneSet {
	return NewMilestoneSet(
		FirstDoseMilestone("60% first doses", 0.6),
		FirstDoseMilestone("70% first doses", 0.7),
		FirstDoseMilestone("80% first doses", 0.8),
		FirstDoseMilestone("100% first doses", 1),
		SecondDoseMilestone("60% second doses", 0.6),
		SecondDoseMilestone("70% second doses", 0.7),
		SecondDoseMilestone("80% second doses", 0.8),
		SecondDoseMilestone("100% second doses", 1),
		HerdImmunityMilestone("Herd immunity estimate (R<1)"),
	)
}
