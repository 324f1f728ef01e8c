// sim/simulator.go
package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultMaxDays bounds a run when the caller does not supply a limit.
// Ten years: far beyond any plausible rollout, small enough that degenerate
// zero-supply inputs still terminate promptly.
const DefaultMaxDays = 3650

// ErrCoverageNotReached is returned (wrapped) when the day bound elapses
// before the whole population is fully vaccinated. The partial Result is
// still returned alongside it.
var ErrCoverageNotReached = errors.New("full coverage not reached within the day bound")

// Simulator is the core object that drives one rollout projection. It owns
// the Population and MilestoneSet exclusively for the run and queries the
// DoseSupply read-only, once per simulated day.
type Simulator struct {
	Population *Population
	Milestones *MilestoneSet
	Supply     DoseSupply
	StartDate  time.Time
	MaxDays    int
}

// Result is the outcome of a run: the ordered milestone log plus where the
// simulation stopped.
type Result struct {
	Passed    []PassedMilestone // milestones in the order they were recorded
	Days      int               // simulated days (the loop ran Days iterations)
	FinalDate time.Time         // calendar date of the last simulated day
}

// NewSimulator wires a simulator from its collaborators. A zero
// RunConfig.MaxDays selects DefaultMaxDays.
func NewSimulator(pop *Population, milestones *MilestoneSet, supply DoseSupply, run RunConfig) *Simulator {
	return &Simulator{
		Population: pop,
		Milestones: milestones,
		Supply:     supply,
		StartDate:  run.StartDate,
		MaxDays:    run.MaxDays,
	}
}

// Run steps the simulation one calendar day at a time until the population
// is fully vaccinated or the day bound is hit. Each day it advances the
// ledger, pulls the day's supply, allocates doses second-doses-first, and
// evaluates milestones against the post-allocation state.
//
// On hitting the day bound the partial Result is returned together with an
// error wrapping ErrCoverageNotReached.
func (s *Simulator) Run() (*Result, error) {
	maxDays := s.MaxDays
	if maxDays <= 0 {
		maxDays = DefaultMaxDays
	}

	result := &Result{}
	for day := 0; day < maxDays; day++ {
		date := s.StartDate.AddDate(0, 0, day)

		if err := s.Population.AdvanceDay(day); err != nil {
			return nil, err
		}
		jabs := s.Supply.SupplyFor(date)
		if err := s.vaccinate(day, jabs); err != nil {
			return nil, err
		}

		logrus.Debugf("[day %04d] %s: supply=%d first=%d second=%d due=%d",
			day, date.Format(ISODateLayout), jabs,
			s.Population.FirstDoseGiven(), s.Population.SecondDoseGiven(), s.Population.SecondDoseDue())

		result.Passed = append(result.Passed, s.Milestones.Evaluate(s.Population, date)...)
		result.Days = day + 1
		result.FinalDate = date

		if s.Population.FullyVaccinated() {
			logrus.Infof("[day %04d] Population fully vaccinated", day)
			return result, nil
		}
	}
	return result, fmt.Errorf("%w: simulated %d days", ErrCoverageNotReached, result.Days)
}

// vaccinate applies the day's allocation policy: people due a second dose
// are served first, the remainder goes to first doses, and any supply left
// over is discarded rather than banked for later days.
func (s *Simulator) vaccinate(day int, jabs int64) error {
	secondJabs := min(s.Population.SecondDoseDue(), jabs)
	if secondJabs > 0 {
		if err := s.Population.AdministerSecondDoses(secondJabs); err != nil {
			return err
		}
		jabs -= secondJabs
	}

	firstJabs := min(s.Population.FirstDoseDue(), jabs)
	if firstJabs > 0 {
		if err := s.Population.AdministerFirstDoses(day, firstJabs); err != nil {
			return err
		}
	}
	return nil
}
