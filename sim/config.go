package sim

import "time"

// PopulationConfig groups Population ledger parameters for NewPopulation.
type PopulationConfig struct {
	Total            int64   // eligible population size (must be > 0)
	ProportionImmune float64 // background natural immunity fraction (0..1)
	JabGapDays       int     // days between first and second dose (0 = DefaultJabGapDays)
}

// NewPopulationConfig constructs a PopulationConfig.
func NewPopulationConfig(total int64, proportionImmune float64, jabGapDays int) PopulationConfig {
	return PopulationConfig{
		Total:            total,
		ProportionImmune: proportionImmune,
		JabGapDays:       jabGapDays,
	}
}

// RunConfig groups simulation run parameters for NewSimulator.
type RunConfig struct {
	StartDate time.Time // calendar date of simulated day 0
	MaxDays   int       // safety bound on simulated days (0 = DefaultMaxDays)
}

// NewRunConfig constructs a RunConfig.
func NewRunConfig(startDate time.Time, maxDays int) RunConfig {
	return RunConfig{StartDate: startDate, MaxDays: maxDays}
}
