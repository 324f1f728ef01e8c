package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MilestoneBundle holds a milestone list loadable from a YAML file, for
// runs that want something other than DefaultMilestones.
type MilestoneBundle struct {
	Milestones []MilestoneConfig `yaml:"milestones"`
}

// MilestoneConfig describes one configurable milestone.
type MilestoneConfig struct {
	Description        string  `yaml:"description"`
	Metric             string  `yaml:"metric"`
	Threshold          float64 `yaml:"threshold"`
	ReportingDelayDays int     `yaml:"reporting_delay_days"`
}

// LoadMilestoneBundle reads and parses a YAML milestone configuration file.
func LoadMilestoneBundle(path string) (*MilestoneBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading milestone config: %w", err)
	}
	var bundle MilestoneBundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parsing milestone config: %w", err)
	}
	return &bundle, nil
}

// ValidMetrics is the set of recognized milestone metric names.
// Shared by Validate() and Build() to avoid duplication.
var ValidMetrics = map[string]bool{"first-dose": true, "second-dose": true, "partially-immune": true}

// Validate checks that all metric names and parameter ranges in the bundle
// are valid.
func (b *MilestoneBundle) Validate() error {
	if len(b.Milestones) == 0 {
		return fmt.Errorf("milestone config declares no milestones")
	}
	for i, m := range b.Milestones {
		if m.Description == "" {
			return fmt.Errorf("milestone %d: description must not be empty", i)
		}
		if !ValidMetrics[m.Metric] {
			return fmt.Errorf("milestone %d: unknown metric %q", i, m.Metric)
		}
		if m.Threshold <= 0 || m.Threshold > 1 {
			return fmt.Errorf("milestone %d: threshold must be in (0,1], got %f", i, m.Threshold)
		}
		if m.ReportingDelayDays < 0 {
			return fmt.Errorf("milestone %d: reporting_delay_days must be non-negative, got %d", i, m.ReportingDelayDays)
		}
	}
	return nil
}

// Build constructs the MilestoneSet the bundle describes, in declaration
// order. Call Validate first; Build assumes a valid bundle.
func (b *MilestoneBundle) Build() *MilestoneSet {
	milestones := make([]*Milestone, 0, len(b.Milestones))
	for _, cfg := range b.Milestones {
		threshold := cfg.Threshold
		var metric func(*Population) int64
		switch cfg.Metric {
		case "first-dose":
			metric = (*Population).FirstDoseGiven
		case "second-dose":
			metric = (*Population).SecondDoseGiven
		case "partially-immune":
			metric = (*Population).PartiallyImmuneEstimate
		}
		milestones = append(milestones, &Milestone{
			Description: cfg.Description,
			Condition: func(p *Population) bool {
				return p.CoverageFraction(metric(p)) >= threshold
			},
			ReportingDelayDays: cfg.ReportingDelayDays,
		})
	}
	return NewMilestoneSet(milestones...)
}
