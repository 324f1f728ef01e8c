package cmd

import (
	"errors"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/vaxsim/vaxsim/sim"
	"github.com/vaxsim/vaxsim/sim/dataset"
)

var (
	// CLI flags for simulation inputs
	dataPath       string // Path to the published vaccination data dump (JSON)
	milestonesPath string // Optional path to a milestone bundle (YAML)
	logLevel       string // Log verbosity level

	// CLI flags for population and dosing policy
	populationSize   int64   // Eligible population size
	proportionImmune float64 // Background natural immunity fraction
	jabGapDays       int     // Days between first and second dose

	// CLI flags for the run itself
	startDate string // Calendar date of simulated day 0 (YYYY-MM-DD)
	maxDays   int    // Safety bound on simulated days
)

// Default population figures: the UK adult population (total population
// less the 21.3% under 18), with an assumed 20% carrying natural immunity.
const (
	defaultPopulation       = 53_600_796
	defaultProportionImmune = 0.2
	defaultStartDate        = "2020-12-08" // first day of the UK rollout
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "vaxsim",
	Short: "Day-stepped simulator for a two-dose vaccination rollout",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the rollout simulation and report milestone dates",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		start, err := time.Parse(sim.ISODateLayout, startDate)
		if err != nil {
			logrus.Fatalf("Invalid start date %q: %v", startDate, err)
		}

		records, err := dataset.Load(dataPath)
		if err != nil {
			logrus.Fatalf("Unable to load vaccination data: %v", err)
		}
		doseRecords := make([]sim.DoseRecord, len(records))
		for i, r := range records {
			doseRecords[i] = sim.DoseRecord{Date: r.Date, Doses: r.DailyDoses()}
		}
		supply, err := sim.NewSupplySchedule(doseRecords, start)
		if err != nil {
			logrus.Fatalf("Unable to build supply schedule: %v", err)
		}

		pop, err := sim.NewPopulation(sim.NewPopulationConfig(populationSize, proportionImmune, jabGapDays))
		if err != nil {
			logrus.Fatalf("Invalid population: %v", err)
		}

		milestones := sim.DefaultMilestones()
		if milestonesPath != "" {
			bundle, err := sim.LoadMilestoneBundle(milestonesPath)
			if err != nil {
				logrus.Fatalf("Unable to load milestone config: %v", err)
			}
			if err := bundle.Validate(); err != nil {
				logrus.Fatalf("Invalid milestone config: %v", err)
			}
			milestones = bundle.Build()
		}

		logrus.Infof("Starting simulation: population=%d, proportionImmune=%.2f, jabGap=%dd, start=%s",
			populationSize, proportionImmune, jabGapDays, startDate)

		startTime := time.Now() // Get current time (start)

		s := sim.NewSimulator(pop, milestones, supply, sim.NewRunConfig(start, maxDays))
		result, err := s.Run()
		switch {
		case errors.Is(err, sim.ErrCoverageNotReached):
			logrus.Warnf("Run stopped early: %v", err)
		case err != nil:
			logrus.Fatalf("Simulation failed: %v", err)
		}

		Report(os.Stdout, result.Passed)

		logrus.Infof("Simulation complete: %d days in %v.", result.Days, time.Since(startTime))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {

	runCmd.Flags().StringVar(&dataPath, "data", "", "Path to published vaccination data dump (JSON)")
	runCmd.Flags().StringVar(&milestonesPath, "milestones", "", "Optional milestone bundle (YAML); default reporting set if unset")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Population and dosing policy
	runCmd.Flags().Int64Var(&populationSize, "population", defaultPopulation, "Eligible population size")
	runCmd.Flags().Float64Var(&proportionImmune, "proportion-immune", defaultProportionImmune, "Fraction of the population with natural immunity")
	runCmd.Flags().IntVar(&jabGapDays, "jab-gap-days", sim.DefaultJabGapDays, "Days between first and second dose")

	// Run bounds
	runCmd.Flags().StringVar(&startDate, "start-date", defaultStartDate, "Calendar date of simulated day 0 (YYYY-MM-DD)")
	runCmd.Flags().IntVar(&maxDays, "max-days", sim.DefaultMaxDays, "Maximum days to simulate before giving up")

	_ = runCmd.MarkFlagRequired("data")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
