// Package sim provides the core day-stepped simulation engine for the
// vaccination rollout projector.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - population.go: the Population ledger (dose counters, second-dose scheduling)
//   - supply.go: the dose supply estimate built from sparse published records
//   - simulator.go: the day loop and the second-dose-first allocation policy
//
// # Architecture
//
// The engine is deterministic and fully sequential: one Simulator owns one
// Population and one MilestoneSet for the duration of a run, and a DoseSupply
// is queried read-only once per simulated day. Dataset ingestion lives in the
// sim/dataset sub-package; the engine only sees the distilled DoseRecord form.
//
// # Key Interfaces
//
// DoseSupply is the single extension point: anything that can answer
// "how many doses arrive on this date" can drive a run. SupplySchedule is
// the production implementation, projected from published figures.
package sim
