// Package dataset parses published vaccination figures into the records the
// simulation engine consumes.
//
// The expected input is a dump of the national coronavirus dashboard API:
// a JSON object with a "data" array of per-date entries. Only the earliest
// entry in the series lacks a daily first-dose figure; it carries the
// cumulative total instead.
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Record is one published per-date entry.
type Record struct {
	Date          string `json:"date"`
	NewFirstDoses int64  `json:"newPeopleVaccinatedFirstDoseByPublishDate"`
	CumFirstDoses int64  `json:"cumPeopleVaccinatedFirstDoseByPublishDate"`
}

// DailyDoses returns the first doses attributed to the record's date: the
// daily figure where published, otherwise the cumulative figure (the
// earliest record only reports doses given up to that day).
func (r Record) DailyDoses() int64 {
	if r.NewFirstDoses > 0 {
		return r.NewFirstDoses
	}
	return r.CumFirstDoses
}

// payload mirrors the dashboard API response envelope.
type payload struct {
	Data []Record `json:"data"`
}

// Parse decodes a dashboard payload from r.
func Parse(r io.Reader) ([]Record, error) {
	var p payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("parsing vaccination data: %w", err)
	}
	if len(p.Data) == 0 {
		return nil, fmt.Errorf("vaccination data contains no records")
	}
	return p.Data, nil
}

// Load reads and parses a dashboard payload file.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading vaccination data: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
