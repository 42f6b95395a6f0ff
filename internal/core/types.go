package core

import (
	"fmt"
	"strings"
	"time"
)

// Availability represents the outcome of a name check.
type Availability int

const (
	AvailabilityUnknown     Availability = 0
	AvailabilityAvailable   Availability = 1
	AvailabilityUnavailable Availability = 2
	AvailabilityIllegal     Availability = 3
)

// String returns the display label for the availability.
func (a Availability) String() string {
	switch a {
	case AvailabilityAvailable:
		return "Available"
	case AvailabilityUnavailable:
		return "Unavailable"
	case AvailabilityIllegal:
		return "Illegal"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the availability as its lower-case label.
func (a Availability) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(a.String())), nil
}

// UnmarshalText decodes a label produced by MarshalText.
func (a *Availability) UnmarshalText(data []byte) error {
	parsed, err := ParseAvailability(string(data))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAvailability converts a label into an Availability.
func ParseAvailability(value string) (Availability, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "available":
		return AvailabilityAvailable, nil
	case "unavailable":
		return AvailabilityUnavailable, nil
	case "unknown":
		return AvailabilityUnknown, nil
	case "illegal":
		return AvailabilityIllegal, nil
	default:
		return AvailabilityUnknown, fmt.Errorf("unknown availability: %q", value)
	}
}

// NameResult pairs an input name with its availability.
type NameResult struct {
	Name         string       `json:"name" yaml:"name"`
	Availability Availability `json:"availability" yaml:"availability"`
}

// Report captures a complete check run.
type Report struct {
	RunID      string       `json:"run_id" yaml:"run_id"`
	Strategy   string       `json:"strategy" yaml:"strategy"`
	StartedAt  time.Time    `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time    `json:"finished_at" yaml:"finished_at"`
	Results    []NameResult `json:"results" yaml:"results"`
}

// NewReport zips names and codes into a report. Both slices must have the same length.
func NewReport(runID, strategy string, startedAt, finishedAt time.Time, names []string, codes []Availability) *Report {
	results := make([]NameResult, len(names))
	for i, name := range names {
		results[i] = NameResult{Name: name, Availability: codes[i]}
	}
	return &Report{
		RunID:      runID,
		Strategy:   strategy,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Results:    results,
	}
}

// Count returns the number of results with the given availability.
func (r *Report) Count(availability Availability) int {
	if r == nil {
		return 0
	}
	total := 0
	for _, result := range r.Results {
		if result.Availability == availability {
			total++
		}
	}
	return total
}
