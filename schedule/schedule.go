// Package schedule defines the scheduling of recurring tallybot maintenance
package schedule

import (
	"fmt"
	"strings"

	"github.com/marcsantiago/gocron"
)

// Definition represents a recurring schedule
type Definition struct {
	// Interval value (every 1 day would be expressed with an interval of 1). Must be set explicitly
	Interval uint64

	// Must be set explicitly. Valid time units are: "weeks", "hours", "days", "minutes", "seconds"
	Unit string

	// Optional "at time" value (i.e. "10:30")
	AtTime string
}

// Unit values
const (
	Weeks   = "weeks"
	Hours   = "hours"
	Days    = "days"
	Minutes = "minutes"
	Seconds = "seconds"
)

// Returns a human-friendly string for the Definition
func (s Definition) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Every ")

	if s.Interval == 1 {
		fmt.Fprintf(&b, "%s", strings.TrimSuffix(s.Unit, "s"))
	} else {
		fmt.Fprintf(&b, "%d %s", s.Interval, s.Unit)
	}

	if s.AtTime != "" {
		fmt.Fprintf(&b, " at %s", s.AtTime)
	}

	return b.String()
}

// NewJob sets up the gocron.Job with the schedule and leaves the task
// undefined for the caller to set up
func NewJob(s *gocron.Scheduler, sd Definition) (j *gocron.Job, err error) {
	j = s.Every(sd.Interval, false)

	switch sd.Unit {
	case Weeks:
		j = j.Weeks()
	case Hours:
		j = j.Hours()
	case Days:
		j = j.Days()
	case Minutes:
		j = j.Minutes()
	case Seconds:
		j = j.Seconds()
	}

	if sd.AtTime != "" {
		j = j.At(sd.AtTime)
	}

	if j.Err() != nil {
		return nil, j.Err()
	}

	return j, nil
}
