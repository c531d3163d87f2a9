package tallybot

import (
	"time"

	"github.com/pkg/errors"
)

// Maintenance runs the daily housekeeping pass over every team. Daily quota
// counters reset on every run while full score resets only happen when a
// team's reset interval says they are due
type Maintenance struct {
	teams TeamStorer
	log   SLogger
	now   func() time.Time
}

// NewMaintenance returns a maintenance runner evaluating due dates in the
// given location
func NewMaintenance(teams TeamStorer, logger SLogger, timeLoc *time.Location) (m *Maintenance) {
	return &Maintenance{
		teams: teams,
		log:   logger,
		now: func() time.Time {
			return time.Now().In(timeLoc)
		},
	}
}

// resetDue says whether a full score reset is due today for the interval
func resetDue(interval string, now time.Time) (due bool) {
	switch interval {
	case ResetDaily:
		return true
	case ResetWeekly:
		return now.Weekday() == time.Monday
	case ResetMonthly:
		return now.Day() == 1
	default:
		return false
	}
}

// Run executes one maintenance pass. A failing team is logged and skipped so
// one team's trouble never blocks the others
func (m *Maintenance) Run() {
	teamIDs, err := m.teams.ListTeams()
	if err != nil {
		m.log.Printf("Error listing teams for maintenance: %v\n", err)
		return
	}

	now := m.now()

	for _, teamID := range teamIDs {
		err = m.maintainTeam(teamID, now)
		if err != nil {
			m.log.Printf("Error running maintenance for team [%s]: %v\n", teamID, err)
		}
	}
}

func (m *Maintenance) maintainTeam(teamID string, now time.Time) (err error) {
	team, err := m.teams.GetConfig(teamID)
	if err != nil {
		return err
	}

	if resetDue(team.ResetInterval, now) {
		m.log.Printf("Score reset due for team [%s] on interval [%s]\n", teamID, team.ResetInterval)

		err = m.teams.ResetScores(teamID)
		if err != nil && !errors.Is(err, ErrTeamNotFound) {
			return err
		}

		return nil
	}

	err = m.teams.ResetDailyCounters(teamID)
	if err != nil && !errors.Is(err, ErrTeamNotFound) {
		return err
	}

	return nil
}
