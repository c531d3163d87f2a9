package tallybot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday January 6th 2020 and Saturday February 1st 2020
var (
	aMonday     = time.Date(2020, time.January, 6, 0, 5, 0, 0, time.UTC)
	aTuesday    = time.Date(2020, time.January, 7, 0, 5, 0, 0, time.UTC)
	aMonthStart = time.Date(2020, time.February, 1, 0, 5, 0, 0, time.UTC)
)

func TestResetDue(t *testing.T) {
	testCases := []struct {
		name     string
		interval string
		now      time.Time
		expected bool
	}{
		{"never", ResetNever, aMonday, false},
		{"daily", ResetDaily, aTuesday, true},
		{"weekly on monday", ResetWeekly, aMonday, true},
		{"weekly on tuesday", ResetWeekly, aTuesday, false},
		{"monthly on the 1st", ResetMonthly, aMonthStart, true},
		{"monthly mid-month", ResetMonthly, aMonday, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, resetDue(tc.interval, tc.now))
		})
	}
}

func newMaintenanceFixture(t *testing.T, interval string, now time.Time) (f *scoringFixture, m *Maintenance) {
	f = newScoringFixture(t, func(c *TeamConfig) {
		c.ResetInterval = interval
	})

	m = NewMaintenance(f.teams, f.scorer.log, time.UTC)
	m.now = func() time.Time { return now }

	return f, m
}

func TestMaintenanceResetsDailyCounters(t *testing.T) {
	f, m := newMaintenanceFixture(t, ResetNever, aTuesday)

	_, _, err := f.teams.UpdateCounter("T1", "U1", AttrGiven, 3, BonusPolicy{})
	require.NoError(t, err)

	m.Run()

	u1, err := f.teams.GetUser("T1", "U1")
	require.NoError(t, err)
	assert.Equal(t, 3, u1.Given, "cumulative counter should survive the daily pass")
	assert.Equal(t, 0, u1.GivenToday)
}

func TestMaintenanceFullResetWhenDue(t *testing.T) {
	f, m := newMaintenanceFixture(t, ResetWeekly, aMonday)

	_, _, err := f.teams.UpdateCounter("T1", "U1", AttrReceived, 7, BonusPolicy{})
	require.NoError(t, err)

	m.Run()

	users, err := f.teams.ListUsers("T1")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestMaintenanceNoFullResetWhenNotDue(t *testing.T) {
	f, m := newMaintenanceFixture(t, ResetWeekly, aTuesday)

	_, _, err := f.teams.UpdateCounter("T1", "U1", AttrReceived, 7, BonusPolicy{})
	require.NoError(t, err)

	m.Run()

	u1, err := f.teams.GetUser("T1", "U1")
	require.NoError(t, err)
	assert.Equal(t, 7, u1.Received)
}
