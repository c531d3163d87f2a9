package schedule_test

import (
	"testing"

	"github.com/marcsantiago/gocron"
	"github.com/stretchr/testify/assert"
	"github.com/tallybot/tallybot/schedule"
)

func TestDefinitionString(t *testing.T) {
	definitionToString := []struct {
		sd             schedule.Definition
		friendlyString string
	}{
		{schedule.Definition{Interval: 1, Unit: schedule.Seconds}, "Every second"},
		{schedule.Definition{Interval: 2, Unit: schedule.Seconds}, "Every 2 seconds"},
		{schedule.Definition{Interval: 1, Unit: schedule.Minutes}, "Every minute"},
		{schedule.Definition{Interval: 2, Unit: schedule.Minutes}, "Every 2 minutes"},
		{schedule.Definition{Interval: 1, Unit: schedule.Hours}, "Every hour"},
		{schedule.Definition{Interval: 2, Unit: schedule.Hours}, "Every 2 hours"},
		{schedule.Definition{Interval: 1, Unit: schedule.Days}, "Every day"},
		{schedule.Definition{Interval: 2, Unit: schedule.Days}, "Every 2 days"},
		{schedule.Definition{Interval: 1, Unit: schedule.Days, AtTime: "10:00"}, "Every day at 10:00"},
		{schedule.Definition{Interval: 2, Unit: schedule.Days, AtTime: "10:00"}, "Every 2 days at 10:00"},
		{schedule.Definition{Interval: 1, Unit: schedule.Weeks}, "Every week"},
		{schedule.Definition{Interval: 2, Unit: schedule.Weeks}, "Every 2 weeks"},
	}

	for _, testCase := range definitionToString {
		t.Run(testCase.friendlyString, func(t *testing.T) {
			friendlyStr := testCase.sd.String()
			assert.Equalf(t, testCase.friendlyString, friendlyStr, "Expected different string value for schedule definition: %v", testCase.sd)
		})
	}
}

func TestNewJobFromDefinition(t *testing.T) {
	definitionToResult := []struct {
		sd    schedule.Definition
		valid bool
	}{
		{schedule.Definition{Interval: 1, Unit: schedule.Seconds}, true},
		{schedule.Definition{Interval: 1, Unit: schedule.Minutes}, true},
		{schedule.Definition{Interval: 1, Unit: schedule.Hours}, true},
		{schedule.Definition{Interval: 1, Unit: schedule.Days, AtTime: "00:05"}, true},
		{schedule.Definition{Interval: 1, Unit: schedule.Weeks}, true},
		{schedule.Definition{Interval: 1, Unit: schedule.Days, AtTime: "invalid"}, false},
	}

	for _, testCase := range definitionToResult {
		t.Run(testCase.sd.String(), func(t *testing.T) {
			s := gocron.NewScheduler()
			j, err := schedule.NewJob(s, testCase.sd)

			if testCase.valid {
				assert.NoError(t, err)
				assert.NotNil(t, j)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
