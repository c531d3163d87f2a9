package tallybot

// DO NOT EDIT!
// This code is generated with http://github.com/hexdigest/gowrap tool
// using opentelemetry.template template

//go:generate gowrap gen -p github.com/tallybot/tallybot -i TeamStorer -t opentelemetry.template -o teamstorermetrics.go

import (
	"context"
	"time"
	"unicode"

	"go.opentelemetry.io/otel/label"
	"go.opentelemetry.io/otel/metric"
)

// TeamStorerWithTelemetry implements TeamStorer interface with all methods wrapped
// with open telemetry metrics
type TeamStorerWithTelemetry struct {
	base                     TeamStorer
	methodCounters           map[string]metric.BoundInt64Counter
	errCounters              map[string]metric.BoundInt64Counter
	methodTimeValueRecorders map[string]metric.BoundInt64ValueRecorder
}

// NewTeamStorerWithTelemetry returns an instance of the TeamStorer decorated with open telemetry timing and count metrics
func NewTeamStorerWithTelemetry(base TeamStorer, name string, meter metric.Meter) TeamStorerWithTelemetry {
	return TeamStorerWithTelemetry{
		base:                     base,
		methodCounters:           newTeamStorerMethodCounters("Calls", name, meter),
		errCounters:              newTeamStorerMethodCounters("Errors", name, meter),
		methodTimeValueRecorders: newTeamStorerMethodTimeValueRecorders(name, meter),
	}
}

func newTeamStorerMethodTimeValueRecorders(appName string, meter metric.Meter) (boundTimeValueRecorders map[string]metric.BoundInt64ValueRecorder) {
	boundTimeValueRecorders = make(map[string]metric.BoundInt64ValueRecorder)
	mt := metric.Must(meter)

	nCreateTableValRecorder := []rune("TeamStorer_CreateTable_ProcessingTimeMillis")
	nCreateTableValRecorder[0] = unicode.ToLower(nCreateTableValRecorder[0])
	mCreateTable := mt.NewInt64ValueRecorder(string(nCreateTableValRecorder))
	boundTimeValueRecorders["CreateTable"] = mCreateTable.Bind(label.String("name", appName))

	nDeleteTableValRecorder := []rune("TeamStorer_DeleteTable_ProcessingTimeMillis")
	nDeleteTableValRecorder[0] = unicode.ToLower(nDeleteTableValRecorder[0])
	mDeleteTable := mt.NewInt64ValueRecorder(string(nDeleteTableValRecorder))
	boundTimeValueRecorders["DeleteTable"] = mDeleteTable.Bind(label.String("name", appName))

	nGetConfigValRecorder := []rune("TeamStorer_GetConfig_ProcessingTimeMillis")
	nGetConfigValRecorder[0] = unicode.ToLower(nGetConfigValRecorder[0])
	mGetConfig := mt.NewInt64ValueRecorder(string(nGetConfigValRecorder))
	boundTimeValueRecorders["GetConfig"] = mGetConfig.Bind(label.String("name", appName))

	nGetUserValRecorder := []rune("TeamStorer_GetUser_ProcessingTimeMillis")
	nGetUserValRecorder[0] = unicode.ToLower(nGetUserValRecorder[0])
	mGetUser := mt.NewInt64ValueRecorder(string(nGetUserValRecorder))
	boundTimeValueRecorders["GetUser"] = mGetUser.Bind(label.String("name", appName))

	nListTeamsValRecorder := []rune("TeamStorer_ListTeams_ProcessingTimeMillis")
	nListTeamsValRecorder[0] = unicode.ToLower(nListTeamsValRecorder[0])
	mListTeams := mt.NewInt64ValueRecorder(string(nListTeamsValRecorder))
	boundTimeValueRecorders["ListTeams"] = mListTeams.Bind(label.String("name", appName))

	nListUsersValRecorder := []rune("TeamStorer_ListUsers_ProcessingTimeMillis")
	nListUsersValRecorder[0] = unicode.ToLower(nListUsersValRecorder[0])
	mListUsers := mt.NewInt64ValueRecorder(string(nListUsersValRecorder))
	boundTimeValueRecorders["ListUsers"] = mListUsers.Bind(label.String("name", appName))

	nResetDailyCountersValRecorder := []rune("TeamStorer_ResetDailyCounters_ProcessingTimeMillis")
	nResetDailyCountersValRecorder[0] = unicode.ToLower(nResetDailyCountersValRecorder[0])
	mResetDailyCounters := mt.NewInt64ValueRecorder(string(nResetDailyCountersValRecorder))
	boundTimeValueRecorders["ResetDailyCounters"] = mResetDailyCounters.Bind(label.String("name", appName))

	nResetScoresValRecorder := []rune("TeamStorer_ResetScores_ProcessingTimeMillis")
	nResetScoresValRecorder[0] = unicode.ToLower(nResetScoresValRecorder[0])
	mResetScores := mt.NewInt64ValueRecorder(string(nResetScoresValRecorder))
	boundTimeValueRecorders["ResetScores"] = mResetScores.Bind(label.String("name", appName))

	nSaveConfigValRecorder := []rune("TeamStorer_SaveConfig_ProcessingTimeMillis")
	nSaveConfigValRecorder[0] = unicode.ToLower(nSaveConfigValRecorder[0])
	mSaveConfig := mt.NewInt64ValueRecorder(string(nSaveConfigValRecorder))
	boundTimeValueRecorders["SaveConfig"] = mSaveConfig.Bind(label.String("name", appName))

	nUpdateCounterValRecorder := []rune("TeamStorer_UpdateCounter_ProcessingTimeMillis")
	nUpdateCounterValRecorder[0] = unicode.ToLower(nUpdateCounterValRecorder[0])
	mUpdateCounter := mt.NewInt64ValueRecorder(string(nUpdateCounterValRecorder))
	boundTimeValueRecorders["UpdateCounter"] = mUpdateCounter.Bind(label.String("name", appName))

	return boundTimeValueRecorders
}

func newTeamStorerMethodCounters(suffix string, appName string, meter metric.Meter) (boundCounters map[string]metric.BoundInt64Counter) {
	boundCounters = make(map[string]metric.BoundInt64Counter)
	mt := metric.Must(meter)

	nCreateTableCounter := []rune("TeamStorer_CreateTable_" + suffix)
	nCreateTableCounter[0] = unicode.ToLower(nCreateTableCounter[0])
	cCreateTable := mt.NewInt64Counter(string(nCreateTableCounter))
	boundCounters["CreateTable"] = cCreateTable.Bind(label.String("name", appName))

	nDeleteTableCounter := []rune("TeamStorer_DeleteTable_" + suffix)
	nDeleteTableCounter[0] = unicode.ToLower(nDeleteTableCounter[0])
	cDeleteTable := mt.NewInt64Counter(string(nDeleteTableCounter))
	boundCounters["DeleteTable"] = cDeleteTable.Bind(label.String("name", appName))

	nGetConfigCounter := []rune("TeamStorer_GetConfig_" + suffix)
	nGetConfigCounter[0] = unicode.ToLower(nGetConfigCounter[0])
	cGetConfig := mt.NewInt64Counter(string(nGetConfigCounter))
	boundCounters["GetConfig"] = cGetConfig.Bind(label.String("name", appName))

	nGetUserCounter := []rune("TeamStorer_GetUser_" + suffix)
	nGetUserCounter[0] = unicode.ToLower(nGetUserCounter[0])
	cGetUser := mt.NewInt64Counter(string(nGetUserCounter))
	boundCounters["GetUser"] = cGetUser.Bind(label.String("name", appName))

	nListTeamsCounter := []rune("TeamStorer_ListTeams_" + suffix)
	nListTeamsCounter[0] = unicode.ToLower(nListTeamsCounter[0])
	cListTeams := mt.NewInt64Counter(string(nListTeamsCounter))
	boundCounters["ListTeams"] = cListTeams.Bind(label.String("name", appName))

	nListUsersCounter := []rune("TeamStorer_ListUsers_" + suffix)
	nListUsersCounter[0] = unicode.ToLower(nListUsersCounter[0])
	cListUsers := mt.NewInt64Counter(string(nListUsersCounter))
	boundCounters["ListUsers"] = cListUsers.Bind(label.String("name", appName))

	nResetDailyCountersCounter := []rune("TeamStorer_ResetDailyCounters_" + suffix)
	nResetDailyCountersCounter[0] = unicode.ToLower(nResetDailyCountersCounter[0])
	cResetDailyCounters := mt.NewInt64Counter(string(nResetDailyCountersCounter))
	boundCounters["ResetDailyCounters"] = cResetDailyCounters.Bind(label.String("name", appName))

	nResetScoresCounter := []rune("TeamStorer_ResetScores_" + suffix)
	nResetScoresCounter[0] = unicode.ToLower(nResetScoresCounter[0])
	cResetScores := mt.NewInt64Counter(string(nResetScoresCounter))
	boundCounters["ResetScores"] = cResetScores.Bind(label.String("name", appName))

	nSaveConfigCounter := []rune("TeamStorer_SaveConfig_" + suffix)
	nSaveConfigCounter[0] = unicode.ToLower(nSaveConfigCounter[0])
	cSaveConfig := mt.NewInt64Counter(string(nSaveConfigCounter))
	boundCounters["SaveConfig"] = cSaveConfig.Bind(label.String("name", appName))

	nUpdateCounterCounter := []rune("TeamStorer_UpdateCounter_" + suffix)
	nUpdateCounterCounter[0] = unicode.ToLower(nUpdateCounterCounter[0])
	cUpdateCounter := mt.NewInt64Counter(string(nUpdateCounterCounter))
	boundCounters["UpdateCounter"] = cUpdateCounter.Bind(label.String("name", appName))

	return boundCounters
}

// CreateTable implements TeamStorer
func (_d TeamStorerWithTelemetry) CreateTable(teamID string) (err error) {
	_since := time.Now()
	defer func() {
		if err != nil {
			errCounter := _d.errCounters["CreateTable"]
			errCounter.Add(context.Background(), 1)
		}

		methodCounter := _d.methodCounters["CreateTable"]
		methodCounter.Add(context.Background(), 1)

		methodTimeMeasure := _d.methodTimeValueRecorders["CreateTable"]
		methodTimeMeasure.Record(context.Background(), time.Since(_since).Milliseconds())
	}()
	return _d.base.CreateTable(teamID)
}

// DeleteTable implements TeamStorer
func (_d TeamStorerWithTelemetry) DeleteTable(teamID string) (err error) {
	_since := time.Now()
	defer func() {
		if err != nil {
			errCounter := _d.errCounters["DeleteTable"]
			errCounter.Add(context.Background(), 1)
		}

		methodCounter := _d.methodCounters["DeleteTable"]
		methodCounter.Add(context.Background(), 1)

		methodTimeMeasure := _d.methodTimeValueRecorders["DeleteTable"]
		methodTimeMeasure.Record(context.Background(), time.Since(_since).Milliseconds())
	}()
	return _d.base.DeleteTable(teamID)
}

// GetConfig implements TeamStorer
func (_d TeamStorerWithTelemetry) GetConfig(teamID string) (c *TeamConfig, err error) {
	_since := time.Now()
	defer func() {
		if err != nil {
			errCounter := _d.errCounters["GetConfig"]
			errCounter.Add(context.Background(), 1)
		}

		methodCounter := _d.methodCounters["GetConfig"]
		methodCounter.Add(context.Background(), 1)

		methodTimeMeasure := _d.methodTimeValueRecorders["GetConfig"]
		methodTimeMeasure.Record(context.Background(), time.Since(_since).Milliseconds())
	}()
	return _d.base.GetConfig(teamID)
}

// GetUser implements TeamStorer
func (_d TeamStorerWithTelemetry) GetUser(teamID string, userID string) (u *UserScore, err error) {
	_since := time.Now()
	defer func() {
		if err != nil {
			errCounter := _d.errCounters["GetUser"]
			errCounter.Add(context.Background(), 1)
		}

		methodCounter := _d.methodCounters["GetUser"]
		methodCounter.Add(context.Background(), 1)

		methodTimeMeasure := _d.methodTimeValueRecorders["GetUser"]
		methodTimeMeasure.Record(context.Background(), time.Since(_since).Milliseconds())
	}()
	return _d.base.GetUser(teamID, userID)
}

// ListTeams implements TeamStorer
func (_d TeamStorerWithTelemetry) ListTeams() (teamIDs []string, err error) {
	_since := time.Now()
	defer func() {
		if err != nil {
			errCounter := _d.errCounters["ListTeams"]
			errCounter.Add(context.Background(), 1)
		}

		methodCounter := _d.methodCounters["ListTeams"]
		methodCounter.Add(context.Background(), 1)

		methodTimeMeasure := _d.methodTimeValueRecorders["ListTeams"]
		methodTimeMeasure.Record(context.Background(), time.Since(_since).Milliseconds())
	}()
	return _d.base.ListTeams()
}

// ListUsers implements TeamStorer
func (_d TeamStorerWithTelemetry) ListUsers(teamID string) (users []*UserScore, err error) {
	_since := time.Now()
	defer func() {
		if err != nil {
			errCounter := _d.errCounters["ListUsers"]
			errCounter.Add(context.Background(), 1)
		}

		methodCounter := _d.methodCounters["ListUsers"]
		methodCounter.Add(context.Background(), 1)

		methodTimeMeasure := _d.methodTimeValueRecorders["ListUsers"]
		methodTimeMeasure.Record(context.Background(), time.Since(_since).Milliseconds())
	}()
	return _d.base.ListUsers(teamID)
}

// ResetDailyCounters implements TeamStorer
func (_d TeamStorerWithTelemetry) ResetDailyCounters(teamID string) (err error) {
	_since := time.Now()
	defer func() {
		if err != nil {
			errCounter := _d.errCounters["ResetDailyCounters"]
			errCounter.Add(context.Background(), 1)
		}

		methodCounter := _d.methodCounters["ResetDailyCounters"]
		methodCounter.Add(context.Background(), 1)

		methodTimeMeasure := _d.methodTimeValueRecorders["ResetDailyCounters"]
		methodTimeMeasure.Record(context.Background(), time.Since(_since).Milliseconds())
	}()
	return _d.base.ResetDailyCounters(teamID)
}

// ResetScores implements TeamStorer
func (_d TeamStorerWithTelemetry) ResetScores(teamID string) (err error) {
	_since := time.Now()
	defer func() {
		if err != nil {
			errCounter := _d.errCounters["ResetScores"]
			errCounter.Add(context.Background(), 1)
		}

		methodCounter := _d.methodCounters["ResetScores"]
		methodCounter.Add(context.Background(), 1)

		methodTimeMeasure := _d.methodTimeValueRecorders["ResetScores"]
		methodTimeMeasure.Record(context.Background(), time.Since(_since).Milliseconds())
	}()
	return _d.base.ResetScores(teamID)
}

// SaveConfig implements TeamStorer
func (_d TeamStorerWithTelemetry) SaveConfig(c *TeamConfig) (err error) {
	_since := time.Now()
	defer func() {
		if err != nil {
			errCounter := _d.errCounters["SaveConfig"]
			errCounter.Add(context.Background(), 1)
		}

		methodCounter := _d.methodCounters["SaveConfig"]
		methodCounter.Add(context.Background(), 1)

		methodTimeMeasure := _d.methodTimeValueRecorders["SaveConfig"]
		methodTimeMeasure.Record(context.Background(), time.Since(_since).Milliseconds())
	}()
	return _d.base.SaveConfig(c)
}

// UpdateCounter implements TeamStorer
func (_d TeamStorerWithTelemetry) UpdateCounter(teamID string, userID string, attribute string, delta int, bonus BonusPolicy) (u *UserScore, bonusPaid int, err error) {
	_since := time.Now()
	defer func() {
		if err != nil {
			errCounter := _d.errCounters["UpdateCounter"]
			errCounter.Add(context.Background(), 1)
		}

		methodCounter := _d.methodCounters["UpdateCounter"]
		methodCounter.Add(context.Background(), 1)

		methodTimeMeasure := _d.methodTimeValueRecorders["UpdateCounter"]
		methodTimeMeasure.Record(context.Background(), time.Since(_since).Milliseconds())
	}()
	return _d.base.UpdateCounter(teamID, userID, attribute, delta, bonus)
}
