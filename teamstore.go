package tallybot

import (
	"encoding/json"
	"hash/crc32"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/tallybot/tallybot/store"
)

const (
	configSilo     = "config"
	tablesSilo     = "tables"
	teamSiloPrefix = "team-"

	tableMarkerValue = "1"

	// must be a power of two so the stripe mask works
	lockStripes = 32
)

// ErrTeamNotFound is returned when an operation targets a team whose score
// table doesn't exist, either because the team never authorized or because a
// reset is in flight
var ErrTeamNotFound = errors.New("team not found")

// ErrUserNotFound is returned when a user has no score row in an existing
// team table
var ErrUserNotFound = errors.New("user not found")

// BonusPolicy drives the bonus payout applied when a received counter crosses
// a threshold. A zero Threshold disables bonus handling
type BonusPolicy struct {
	Threshold int
}

// TeamStorer is implemented by the team score persistence layer. All counter
// mutations are atomic with respect to other mutations on the same team
type TeamStorer interface {
	GetConfig(teamID string) (c *TeamConfig, err error)
	SaveConfig(c *TeamConfig) (err error)
	ListTeams() (teamIDs []string, err error)
	GetUser(teamID string, userID string) (u *UserScore, err error)
	ListUsers(teamID string) (users []*UserScore, err error)
	UpdateCounter(teamID string, userID string, attribute string, delta int, bonus BonusPolicy) (u *UserScore, bonusPaid int, err error)
	CreateTable(teamID string) (err error)
	DeleteTable(teamID string) (err error)
	ResetScores(teamID string) (err error)
	ResetDailyCounters(teamID string) (err error)
}

// TeamStore keeps team configs and per-user score rows as JSON values in
// silos of a GlobalSiloStringStorer. One silo holds all team configs, one
// registry silo tracks which score tables exist and each team's rows live in
// their own silo. Mutations on a team serialize on a striped lock keyed by
// the team identifier
type TeamStore struct {
	storer store.GlobalSiloStringStorer
	log    SLogger

	locks [lockStripes]sync.Mutex
}

// NewTeamStore returns a TeamStore backed by the given storer
func NewTeamStore(storer store.GlobalSiloStringStorer, log SLogger) (ts *TeamStore) {
	return &TeamStore{storer: storer, log: log}
}

func (ts *TeamStore) lock(teamID string) (l *sync.Mutex) {
	return &ts.locks[crc32.ChecksumIEEE([]byte(teamID))&(lockStripes-1)]
}

func teamSilo(teamID string) (silo string) {
	return teamSiloPrefix + teamID
}

// GetConfig returns the stored config for a team or ErrTeamNotFound when the
// team never authorized
func (ts *TeamStore) GetConfig(teamID string) (c *TeamConfig, err error) {
	raw, err := ts.storer.GetSiloString(configSilo, teamID)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, errors.Wrapf(ErrTeamNotFound, "no config for team [%s]", teamID)
		}

		return nil, err
	}

	c = new(TeamConfig)
	err = json.Unmarshal([]byte(raw), c)
	if err != nil {
		return nil, errors.Wrapf(err, "error decoding config for team [%s]", teamID)
	}

	return c, nil
}

// SaveConfig persists a team config, overwriting any prior version
func (ts *TeamStore) SaveConfig(c *TeamConfig) (err error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return errors.Wrapf(err, "error encoding config for team [%s]", c.ID)
	}

	return ts.storer.PutSiloString(configSilo, c.ID, string(raw))
}

// ListTeams returns the identifiers of all teams with a stored config, in
// stable order
func (ts *TeamStore) ListTeams() (teamIDs []string, err error) {
	entries, err := ts.storer.ScanSilo(configSilo)
	if err != nil {
		return nil, err
	}

	teamIDs = make([]string, 0, len(entries))
	for teamID := range entries {
		teamIDs = append(teamIDs, teamID)
	}

	sort.Strings(teamIDs)
	return teamIDs, nil
}

func (ts *TeamStore) tableExists(teamID string) (exists bool, err error) {
	_, err = ts.storer.GetSiloString(tablesSilo, teamID)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// CreateTable creates a team's score table. Creating a table that already
// exists is not an error
func (ts *TeamStore) CreateTable(teamID string) (err error) {
	l := ts.lock(teamID)
	l.Lock()
	defer l.Unlock()

	exists, err := ts.tableExists(teamID)
	if err != nil {
		return err
	}

	if exists {
		ts.log.Debugf("Table for team [%s] already exists, nothing to create\n", teamID)
		return nil
	}

	ts.log.Printf("Creating score table for team [%s]\n", teamID)
	return ts.storer.PutSiloString(tablesSilo, teamID, tableMarkerValue)
}

// DeleteTable removes a team's score table and all of its rows. Deleting a
// table that doesn't exist is not an error
func (ts *TeamStore) DeleteTable(teamID string) (err error) {
	l := ts.lock(teamID)
	l.Lock()
	defer l.Unlock()

	exists, err := ts.tableExists(teamID)
	if err != nil {
		return err
	}

	if !exists {
		ts.log.Debugf("Table for team [%s] doesn't exist, nothing to delete\n", teamID)
		return nil
	}

	ts.log.Printf("Deleting score table for team [%s]\n", teamID)
	err = ts.storer.DeleteSilo(teamSilo(teamID))
	if err != nil {
		return err
	}

	return ts.storer.DeleteSiloString(tablesSilo, teamID)
}

func (ts *TeamStore) getUser(teamID string, userID string) (u *UserScore, err error) {
	raw, err := ts.storer.GetSiloString(teamSilo(teamID), userID)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, errors.Wrapf(ErrUserNotFound, "no score row for user [%s] in team [%s]", userID, teamID)
		}

		return nil, err
	}

	u = new(UserScore)
	err = json.Unmarshal([]byte(raw), u)
	if err != nil {
		return nil, errors.Wrapf(err, "error decoding score row for user [%s] in team [%s]", userID, teamID)
	}

	return u, nil
}

func (ts *TeamStore) putUser(teamID string, u *UserScore) (err error) {
	raw, err := json.Marshal(u)
	if err != nil {
		return errors.Wrapf(err, "error encoding score row for user [%s] in team [%s]", u.UserID, teamID)
	}

	return ts.storer.PutSiloString(teamSilo(teamID), u.UserID, string(raw))
}

// GetUser returns a user's score row. It returns ErrTeamNotFound when the
// team's table doesn't exist and ErrUserNotFound when the user has no row yet
func (ts *TeamStore) GetUser(teamID string, userID string) (u *UserScore, err error) {
	exists, err := ts.tableExists(teamID)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, errors.Wrapf(ErrTeamNotFound, "no score table for team [%s]", teamID)
	}

	return ts.getUser(teamID, userID)
}

// ListUsers returns all score rows for a team, sorted by user identifier
func (ts *TeamStore) ListUsers(teamID string) (users []*UserScore, err error) {
	exists, err := ts.tableExists(teamID)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, errors.Wrapf(ErrTeamNotFound, "no score table for team [%s]", teamID)
	}

	entries, err := ts.storer.ScanSilo(teamSilo(teamID))
	if err != nil {
		return nil, err
	}

	users = make([]*UserScore, 0, len(entries))
	for userID, raw := range entries {
		u := new(UserScore)
		err = json.Unmarshal([]byte(raw), u)
		if err != nil {
			return nil, errors.Wrapf(err, "error decoding score row for user [%s] in team [%s]", userID, teamID)
		}

		users = append(users, u)
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].UserID < users[j].UserID
	})

	return users, nil
}

// UpdateCounter applies a delta to one of a user's counters under the team's
// lock, reading the current row, mutating it and writing it back as a single
// atomic step. Counters are floored at zero. A positive delta on the given
// counter also counts toward the user's daily given total and a positive
// delta on the trolls counter toward the daily troll total. When the received
// counter crosses a multiple of bonus.Threshold, the bonus payout count is
// returned and the received counter wraps around the threshold
func (ts *TeamStore) UpdateCounter(teamID string, userID string, attribute string, delta int, bonus BonusPolicy) (u *UserScore, bonusPaid int, err error) {
	l := ts.lock(teamID)
	l.Lock()
	defer l.Unlock()

	exists, err := ts.tableExists(teamID)
	if err != nil {
		return nil, 0, err
	}

	if !exists {
		return nil, 0, errors.Wrapf(ErrTeamNotFound, "no score table for team [%s]", teamID)
	}

	u, err = ts.getUser(teamID, userID)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			return nil, 0, err
		}

		u = &UserScore{UserID: userID}
	}

	value := u.Value(attribute) + delta
	if value < 0 {
		value = 0
	}

	if delta > 0 {
		switch attribute {
		case AttrGiven:
			u.GivenToday += delta
		case AttrTrolls:
			u.TrollsToday += delta
		}
	}

	if attribute == AttrReceived && delta > 0 && bonus.Threshold > 0 && value >= bonus.Threshold {
		bonusPaid = value / bonus.Threshold
		value = value % bonus.Threshold
		u.BonusReceived += bonusPaid
	}

	u.setValue(attribute, value)

	err = ts.putUser(teamID, u)
	if err != nil {
		return nil, 0, err
	}

	return u, bonusPaid, nil
}

// ResetScores wipes all score rows for a team while keeping its table and
// config in place
func (ts *TeamStore) ResetScores(teamID string) (err error) {
	l := ts.lock(teamID)
	l.Lock()
	defer l.Unlock()

	exists, err := ts.tableExists(teamID)
	if err != nil {
		return err
	}

	if !exists {
		return errors.Wrapf(ErrTeamNotFound, "no score table for team [%s]", teamID)
	}

	ts.log.Printf("Resetting scores for team [%s]\n", teamID)
	return ts.storer.DeleteSilo(teamSilo(teamID))
}

// ResetDailyCounters zeroes every user's daily counters for a team, leaving
// the cumulative counters alone
func (ts *TeamStore) ResetDailyCounters(teamID string) (err error) {
	l := ts.lock(teamID)
	l.Lock()
	defer l.Unlock()

	exists, err := ts.tableExists(teamID)
	if err != nil {
		return err
	}

	if !exists {
		return errors.Wrapf(ErrTeamNotFound, "no score table for team [%s]", teamID)
	}

	entries, err := ts.storer.ScanSilo(teamSilo(teamID))
	if err != nil {
		return err
	}

	for userID, raw := range entries {
		u := new(UserScore)
		err = json.Unmarshal([]byte(raw), u)
		if err != nil {
			return errors.Wrapf(err, "error decoding score row for user [%s] in team [%s]", userID, teamID)
		}

		if u.GivenToday == 0 && u.TrollsToday == 0 {
			continue
		}

		u.GivenToday = 0
		u.TrollsToday = 0

		err = ts.putUser(teamID, u)
		if err != nil {
			return err
		}
	}

	return nil
}
