package tallybot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const leaderboardLimit = 10

// Rank renders a single leaderboard section body. Users with a zero counter
// are left out and ties keep their input order. The second return value is
// false when no user has a positive counter
func Rank(users []*UserScore, attribute string, limit int, emoji string, displayName func(userID string) string) (board string, ok bool) {
	ranked := make([]*UserScore, 0, len(users))
	for _, u := range users {
		if u.Value(attribute) > 0 {
			ranked = append(ranked, u)
		}
	}

	if len(ranked) == 0 {
		return "", false
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value(attribute) > ranked[j].Value(attribute)
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	lines := make([]string, 0, len(ranked))
	for i, u := range ranked {
		lines = append(lines, fmt.Sprintf("%d. %s - %d :%s:", i+1, displayName(u.UserID), u.Value(attribute), emoji))
	}

	return strings.Join(lines, "\n"), true
}

// Reporter renders leaderboards and personal tallies for a team
type Reporter struct {
	teams    TeamStorer
	userInfo UserInfoFinder
	log      SLogger
}

// NewReporter returns a reporter over the given team store
func NewReporter(teams TeamStorer, userInfo UserInfoFinder, logger SLogger) (r *Reporter) {
	return &Reporter{teams: teams, userInfo: userInfo, log: logger}
}

// displayName resolves a user's display name, falling back to the raw
// identifier when the profile lookup fails
func (r *Reporter) displayName(teamID string) (resolve func(userID string) string) {
	return func(userID string) string {
		info, err := r.userInfo.GetUserInfo(teamID, userID)
		if err != nil {
			r.log.Printf("Error resolving user name for [%s] in team [%s]: %v\n", userID, teamID, err)
			return userID
		}

		return info.Name()
	}
}

// Leaderboards renders a team's full leaderboard message with one section per
// non-empty counter. When nobody has scored anything yet the message asks for
// moar
func (r *Reporter) Leaderboards(teamID string) (text string, err error) {
	team, err := r.teams.GetConfig(teamID)
	if err != nil {
		return "", err
	}

	users, err := r.teams.ListUsers(teamID)
	if err != nil {
		if errors.Is(err, ErrTeamNotFound) {
			return teamResettingMessage(team), nil
		}

		return "", err
	}

	resolve := r.displayName(teamID)
	sections := make([]string, 0, 3)

	if board, ok := Rank(users, AttrReceived, leaderboardLimit, team.RewardEmoji(), resolve); ok {
		sections = append(sections, fmt.Sprintf("*Received*\n\n%s", board))
	}

	if board, ok := Rank(users, AttrGiven, leaderboardLimit, team.RewardEmoji(), resolve); ok {
		sections = append(sections, fmt.Sprintf("*Given*\n\n%s", board))
	}

	if troll := team.TrollEmoji(); troll != "" {
		if board, ok := Rank(users, AttrTrolls, leaderboardLimit, troll, resolve); ok {
			sections = append(sections, fmt.Sprintf("*Trolls*\n\n%s", board))
		}
	}

	if len(sections) == 0 {
		return fmt.Sprintf("Needs moar :%s:", team.RewardEmoji()), nil
	}

	return strings.Join(sections, "\n\n"), nil
}

// Me renders a user's personal tally. A user with no score row at all gets
// told there is nothing to see while a row with all zero counters renders an
// empty string so the caller can stay silent
func (r *Reporter) Me(teamID string, userID string) (text string, err error) {
	team, err := r.teams.GetConfig(teamID)
	if err != nil {
		return "", err
	}

	u, err := r.teams.GetUser(teamID, userID)
	if err != nil {
		if errors.Is(err, ErrTeamNotFound) {
			return teamResettingMessage(team), nil
		}

		if errors.Is(err, ErrUserNotFound) {
			return "nothing to see here", nil
		}

		return "", err
	}

	parts := make([]string, 0, 3)
	if u.Received > 0 {
		parts = append(parts, fmt.Sprintf("received %d :%s:", u.Received, team.RewardEmoji()))
	}

	if u.Given > 0 {
		parts = append(parts, fmt.Sprintf("given %d :%s:", u.Given, team.RewardEmoji()))
	}

	if u.Trolls > 0 && team.TrollEmoji() != "" {
		parts = append(parts, fmt.Sprintf("received %d :%s:", u.Trolls, team.TrollEmoji()))
	}

	if len(parts) == 0 {
		return "", nil
	}

	return "You have " + strings.Join(parts, ", "), nil
}

func teamResettingMessage(team *TeamConfig) (text string) {
	return fmt.Sprintf("The :%s: board is resetting, try again in a minute", team.RewardEmoji())
}
