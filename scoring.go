package tallybot

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/pkg/errors"
)

var affirmations = []string{
	"Accomplishment achieved!",
	"Brilliantly executed!",
	"Civilized.",
	"Completed.",
	"Decent.",
	"Dignified.",
	"Done.",
	"Effective immediately!",
	"Executed!",
	"Fitting!",
	"Nice.",
	"Okay.",
	"Perfect.",
	"Polite.",
	"Respectable.",
	"Seemly.",
	"Sexy!",
	"Success!",
	"That's great!",
	"Very suitable.",
	"Well done!",
}

func randomAffirmation() (affirmation string) {
	return affirmations[rand.Intn(len(affirmations))]
}

// Scorer turns reward mentions and reactions into counter mutations. It
// resolves user profiles to skip bots, enforces the giver's daily quota and
// notifies recipients of rewards and bonus payouts over direct messages
type Scorer struct {
	teams     TeamStorer
	userInfo  UserInfoFinder
	messenger Messenger
	log       SLogger
	affirm    func() string
}

// NewScorer returns a scorer wired to the given collaborators
func NewScorer(teams TeamStorer, userInfo UserInfoFinder, messenger Messenger, logger SLogger) (s *Scorer) {
	return &Scorer{
		teams:     teams,
		userInfo:  userInfo,
		messenger: messenger,
		log:       logger,
		affirm:    randomAffirmation,
	}
}

// dedupeRecipients returns the recipients with duplicates removed, keeping
// first-mention order
func dedupeRecipients(recipients []string) (deduped []string) {
	seen := make(map[string]bool)
	deduped = make([]string, 0, len(recipients))

	for _, r := range recipients {
		if !seen[r] {
			seen[r] = true
			deduped = append(deduped, r)
		}
	}

	return deduped
}

// UpdateUsers credits each distinct recipient with scoreDelta reward units
// and debits the giver's quota. A giver rewarding themselves aborts the whole
// operation without any mutation. Bot recipients are skipped and earn the
// giver no credit. The giver's given counter is updated once with the batch
// total, even when that total is zero. The returned report lines are only
// built when report is true
func (s *Scorer) UpdateUsers(teamID string, channelID string, giver string, recipients []string, scoreDelta int, report bool) (output []string, err error) {
	recipients = dedupeRecipients(recipients)

	team, err := s.teams.GetConfig(teamID)
	if err != nil {
		return nil, err
	}

	emoji := team.RewardEmoji()

	for _, recipient := range recipients {
		if recipient == giver {
			return []string{fmt.Sprintf("No :%s: for you! _nice try, human_", emoji)}, nil
		}
	}

	if report {
		output = make([]string, 0, len(recipients))
	}

	remaining := -1
	if team.DailyQuota > 0 && scoreDelta > 0 {
		giverScore, gerr := s.teams.GetUser(teamID, giver)
		if gerr != nil && !errors.Is(gerr, ErrUserNotFound) {
			return nil, gerr
		}

		remaining = team.DailyQuota
		if giverScore != nil {
			remaining = team.DailyQuota - giverScore.GivenToday
			if remaining < 0 {
				remaining = 0
			}
		}
	}

	bonus := BonusPolicy{Threshold: team.BonusThreshold}
	given := 0

	for _, recipient := range recipients {
		info, uerr := s.userInfo.GetUserInfo(teamID, recipient)
		if uerr != nil {
			return nil, uerr
		}

		if info.IsBot {
			if report {
				output = append(output, fmt.Sprintf("%s is a bot. Bots don't need :%s:.", info.Name(), emoji))
			}

			continue
		}

		if remaining >= 0 && given+scoreDelta > remaining {
			if report {
				output = append(output, fmt.Sprintf("You have reached your daily :%s: quota. Try again tomorrow!", emoji))
			}

			break
		}

		user, bonusPaid, uerr := s.teams.UpdateCounter(teamID, recipient, AttrReceived, scoreDelta, bonus)
		if uerr != nil {
			return nil, uerr
		}

		given += scoreDelta

		if report {
			output = append(output, fmt.Sprintf("%s %s has %d :%s:!", s.affirm(), info.Name(), user.Received, emoji))
		}

		if report && scoreDelta > 0 {
			s.notify(teamID, recipient, fmt.Sprintf("You received a :%s: from <@%s>!", emoji, giver))
		}

		if bonusPaid > 0 {
			s.notify(teamID, recipient, fmt.Sprintf("You have earned %d :%s:! Your :%s: have been reset to %d.", bonusPaid, team.BonusEmoji, emoji, user.Received))
		}
	}

	_, _, err = s.teams.UpdateCounter(teamID, giver, AttrGiven, given, BonusPolicy{})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// UpdateTrolls applies a troll reaction to a recipient, skipping bots
func (s *Scorer) UpdateTrolls(teamID string, recipient string, scoreDelta int) (err error) {
	info, err := s.userInfo.GetUserInfo(teamID, recipient)
	if err != nil {
		return err
	}

	if info.IsBot {
		return nil
	}

	_, _, err = s.teams.UpdateCounter(teamID, recipient, AttrTrolls, scoreDelta, BonusPolicy{})
	return err
}

// notify sends a best effort direct message, logging instead of failing the
// scoring operation on error
func (s *Scorer) notify(teamID string, userID string, text string) {
	err := s.messenger.SendMessage(teamID, userID, text, "")
	if err != nil {
		s.log.Printf("Error notifying user [%s] in team [%s]: %v\n", userID, teamID, err)
	}
}

// ScoreMessage scans a channel message for reward emojis and mentions and
// applies one reward unit per mentioned user for each reward emoji present
// in the text. The resulting report is posted back to the channel, threaded
// when the message was a thread reply
func (s *Scorer) ScoreMessage(teamID string, ev *Event) (err error) {
	team, err := s.teams.GetConfig(teamID)
	if err != nil {
		return err
	}

	text := ev.EffectiveText()

	for _, emoji := range team.RewardEmojis {
		if CountEmojiTriggers(text, []string{emoji}) == 0 {
			continue
		}

		recipients := MentionedUsers(text)
		if len(recipients) == 0 {
			continue
		}

		report, uerr := s.UpdateUsers(teamID, ev.Channel, ev.User, recipients, 1, true)
		if uerr != nil {
			if errors.Is(uerr, ErrTeamNotFound) {
				return s.messenger.SendMessage(teamID, ev.Channel, teamResettingMessage(team), ev.ReplyTimestamp())
			}

			return uerr
		}

		if len(report) > 0 {
			err = s.messenger.SendMessage(teamID, ev.Channel, strings.Join(report, " "), ev.ReplyTimestamp())
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// ScoreReaction applies a reward or troll reaction to the item's author. A
// removed reaction undoes one unit. Reactions with no item author or on the
// reactor's own message are ignored
func (s *Scorer) ScoreReaction(teamID string, ev *Event) (err error) {
	if ev.ItemUser == "" || ev.User == ev.ItemUser {
		return nil
	}

	team, err := s.teams.GetConfig(teamID)
	if err != nil {
		return err
	}

	scoreDelta := 1
	if ev.Type == EventTypeReactionRemoved {
		scoreDelta = -1
	}

	for _, emoji := range team.RewardEmojis {
		if ev.Reaction == emoji {
			_, err = s.UpdateUsers(teamID, ev.Channel, ev.User, []string{ev.ItemUser}, scoreDelta, false)
			return err
		}
	}

	for _, emoji := range team.TrollEmojis {
		if ev.Reaction == emoji {
			return s.UpdateTrolls(teamID, ev.ItemUser, scoreDelta)
		}
	}

	return nil
}
