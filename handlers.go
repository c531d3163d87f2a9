package tallybot

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

const (
	channelTypeChannel = "channel"
	channelTypeIM      = "im"

	subtypeBotMessage = "bot_message"
)

// BotHandlers binds the scoring and reporting behaviors to incoming events.
// Scoring runs off the request path through the tasker so slack's delivery
// deadline is never at the mercy of the storage layer
type BotHandlers struct {
	teams     TeamStorer
	scorer    *Scorer
	reporter  *Reporter
	userInfo  UserInfoFinder
	messenger Messenger
	tasker    Tasker
	log       SLogger
}

// NewBotHandlers returns handlers wired to the given collaborators
func NewBotHandlers(teams TeamStorer, scorer *Scorer, reporter *Reporter, userInfo UserInfoFinder, messenger Messenger, tasker Tasker, logger SLogger) (h *BotHandlers) {
	return &BotHandlers{
		teams:     teams,
		scorer:    scorer,
		reporter:  reporter,
		userInfo:  userInfo,
		messenger: messenger,
		tasker:    tasker,
		log:       logger,
	}
}

// RegisterAll registers every event handler and the slash command on the bot
func (h *BotHandlers) RegisterAll(b *Tallybot) {
	b.Register(EventTypeMessage, "scoring", h.handleMessage)
	b.Register(EventTypeAppMention, "mentionCommands", h.handleAppMention)
	b.Register(EventTypeReactionAdded, "reactionScoring", h.handleReaction)
	b.Register(EventTypeReactionRemoved, "reactionScoring", h.handleReaction)
	b.RegisterCommand("/tally", h.handleSlashCommand)
}

func (h *BotHandlers) submit(teamID string, name string, task func() error) {
	h.tasker.Submit(func() {
		err := task()
		if err != nil {
			h.log.Printf("Error running [%s] for team [%s]: %v\n", name, teamID, err)
		}
	})
}

func isLeaderboardCommand(text string) (match bool) {
	return text == "bananas" || text == "leaderboard" || text == "tally"
}

func isTallyMeCommand(text string) (match bool) {
	return text == "tally me" || text == "tallyme"
}

func (h *BotHandlers) handleMessage(teamID string, ev *Event) (err error) {
	if ev.Edited {
		return nil
	}

	switch {
	case ev.ChannelType == channelTypeChannel && ev.Subtype == "":
		h.submit(teamID, "message scoring", func() error {
			return h.scorer.ScoreMessage(teamID, ev)
		})

	case ev.ChannelType == channelTypeIM && ev.Text == "reset!":
		h.submit(teamID, "table reset", func() error {
			return h.resetTable(teamID, ev)
		})

	case ev.ChannelType == channelTypeIM && isLeaderboardCommand(ev.Text):
		h.submit(teamID, "leaderboards", func() error {
			return h.postLeaderboards(teamID, ev)
		})

	case ev.ChannelType == channelTypeIM && isTallyMeCommand(ev.Text):
		h.submit(teamID, "personal tally", func() error {
			return h.postMe(teamID, ev)
		})
	}

	return nil
}

func (h *BotHandlers) handleAppMention(teamID string, ev *Event) (err error) {
	if ev.Subtype == subtypeBotMessage || ev.Edited {
		return nil
	}

	team, err := h.teams.GetConfig(teamID)
	if err != nil {
		return err
	}

	mention := fmt.Sprintf("<@%s>", team.BotUserID)
	if !strings.HasPrefix(ev.Text, mention) {
		return nil
	}

	command := strings.TrimSpace(strings.TrimPrefix(ev.Text, mention))

	switch {
	case isLeaderboardCommand(command):
		h.submit(teamID, "leaderboards", func() error {
			return h.postLeaderboards(teamID, ev)
		})

	case isTallyMeCommand(command):
		h.submit(teamID, "personal tally", func() error {
			return h.postMe(teamID, ev)
		})
	}

	return nil
}

func (h *BotHandlers) handleReaction(teamID string, ev *Event) (err error) {
	h.submit(teamID, "reaction scoring", func() error {
		return h.scorer.ScoreReaction(teamID, ev)
	})

	return nil
}

// resetTable wipes and recreates a team's score table when the requester is a
// workspace admin or the user who installed the bot
func (h *BotHandlers) resetTable(teamID string, ev *Event) (err error) {
	info, err := h.userInfo.GetUserInfo(teamID, ev.User)
	if err != nil {
		return err
	}

	team, err := h.teams.GetConfig(teamID)
	if err != nil {
		return err
	}

	if !info.IsAdmin && ev.User != team.InstallerUserID {
		return h.messenger.SendMessage(teamID, ev.Channel, "Nice try, buddy!", ev.ReplyTimestamp())
	}

	err = h.teams.DeleteTable(teamID)
	if err != nil {
		return err
	}

	err = h.teams.CreateTable(teamID)
	if err != nil {
		return err
	}

	return h.messenger.SendMessage(teamID, ev.Channel, fmt.Sprintf("The :%s: board has been reset", team.RewardEmoji()), ev.ReplyTimestamp())
}

func (h *BotHandlers) postLeaderboards(teamID string, ev *Event) (err error) {
	text, err := h.reporter.Leaderboards(teamID)
	if err != nil {
		return err
	}

	return h.messenger.SendMessage(teamID, ev.Channel, text, ev.ReplyTimestamp())
}

func (h *BotHandlers) postMe(teamID string, ev *Event) (err error) {
	text, err := h.reporter.Me(teamID, ev.User)
	if err != nil {
		return err
	}

	if text == "" {
		return nil
	}

	return h.messenger.SendMessage(teamID, ev.Channel, text, ev.ReplyTimestamp())
}

const slashCommandUsage = "Usage: `/tally ping`, `/tally config`, `/tally config quota <n>`, `/tally config emojis <a,b>`, `/tally config trolls <a,b>`, `/tally config interval <never|daily|weekly|monthly>`, `/tally config threshold <n>`"

// handleSlashCommand serves the /tally slash command. Config updates are
// applied immediately and acknowledged with the new value
func (h *BotHandlers) handleSlashCommand(cmd SlashCommand) (response string, err error) {
	text := strings.TrimSpace(cmd.Text)

	if text == "ping" {
		return "Pong", nil
	}

	if text == "" || text == "help" {
		return slashCommandUsage, nil
	}

	fields := strings.Fields(text)
	if fields[0] != "config" && fields[0] != "configure" {
		return slashCommandUsage, nil
	}

	team, err := h.teams.GetConfig(cmd.TeamID)
	if err != nil {
		return "", err
	}

	if len(fields) == 1 {
		return h.renderConfig(team), nil
	}

	if len(fields) < 3 {
		return slashCommandUsage, nil
	}

	value := strings.Join(fields[2:], " ")

	switch fields[1] {
	case "quota":
		quota, cerr := cast.ToIntE(value)
		if cerr != nil || quota < 0 {
			return "Daily quota must be a non-negative number", nil
		}

		team.DailyQuota = quota

	case "threshold":
		threshold, cerr := cast.ToIntE(value)
		if cerr != nil || threshold < 0 {
			return "Bonus threshold must be a non-negative number", nil
		}

		team.BonusThreshold = threshold

	case "emojis":
		emojis := splitEmojiList(value)
		if len(emojis) == 0 {
			return "At least one reward emoji is required", nil
		}

		team.RewardEmojis = emojis

	case "trolls":
		team.TrollEmojis = splitEmojiList(value)

	case "interval":
		if value != ResetNever && value != ResetDaily && value != ResetWeekly && value != ResetMonthly {
			return "Reset interval must be one of never, daily, weekly or monthly", nil
		}

		team.ResetInterval = value

	default:
		return slashCommandUsage, nil
	}

	err = h.teams.SaveConfig(team)
	if err != nil {
		return "", errors.Wrapf(err, "error saving config for team [%s]", cmd.TeamID)
	}

	return h.renderConfig(team), nil
}

func splitEmojiList(value string) (emojis []string) {
	for _, e := range strings.Split(value, ",") {
		e = strings.Trim(strings.TrimSpace(e), ":")
		if e != "" {
			emojis = append(emojis, e)
		}
	}

	return emojis
}

func (h *BotHandlers) renderConfig(team *TeamConfig) (text string) {
	quota := "unlimited"
	if team.DailyQuota > 0 {
		quota = fmt.Sprintf("%d per day", team.DailyQuota)
	}

	trolls := "disabled"
	if len(team.TrollEmojis) > 0 {
		trolls = strings.Join(team.TrollEmojis, ", ")
	}

	return fmt.Sprintf("Reward emojis: %s\nTroll emojis: %s\nReset interval: %s\nDaily quota: %s\nBonus threshold: %d (:%s:)",
		strings.Join(team.RewardEmojis, ", "), trolls, team.ResetInterval, quota, team.BonusThreshold, team.BonusEmoji)
}
