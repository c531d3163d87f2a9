package tallybot

// Reset interval values for TeamConfig.ResetInterval
const (
	ResetNever   = "never"
	ResetDaily   = "daily"
	ResetWeekly  = "weekly"
	ResetMonthly = "monthly"
)

// Counter attribute names for UserScore mutations
const (
	AttrGiven    = "given"
	AttrReceived = "received"
	AttrTrolls   = "trolls"
)

// TeamConfig holds one team's bot credential and scoring configuration. A
// team identifier maps to exactly one config record, created on first
// successful authorization and mutated only by the authorization flow or an
// explicit config update
type TeamConfig struct {
	ID              string   `json:"id"`
	TeamName        string   `json:"team_name"`
	BotAccessToken  string   `json:"bot_access_token"`
	BotUserID       string   `json:"bot_user_id"`
	InstallerUserID string   `json:"installer_user_id"`
	RewardEmojis    []string `json:"reward_emojis"`
	TrollEmojis     []string `json:"troll_emojis"`
	ResetInterval   string   `json:"reset_interval"`
	DailyQuota      int      `json:"daily_quota"`
	BonusThreshold  int      `json:"bonus_threshold"`
	BonusEmoji      string   `json:"bonus_emoji"`
}

// NewTeamConfig returns a config for a new team with the default emoji sets,
// no reset interval, no quota and the default bonus threshold
func NewTeamConfig(teamID string) (c *TeamConfig) {
	return &TeamConfig{
		ID:             teamID,
		RewardEmojis:   []string{"banana"},
		TrollEmojis:    []string{"troll", "trollface"},
		ResetInterval:  ResetNever,
		DailyQuota:     0,
		BonusThreshold: 100,
		BonusEmoji:     "star",
	}
}

// RewardEmoji returns the primary (display) reward emoji
func (c *TeamConfig) RewardEmoji() (emoji string) {
	return c.RewardEmojis[0]
}

// TrollEmoji returns the primary troll emoji or the empty string when troll
// tracking is disabled
func (c *TeamConfig) TrollEmoji() (emoji string) {
	if len(c.TrollEmojis) == 0 {
		return ""
	}

	return c.TrollEmojis[0]
}

// UserScore holds one (team, user) pair's counters. Counters never go below
// zero. Rows are created lazily on first mutation and destroyed only by a
// team table reset or delete
type UserScore struct {
	UserID        string `json:"user_id"`
	Given         int    `json:"given"`
	Received      int    `json:"received"`
	Trolls        int    `json:"trolls"`
	BonusReceived int    `json:"bonus_received,omitempty"`
	GivenToday    int    `json:"given_today,omitempty"`
	TrollsToday   int    `json:"trolls_today,omitempty"`
}

// Value returns the named counter's current value
func (u *UserScore) Value(attribute string) (value int) {
	switch attribute {
	case AttrGiven:
		return u.Given
	case AttrReceived:
		return u.Received
	case AttrTrolls:
		return u.Trolls
	default:
		return 0
	}
}

// setValue sets the named counter
func (u *UserScore) setValue(attribute string, value int) {
	switch attribute {
	case AttrGiven:
		u.Given = value
	case AttrReceived:
		u.Received = value
	case AttrTrolls:
		u.Trolls = value
	}
}
