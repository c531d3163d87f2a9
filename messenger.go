package tallybot

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"
	"github.com/spf13/viper"
)

const (
	teamClientCacheSizeKey     = "teamClientCacheSize" // The number of per-team slack clients to keep around, int value
	teamClientCacheSizeDefault = 32
)

// Messenger defines the interface for sending a message to a team's channel.
// An empty threadTimestamp sends a plain channel message, a non-empty one
// sends a threaded reply
type Messenger interface {
	SendMessage(teamID string, channelID string, text string, threadTimestamp string) (err error)
}

// slackClient is the subset of the slack web api client used by the gateway
type slackClient interface {
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
	GetUserInfo(userID string) (*slack.User, error)
}

// SlackGateway implements Messenger and UserInfoFinder over per-team slack
// web api clients. Clients are built lazily from each team's stored bot token
// and kept in a small cache so a busy team doesn't re-authenticate on every
// message
type SlackGateway struct {
	teams       TeamStorer
	log         SLogger
	clientCache *lru.ARCCache
	newClient   func(token string) slackClient
}

// NewSlackGateway returns a gateway resolving bot tokens through the given
// team storer
func NewSlackGateway(v *viper.Viper, teams TeamStorer, logger SLogger) (g *SlackGateway, err error) {
	cs := v.GetInt(teamClientCacheSizeKey)
	if cs <= 0 {
		cs = teamClientCacheSizeDefault
	}

	cache, err := lru.NewARC(cs)
	if err != nil {
		return nil, err
	}

	return &SlackGateway{
		teams:       teams,
		log:         logger,
		clientCache: cache,
		newClient: func(token string) slackClient {
			return slack.New(token)
		},
	}, nil
}

func (g *SlackGateway) client(teamID string) (c slackClient, err error) {
	if cached, exists := g.clientCache.Get(teamID); exists {
		return cached.(slackClient), nil
	}

	conf, err := g.teams.GetConfig(teamID)
	if err != nil {
		return nil, errors.Wrapf(err, "error resolving bot token for team [%s]", teamID)
	}

	c = g.newClient(conf.BotAccessToken)
	g.clientCache.Add(teamID, c)

	return c, nil
}

// Invalidate drops a team's cached client so the next call picks up a freshly
// stored token
func (g *SlackGateway) Invalidate(teamID string) {
	g.clientCache.Remove(teamID)
}

// SendMessage implements Messenger
func (g *SlackGateway) SendMessage(teamID string, channelID string, text string, threadTimestamp string) (err error) {
	c, err := g.client(teamID)
	if err != nil {
		return err
	}

	options := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if threadTimestamp != "" {
		options = append(options, slack.MsgOptionTS(threadTimestamp))
	}

	_, _, err = c.PostMessage(channelID, options...)
	if err != nil {
		return errors.Wrapf(err, "error sending message to channel [%s] in team [%s]", channelID, teamID)
	}

	return nil
}

// GetUserInfo implements UserInfoFinder
func (g *SlackGateway) GetUserInfo(teamID string, userID string) (user *UserInfo, err error) {
	c, err := g.client(teamID)
	if err != nil {
		return nil, err
	}

	u, err := c.GetUserInfo(userID)
	if err != nil {
		return nil, errors.Wrapf(err, "error getting user info for [%s] in team [%s]", userID, teamID)
	}

	return &UserInfo{
		ID:          u.ID,
		DisplayName: u.Profile.DisplayName,
		RealName:    u.RealName,
		IsBot:       u.IsBot,
		IsAdmin:     u.IsAdmin,
	}, nil
}
