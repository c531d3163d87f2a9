package web

import (
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybot/tallybot"
	"github.com/tallybot/tallybot/store"
)

const testSigningSecret = "8f742231b10e8888abcd99yyyzzz85a5"

type invalidaterCaptor struct {
	invalidated []string
}

func (ic *invalidaterCaptor) Invalidate(teamID string) {
	ic.invalidated = append(ic.invalidated, teamID)
}

type webFixture struct {
	bot         *tallybot.Tallybot
	teams       *tallybot.TeamStore
	verifier    *tallybot.Verifier
	invalidater *invalidaterCaptor
	server      *Server
	router      http.Handler
}

func newWebFixture(t *testing.T) (f *webFixture) {
	ldb, err := store.NewLevelDB("webTest", t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { ldb.Close() })

	logger := tallybot.NewSLogger(log.New(os.Stdout, "test: ", log.LstdFlags), false)

	f = new(webFixture)
	f.teams = tallybot.NewTeamStore(ldb, logger)
	f.bot = tallybot.New(tallybot.OptionLogger(logger))
	f.verifier = tallybot.NewVerifier(testSigningSecret)
	f.invalidater = new(invalidaterCaptor)

	f.server = NewServer(f.bot, f.verifier, f.teams, f.invalidater, OAuthConfig{ClientID: "client-id", ClientSecret: "client-secret"}, logger)
	f.router = f.server.Router()

	return f
}

func (f *webFixture) signedRequest(method string, path string, body string) (r *http.Request) {
	r = httptest.NewRequest(method, path, strings.NewReader(body))

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	r.Header.Set(timestampHeader, timestamp)
	r.Header.Set(signatureHeader, f.verifier.Sign(timestamp, []byte(body)))

	return r
}

func TestEventURLVerification(t *testing.T) {
	f := newWebFixture(t)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, f.signedRequest(http.MethodPost, "/slack/event", `{"type": "url_verification", "challenge": "abc123"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc123", w.Body.String())
}

func TestEventDispatchesToHandler(t *testing.T) {
	f := newWebFixture(t)

	var handledTeamID string
	f.bot.Register(tallybot.EventTypeMessage, "capture", func(teamID string, ev *tallybot.Event) error {
		handledTeamID = teamID
		return nil
	})

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, f.signedRequest(http.MethodPost, "/slack/event", `{"type": "event_callback", "team_id": "T1", "event": {"type": "message", "text": "hi"}}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "T1", handledTeamID)
}

func TestEventRejectsBadSignature(t *testing.T) {
	f := newWebFixture(t)

	body := `{"type": "url_verification", "challenge": "abc123"}`
	r := httptest.NewRequest(http.MethodPost, "/slack/event", strings.NewReader(body))
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	r.Header.Set(timestampHeader, timestamp)
	r.Header.Set(signatureHeader, "v0=0000000000000000000000000000000000000000000000000000000000000000")

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestEventRejectsStaleTimestamp(t *testing.T) {
	f := newWebFixture(t)

	body := `{"type": "url_verification", "challenge": "abc123"}`
	r := httptest.NewRequest(http.MethodPost, "/slack/event", strings.NewReader(body))
	timestamp := fmt.Sprintf("%d", time.Now().Add(-10*time.Minute).Unix())
	r.Header.Set(timestampHeader, timestamp)
	r.Header.Set(signatureHeader, f.verifier.Sign(timestamp, []byte(body)))

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestEventRetryDeliveryAcknowledgedWithoutProcessing(t *testing.T) {
	f := newWebFixture(t)

	handled := false
	f.bot.Register(tallybot.EventTypeMessage, "capture", func(teamID string, ev *tallybot.Event) error {
		handled = true
		return nil
	})

	r := f.signedRequest(http.MethodPost, "/slack/event", `{"type": "event_callback", "team_id": "T1", "event": {"type": "message"}}`)
	r.Header.Set(retryNumHeader, "1")

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, handled)
}

func TestEventUnhandledEventType(t *testing.T) {
	f := newWebFixture(t)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, f.signedRequest(http.MethodPost, "/slack/event", `{"type": "event_callback", "team_id": "T1", "event": {"type": "reaction_added"}}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommandDispatch(t *testing.T) {
	f := newWebFixture(t)
	f.bot.RegisterCommand("/tally", func(cmd tallybot.SlashCommand) (string, error) {
		return "Pong from " + cmd.TeamID, nil
	})

	form := url.Values{"command": {"/tally"}, "text": {"ping"}, "team_id": {"T1"}, "user_id": {"U1"}, "channel_id": {"C1"}}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, f.signedRequest(http.MethodPost, "/slack/command", form.Encode()))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pong from T1", w.Body.String())
}

func TestCommandUnknown(t *testing.T) {
	f := newWebFixture(t)

	form := url.Values{"command": {"/unknown"}}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, f.signedRequest(http.MethodPost, "/slack/command", form.Encode()))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommandRejectsBadSignature(t *testing.T) {
	f := newWebFixture(t)

	r := httptest.NewRequest(http.MethodPost, "/slack/command", strings.NewReader("command=%2Ftally"))

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func stubExchange(f *webFixture) {
	f.server.exchange = func(code string) (*slack.OAuthV2Response, error) {
		resp := new(slack.OAuthV2Response)
		resp.AccessToken = "xoxb-new-token"
		resp.BotUserID = "B1"
		resp.Team.ID = "T1"
		resp.Team.Name = "myteam"
		resp.AuthedUser.ID = "U9"

		return resp, nil
	}
}

func TestAuthInstallsTeam(t *testing.T) {
	f := newWebFixture(t)
	stubExchange(f)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slack/auth?code=tempcode", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/thanks", w.Header().Get("Location"))

	team, err := f.teams.GetConfig("T1")
	require.NoError(t, err)
	assert.Equal(t, "xoxb-new-token", team.BotAccessToken)
	assert.Equal(t, "B1", team.BotUserID)
	assert.Equal(t, "U9", team.InstallerUserID)
	assert.Equal(t, []string{"banana"}, team.RewardEmojis)

	_, err = f.teams.GetUser("T1", "U1")
	assert.NotErrorIs(t, err, tallybot.ErrTeamNotFound, "score table should exist after installation")

	assert.Equal(t, []string{"T1"}, f.invalidater.invalidated)
}

func TestAuthReinstallKeepsScoringConfig(t *testing.T) {
	f := newWebFixture(t)
	stubExchange(f)

	existing := tallybot.NewTeamConfig("T1")
	existing.RewardEmojis = []string{"taco"}
	existing.DailyQuota = 5
	existing.BotAccessToken = "xoxb-old-token"
	require.NoError(t, f.teams.SaveConfig(existing))

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slack/auth?code=tempcode", nil))

	assert.Equal(t, http.StatusFound, w.Code)

	team, err := f.teams.GetConfig("T1")
	require.NoError(t, err)
	assert.Equal(t, "xoxb-new-token", team.BotAccessToken)
	assert.Equal(t, []string{"taco"}, team.RewardEmojis)
	assert.Equal(t, 5, team.DailyQuota)
}

func TestAuthMissingCode(t *testing.T) {
	f := newWebFixture(t)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slack/auth", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthDeclined(t *testing.T) {
	f := newWebFixture(t)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slack/auth?error=access_denied", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHealth(t *testing.T) {
	f := newWebFixture(t)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
