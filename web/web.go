// Package web exposes the http surface of tallybot: the slack event and
// slash command webhooks, the oauth installation flow and a health check
package web

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"

	"github.com/tallybot/tallybot"
)

const (
	timestampHeader = "X-Slack-Request-Timestamp"
	signatureHeader = "X-Slack-Signature"
	retryNumHeader  = "X-Slack-Retry-Num"
)

// OAuthConfig holds the slack app credentials used by the installation flow
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// tokenExchanger exchanges a temporary oauth code for an installation
type tokenExchanger func(code string) (resp *slack.OAuthV2Response, err error)

// clientInvalidater drops cached slack clients holding a stale token
type clientInvalidater interface {
	Invalidate(teamID string)
}

// Server routes slack's callbacks to the bot
type Server struct {
	bot      *tallybot.Tallybot
	verifier *tallybot.Verifier
	teams    tallybot.TeamStorer
	gateway  clientInvalidater
	oauth    OAuthConfig
	exchange tokenExchanger
	log      tallybot.SLogger
}

// NewServer returns a server wired to the bot and its team store
func NewServer(bot *tallybot.Tallybot, verifier *tallybot.Verifier, teams tallybot.TeamStorer, gateway clientInvalidater, oauth OAuthConfig, logger tallybot.SLogger) (s *Server) {
	s = &Server{
		bot:      bot,
		verifier: verifier,
		teams:    teams,
		gateway:  gateway,
		oauth:    oauth,
		log:      logger,
	}

	s.exchange = func(code string) (*slack.OAuthV2Response, error) {
		return slack.GetOAuthV2Response(http.DefaultClient, oauth.ClientID, oauth.ClientSecret, code, oauth.RedirectURI)
	}

	return s
}

// Router builds the http routes
func (s *Server) Router() (r chi.Router) {
	r = chi.NewRouter()

	r.Post("/slack/event", s.handleEvent)
	r.Post("/slack/command", s.handleCommand)
	r.Get("/slack/auth", s.handleAuth)
	r.Get("/thanks", s.handleThanks)
	r.Get("/health", s.handleHealth)

	return r
}

// verifiedBody reads the request body and checks slack's request signature
// against it before anything gets parsed
func (s *Server) verifiedBody(r *http.Request) (body []byte, err error) {
	body, err = ioutil.ReadAll(r.Body)
	if err != nil {
		return nil, errors.Wrap(err, "error reading request body")
	}

	if !s.verifier.Verify(r.Header.Get(timestampHeader), body, r.Header.Get(signatureHeader)) {
		return nil, errors.New("invalid request signature")
	}

	return body, nil
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(retryNumHeader) != "" {
		s.log.Debugf("Ignoring slack retry [%s] delivery\n", r.Header.Get(retryNumHeader))
		w.Write([]byte("OK"))
		return
	}

	body, err := s.verifiedBody(r)
	if err != nil {
		s.log.Printf("Rejecting event request: %v\n", err)
		http.Error(w, "Invalid request signature", http.StatusForbidden)
		return
	}

	response, err := s.bot.Dispatch(body)
	if err != nil {
		s.log.Printf("Error dispatching event: %v\n", err)
		http.Error(w, "Unable to handle event", http.StatusBadRequest)
		return
	}

	if response != "" {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(response))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	body, err := s.verifiedBody(r)
	if err != nil {
		s.log.Printf("Rejecting command request: %v\n", err)
		http.Error(w, "Invalid request signature", http.StatusForbidden)
		return
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		http.Error(w, "Invalid command payload", http.StatusBadRequest)
		return
	}

	response, err := s.bot.DispatchCommand(tallybot.SlashCommand{
		TeamID:    form.Get("team_id"),
		Command:   form.Get("command"),
		Text:      form.Get("text"),
		UserID:    form.Get("user_id"),
		ChannelID: form.Get("channel_id"),
	})
	if err != nil {
		if errors.Is(err, tallybot.ErrNotHandled) {
			http.Error(w, "Unknown command", http.StatusBadRequest)
			return
		}

		s.log.Printf("Error dispatching command [%s]: %v\n", form.Get("command"), err)
		http.Error(w, "Unable to handle command", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(response))
}

// handleAuth completes the oauth installation of the bot into a workspace. A
// reinstallation keeps the team's existing scoring configuration and only
// refreshes the credential fields
func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("error") != "" {
		s.log.Printf("Authorization declined: %s\n", r.URL.Query().Get("error"))
		http.Error(w, "Authorization declined", http.StatusForbidden)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusForbidden)
		return
	}

	resp, err := s.exchange(code)
	if err != nil {
		s.log.Printf("Error exchanging authorization code: %v\n", err)
		http.Error(w, "Authorization failed", http.StatusForbidden)
		return
	}

	err = s.install(resp)
	if err != nil {
		s.log.Printf("Error completing installation for team [%s]: %v\n", resp.Team.ID, err)
		http.Error(w, "Installation failed", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/thanks", http.StatusFound)
}

func (s *Server) install(resp *slack.OAuthV2Response) (err error) {
	team, err := s.teams.GetConfig(resp.Team.ID)
	if err != nil {
		if !errors.Is(err, tallybot.ErrTeamNotFound) {
			return err
		}

		team = tallybot.NewTeamConfig(resp.Team.ID)
	}

	team.TeamName = resp.Team.Name
	team.BotAccessToken = resp.AccessToken
	team.BotUserID = resp.BotUserID
	team.InstallerUserID = resp.AuthedUser.ID

	err = s.teams.SaveConfig(team)
	if err != nil {
		return err
	}

	err = s.teams.CreateTable(team.ID)
	if err != nil {
		return err
	}

	s.gateway.Invalidate(team.ID)
	s.log.Printf("Installed into team [%s] (%s)\n", team.ID, team.TeamName)

	return nil
}

func (s *Server) handleThanks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Thanks for installing! Invite the bot to a channel and start handing out rewards.")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}
