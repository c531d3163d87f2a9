package tallybot

import (
	"encoding/json"
	"log"
	"os"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/metric"
)

// ErrNotHandled is reported by Dispatch when no handler is registered for the
// payload's event type. The HTTP boundary maps it to a 400 so the sender
// stops retrying
var ErrNotHandled = errors.New("no handler registered")

// HandlerFunc processes one dispatched event. The team identifier comes from
// the envelope, not the event itself. Returning an error stops the handler
// chain and fails the dispatch
type HandlerFunc func(teamID string, ev *Event) error

// SlashCommand carries the fields of a slash-command invocation
type SlashCommand struct {
	TeamID    string
	Command   string
	Text      string
	UserID    string
	ChannelID string
}

// CommandFunc handles a slash command and returns its synchronous textual response
type CommandFunc func(cmd SlashCommand) (response string, err error)

// registeredHandler pairs a handler with the name that identifies it for
// duplicate suppression
type registeredHandler struct {
	name   string
	handle HandlerFunc
}

// Tallybot is the event registry and dispatcher. It is built once at start-up
// via Register/RegisterCommand calls and is then only read, concurrently, by
// every inbound request
type Tallybot struct {
	handlers map[EventType][]registeredHandler
	commands map[string]CommandFunc

	log SLogger
	*instrumenter
}

// Option is a Tallybot configuration option
type Option func(b *Tallybot)

// OptionLogger sets the bot's logger
func OptionLogger(logger SLogger) Option {
	return func(b *Tallybot) {
		b.log = logger
	}
}

// OptionMeter sets the meter used for dispatch instrumentation
func OptionMeter(meter metric.Meter) Option {
	return func(b *Tallybot) {
		b.instrumenter = newInstrumenter("tallybot", meter)
	}
}

// New creates an empty Tallybot registry
func New(opts ...Option) (b *Tallybot) {
	b = new(Tallybot)
	b.handlers = make(map[EventType][]registeredHandler)
	b.commands = make(map[string]CommandFunc)
	b.log = NewSLogger(log.New(os.Stdout, "tallybot: ", log.Lshortfile|log.LstdFlags), false)

	for _, opt := range opts {
		opt(b)
	}

	if b.instrumenter == nil {
		b.instrumenter = newInstrumenter("tallybot", metric.NoopMeterProvider{}.Meter("tallybot"))
	}

	return b
}

// Register appends a named handler to the ordered list for the event type.
// Registering the same name twice for a type is a no-op so wiring code can
// run more than once without duplicating handlers
func (b *Tallybot) Register(et EventType, name string, handle HandlerFunc) {
	for _, h := range b.handlers[et] {
		if h.name == name {
			b.log.Debugf("handler [%s] already registered for [%s], skipping", name, et)
			return
		}
	}

	b.handlers[et] = append(b.handlers[et], registeredHandler{name: name, handle: handle})
}

// RegisterCommand maps a slash-command name (with its leading "/") to its
// single handler, replacing any previous registration
func (b *Tallybot) RegisterCommand(command string, handle CommandFunc) {
	b.commands[command] = handle
}

// Dispatch decodes and routes a raw webhook payload. For url_verification
// payloads it returns the challenge string verbatim. For event_callback
// payloads it invokes every registered handler for the event type in
// registration order, stopping at the first failure. ErrNotHandled is
// returned when nothing is registered for the event type
func (b *Tallybot) Dispatch(body []byte) (response string, err error) {
	var envelope Envelope
	if err = json.Unmarshal(body, &envelope); err != nil {
		return "", errors.Wrap(err, "invalid payload")
	}

	return b.DispatchEnvelope(&envelope)
}

// DispatchEnvelope routes an already-decoded envelope, see Dispatch
func (b *Tallybot) DispatchEnvelope(envelope *Envelope) (response string, err error) {
	switch envelope.Type {
	case envelopeURLVerification:
		return envelope.Challenge, nil

	case envelopeEventCallback:
		if envelope.Event == nil {
			return "", ErrNotHandled
		}

		return "", b.dispatchEvent(envelope.TeamID, envelope.Event)

	default:
		return "", ErrNotHandled
	}
}

// dispatchEvent runs the handler chain for one event
func (b *Tallybot) dispatchEvent(teamID string, ev *Event) (err error) {
	b.eventSeen(ev.Type)

	registered, ok := b.handlers[ev.Type]
	if !ok || len(registered) == 0 {
		b.log.Debugf("no handler for event type [%s] (raw [%s])", ev.Type, ev.RawType)
		b.eventUnhandled(ev.Type)
		return ErrNotHandled
	}

	d := measure(func() {
		for _, h := range registered {
			if err = h.handle(teamID, ev); err != nil {
				err = errors.Wrapf(err, "handler [%s] failed for event type [%s]", h.name, ev.Type)
				return
			}
		}
	})

	b.eventDispatched(ev.Type, d, err)

	return err
}

// DispatchCommand routes a slash command to its handler and returns the
// handler's synchronous response. ErrNotHandled is returned for unknown
// command names
func (b *Tallybot) DispatchCommand(cmd SlashCommand) (response string, err error) {
	handle, ok := b.commands[cmd.Command]
	if !ok {
		b.log.Debugf("no handler for command [%s]", cmd.Command)
		return "", ErrNotHandled
	}

	return handle(cmd)
}
