package tallybot

import (
	"encoding/json"
)

// EventType is the closed set of inbound event kinds the bot knows about.
// Event type strings that don't decode to a known kind map to
// EventTypeUnrecognized rather than failing to parse
type EventType int

// Known event types
const (
	EventTypeUnrecognized EventType = iota
	EventTypeMessage
	EventTypeAppMention
	EventTypeReactionAdded
	EventTypeReactionRemoved
)

const (
	messageEventName         = "message"
	appMentionEventName      = "app_mention"
	reactionAddedEventName   = "reaction_added"
	reactionRemovedEventName = "reaction_removed"
)

// Envelope payload types
const (
	envelopeURLVerification = "url_verification"
	envelopeEventCallback   = "event_callback"
)

// ParseEventType maps a wire event type string to its EventType
func ParseEventType(name string) (et EventType) {
	switch name {
	case messageEventName:
		return EventTypeMessage
	case appMentionEventName:
		return EventTypeAppMention
	case reactionAddedEventName:
		return EventTypeReactionAdded
	case reactionRemovedEventName:
		return EventTypeReactionRemoved
	default:
		return EventTypeUnrecognized
	}
}

// String returns the wire name of the event type
func (et EventType) String() string {
	switch et {
	case EventTypeMessage:
		return messageEventName
	case EventTypeAppMention:
		return appMentionEventName
	case EventTypeReactionAdded:
		return reactionAddedEventName
	case EventTypeReactionRemoved:
		return reactionRemovedEventName
	default:
		return "unrecognized"
	}
}

// Envelope is the outer webhook payload. The team identifier lives here, not
// on the inner event
type Envelope struct {
	Type      string `json:"type"`
	Token     string `json:"token,omitempty"`
	Challenge string `json:"challenge,omitempty"`
	TeamID    string `json:"team_id,omitempty"`
	Event     *Event `json:"event,omitempty"`
}

// NestedMessage is the inner message carried by edited-message events: it
// holds the updated text and the user who authored it
type NestedMessage struct {
	User string `json:"user"`
	Text string `json:"text"`
}

// Event is the discriminated union over the inbound event kinds. Message-like
// events carry channel/text fields, reaction events carry reaction/item_user
// fields; each kind leaves the other's fields at their zero values
type Event struct {
	Type            EventType
	RawType         string
	Subtype         string
	User            string
	Text            string
	Channel         string
	ChannelType     string
	Timestamp       string
	ThreadTimestamp string
	Edited          bool
	Message         *NestedMessage
	Reaction        string
	ItemUser        string
}

// wireEvent mirrors the wire shape of an event for decoding
type wireEvent struct {
	Type            string          `json:"type"`
	Subtype         string          `json:"subtype"`
	User            string          `json:"user"`
	Text            string          `json:"text"`
	Channel         string          `json:"channel"`
	ChannelType     string          `json:"channel_type"`
	Timestamp       string          `json:"ts"`
	ThreadTimestamp string          `json:"thread_ts"`
	Edited          json.RawMessage `json:"edited"`
	Message         *NestedMessage  `json:"message"`
	Reaction        string          `json:"reaction"`
	ItemUser        string          `json:"item_user"`
}

// UnmarshalJSON decodes a wire event into the closed union
func (e *Event) UnmarshalJSON(data []byte) (err error) {
	var w wireEvent
	if err = json.Unmarshal(data, &w); err != nil {
		return err
	}

	e.Type = ParseEventType(w.Type)
	e.RawType = w.Type
	e.Subtype = w.Subtype
	e.User = w.User
	e.Text = w.Text
	e.Channel = w.Channel
	e.ChannelType = w.ChannelType
	e.Timestamp = w.Timestamp
	e.ThreadTimestamp = w.ThreadTimestamp
	e.Edited = len(w.Edited) > 0 && string(w.Edited) != "null"
	e.Message = w.Message
	e.Reaction = w.Reaction
	e.ItemUser = w.ItemUser

	return nil
}

// EffectiveText returns the text to evaluate for scoring: the nested message
// text for edited messages, the event text otherwise
func (e *Event) EffectiveText() (text string) {
	if e.Message != nil {
		return e.Message.Text
	}

	return e.Text
}

// ReplyTimestamp returns the thread timestamp a response should attach to, or
// the empty string when the response should not be threaded. Thread replies
// carry the parent's timestamp in thread_ts
func (e *Event) ReplyTimestamp() (ts string) {
	if e.ThreadTimestamp != "" {
		return e.ThreadTimestamp
	}

	if e.Subtype == "message_replied" {
		return e.Timestamp
	}

	return ""
}
