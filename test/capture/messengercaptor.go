// Package capture provides test implementations recording interactions for
// post-execution validation
package capture

// MessengerCaptor holds messages sent to it keyed by channel ID
type MessengerCaptor struct {
	SentMessages     map[string][]string
	ThreadTimestamps map[string][]string
}

// NewMessenger returns a new initialized MessengerCaptor instance
func NewMessenger() (mc *MessengerCaptor) {
	mc = new(MessengerCaptor)
	mc.SentMessages = make(map[string][]string)
	mc.ThreadTimestamps = make(map[string][]string)

	return mc
}

// SendMessage captures the details of a sent message keyed by the channel
// it's sent to. The team ID is ignored since test fixtures run a single team
func (mc *MessengerCaptor) SendMessage(teamID string, channelID string, text string, threadTimestamp string) (err error) {
	mc.SentMessages[channelID] = append(mc.SentMessages[channelID], text)
	mc.ThreadTimestamps[channelID] = append(mc.ThreadTimestamps[channelID], threadTimestamp)

	return nil
}
