package notifier

import (
	"encoding/json"
	"fmt"

	"github.com/slack-go/slack"
)

// Message is the payload posted to the incoming webhook.
type Message struct {
	Text        string             `json:"text"`
	Channel     string             `json:"channel"`
	Username    string             `json:"username,omitempty"`
	IconEmoji   string             `json:"icon_emoji,omitempty"`
	IconURL     string             `json:"icon_url,omitempty"`
	Attachments []slack.Attachment `json:"attachments,omitempty"`
}

// NewMessage normalizes v into a Message. A string becomes the text of the
// message, and an empty channel falls back to DefaultChannel.
func NewMessage(v any) (Message, error) {
	var msg Message
	switch data := v.(type) {
	case string:
		msg = Message{Text: data}
	case Message:
		msg = data
	case *Message:
		if data == nil {
			return Message{}, fmt.Errorf("%w: nil message", ErrInvalidMessage)
		}
		msg = *data
	case slack.WebhookMessage:
		msg = fromWebhookMessage(data)
	case *slack.WebhookMessage:
		if data == nil {
			return Message{}, fmt.Errorf("%w: nil message", ErrInvalidMessage)
		}
		msg = fromWebhookMessage(*data)
	default:
		return Message{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidMessage, v)
	}

	// The fallback is DefaultChannel even when the bot was configured with
	// another channel.
	if msg.Channel == "" {
		msg.Channel = DefaultChannel
	}

	if err := msg.Validate(); err != nil {
		return Message{}, err
	}
	return msg, nil
}

func fromWebhookMessage(wm slack.WebhookMessage) Message {
	return Message{
		Text:        wm.Text,
		Channel:     wm.Channel,
		Username:    wm.Username,
		IconEmoji:   wm.IconEmoji,
		IconURL:     wm.IconURL,
		Attachments: wm.Attachments,
	}
}

func (m Message) Validate() error {
	if m.Text == "" {
		return fmt.Errorf("%w: text is required", ErrInvalidMessage)
	}
	return nil
}

// Payload returns the JSON encoding sent as the payload form field.
func (m Message) Payload() (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshal message is err: %w", err)
	}
	return string(data), nil
}
