package notifier

import (
	"fmt"

	"github.com/go-lark/lark"
	"github.com/go-lark/lark/card"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
)

type larkNotifier struct {
	larkBot *lark.Bot
	logger  logrus.FieldLogger
}

// NewLarkNotifier delivers messages to a Lark custom bot webhook. Messages
// follow the same rules as SendBot.Say.
func NewLarkNotifier(webHookURL string, opts ...Option) (Notifier, error) {
	if webHookURL == "" {
		return nil, &ConfigError{Field: "webhook", Value: webHookURL}
	}
	o := newOptions(opts)
	return &larkNotifier{
		larkBot: lark.NewNotificationBot(webHookURL),
		logger:  o.logger,
	}, nil
}

func (ln *larkNotifier) Name() string {
	return LarkNotifierName
}

func (ln *larkNotifier) Notify(data any) {
	msg, err := NewMessage(data)
	if err != nil {
		ln.logger.Errorf("send message to lark is err: %v", err)
		return
	}
	ln.logger.WithFields(logrus.Fields{
		"channel": msg.Channel,
		"text":    msg.Text,
	}).Debug("send a message")

	go func() {
		if _, err := ln.larkBot.PostNotificationV2(ln.GetOutComingMsg(msg)); err != nil {
			ln.logger.Errorf("send message to lark is err: %v", err)
		}
	}()
}

// GetOutComingMsg renders plain messages as text and messages with
// attachments as an interactive card.
func (ln *larkNotifier) GetOutComingMsg(msg Message) lark.OutcomingMessage {
	if len(msg.Attachments) == 0 {
		return lark.NewMsgBuffer(lark.MsgText).Text(larkText(msg)).Build()
	}
	return ln.composeCardOutComingMsg(msg)
}

func (ln *larkNotifier) composeCardOutComingMsg(msg Message) lark.OutcomingMessage {
	buf := lark.NewMsgBuffer(lark.MsgInteractive)
	cardString := ln.ComposeCard(msg).String()
	return buf.Card(cardString).Build()
}

func (ln *larkNotifier) ComposeCard(msg Message) *card.Block {
	builder := lark.NewCardBuilder()
	elements := []card.Element{}
	for i, attachment := range msg.Attachments {
		if i > 0 {
			elements = append(elements, builder.Hr())
		}
		if columns := attachmentColumns(attachment); len(columns) > 0 {
			elements = append(elements, ln.ComposeColumnSet(builder, columns))
		}
		for _, action := range attachment.Actions {
			elements = append(elements, ln.ComposeAction(builder, action))
		}
	}

	block := builder.Card(elements...).Title(larkText(msg))
	switch colorOf(msg.Attachments) {
	case "danger":
		return block.Red()
	case "warning":
		return block.Orange()
	case "good":
		return block.Green()
	default:
		return block.Blue()
	}
}

type larkColumn struct {
	Name   string
	Value  string
	Weight int
}

// attachmentColumns lays out the title/text pair first, then one column per
// field. Short fields get half the weight of long ones.
func attachmentColumns(attachment slack.Attachment) []larkColumn {
	columns := []larkColumn{}
	if attachment.Title != "" || attachment.Text != "" {
		columns = append(columns, larkColumn{Name: attachment.Title, Value: attachment.Text, Weight: 2})
	}
	for _, field := range attachment.Fields {
		weight := 2
		if field.Short {
			weight = 1
		}
		columns = append(columns, larkColumn{Name: field.Title, Value: field.Value, Weight: weight})
	}
	return columns
}

func colorOf(attachments []slack.Attachment) string {
	for _, attachment := range attachments {
		if attachment.Color != "" {
			return attachment.Color
		}
	}
	return ""
}

func (ln *larkNotifier) ComposeColumnSet(builder *lark.CardBuilder, larkColumns []larkColumn) *card.ColumnSetBlock {
	columns := []*card.ColumnBlock{}
	for _, column := range larkColumns {
		columns = append(columns, ln.ComposeColumn(builder, column))
	}

	return builder.ColumnSet(columns...).
		FlexMode("bisect").
		HorizontalSpacing("default")
}

func (ln *larkNotifier) ComposeColumn(builder *lark.CardBuilder, column larkColumn) *card.ColumnBlock {
	content := column.Value
	if column.Name != "" {
		content = fmt.Sprintf("**%s:**\n%s", column.Name, column.Value)
	}
	text := builder.Text(content).LarkMd()

	return builder.Column(
		builder.Div().Text(text)).
		VerticalAlign("top").
		Width("weighted").
		Weight(column.Weight)
}

func (ln *larkNotifier) ComposeAction(builder *lark.CardBuilder, action slack.AttachmentAction) *card.ActionBlock {
	name := action.Text
	if name == "" {
		name = action.Name
	}
	return builder.Action(builder.Button(card.Text(name)).Primary().URL(action.URL))
}

func larkText(msg Message) string {
	text := fmt.Sprintf("[%s] %s", msg.Channel, msg.Text)
	if msg.Username != "" {
		text = fmt.Sprintf("%s: %s", msg.Username, text)
	}
	return text
}
