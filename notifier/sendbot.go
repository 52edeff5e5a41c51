package notifier

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

// HTTPClient represents the functionality we need from an *http.Client.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Callback receives the result of a webhook POST exactly as the HTTP client
// returned it. When resp is non-nil the callback must close its body.
type Callback func(resp *http.Response, err error)

type Result struct {
	Response *http.Response
	Err      error
}

type SendBotConfig struct {
	TeamName          string `mapstructure:"teamname" yaml:"teamname"`
	BotName           string `mapstructure:"botname" yaml:"botname"`
	IncomingHookToken string `mapstructure:"incominghooktoken" yaml:"incomingHookToken"`
	Channel           string `mapstructure:"channel" yaml:"channel"`
}

type options struct {
	logger     logrus.FieldLogger
	httpClient HTTPClient
}

type Option func(*options)

// WithLogger sets the logger used for diagnostics. The default discards
// everything.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithHTTPClient(c HTTPClient) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

func newOptions(opts []Option) options {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	o := options{
		logger:     discard,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// SendBot posts messages through a Slack incoming webhook. It holds only
// immutable configuration and is safe for concurrent use.
type SendBot struct {
	teamName          string
	botName           string
	channel           string
	incomingHookToken string

	logger     logrus.FieldLogger
	httpClient HTTPClient
}

func NewSendBot(cfg SendBotConfig, opts ...Option) (*SendBot, error) {
	switch {
	case cfg.TeamName == "":
		return nil, &ConfigError{Field: "teamname", Value: cfg.TeamName}
	case cfg.BotName == "":
		return nil, &ConfigError{Field: "botname", Value: cfg.BotName}
	case cfg.IncomingHookToken == "":
		return nil, &ConfigError{Field: "incomingHookToken", Value: cfg.IncomingHookToken}
	}

	channel := cfg.Channel
	if channel == "" {
		channel = DefaultChannel
	}

	o := newOptions(opts)
	return &SendBot{
		teamName:          cfg.TeamName,
		botName:           cfg.BotName,
		channel:           channel,
		incomingHookToken: cfg.IncomingHookToken,
		logger:            o.logger,
		httpClient:        o.httpClient,
	}, nil
}

// NewSendBotFromOptions builds a SendBot from a loosely typed record such as
// one decoded from YAML or JSON. Keys are matched case-insensitively; the
// token may be given as incomingHookToken or webhookToken.
func NewSendBotFromOptions(opts map[string]any, botOpts ...Option) (*SendBot, error) {
	if opts == nil {
		return nil, &ConfigError{Field: "options", Value: opts}
	}
	lowered := make(map[string]any, len(opts))
	for k, v := range opts {
		lowered[strings.ToLower(k)] = v
	}

	teamName, ok := lowered["teamname"].(string)
	if !ok {
		return nil, &ConfigError{Field: "teamname", Value: lowered["teamname"]}
	}
	botName, ok := lowered["botname"].(string)
	if !ok {
		return nil, &ConfigError{Field: "botname", Value: lowered["botname"]}
	}
	rawToken, found := lowered["incominghooktoken"]
	if !found {
		rawToken = lowered["webhooktoken"]
	}
	token, ok := rawToken.(string)
	if !ok {
		return nil, &ConfigError{Field: "incomingHookToken", Value: rawToken}
	}

	var channel string
	if rawChannel, found := lowered["channel"]; found && rawChannel != nil {
		if channel, ok = rawChannel.(string); !ok {
			return nil, &ConfigError{Field: "channel", Value: rawChannel}
		}
	}

	return NewSendBot(SendBotConfig{
		TeamName:          teamName,
		BotName:           botName,
		IncomingHookToken: token,
		Channel:           channel,
	}, botOpts...)
}

func (sb *SendBot) Name() string {
	return SlackNotifierName
}

func (sb *SendBot) TeamName() string { return sb.teamName }

func (sb *SendBot) BotName() string { return sb.botName }

// Channel returns the configured default channel. Say does not use it.
func (sb *SendBot) Channel() string { return sb.channel }

// WebhookURI returns the incoming webhook URI for the team.
func (sb *SendBot) WebhookURI() string {
	query := url.Values{"token": []string{sb.incomingHookToken}}
	return "https://" + encodeURIComponent(sb.teamName) + ".slack.com/services/hooks/incoming-webhook?" + query.Encode()
}

func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Say posts v through the incoming webhook. v is either the message text or
// a Message. Invalid messages are rejected before any request is made; the
// POST itself runs in its own goroutine and reports to callback.
func (sb *SendBot) Say(v any, callback Callback) error {
	msg, err := NewMessage(v)
	if err != nil {
		return err
	}

	sb.logger.WithFields(logrus.Fields{
		"channel":  msg.Channel,
		"text":     msg.Text,
		"username": msg.Username,
	}).Debug("send a message")

	go func() {
		resp, err := sb.post(msg)
		if callback == nil {
			drainBody(resp)
			return
		}
		callback(resp, err)
	}()
	return nil
}

// Post is Say with a channel receiving the single result.
func (sb *SendBot) Post(v any) (<-chan Result, error) {
	resultCh := make(chan Result, 1)
	err := sb.Say(v, func(resp *http.Response, err error) {
		resultCh <- Result{Response: resp, Err: err}
	})
	if err != nil {
		return nil, err
	}
	return resultCh, nil
}

func (sb *SendBot) Notify(data any) {
	err := sb.Say(data, func(resp *http.Response, err error) {
		if err != nil {
			sb.logger.Errorf("send message to slack is err: %v", err)
			return
		}
		defer drainBody(resp)
		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			sb.logger.Errorf("send message to slack got unexpected status %s", resp.Status)
		}
	})
	if err != nil {
		sb.logger.Errorf("send message to slack is err: %v", err)
	}
}

func (sb *SendBot) Start() {}

func (sb *SendBot) Stop() {}

func (sb *SendBot) post(msg Message) (*http.Response, error) {
	payload, err := msg.Payload()
	if err != nil {
		return nil, err
	}
	form := url.Values{"payload": []string{payload}}
	req, err := http.NewRequest(http.MethodPost, sb.WebhookURI(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return sb.httpClient.Do(req)
}

func drainBody(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
