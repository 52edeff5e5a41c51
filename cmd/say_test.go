package cmd

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/magiconair/properties/assert"
	"github.com/spf13/pflag"

	"github.com/exvulsec/sendbot/notifier"
)

type closeRecorder struct {
	io.Reader
	closed bool
}

func (cr *closeRecorder) Close() error {
	cr.closed = true
	return nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func sayFlags(t *testing.T, values map[string]string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("say", pflag.ContinueOnError)
	addSayFlags(flags)
	for name, value := range values {
		if err := flags.Set(name, value); err != nil {
			t.Fatalf("flags.Set(%q) unexpected error: %s", name, err)
		}
	}
	return flags
}

func Test_sayMessage(t *testing.T) {
	tests := []struct {
		n     string
		flags map[string]string
		args  []string
		want  notifier.Message
		e     bool
	}{
		{n: "default_channel", args: []string{"hello", "world"}, want: notifier.Message{Text: "hello world", Channel: notifier.DefaultChannel}},
		{
			n:     "all_flags",
			flags: map[string]string{"channel": "#ops", "username": "ci", "icon_emoji": ":rocket:", "icon_url": "https://example.com/ci.png"},
			args:  []string{"deployed"},
			want:  notifier.Message{Text: "deployed", Channel: "#ops", Username: "ci", IconEmoji: ":rocket:", IconURL: "https://example.com/ci.png"},
		},
		{n: "empty_text", args: []string{""}, e: true},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.n, func(t *testing.T) {
			msg, err := sayMessage(sayFlags(t, tt.flags), tt.args)
			if tt.e {
				if !errors.Is(err, notifier.ErrInvalidMessage) {
					t.Fatalf("sayMessage() error = %v, want ErrInvalidMessage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("sayMessage() unexpected error: %s", err)
			}
			assert.Equal(t, msg, tt.want)
		})
	}
}

func Test_checkResponse(t *testing.T) {
	tests := []struct {
		n      string
		status int
		body   io.Reader
		e      string
	}{
		{n: "ok", status: http.StatusOK, body: strings.NewReader("ok")},
		{n: "no_content", status: http.StatusNoContent, body: strings.NewReader("")},
		{n: "redirect", status: http.StatusFound, body: strings.NewReader(""), e: "slack responded 302 Found"},
		{n: "server_error", status: http.StatusInternalServerError, body: strings.NewReader("no_service"), e: "no_service"},
		{n: "unreadable_body", status: http.StatusForbidden, body: failingReader{}, e: "connection reset"},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.n, func(t *testing.T) {
			body := &closeRecorder{Reader: tt.body}
			resp := &http.Response{
				StatusCode: tt.status,
				Status:     fmt.Sprintf("%d %s", tt.status, http.StatusText(tt.status)),
				Body:       body,
			}

			err := checkResponse(resp)
			assert.Equal(t, body.closed, true)
			if tt.e == "" {
				if err != nil {
					t.Fatalf("checkResponse() unexpected error: %s", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("checkResponse() for %d should fail", tt.status)
			}
			assert.Matches(t, err.Error(), tt.e)
		})
	}
}
