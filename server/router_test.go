package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/magiconair/properties/assert"

	"github.com/exvulsec/sendbot/model"
	"github.com/exvulsec/sendbot/notifier"
)

type fakeNotifier struct {
	mu   sync.Mutex
	sent []any
}

func (fn *fakeNotifier) Name() string { return "FakeNotifier" }

func (fn *fakeNotifier) Notify(data any) {
	fn.mu.Lock()
	defer fn.mu.Unlock()
	fn.sent = append(fn.sent, data)
}

func serve(r http.Handler, method, target, body string) (*httptest.ResponseRecorder, model.Message) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp model.Message
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestSayRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		target string
		body   string
		code   int
		sent   bool
	}{
		{name: "text_only", target: "/api/v1/say?apikey=k1", body: `{"text":"hello"}`, code: http.StatusOK, sent: true},
		{name: "with_channel", target: "/api/v1/say?apikey=k2", body: `{"text":"hello","channel":"#random"}`, code: http.StatusOK, sent: true},
		{name: "missing_text", target: "/api/v1/say?apikey=k1", body: `{"channel":"#x"}`, code: http.StatusBadRequest},
		{name: "bad_json", target: "/api/v1/say?apikey=k1", body: `{"text":`, code: http.StatusBadRequest},
		{name: "bad_apikey", target: "/api/v1/say?apikey=nope", body: `{"text":"hello"}`, code: http.StatusUnauthorized},
		{name: "no_apikey", target: "/api/v1/say", body: `{"text":"hello"}`, code: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fn := &fakeNotifier{}
			r := NewRouter(fn, []string{"k1", "k2"})

			w, resp := serve(r, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, w.Code, tt.code)
			assert.Equal(t, resp.Code, int64(tt.code))
			assert.Equal(t, len(fn.sent) == 1, tt.sent)
			if tt.sent {
				msg := fn.sent[0].(notifier.Message)
				assert.Equal(t, msg.Text, "hello")
			}
		})
	}
}

func TestSayRouter_DefaultChannel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fn := &fakeNotifier{}
	r := NewRouter(fn, nil)

	w, _ := serve(r, http.MethodPost, "/api/v1/say", `{"text":"hello"}`)
	assert.Equal(t, w.Code, http.StatusOK)
	assert.Equal(t, fn.sent[0].(notifier.Message).Channel, notifier.DefaultChannel)
}

func TestHealthRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(&fakeNotifier{}, []string{"k1"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, w.Code, http.StatusOK)
}
