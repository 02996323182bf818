package generation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchpad-labs/project-starter/internal/logging"
)

func TestHTTPGenerator_Generate(t *testing.T) {
	ResetMetrics()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "rid-42", r.Header.Get("X-Request-Id"))

		var body eventRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, EventTypeChat, body.EventType)
		assert.Equal(t, "build me a site", body.Data.Prompt)
		assert.Equal(t, ResponseTypeText, body.Data.ResponseType)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`"Step 1: ..."`))
	}))
	defer server.Close()

	g := NewHTTPGenerator(HTTPConfig{BaseURL: server.URL + "/"})
	ctx := logging.WithRequestID(context.Background(), "rid-42")

	text, err := g.Generate(ctx, Request{Prompt: "build me a site"})
	require.NoError(t, err)
	assert.Equal(t, "Step 1: ...", text)

	m := GetMetrics()
	assert.EqualValues(t, 1, m.Calls)
	assert.EqualValues(t, 0, m.Errors)
}

func TestHTTPGenerator_ObjectResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"Step 1: install"}`))
	}))
	defer server.Close()

	text, err := NewHTTPGenerator(HTTPConfig{BaseURL: server.URL}).
		Generate(context.Background(), Request{Prompt: "p", ResponseType: ResponseTypeText})
	require.NoError(t, err)
	assert.Equal(t, "Step 1: install", text)
}

func TestHTTPGenerator_PlainTextResponse(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"text/plain", "text/plain; charset=utf-8", "Step 1: ..."},
		{"multi-line text", "text/plain", "Step 1: npm init\nStep 2: npm install\n"},
		{"no content type", "", "Step 1: ..."},
		{"text that looks like a number", "text/plain", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header()["Content-Type"] = []string{tt.contentType}
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			text, err := NewHTTPGenerator(HTTPConfig{BaseURL: server.URL}).
				Generate(context.Background(), Request{Prompt: "p"})
			require.NoError(t, err)
			assert.Equal(t, tt.body, text)
		})
	}
}

func TestHTTPGenerator_UnrecognisedResponse(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"object without result", "application/json", `{"unexpected":1}`},
		{"null result", "application/json", `{"result":null}`},
		{"null body", "application/json", `null`},
		{"null body without content type", "", `null`},
		{"number", "application/json", `42`},
		{"array", "application/json", `["a","b"]`},
		{"empty body", "text/plain", ""},
		{"whitespace body", "text/plain", "  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header()["Content-Type"] = []string{tt.contentType}
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			text, err := NewHTTPGenerator(HTTPConfig{BaseURL: server.URL}).
				Generate(context.Background(), Request{Prompt: "p"})
			assert.Error(t, err)
			assert.Empty(t, text)
		})
	}
}

func TestHTTPGenerator_Errors(t *testing.T) {
	ResetMetrics()

	t.Run("status error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := NewHTTPGenerator(HTTPConfig{BaseURL: server.URL}).Generate(context.Background(), Request{Prompt: "p"})
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
		assert.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("backend error field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":"model overloaded"}`))
		}))
		defer server.Close()

		_, err := NewHTTPGenerator(HTTPConfig{BaseURL: server.URL}).Generate(context.Background(), Request{Prompt: "p"})
		assert.ErrorContains(t, err, "model overloaded")
	})

	t.Run("transport error", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		_, err := NewHTTPGenerator(HTTPConfig{BaseURL: url}).Generate(context.Background(), Request{Prompt: "p"})
		assert.Error(t, err)
	})

	m := GetMetrics()
	assert.EqualValues(t, 3, m.Calls)
	assert.EqualValues(t, 3, m.Errors)
	assert.InDelta(t, 100, m.ErrorRate(), 0.001)
}

func TestHTTPGenerator_ClientCredentials(t *testing.T) {
	var tokenCalls atomic.Int32

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tkn","token_type":"bearer","expires_in":3600}`))
	}))
	defer tokenServer.Close()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`"ok"`))
	}))
	defer backend.Close()

	g := NewHTTPGenerator(HTTPConfig{
		BaseURL:      backend.URL,
		ClientID:     "svc",
		ClientSecret: "secret",
		TokenURL:     tokenServer.URL,
	})

	for i := 0; i < 2; i++ {
		text, err := g.Generate(context.Background(), Request{Prompt: "p"})
		require.NoError(t, err)
		assert.Equal(t, "ok", text)
	}
	assert.EqualValues(t, 1, tokenCalls.Load())
}

func TestMimeFor(t *testing.T) {
	assert.Equal(t, "text/plain", mimeFor(ResponseTypeText))
	assert.Equal(t, "text/plain", mimeFor(""))
	assert.Equal(t, "application/json", mimeFor("json"))
}
