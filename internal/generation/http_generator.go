package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/launchpad-labs/project-starter/internal/logging"
)

// HTTPConfig configures HTTPGenerator. A zero Timeout means no timeout.
type HTTPConfig struct {
	BaseURL      string
	Timeout      time.Duration
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string
}

// HTTPGenerator posts prompts to the backend's event endpoint.
type HTTPGenerator struct {
	baseURL string
	http    *http.Client
}

type eventRequest struct {
	EventType string  `json:"event_type"`
	Data      Request `json:"data"`
}

type eventResponse struct {
	Result *string `json:"result"`
	Error  string  `json:"error,omitempty"`
}

// NewHTTPGenerator builds the client. When ClientID is set, requests carry an
// OAuth2 client-credentials bearer token fetched from TokenURL.
func NewHTTPGenerator(cfg HTTPConfig) *HTTPGenerator {
	client := &http.Client{Timeout: cfg.Timeout}

	if cfg.ClientID != "" {
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       cfg.Scopes,
		}
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: 10 * time.Second})
		client = cc.Client(ctx)
		client.Timeout = cfg.Timeout
	}

	return &HTTPGenerator{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    client,
	}
}

func (g *HTTPGenerator) Generate(ctx context.Context, req Request) (string, error) {
	logger := logging.NewLogger(ctx)
	start := time.Now()

	text, err := g.do(ctx, req)
	recordCall(time.Since(start), err)
	if err != nil {
		logger.LogError("generate", err)
		return "", err
	}
	logger.LogInfof("generate", "received %d bytes in %s", len(text), time.Since(start))
	return text, nil
}

func (g *HTTPGenerator) do(ctx context.Context, req Request) (string, error) {
	if req.ResponseType == "" {
		req.ResponseType = ResponseTypeText
	}

	body, err := json.Marshal(eventRequest{EventType: EventTypeChat, Data: req})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/events", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if rid := logging.RequestID(ctx); rid != "" {
		httpReq.Header.Set("X-Request-Id", rid)
	}

	resp, err := g.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	return decodeText(resp.Header.Get("Content-Type"), raw)
}

var errEmptyResponse = errors.New("generation backend returned an empty body")

// decodeText turns a 2xx body into the generated text. JSON replies may be a
// bare string or {"result": "..."}; anything else that is not JSON is the
// text itself, returned unchanged.
func decodeText(contentType string, raw []byte) (string, error) {
	body := bytes.TrimSpace(raw)
	if len(body) == 0 {
		return "", errEmptyResponse
	}
	if !json.Valid(body) || (!isJSON(contentType) && body[0] != '"' && body[0] != '{' && !bytes.Equal(body, []byte("null"))) {
		return string(raw), nil
	}

	switch body[0] {
	case '"':
		var s string
		if err := json.Unmarshal(body, &s); err != nil {
			return "", fmt.Errorf("decode response: %w", err)
		}
		return s, nil
	case '{':
		var out eventResponse
		if err := json.Unmarshal(body, &out); err != nil {
			return "", fmt.Errorf("decode response: %w", err)
		}
		if out.Error != "" {
			return "", errors.New("backend error: " + out.Error)
		}
		if out.Result == nil {
			return "", fmt.Errorf("unrecognised response: %s", truncate(body, 200))
		}
		return *out.Result, nil
	default:
		return "", fmt.Errorf("unrecognised response: %s", truncate(body, 200))
	}
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// StatusError is returned when the backend answers with a 4xx or 5xx.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("generation backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("generation backend returned status %d: %s", e.StatusCode, e.Body)
}
