package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchpad-labs/project-starter/config"
	"github.com/launchpad-labs/project-starter/internal/auth"
	"github.com/launchpad-labs/project-starter/internal/generation"
	"github.com/launchpad-labs/project-starter/internal/projects"
	"github.com/launchpad-labs/project-starter/internal/session"
	sessionhttp "github.com/launchpad-labs/project-starter/internal/session/http"
)

const cookieName = "ps_sid"

type echoGenerator struct{ prompts []string }

func (g *echoGenerator) Generate(_ context.Context, req generation.Request) (string, error) {
	g.prompts = append(g.prompts, req.Prompt)
	return "1. Run npm init", nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *echoGenerator) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gen := &echoGenerator{}
	forms := projects.NewRegistry(gen)
	manager := session.NewManager(auth.DevProvider{}, session.NewMemoryStore(), session.NewMemoryBroker(), time.Hour,
		session.WithSignOutHook(forms.Drop))

	r := BuildRouter(RouterDeps{
		ServiceName:    "project-starter",
		Version:        "test",
		AllowedOrigins: []string{"http://localhost:8080"},
		Cookie:         sessionhttp.CookieConfig{Name: cookieName, MaxAge: time.Hour},
		DevAuth:        true,
		Sessions:       manager,
		Forms:          forms,
	})
	return r, gen
}

func call(r http.Handler, method, path, body, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: cookie})
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func sessionCookie(rr *httptest.ResponseRecorder) string {
	for _, c := range rr.Result().Cookies() {
		if c.Name == cookieName {
			return c.Value
		}
	}
	return ""
}

func TestBuildRouter_Health(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := call(r, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
	assert.Empty(t, sessionCookie(rr))
}

func TestBuildRouter_ProjectsRequireSession(t *testing.T) {
	r, gen := newTestRouter(t)

	rr := call(r, http.MethodPost, "/api/v1/projects/requests",
		`{"project_name":"Shop","project_type":"website","language":"Python"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, gen.prompts)
}

func TestBuildRouter_SignInSubmitSignOut(t *testing.T) {
	r, gen := newTestRouter(t)

	rr := call(r, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	cookie := sessionCookie(rr)
	require.NotEmpty(t, cookie)

	rr = call(r, http.MethodPost, "/session/login", `{"id_token":"alice"}`, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	var login struct {
		Redirect string `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &login))
	assert.Equal(t, "/home", login.Redirect)
	cookie = sessionCookie(rr)
	require.NotEmpty(t, cookie)

	rr = call(r, http.MethodGet, "/home", "", cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = call(r, http.MethodPost, "/api/v1/projects/requests",
		`{"project_name":"Shop","project_type":"website","language":"JavaScript"}`, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	var submit struct {
		Form struct {
			Loading bool   `json:"loading"`
			Result  string `json:"result"`
		} `json:"form"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &submit))
	assert.False(t, submit.Form.Loading)
	assert.Equal(t, "1. Run npm init", submit.Form.Result)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], `website project named "Shop" using the JavaScript`)

	rr = call(r, http.MethodPost, "/session/logout", "", cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = call(r, http.MethodGet, "/home", "", cookie)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestOpenDBAndRedisDisabled(t *testing.T) {
	pool, err := OpenDB(context.Background(), DBOptions{})
	assert.NoError(t, err)
	assert.Nil(t, pool)

	rdb, err := OpenRedis(context.Background(), config.RedisConfig{})
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}
