package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconnector/internal/app/di"
	jwtmw "devconnector/internal/platform/jwt"
	"devconnector/internal/platform/metrics"
	"devconnector/internal/testutil"
)

const testSecret = "router-test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	tokens *jwtmw.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := testutil.NewSQLiteDB(t, di.Models()...)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	tokens := jwtmw.NewService(testSecret, time.Hour)
	engine := NewRouter(di.NewContainer(db, tokens), Options{
		AllowedOrigins: []string{"*"},
		DB:             sqlDB,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics:        metrics.New(),
	})
	return &testServer{t: t, engine: engine, tokens: tokens}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(jwtmw.DefaultHeader, token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

// register creates an account and returns its token and id.
func (s *testServer) register(name, email string) (token, id string) {
	s.t.Helper()

	w := s.do(http.MethodPost, "/api/users", "", gin.H{"name": name, "email": email, "password": "secret123"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	token = decode[map[string]string](s.t, w)["token"]

	id, err := s.tokens.Verify(token)
	require.NoError(s.t, err)
	return token, id
}

func TestRouter_PublicEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "API is running", w.Body.String())

	w = s.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "devconnector_http_requests_total")
}

func TestRouter_RegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	token, id := s.register("Alice", "Alice@Example.com")
	assert.Len(t, id, 36)

	w := s.do(http.MethodPost, "/api/users", "", gin.H{"name": "Alice", "email": "alice@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors":[{"msg":"User already exists"}]}`, w.Body.String())

	w = s.do(http.MethodPost, "/api/auth", "", gin.H{"email": "alice@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors":[{"msg":"Invalid Credentials"}]}`, w.Body.String())

	w = s.do(http.MethodPost, "/api/auth", "", gin.H{"email": "alice@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	loginID, err := s.tokens.Verify(decode[map[string]string](t, w)["token"])
	require.NoError(t, err)
	assert.Equal(t, id, loginID)

	w = s.do(http.MethodGet, "/api/auth", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[map[string]any](t, w)
	assert.Equal(t, id, me["_id"])
	assert.Equal(t, "alice@example.com", me["email"])
	assert.Contains(t, me["avatar"], "//www.gravatar.com/avatar/")
	assert.NotContains(t, me, "password")
}

func TestRouter_RegisterRejectsOverlongPassword(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/users", "", gin.H{"name": "Bob", "email": "bob@example.com", "password": strings.Repeat("a", 80)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors":[{"msg":"Password must be at most 72 bytes","param":"password","location":"body"}]}`, w.Body.String())

	w = s.do(http.MethodPost, "/api/auth", "", gin.H{"email": "bob@example.com", "password": strings.Repeat("a", 80)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors":[{"msg":"Invalid Credentials"}]}`, w.Body.String())
}

func TestRouter_GuardReasons(t *testing.T) {
	s := newTestServer(t)
	_, id := s.register("Alice", "alice@example.com")

	expired, err := jwtmw.NewService(testSecret, time.Hour, withPast()).Issue(id)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		reason string
	}{
		{"missing", "", jwtmw.ReasonMissing},
		{"invalid", "not.a.token", jwtmw.ReasonInvalid},
		{"expired", expired, jwtmw.ReasonExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodGet, "/api/posts", tt.token, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tt.reason, decode[jwtmw.RejectResponse](t, w).Reason)
		})
	}
}

// withPast issues tokens from a clock two hours behind.
func withPast() jwtmw.Option {
	return jwtmw.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
}

func TestRouter_PostLifecycle(t *testing.T) {
	s := newTestServer(t)
	alice, aliceID := s.register("Alice", "alice@example.com")
	bob, _ := s.register("Bob", "bob@example.com")

	w := s.do(http.MethodPost, "/api/posts", alice, gin.H{"text": "hello"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	postID := decode[map[string]any](t, w)["_id"].(string)

	w = s.do(http.MethodGet, "/api/posts/"+postID, bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	post := decode[map[string]any](t, w)
	assert.Equal(t, "hello", post["text"])
	assert.Equal(t, "Alice", post["name"])
	assert.Equal(t, aliceID, post["user"])
	assert.Equal(t, []any{}, post["likes"])
	assert.Equal(t, []any{}, post["comments"])

	w = s.do(http.MethodGet, "/api/posts/not-an-id", bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// like twice
	w = s.do(http.MethodPut, "/api/posts/like/"+postID, bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)
	w = s.do(http.MethodPut, "/api/posts/like/"+postID, bob, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"msg":"Post already liked"}`, w.Body.String())

	// unlike never liked
	w = s.do(http.MethodPut, "/api/posts/unlike/"+postID, alice, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"msg":"Post has not yet been liked"}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/posts/"+postID, alice, nil)
	assert.Len(t, decode[map[string]any](t, w)["likes"], 1)

	// comment by alice, delete attempt by bob
	w = s.do(http.MethodPost, "/api/posts/comment/"+postID, alice, gin.H{"text": "thanks"})
	require.Equal(t, http.StatusOK, w.Code)
	comments := decode[[]map[string]any](t, w)
	require.Len(t, comments, 1)
	commentID := comments[0]["_id"].(string)

	w = s.do(http.MethodDelete, "/api/posts/comment/"+postID+"/"+commentID, bob, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = s.do(http.MethodGet, "/api/posts/"+postID, alice, nil)
	assert.Len(t, decode[map[string]any](t, w)["comments"], 1, "comment must remain")

	w = s.do(http.MethodDelete, "/api/posts/comment/"+postID+"/"+commentID, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	// delete
	w = s.do(http.MethodDelete, "/api/posts/"+postID, bob, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = s.do(http.MethodDelete, "/api/posts/"+postID, alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"msg":"Post removed"}`, w.Body.String())
	w = s.do(http.MethodGet, "/api/posts", alice, nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRouter_ProfileLifecycle(t *testing.T) {
	s := newTestServer(t)
	alice, aliceID := s.register("Alice", "alice@example.com")

	w := s.do(http.MethodGet, "/api/profile/me", alice, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"msg":"There is no profile for this user"}`, w.Body.String())

	w = s.do(http.MethodPost, "/api/profile", alice, gin.H{"status": "Developer", "skills": "go, sql"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	profile := decode[map[string]any](t, w)
	assert.Equal(t, []any{"go", "sql"}, profile["skills"])
	assert.Equal(t, "Alice", profile["user"].(map[string]any)["name"])

	w = s.do(http.MethodPut, "/api/profile/experience", alice, gin.H{"title": "Dev", "company": "Acme", "from": "2020-01-01"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = s.do(http.MethodPut, "/api/profile/experience", alice, gin.H{"title": "Lead", "company": "Acme", "from": "2022-01-01"})
	require.Equal(t, http.StatusOK, w.Code)
	exp := decode[map[string]any](t, w)["experience"].([]any)
	require.Len(t, exp, 2)
	assert.Equal(t, "Lead", exp[0].(map[string]any)["title"])
	newest := exp[0].(map[string]any)["_id"].(string)

	w = s.do(http.MethodDelete, "/api/profile/experience/"+newest, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	exp = decode[map[string]any](t, w)["experience"].([]any)
	require.Len(t, exp, 1)
	assert.Equal(t, "Dev", exp[0].(map[string]any)["title"])

	w = s.do(http.MethodDelete, "/api/profile/experience/"+newest, alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/profile/user/"+aliceID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, "/api/profile", "", nil)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = s.do(http.MethodDelete, "/api/profile", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"msg":"User deleted"}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/profile/user/"+aliceID, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"msg":"Profile not found"}`, w.Body.String())
	w = s.do(http.MethodGet, "/api/auth", alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
