package mockapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktrack/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type response struct {
	status int
	body   []byte
}

func (r response) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body, v), "body: %s", r.body)
}

func do(t *testing.T, s *Server, method, path, token string, body any) response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return response{status: rec.Code, body: rec.Body.Bytes()}
}

func register(t *testing.T, s *Server, name, email string) service.AuthResponse {
	t.Helper()
	resp := do(t, s, http.MethodPost, "/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "Secret1!",
	})
	require.Equal(t, http.StatusCreated, resp.status, "body: %s", resp.body)
	var auth service.AuthResponse
	resp.decode(t, &auth)
	return auth
}

func TestRegisterAndLogin(t *testing.T) {
	s := New(Options{})

	auth := register(t, s, "Ana", "Ana@Example.com")
	assert.NotEmpty(t, auth.AccessToken)
	assert.Equal(t, "ana@example.com", auth.User.Email)
	assert.NotEmpty(t, auth.User.ID)

	resp := do(t, s, http.MethodPost, "/auth/login", "", map[string]string{"email": "ana@example.com", "password": "Secret1!"})
	require.Equal(t, http.StatusOK, resp.status)
	var login service.AuthResponse
	resp.decode(t, &login)
	assert.Equal(t, auth.User.ID, login.User.ID)

	resp = do(t, s, http.MethodGet, "/auth/me", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.status)
	var me service.User
	resp.decode(t, &me)
	assert.Equal(t, "Ana", me.Name)
}

func TestRegister_Errors(t *testing.T) {
	s := New(Options{})
	register(t, s, "Ana", "ana@example.com")

	resp := do(t, s, http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Other", "email": "ana@example.com", "password": "Secret1!",
	})
	assert.Equal(t, http.StatusConflict, resp.status)
	assert.JSONEq(t, `{"message":"Email already registered"}`, string(resp.body))

	resp = do(t, s, http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Bia", "email": "not-an-email", "password": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.JSONEq(t, `{"message":"Validation failed","errors":{
		"email":"email must be a valid email",
		"password":"password must be at least 6 characters"}}`, string(resp.body))

	resp = do(t, s, http.MethodPost, "/auth/register", "", "not an object")
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.JSONEq(t, `{"message":"Invalid request body"}`, string(resp.body))
}

func TestLogin_Errors(t *testing.T) {
	s := New(Options{})
	register(t, s, "Ana", "ana@example.com")

	resp := do(t, s, http.MethodPost, "/auth/login", "", map[string]string{"email": "bia@example.com", "password": "Secret1!"})
	assert.Equal(t, http.StatusNotFound, resp.status)

	resp = do(t, s, http.MethodPost, "/auth/login", "", map[string]string{"email": "ana@example.com", "password": "Wrong1!x"})
	assert.Equal(t, http.StatusUnauthorized, resp.status)
	assert.JSONEq(t, `{"message":"Invalid credentials"}`, string(resp.body))
}

func TestRequireUser(t *testing.T) {
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	s := New(Options{Now: func() time.Time { return now }, TokenTTL: time.Hour})
	auth := register(t, s, "Ana", "ana@example.com")

	assert.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/tasks", "", nil).status)
	assert.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/tasks", "garbage", nil).status)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/tasks", auth.AccessToken, nil).status)

	other := New(Options{Secret: []byte("other"), Now: func() time.Time { return now }})
	assert.Equal(t, http.StatusUnauthorized, do(t, other, http.MethodGet, "/auth/me", auth.AccessToken, nil).status)

	now = now.Add(2 * time.Hour)
	assert.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/auth/me", auth.AccessToken, nil).status)
}

func TestTasks_CRUD(t *testing.T) {
	s := New(Options{})
	tok := register(t, s, "Ana", "ana@example.com").AccessToken

	resp := do(t, s, http.MethodGet, "/tasks", tok, nil)
	assert.JSONEq(t, `[]`, string(resp.body))

	resp = do(t, s, http.MethodPost, "/tasks", tok, map[string]string{"title": " Buy milk "})
	require.Equal(t, http.StatusCreated, resp.status)
	var first service.Task
	resp.decode(t, &first)
	assert.Equal(t, "Buy milk", first.Title)
	assert.Equal(t, service.StatusPending, first.Status)
	assert.Equal(t, service.PriorityMedium, first.Priority)

	resp = do(t, s, http.MethodPost, "/tasks", tok, map[string]string{"title": "File taxes", "priority": "HIGH"})
	require.Equal(t, http.StatusCreated, resp.status)
	var second service.Task
	resp.decode(t, &second)
	assert.Equal(t, service.PriorityHigh, second.Priority)

	var list []service.Task
	do(t, s, http.MethodGet, "/tasks", tok, nil).decode(t, &list)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")

	resp = do(t, s, http.MethodPut, "/tasks/"+first.ID, tok, map[string]string{"status": "COMPLETED"})
	require.Equal(t, http.StatusOK, resp.status)
	var updated service.Task
	resp.decode(t, &updated)
	assert.Equal(t, service.StatusCompleted, updated.Status)
	assert.Equal(t, "Buy milk", updated.Title)

	var got service.Task
	do(t, s, http.MethodGet, "/tasks/"+first.ID, tok, nil).decode(t, &got)
	assert.Equal(t, service.StatusCompleted, got.Status)

	assert.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/tasks/"+first.ID, tok, nil).status)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, "/tasks/"+first.ID, tok, nil).status)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/tasks/"+first.ID, tok, nil).status)
}

func TestTasks_Validation(t *testing.T) {
	s := New(Options{})
	tok := register(t, s, "Ana", "ana@example.com").AccessToken

	resp := do(t, s, http.MethodPost, "/tasks", tok, map[string]string{"title": "  "})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.JSONEq(t, `{"message":"Validation failed","errors":{"title":"title is required"}}`, string(resp.body))

	resp = do(t, s, http.MethodPost, "/tasks", tok, map[string]string{"title": "x", "status": "DONE"})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.JSONEq(t, `{"message":"Validation failed","errors":{
		"status":"status must be one of PENDING IN_PROGRESS COMPLETED ARCHIVED"}}`, string(resp.body))

	var task service.Task
	do(t, s, http.MethodPost, "/tasks", tok, map[string]string{"title": "x"}).decode(t, &task)
	resp = do(t, s, http.MethodPut, "/tasks/"+task.ID, tok, map[string]string{"title": ""})
	assert.Equal(t, http.StatusBadRequest, resp.status)
}

func TestTasks_IsolatedPerUser(t *testing.T) {
	s := New(Options{})
	ana := register(t, s, "Ana", "ana@example.com").AccessToken
	bia := register(t, s, "Bia", "bia@example.com").AccessToken

	var task service.Task
	do(t, s, http.MethodPost, "/tasks", ana, map[string]string{"title": "Secret plan"}).decode(t, &task)

	var list []service.Task
	do(t, s, http.MethodGet, "/tasks", bia, nil).decode(t, &list)
	assert.Empty(t, list)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/tasks/"+task.ID, bia, nil).status)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, "/tasks/"+task.ID, bia, nil).status)
}

func TestPasswordReset(t *testing.T) {
	s := New(Options{ResetLinkBase: "http://app.test/reset"})
	register(t, s, "Ana", "ana@example.com")

	resp := do(t, s, http.MethodPost, "/auth/forgot-password", "", map[string]string{"email": "bia@example.com"})
	assert.Equal(t, http.StatusNotFound, resp.status)

	resp = do(t, s, http.MethodPost, "/auth/forgot-password", "", map[string]string{"email": "ana@example.com"})
	require.Equal(t, http.StatusOK, resp.status)
	link, ok := s.ResetLink("ANA@example.com")
	require.True(t, ok)
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "app.test", u.Host)
	token := u.Query().Get("token")
	require.NotEmpty(t, token)

	reset := map[string]string{"token": token, "password": "Newpass1!"}
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/auth/reset-password", "", reset).status)
	resp = do(t, s, http.MethodPost, "/auth/reset-password", "", reset)
	assert.Equal(t, http.StatusBadRequest, resp.status, "single use")
	assert.JSONEq(t, `{"message":"Invalid or expired token"}`, string(resp.body))

	login := func(password string) int {
		return do(t, s, http.MethodPost, "/auth/login", "", map[string]string{"email": "ana@example.com", "password": password}).status
	}
	assert.Equal(t, http.StatusUnauthorized, login("Secret1!"))
	assert.Equal(t, http.StatusOK, login("Newpass1!"))
}

func TestPasswordReset_Expired(t *testing.T) {
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	s := New(Options{Now: func() time.Time { return now }})
	register(t, s, "Ana", "ana@example.com")
	do(t, s, http.MethodPost, "/auth/forgot-password", "", map[string]string{"email": "ana@example.com"})
	link, _ := s.ResetLink("ana@example.com")
	u, err := url.Parse(link)
	require.NoError(t, err)

	now = now.Add(DefaultResetTTL + time.Minute)
	resp := do(t, s, http.MethodPost, "/auth/reset-password", "", map[string]string{
		"token": u.Query().Get("token"), "password": "Newpass1!",
	})

	assert.Equal(t, http.StatusBadRequest, resp.status)
}

func TestFailNext(t *testing.T) {
	s := New(Options{})
	tok := register(t, s, "Ana", "ana@example.com").AccessToken
	s.FailNext("get", "/tasks", http.StatusServiceUnavailable)

	resp := do(t, s, http.MethodGet, "/tasks", tok, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.status)
	assert.JSONEq(t, `{"message":"Service Unavailable"}`, string(resp.body))

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/tasks", tok, nil).status)
}
