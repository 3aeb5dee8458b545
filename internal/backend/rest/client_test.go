package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktrack/internal/apperr"
	"tasktrack/internal/config"
	"tasktrack/internal/service"
	"tasktrack/internal/storage"
)

type recorded struct {
	method string
	path   string
	auth   string
	body   string
}

type recorder struct {
	mu   sync.Mutex
	reqs []recorded
}

func (r *recorder) add(req recorded) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, req)
}

func (r *recorder) all() []recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recorded(nil), r.reqs...)
}

// newTestClient serves handler and returns a client whose token source reads
// from a fresh file store.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, storage.Store, *recorder) {
	t.Helper()
	reqs := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		reqs.add(recorded{r.Method, r.URL.Path, r.Header.Get("Authorization"), string(data)})
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	st := storage.NewFileStore(filepath.Join(t.TempDir(), "token.json"))
	cfg := config.New(t.TempDir())
	cfg.APIURL = srv.URL
	return New(cfg, StoreTokenSource{Store: st}, nil), st, reqs
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestClient_LoginSendsNoBearer(t *testing.T) {
	c, _, reqs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "jwt",
			"user":         map[string]string{"id": "u1", "email": "ana@example.com", "name": "Ana"},
		})
	})

	resp, err := c.Login(context.Background(), service.LoginRequest{Email: "ana@example.com", Password: "Secret1!"})

	require.NoError(t, err)
	assert.Equal(t, "jwt", resp.AccessToken)
	assert.Equal(t, "Ana", resp.User.Name)
	got := reqs.all()
	require.Len(t, got, 1)
	req := got[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/auth/login", req.path)
	assert.Empty(t, req.auth)
	assert.JSONEq(t, `{"email":"ana@example.com","password":"Secret1!"}`, req.body)
}

func TestClient_AttachesPersistedToken(t *testing.T) {
	c, st, reqs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"id": "u1"})
	})
	require.NoError(t, st.Set(storage.TokenKey, "abc"))

	_, err := c.Me(context.Background())
	require.NoError(t, err)

	require.NoError(t, st.Delete(storage.TokenKey))
	_, err = c.Me(context.Background())
	require.NoError(t, err)

	got := reqs.all()
	require.Len(t, got, 2)
	assert.Equal(t, "Bearer abc", got[0].auth)
	assert.Empty(t, got[1].auth, "logout is picked up by the next request")
}

func TestClient_ListTasksEmptyBody(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	})

	tasks, err := c.ListTasks(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestClient_TaskRequests(t *testing.T) {
	c, _, reqs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case http.MethodPost:
			writeJSON(w, http.StatusCreated, map[string]string{"id": "t1", "title": "Buy milk", "status": "PENDING", "priority": "MEDIUM"})
		default:
			writeJSON(w, http.StatusOK, map[string]string{"id": "t1", "title": "Buy milk", "status": "COMPLETED", "priority": "MEDIUM"})
		}
	})
	ctx := context.Background()
	title := "Buy milk"
	done := service.StatusCompleted

	created, err := c.CreateTask(ctx, service.TaskInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "t1", created.ID)

	updated, err := c.UpdateTask(ctx, "t1", service.TaskInput{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, service.StatusCompleted, updated.Status)

	_, err = c.GetTask(ctx, "a/b")
	require.NoError(t, err)

	require.NoError(t, c.DeleteTask(ctx, "t1"))

	got := reqs.all()
	require.Len(t, got, 4)
	assert.JSONEq(t, `{"title":"Buy milk"}`, got[0].body)
	assert.Equal(t, "/tasks/t1", got[1].path)
	assert.JSONEq(t, `{"status":"COMPLETED"}`, got[1].body)
	assert.Equal(t, http.MethodPut, got[1].method)
	assert.Equal(t, "/tasks/a/b", got[2].path)
	assert.Equal(t, http.MethodDelete, got[3].method)
}

func TestClient_ErrorStatus(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]any{"message": "Email already registered"})
	})

	_, err := c.Register(context.Background(), service.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "Secret1!"})

	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))
	assert.Equal(t, "Email already registered", apperr.MessageOf(err))
}

func TestClient_ForgotPasswordIgnoresBody(t *testing.T) {
	c, _, reqs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "sent"})
	})

	require.NoError(t, c.ForgotPassword(context.Background(), "ana@example.com"))
	assert.JSONEq(t, `{"email":"ana@example.com"}`, reqs.all()[0].body)
}

func TestClient_NetworkError(t *testing.T) {
	c := NewWithHTTPClient("http://127.0.0.1:1", time.Second, http.DefaultClient, nil)

	_, err := c.ListTasks(context.Background())

	assert.Equal(t, apperr.KindNetwork, apperr.KindOf(err))
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)
	c := NewWithHTTPClient(srv.URL, 50*time.Millisecond, srv.Client(), nil)

	_, err := c.Me(context.Background())

	assert.Equal(t, apperr.KindNetwork, apperr.KindOf(err))
}

func TestStoreTokenSource(t *testing.T) {
	st := storage.NewFileStore(filepath.Join(t.TempDir(), "token.json"))
	src := StoreTokenSource{Store: st}

	_, err := src.Token()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, st.Set(storage.TokenKey, "abc"))
	tok, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.Type())
}
