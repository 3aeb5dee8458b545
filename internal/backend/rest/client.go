// Package rest implements the service.Service interface over the task tracker's HTTP API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"tasktrack/internal/apperr"
	"tasktrack/internal/config"
	"tasktrack/internal/service"
)

const (
	// APITimeout is the default timeout for API calls.
	APITimeout = config.DefaultAPITimeout

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 4 << 20
)

// Client implements service.Service using the REST API.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     logrus.FieldLogger
}

// New creates a client for cfg.APIURL. Every request carries the bearer
// token currently held by tokens, if any.
func New(cfg *config.Config, tokens oauth2.TokenSource, log logrus.FieldLogger) *Client {
	return NewWithHTTPClient(cfg.APIURL, cfg.APITimeout, &http.Client{
		Transport: &bearerTransport{source: tokens, base: http.DefaultTransport},
	}, log)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, timeout time.Duration, httpClient *http.Client, log logrus.FieldLogger) *Client {
	if timeout <= 0 {
		timeout = APITimeout
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		timeout: timeout,
		log:     log,
	}
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req service.RegisterRequest) (service.AuthResponse, error) {
	var resp service.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp)
	return resp, err
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, req service.LoginRequest) (service.AuthResponse, error) {
	var resp service.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp)
	return resp, err
}

// Me returns the current user.
func (c *Client) Me(ctx context.Context) (service.User, error) {
	var user service.User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user)
	return user, err
}

// ForgotPassword requests a reset link. No response body is required.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword sets a new password.
func (c *Client) ResetPassword(ctx context.Context, req service.ResetPasswordRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/reset-password", req, nil)
}

// ListTasks returns all tasks of the current user.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// GetTask returns one task.
func (c *Client) GetTask(ctx context.Context, id string) (service.Task, error) {
	var task service.Task
	err := c.do(ctx, http.MethodGet, taskPath(id), nil, &task)
	return task, err
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, in service.TaskInput) (service.Task, error) {
	var task service.Task
	err := c.do(ctx, http.MethodPost, "/tasks", in, &task)
	return task, err
}

// UpdateTask updates a task.
func (c *Client) UpdateTask(ctx context.Context, id string, in service.TaskInput) (service.Task, error) {
	var task service.Task
	err := c.do(ctx, http.MethodPut, taskPath(id), in, &task)
	return task, err
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

func taskPath(id string) string {
	return "/tasks/" + url.PathEscape(id)
}

// do performs one JSON request. Non-2xx responses become *apperr.Error via
// apperr.FromStatus; transport failures and timeouts become KindNetwork.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"method":   method,
			"path":     path,
			"duration": time.Since(start),
		}).WithError(err).Warn("api request failed")
		return apperr.Network(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	fields := logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}
	if err != nil {
		c.log.WithFields(fields).WithError(err).Warn("api response read failed")
		return apperr.Network(err)
	}
	c.log.WithFields(fields).Debug("api request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperr.FromStatus(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
