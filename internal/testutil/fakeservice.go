// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"tasktrack/internal/apperr"
	"tasktrack/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// Task ids are t1, t2, ... in creation order; the access token is "t1" for
// the first successful login or registration, "t2" for the next, and so on.
type FakeService struct {
	mu     sync.Mutex
	user   service.User
	tasks  []service.Task
	nextID int
	nextTk int
	calls  map[string]int
	// passwords sent by Register, Login and ResetPassword, in call order.
	passwords []string

	// Error injection for testing, keyed by method name ("Login", "ListTasks", ...).
	Errs map[string]error

	// Now stamps created and updated tasks.
	Now func() time.Time
}

// NewFakeService creates a FakeService whose Login and Me return user.
func NewFakeService(user service.User) *FakeService {
	return &FakeService{
		user:  user,
		calls: make(map[string]int),
		Errs:  make(map[string]error),
		Now:   func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
}

// Fail makes every later call of method return an HTTP-style error for status.
func (f *FakeService) Fail(method string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errs[method] = apperr.FromStatus(status, []byte(body))
}

// AddTask seeds a task with the next id.
func (f *FakeService) AddTask(title string, status service.Status, priority service.Priority) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.newTask(title, status, priority)
	f.tasks = append(f.tasks, t)
	return t
}

// Calls returns how many times method was invoked.
func (f *FakeService) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// TotalCalls returns the number of backend calls of any kind.
func (f *FakeService) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// Passwords returns the passwords the auth calls received.
func (f *FakeService) Passwords() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.passwords...)
}

func (f *FakeService) sawPassword(password string) {
	f.mu.Lock()
	f.passwords = append(f.passwords, password)
	f.mu.Unlock()
}

func (f *FakeService) enter(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
	return f.Errs[method]
}

func (f *FakeService) newTask(title string, status service.Status, priority service.Priority) service.Task {
	f.nextID++
	now := f.Now()
	return service.Task{
		ID:        "t" + strconv.Itoa(f.nextID),
		Title:     title,
		Status:    status,
		Priority:  priority,
		UserID:    f.user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (f *FakeService) issue() service.AuthResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextTk++
	return service.AuthResponse{AccessToken: "t" + strconv.Itoa(f.nextTk), User: f.user}
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, req service.RegisterRequest) (service.AuthResponse, error) {
	f.sawPassword(req.Password)
	if err := f.enter("Register"); err != nil {
		return service.AuthResponse{}, err
	}
	f.mu.Lock()
	f.user.Name = req.Name
	f.user.Email = req.Email
	f.mu.Unlock()
	return f.issue(), nil
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, req service.LoginRequest) (service.AuthResponse, error) {
	f.sawPassword(req.Password)
	if err := f.enter("Login"); err != nil {
		return service.AuthResponse{}, err
	}
	return f.issue(), nil
}

// Me implements service.Service.
func (f *FakeService) Me(ctx context.Context) (service.User, error) {
	if err := f.enter("Me"); err != nil {
		return service.User{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user, nil
}

// ForgotPassword implements service.Service.
func (f *FakeService) ForgotPassword(ctx context.Context, email string) error {
	return f.enter("ForgotPassword")
}

// ResetPassword implements service.Service.
func (f *FakeService) ResetPassword(ctx context.Context, req service.ResetPasswordRequest) error {
	f.sawPassword(req.Password)
	return f.enter("ResetPassword")
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	if err := f.enter("ListTasks"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]service.Task{}, f.tasks...), nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id string) (service.Task, error) {
	if err := f.enter("GetTask"); err != nil {
		return service.Task{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Task{}, notFound(id)
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, in service.TaskInput) (service.Task, error) {
	if err := f.enter("CreateTask"); err != nil {
		return service.Task{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.newTask(deref(in.Title), deref(in.Status), deref(in.Priority))
	t.Description = deref(in.Description)
	t.DueDate = in.DueDate
	f.tasks = append([]service.Task{t}, f.tasks...)
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, in service.TaskInput) (service.Task, error) {
	if err := f.enter("UpdateTask"); err != nil {
		return service.Task{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		t := &f.tasks[i]
		if t.ID != id {
			continue
		}
		if in.Title != nil {
			t.Title = *in.Title
		}
		if in.Description != nil {
			t.Description = *in.Description
		}
		if in.Status != nil {
			t.Status = *in.Status
		}
		if in.Priority != nil {
			t.Priority = *in.Priority
		}
		if in.DueDate != nil {
			t.DueDate = in.DueDate
		}
		t.UpdatedAt = f.Now()
		return *t, nil
	}
	return service.Task{}, notFound(id)
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	if err := f.enter("DeleteTask"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return notFound(id)
}

func notFound(id string) error {
	return apperr.FromStatus(404, []byte(fmt.Sprintf(`{"message":"task %s not found"}`, id)))
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
