package workflow

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"tasktrack/internal/apperr"
	"tasktrack/internal/i18n"
	"tasktrack/internal/service"
	"tasktrack/internal/store"
	"tasktrack/internal/validate"
)

// Tasks orchestrates fetching and mutating tasks and keeps the task store in
// step with the backend's answers. Failures are reported through the
// Notifier and returned.
//
// The authenticated check here is a client convenience; the backend still
// authorizes every request.
type Tasks struct {
	svc     service.Service
	session *store.SessionStore
	tasks   *store.TaskStore
	notify  Notifier
	confirm Confirmer
	tr      *i18n.Translator

	states tracker
}

// NewTasks builds the task workflow.
func NewTasks(d Deps) *Tasks {
	d = d.withDefaults()
	return &Tasks{
		svc:     d.Service,
		session: d.Session,
		tasks:   d.Tasks,
		notify:  d.Notifier,
		confirm: d.Confirmer,
		tr:      d.Translator,
	}
}

// State returns the progress of op.
func (t *Tasks) State(op Op) State {
	return t.states.get(op)
}

// GetTasks fetches all tasks. When the session is not authenticated it
// returns an empty slice without calling the backend.
func (t *Tasks) GetTasks(ctx context.Context) ([]service.Task, error) {
	if !t.session.Authenticated() {
		return []service.Task{}, nil
	}
	tasks, err := t.svc.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("get tasks: %w", err)
	}
	return tasks, nil
}

// Load refreshes the task store. The loading flag is set for the duration
// of the fetch and always cleared.
func (t *Tasks) Load(ctx context.Context) error {
	t.tasks.SetLoading(true)
	defer t.tasks.SetLoading(false)

	t.states.set(OpLoadTasks, StateInFlight)
	tasks, err := t.GetTasks(ctx)
	if err != nil {
		return t.fail(OpLoadTasks, err)
	}
	t.tasks.SetTasks(tasks)
	t.states.set(OpLoadTasks, StateSucceeded)
	return nil
}

// GetTask fetches a single task.
func (t *Tasks) GetTask(ctx context.Context, id string) (service.Task, error) {
	if !t.session.Authenticated() {
		return service.Task{}, apperr.ErrUnauthenticated
	}
	task, err := t.svc.GetTask(ctx, id)
	if err != nil {
		return service.Task{}, fmt.Errorf("get task %s: %w", id, err)
	}
	return task, nil
}

// CreateTask creates a task and prepends the backend's copy to the store.
// Status defaults to PENDING and priority to MEDIUM.
func (t *Tasks) CreateTask(ctx context.Context, in service.TaskInput) (service.Task, error) {
	if !t.session.Authenticated() {
		return service.Task{}, t.fail(OpCreateTask, apperr.ErrUnauthenticated)
	}

	title := ""
	if in.Title != nil {
		title = strings.TrimSpace(*in.Title)
	}
	if title == "" {
		return service.Task{}, t.invalid(OpCreateTask, "title", i18n.TaskTitleRequired)
	}
	in.Title = &title
	if in.Status == nil {
		s := service.StatusPending
		in.Status = &s
	}
	if in.Priority == nil {
		p := service.PriorityMedium
		in.Priority = &p
	}
	if err := checkEnums(in); err != nil {
		return service.Task{}, t.fail(OpCreateTask, err)
	}

	t.states.set(OpCreateTask, StateInFlight)
	created, err := t.svc.CreateTask(ctx, in)
	if err != nil {
		return service.Task{}, t.fail(OpCreateTask, err)
	}
	t.tasks.AddTask(created)
	t.states.set(OpCreateTask, StateSucceeded)
	t.notify.Success(t.tr.T(i18n.TaskCreated))
	return created, nil
}

// UpdateTask sends a partial update and replaces the store entry with the
// backend's representation, not the local draft.
func (t *Tasks) UpdateTask(ctx context.Context, id string, in service.TaskInput) (service.Task, error) {
	if !t.session.Authenticated() {
		return service.Task{}, t.fail(OpUpdateTask, apperr.ErrUnauthenticated)
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return service.Task{}, t.invalid(OpUpdateTask, "title", i18n.TaskTitleEmpty)
		}
		in.Title = &title
	}
	if err := checkEnums(in); err != nil {
		return service.Task{}, t.fail(OpUpdateTask, err)
	}

	t.states.set(OpUpdateTask, StateInFlight)
	updated, err := t.svc.UpdateTask(ctx, id, in)
	if err != nil {
		return service.Task{}, t.fail(OpUpdateTask, err)
	}
	t.tasks.UpdateTask(id, updated)
	t.states.set(OpUpdateTask, StateSucceeded)
	t.notify.Success(t.tr.T(i18n.TaskUpdated))
	return updated, nil
}

// DeleteTask asks for confirmation, deletes the task and removes it from the
// store. It reports false without calling the backend when the user declines.
func (t *Tasks) DeleteTask(ctx context.Context, id string) (bool, error) {
	if !t.session.Authenticated() {
		return false, t.fail(OpDeleteTask, apperr.ErrUnauthenticated)
	}

	ok, err := t.confirm.Confirm(ctx, t.tr.T(i18n.TaskDeleteConfirm))
	if err != nil {
		return false, fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		return false, nil
	}

	t.states.set(OpDeleteTask, StateInFlight)
	if err := t.svc.DeleteTask(ctx, id); err != nil {
		return false, t.fail(OpDeleteTask, err)
	}
	t.tasks.RemoveTask(id)
	t.states.set(OpDeleteTask, StateSucceeded)
	t.notify.Success(t.tr.T(i18n.TaskDeleted))
	return true, nil
}

func (t *Tasks) fail(op Op, err error) error {
	t.states.set(op, StateFailed)
	if apperr.KindOf(err) == apperr.KindValidation {
		for _, msg := range apperr.FieldsOf(err) {
			t.notify.Error(msg)
		}
	} else {
		t.notify.Error(describe(t.tr, op, err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (t *Tasks) invalid(op Op, field, key string) error {
	return t.fail(op, apperr.Validation(validate.FieldErrors{field: t.tr.T(key)}))
}

// checkEnums rejects status and priority values the backend would not accept.
func checkEnums(in service.TaskInput) error {
	if in.Status != nil && !slices.Contains(service.Statuses, *in.Status) {
		return apperr.Validation(validate.FieldErrors{"status": fmt.Sprintf("invalid status: %s", *in.Status)})
	}
	if in.Priority != nil && !slices.Contains(service.Priorities, *in.Priority) {
		return apperr.Validation(validate.FieldErrors{"priority": fmt.Sprintf("invalid priority: %s", *in.Priority)})
	}
	return nil
}
