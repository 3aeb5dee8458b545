package store

import (
	"sync"

	"tasktrack/internal/service"
)

// TaskStore caches the current user's tasks. It is replaced on fetch and
// spliced on mutation; it never reconciles with the backend on its own.
type TaskStore struct {
	mu      sync.RWMutex
	tasks   []service.Task
	loading bool
}

// NewTaskStore returns an empty store.
func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: []service.Task{}}
}

// Tasks returns a copy of the collection.
func (s *TaskStore) Tasks() []service.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Loading reports whether a fetch is in flight.
func (s *TaskStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetTasks replaces the whole collection.
func (s *TaskStore) SetTasks(tasks []service.Task) {
	cp := make([]service.Task, len(tasks))
	copy(cp, tasks)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = cp
}

// AddTask prepends task.
func (s *TaskStore) AddTask(task service.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append([]service.Task{task}, s.tasks...)
}

// UpdateTask replaces the entry whose ID is id. Absent ids are a no-op.
func (s *TaskStore) UpdateTask(id string, task service.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i] = task
		}
	}
}

// RemoveTask drops every entry whose ID is id.
func (s *TaskStore) RemoveTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]service.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
}

// SetLoading toggles the loading flag.
func (s *TaskStore) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// Find returns the task with the given id.
func (s *TaskStore) Find(id string) (service.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// ByStatus returns the tasks with the given status, in store order.
func (s *TaskStore) ByStatus(status service.Status) []service.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []service.Task
	for _, t := range s.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// Stats are the dashboard counters.
type Stats struct {
	Total      int
	Pending    int
	InProgress int
	Completed  int
	Archived   int
}

// Stats counts tasks per status.
func (s *TaskStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		switch t.Status {
		case service.StatusPending:
			st.Pending++
		case service.StatusInProgress:
			st.InProgress++
		case service.StatusCompleted:
			st.Completed++
		case service.StatusArchived:
			st.Archived++
		}
	}
	return st
}
