package mockapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tasktrack/internal/service"
)

type taskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED ARCHIVED"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate     *time.Time `json:"dueDate"`
}

func (s *Server) listTasks(c *gin.Context) {
	user := currentUser(c)

	s.mu.Lock()
	tasks := append([]service.Task{}, s.tasks[user.ID]...)
	s.mu.Unlock()

	c.JSON(http.StatusOK, tasks)
}

func (s *Server) getTask(c *gin.Context) {
	user := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(user.ID, c.Param("id"))
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, s.tasks[user.ID][i])
}

func (s *Server) createTask(c *gin.Context) {
	user := currentUser(c)

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Validation failed",
			"errors":  gin.H{"title": "title is required"},
		})
		return
	}

	now := s.opts.Now().UTC()
	task := service.Task{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(*req.Title),
		Status:    service.StatusPending,
		Priority:  service.PriorityMedium,
		UserID:    user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.apply(&task)

	s.mu.Lock()
	s.tasks[user.ID] = append([]service.Task{task}, s.tasks[user.ID]...)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, task)
}

func (s *Server) updateTask(c *gin.Context) {
	user := currentUser(c)

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Validation failed",
			"errors":  gin.H{"title": "title cannot be empty"},
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(user.ID, c.Param("id"))
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		return
	}
	task := &s.tasks[user.ID][i]
	req.apply(task)
	task.UpdatedAt = s.opts.Now().UTC()

	c.JSON(http.StatusOK, *task)
}

func (s *Server) deleteTask(c *gin.Context) {
	user := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(user.ID, c.Param("id"))
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		return
	}
	tasks := s.tasks[user.ID]
	s.tasks[user.ID] = append(tasks[:i:i], tasks[i+1:]...)

	c.Status(http.StatusNoContent)
}

// indexOf finds a task of userID; tasks of other users are invisible.
// Callers hold s.mu.
func (s *Server) indexOf(userID, id string) int {
	for i, t := range s.tasks[userID] {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (r taskRequest) apply(t *service.Task) {
	if r.Title != nil {
		t.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		t.Description = *r.Description
	}
	if r.Status != nil {
		t.Status = service.Status(*r.Status)
	}
	if r.Priority != nil {
		t.Priority = service.Priority(*r.Priority)
	}
	if r.DueDate != nil {
		t.DueDate = r.DueDate
	}
}
