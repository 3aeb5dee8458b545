// Package mockapi is an in-memory implementation of the task tracker backend
// for local runs and tests.
package mockapi

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tasktrack/internal/service"
)

const (
	// DefaultTokenTTL is the lifetime of issued access tokens.
	DefaultTokenTTL = 24 * time.Hour

	// DefaultResetTTL is the lifetime of password reset tokens.
	DefaultResetTTL = time.Hour
)

// Options configures a Server. Zero values select defaults.
type Options struct {
	// Secret signs access tokens (HS256).
	Secret []byte
	// TokenTTL bounds access token lifetime.
	TokenTTL time.Duration
	// ResetTTL bounds reset token lifetime.
	ResetTTL time.Duration
	// ResetLinkBase is the page reset links point at; the token is appended
	// as the token query parameter.
	ResetLinkBase string
	Now           func() time.Time
	Log           logrus.FieldLogger
}

type account struct {
	user         service.User
	passwordHash []byte
}

type resetToken struct {
	userID  string
	expires time.Time
}

type failure struct {
	method string
	path   string
	status int
}

// Server holds accounts and tasks in memory.
type Server struct {
	opts   Options
	engine *gin.Engine

	mu       sync.Mutex
	accounts map[string]*account // by email
	byID     map[string]*account
	tasks    map[string][]service.Task // by user id, newest first
	resets   map[string]resetToken
	lastLink map[string]string // email -> last reset link
	failures []failure
}

// New returns a server with routes registered.
func New(opts Options) *Server {
	if len(opts.Secret) == 0 {
		opts.Secret = []byte("tasktrack-dev-secret")
	}
	if opts.TokenTTL == 0 {
		opts.TokenTTL = DefaultTokenTTL
	}
	if opts.ResetTTL == 0 {
		opts.ResetTTL = DefaultResetTTL
	}
	if opts.ResetLinkBase == "" {
		opts.ResetLinkBase = "http://localhost:5173/reset-password"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Log == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		opts.Log = logger
	}

	s := &Server{
		opts:     opts,
		accounts: make(map[string]*account),
		byID:     make(map[string]*account),
		tasks:    make(map[string][]service.Task),
		resets:   make(map[string]resetToken),
		lastLink: make(map[string]string),
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.logRequests(), s.injectFailures())
	s.RegisterRoutes(router)
	s.engine = router
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// RegisterRoutes wires every endpoint onto router.
func (s *Server) RegisterRoutes(router gin.IRouter) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", s.register)
		auth.POST("/login", s.login)
		auth.POST("/forgot-password", s.forgotPassword)
		auth.POST("/reset-password", s.resetPassword)
		auth.GET("/me", s.requireUser(), s.me)
	}

	tasks := router.Group("/tasks", s.requireUser())
	{
		tasks.GET("", s.listTasks)
		tasks.POST("", s.createTask)
		tasks.GET("/:id", s.getTask)
		tasks.PUT("/:id", s.updateTask)
		tasks.DELETE("/:id", s.deleteTask)
	}
}

// FailNext makes the next request matching method and path answer status.
// Injected failures are consumed in the order they were added.
func (s *Server) FailNext(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{method: strings.ToUpper(method), path: path, status: status})
}

// ResetLink returns the last reset link issued for email, standing in for
// the mailbox.
func (s *Server) ResetLink(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	link, ok := s.lastLink[normalizeEmail(email)]
	return link, ok
}

func (s *Server) injectFailures() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		status := 0
		for i, f := range s.failures {
			if f.method == c.Request.Method && f.path == c.Request.URL.Path {
				status = f.status
				s.failures = append(s.failures[:i], s.failures[i+1:]...)
				break
			}
		}
		s.mu.Unlock()

		if status != 0 {
			c.AbortWithStatusJSON(status, gin.H{"message": http.StatusText(status)})
			return
		}
		c.Next()
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.opts.Log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Info("request")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
