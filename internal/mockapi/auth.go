package mockapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tasktrack/internal/service"
)

const userKey = "user"

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type forgotRequest struct {
	Email string `json:"email" binding:"required"`
}

type resetRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "hash password"})
		return
	}

	email := normalizeEmail(req.Email)
	now := s.opts.Now().UTC()

	s.mu.Lock()
	if _, exists := s.accounts[email]; exists {
		s.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
		return
	}
	acc := &account{
		user: service.User{
			ID:        uuid.NewString(),
			Email:     email,
			Name:      strings.TrimSpace(req.Name),
			CreatedAt: now,
			UpdatedAt: now,
		},
		passwordHash: hash,
	}
	s.accounts[email] = acc
	s.byID[acc.user.ID] = acc
	s.mu.Unlock()

	s.respondWithToken(c, http.StatusCreated, acc.user)
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s.mu.Lock()
	acc, ok := s.accounts[normalizeEmail(req.Email)]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	s.respondWithToken(c, http.StatusOK, acc.user)
}

func (s *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (s *Server) forgotPassword(c *gin.Context) {
	var req forgotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	email := normalizeEmail(req.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[email]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	token := uuid.NewString()
	s.resets[token] = resetToken{userID: acc.user.ID, expires: s.opts.Now().Add(s.opts.ResetTTL)}
	link := s.opts.ResetLinkBase + "?token=" + url.QueryEscape(token)
	s.lastLink[email] = link
	s.opts.Log.WithField("email", email).Infof("reset link: %s", link)

	c.JSON(http.StatusOK, gin.H{"message": "Recovery email sent"})
}

func (s *Server) resetPassword(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "hash password"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rt, ok := s.resets[req.Token]
	// reset tokens are single-use
	delete(s.resets, req.Token)
	if !ok || s.opts.Now().After(rt.expires) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired token"})
		return
	}
	acc, ok := s.byID[rt.userID]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired token"})
		return
	}
	acc.passwordHash = hash
	acc.user.UpdatedAt = s.opts.Now().UTC()

	c.JSON(http.StatusOK, gin.H{"message": "Password reset"})
}

func (s *Server) respondWithToken(c *gin.Context, status int, user service.User) {
	token, err := s.issueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "sign token"})
		return
	}
	c.JSON(status, service.AuthResponse{AccessToken: token, User: user})
}

func (s *Server) issueToken(user service.User) (string, error) {
	now := s.opts.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.TokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.opts.Secret)
}

// requireUser rejects requests without a valid bearer token and stores the
// caller's user in the context.
func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		var claims jwt.RegisteredClaims
		_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
			return s.opts.Secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.opts.Now))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		s.mu.Lock()
		acc, ok := s.byID[claims.Subject]
		var user service.User
		if ok {
			user = acc.user
		}
		s.mu.Unlock()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) service.User {
	return c.MustGet(userKey).(service.User)
}

// badRequest answers 400 with per-field messages when the body failed
// validation.
func badRequest(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[jsonName(fe.Field())] = fieldMessage(fe)
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": fields})
}

func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func fieldMessage(fe validator.FieldError) string {
	name := jsonName(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "email":
		return fmt.Sprintf("%s must be a valid email", name)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", name, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", name)
}
