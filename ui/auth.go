package ui

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"auditkit/domain/core"
)

// sessionStore holds the admin bearer tokens in memory. Single password,
// single role; tokens expire after the configured TTL and die with the
// process, which is all a single-operator tool needs.
type sessionStore struct {
	mu       sync.Mutex
	password string
	ttl      time.Duration
	tokens   map[string]time.Time
}

func newSessionStore(password string, ttl time.Duration) *sessionStore {
	return &sessionStore{
		password: password,
		ttl:      ttl,
		tokens:   make(map[string]time.Time),
	}
}

// login checks the password and, on success, issues a fresh token.
func (st *sessionStore) login(password string) (string, bool) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(st.password)) != 1 {
		return "", false
	}
	token := core.NewID().String()
	st.mu.Lock()
	st.tokens[token] = time.Now().Add(st.ttl)
	st.mu.Unlock()
	return token, true
}

// valid reports whether the token is live, pruning it when expired.
func (st *sessionStore) valid(token string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	expiry, ok := st.tokens[token]
	if !ok {
		return false
	}
	if time.Now().After(expiry) {
		delete(st.tokens, token)
		return false
	}
	return true
}

// revoke invalidates the token.
func (st *sessionStore) revoke(token string) {
	st.mu.Lock()
	delete(st.tokens, token)
	st.mu.Unlock()
}

// requireAdmin gates a route group behind a live admin token.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" || !s.sessions.valid(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin login required"})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

type loginRequest struct {
	Password string `json:"password"`
}

// handleLogin exchanges the admin password for a bearer token.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password required"})
		return
	}

	token, ok := s.sessions.login(req.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// handleLogout revokes the presented token.
func (s *Server) handleLogout(c *gin.Context) {
	s.sessions.revoke(bearerToken(c))
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
