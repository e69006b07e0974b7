package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// authGate is the shared-password session gate. Tokens live in memory only,
// so every process restart invalidates all of them - acceptable for a demo
// panel with a handful of users.
type authGate struct {
	password string

	mu     sync.RWMutex
	tokens map[string]struct{}
}

func newAuthGate(password string) *authGate {
	return &authGate{
		password: password,
		tokens:   make(map[string]struct{}),
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

func (g *authGate) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(g.password)) != 1 {
		log.Warn().Str("client_ip", c.ClientIP()).Msg("login with wrong password")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong password"})
		return
	}

	token := uuid.NewString()
	g.mu.Lock()
	g.tokens[token] = struct{}{}
	g.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// require is the /api middleware checking "Authorization: Bearer <token>".
func (g *authGate) require(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	g.mu.RLock()
	_, ok := g.tokens[token]
	g.mu.RUnlock()

	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}
	c.Next()
}
