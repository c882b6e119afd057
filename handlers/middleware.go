package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/courseland/backend/apperr"
	"github.com/courseland/backend/auth"
	"github.com/courseland/backend/policy"
	"github.com/courseland/backend/repos"
)

const identityKey = "identity"

// AuthMiddleware resolves the caller's identity from the Authorization
// header. The referenced user is re-loaded on every request so stale tokens
// for deleted users and role changes both take effect immediately.
type AuthMiddleware struct {
	users  *repos.UserRepo
	tokens *auth.TokenService
}

func NewAuthMiddleware(users *repos.UserRepo, tokens *auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{users: users, tokens: tokens}
}

// RequireAuth rejects the request unless a valid bearer token resolves to an
// existing user.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := m.resolve(c)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuth attaches an identity when a valid token is present and
// silently proceeds without one otherwise.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, err := m.resolve(c); err == nil {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) resolve(c *gin.Context) (policy.Identity, *apperr.Error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return policy.Identity{}, apperr.Unauthorized("No token provided")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return policy.Identity{}, apperr.Unauthorized("Invalid authorization header format")
	}

	userID, err := m.tokens.Verify(parts[1])
	if err != nil {
		return policy.Identity{}, apperr.Unauthorized("Invalid token")
	}

	user, uerr := m.users.GetByID(userID)
	if uerr != nil {
		return policy.Identity{}, apperr.Unauthorized("User not found")
	}

	return policy.Identity{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// currentIdentity returns the identity attached by RequireAuth or
// OptionalAuth.
func currentIdentity(c *gin.Context) (policy.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return policy.Identity{}, false
	}
	identity, ok := v.(policy.Identity)
	return identity, ok
}
