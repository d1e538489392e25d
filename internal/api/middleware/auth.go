package middleware

import (
	"strings"

	"tubeshare-go/internal/api/response"
	"tubeshare-go/internal/service"
	"tubeshare-go/pkg/authtoken"
	"tubeshare-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const contextKeyIdentity = "currentIdentity"

// Identity is the resolved caller, present in the request context only when
// a valid bearer token was supplied. Handlers that allow anonymous access
// branch on the second return of CurrentIdentity; there is no half-filled
// in-between state.
type Identity struct {
	UserID      int64
	SubjectID   string
	DisplayName string
}

// AuthRequired rejects requests without a valid bearer token. On success
// the local user row is resolved (created on first contact) and the
// identity is attached to the context, so downstream write paths never
// repeat the create-if-absent dance.
func AuthRequired(identitySvc *service.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "missing bearer token")
			c.Abort()
			return
		}

		if !resolveIdentity(c, identitySvc, token) {
			return
		}
		c.Next()
	}
}

// AuthOptional resolves identity when a bearer token is present and passes
// the request through anonymously when it is not. A token that is present
// but invalid is still rejected: a typo'd header should fail loudly, not
// silently degrade to an anonymous view.
func AuthOptional(identitySvc *service.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		if !resolveIdentity(c, identitySvc, token) {
			return
		}
		c.Next()
	}
}

// resolveIdentity parses the token, ensures the local user exists, and
// stores the identity. Aborts the request (and returns false) on failure.
func resolveIdentity(c *gin.Context, identitySvc *service.IdentityService, token string) bool {
	claims, err := authtoken.Parse(token)
	if err != nil {
		response.Unauthorized(c, "invalid or expired bearer token")
		c.Abort()
		return false
	}

	user, err := identitySvc.EnsureUser(claims.Subject, claims.Name)
	if err != nil {
		logger.Error("Identity resolution failed",
			zap.String("subject", claims.Subject), zap.Error(err))
		response.InternalError(c, "failed to resolve user identity")
		c.Abort()
		return false
	}

	c.Set(contextKeyIdentity, Identity{
		UserID:      user.ID,
		SubjectID:   user.SubjectID,
		DisplayName: user.DisplayName,
	})
	return true
}

// CurrentIdentity returns the caller's identity and whether one is present.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	val, exists := c.Get(contextKeyIdentity)
	if !exists {
		return Identity{}, false
	}
	id, ok := val.(Identity)
	return id, ok
}

// extractToken pulls the bearer token out of the Authorization header.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
