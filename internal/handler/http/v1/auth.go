package v1

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/fyren/internal/auth"
	"github.com/shenikar/fyren/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	contextUserKey    = "user"
	contextSessionKey = "session"
)

// RevocationChecker сообщает, отозван ли токен при выходе
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthMiddleware - middleware для аутентификации по токену сессии (Authorization: Bearer)
func AuthMiddleware(tokens *auth.TokenManager, revocations RevocationChecker, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || token == "" {
			log.Warn("Session token missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session token required"})
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			log.WithError(err).Warn("Invalid session token provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			return
		}

		session := claims.Session()
		revoked, err := revocations.IsRevoked(c.Request.Context(), session.ID)
		if err != nil {
			log.WithError(err).Error("Failed to check session token revocation")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if revoked {
			log.WithField("user_id", session.UserID).Warn("Revoked session token provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session token revoked"})
			return
		}

		c.Set(contextSessionKey, session)
		c.Set(contextUserKey, &models.User{
			ID:    claims.UserID,
			Name:  claims.Name,
			Email: claims.Email,
			Role:  claims.Role,
		})
		c.Next()
	}
}

// RequireRoles пропускает запрос, только если роль пользователя входит в список
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || !hasRole(user, roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

func currentSession(c *gin.Context) models.SessionToken {
	value, _ := c.Get(contextSessionKey)
	session, _ := value.(models.SessionToken)
	return session
}

func hasRole(user *models.User, roles ...models.Role) bool {
	for _, role := range roles {
		if user.Role == role {
			return true
		}
	}
	return false
}
