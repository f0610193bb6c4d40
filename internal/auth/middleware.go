package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/growthhub-io/growthhub/backend/internal/models"
	"github.com/growthhub-io/growthhub/backend/pkg/utils"
	"github.com/sirupsen/logrus"
)

const contextUserKey = "auth_user"

// Middleware resolves bearer tokens to stored users before any handler
// logic runs.
type Middleware struct {
	users  models.UserRepository
	logger *logrus.Logger
}

func NewMiddleware(users models.UserRepository, logger *logrus.Logger) *Middleware {
	return &Middleware{
		users:  users,
		logger: logger,
	}
}

// RequireUser validates the Authorization header and loads the matching
// user into the request context.
func (m *Middleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			utils.ErrorResponse(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			c.Abort()
			return
		}

		token := strings.TrimSpace(header[len("bearer "):])
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			c.Abort()
			return
		}

		user, err := m.users.GetByToken(token)
		if err != nil {
			m.logger.WithField("ip_address", c.ClientIP()).Warn("Rejected invalid API token")
			utils.ErrorResponse(c, http.StatusUnauthorized, "unauthorized", "invalid token")
			c.Abort()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// RequireAdmin gates a route on the caller's stored role. Runs after
// RequireUser.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != models.RoleAdmin {
			utils.ErrorResponse(c, http.StatusForbidden, "forbidden", "admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user from the request context, or
// nil when auth did not run.
func CurrentUser(c *gin.Context) *models.User {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}
