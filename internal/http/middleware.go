package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"habit-tracker/internal/domain"
	"habit-tracker/internal/repository"
)

const currentUserKey = "currentUser"

func noCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Writer.Header().Set("Pragma", "no-cache")
		c.Writer.Header().Set("Expires", "0")
		c.Next()
	}
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}
		if user := currentUser(c); user != nil {
			fields["user_id"] = user.ID
		}
		entry := logger.WithFields(fields)

		if len(c.Errors) > 0 {
			for _, e := range c.Errors {
				entry.WithError(e.Err).Error("request failed")
			}
			return
		}
		entry.Info("request")
	}
}

// identify resolves the session cookie into the current user. A missing,
// invalid or stale token leaves the request anonymous.
func (h *Handler) identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := h.sessions.token(c)
		if raw == "" {
			c.Next()
			return
		}

		claims, err := h.sessions.Parse(raw)
		if err != nil {
			h.sessions.Clear(c)
			c.Next()
			return
		}

		user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				h.fail(c, err)
				c.Abort()
				return
			}
			h.sessions.Clear(c)
			c.Next()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*domain.User)
	return user
}
