package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rehmanpranto/TutorTrack/internal/models"
	appErrors "github.com/rehmanpranto/TutorTrack/pkg/errors"
	"github.com/rehmanpranto/TutorTrack/pkg/response"
)

// ContextUserKey is the gin context key storing session claims.
const ContextUserKey = "currentUser"

type sessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*models.SessionClaims, error)
}

// Session gates data endpoints behind a valid session token. Requests
// without one are rejected before any further work.
func Session(auth sessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := auth.ValidateSession(c.Request.Context(), parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}
