package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"

	"wardrobe-storefront/internal/domain"
	sessionrepo "wardrobe-storefront/internal/repository/session"
)

const (
	sessionHeader = "X-Session-ID"
	sessionCtxKey = "session"
)

type sessionLookup interface {
	Lookup(ctx context.Context, id string) (*sessionrepo.Session, error)
}

// sessionMiddleware resolves the X-Session-ID header and stores the session
// id in the gin context for the /me handlers.
func sessionMiddleware(sessions sessionLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(sessionHeader))
		if id == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "invalid request", Details: sessionHeader + " header required"})
			return
		}
		sess, err := sessions.Lookup(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: "session not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}
		c.Set(sessionCtxKey, sess.ID)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionCtxKey)
}

type createSessionRequest struct {
	SystemDark bool `json:"systemDark"`
}

// createSession issues a fresh anonymous session. The body is optional.
func (h *handlers) createSession(c *gin.Context) {
	var req createSessionRequest
	if c.Request.ContentLength > 0 {
		if err := bindJSON(c, &req); err != nil {
			h.writeError(c, err)
			return
		}
	}
	sess, err := h.deps.SessionSvc.Create(c.Request.Context(), req.SystemDark)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Header(sessionHeader, sess.ID)
	c.JSON(http.StatusCreated, sess)
}
