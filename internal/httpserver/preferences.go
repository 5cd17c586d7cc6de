package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) listNotifications(c *gin.Context) {
	state, err := h.deps.SessionSvc.Notifications(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *handlers) markNotificationRead(c *gin.Context) {
	state, err := h.deps.SessionSvc.MarkRead(c.Request.Context(), sessionID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *handlers) markAllNotificationsRead(c *gin.Context) {
	state, err := h.deps.SessionSvc.MarkAllRead(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *handlers) removeNotification(c *gin.Context) {
	state, err := h.deps.SessionSvc.RemoveNotification(c.Request.Context(), sessionID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *handlers) clearNotifications(c *gin.Context) {
	state, err := h.deps.SessionSvc.ClearNotifications(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

type setThemeRequest struct {
	Theme      string `json:"theme" binding:"required"`
	SystemDark *bool  `json:"systemDark"`
}

type systemThemeRequest struct {
	Dark *bool `json:"dark" binding:"required"`
}

func (h *handlers) getTheme(c *gin.Context) {
	state, err := h.deps.SessionSvc.Theme(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *handlers) setTheme(c *gin.Context) {
	var req setThemeRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}
	state, err := h.deps.SessionSvc.SetTheme(c.Request.Context(), sessionID(c), req.Theme, req.SystemDark)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *handlers) toggleTheme(c *gin.Context) {
	state, err := h.deps.SessionSvc.ToggleTheme(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *handlers) setSystemTheme(c *gin.Context) {
	var req systemThemeRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}
	state, err := h.deps.SessionSvc.SetSystemPreference(c.Request.Context(), sessionID(c), *req.Dark)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}
