package handlers

import (
	"net/http"
	"time"

	"bookflow/config"
	"bookflow/models"
	"bookflow/utils"

	"github.com/gin-gonic/gin"
)

// CreateSessionHandler opens a fresh session and returns its id, a bearer
// token bound to it, and the initial snapshot.
func (h *HandlerBundle) CreateSessionHandler(c *gin.Context) {
	cl := h.Registry.New()

	hours := config.AppConfig.SessionTokenHoursValid
	if hours <= 0 {
		hours = 24
	}
	token, err := utils.GenerateSessionToken(cl.ID, string(models.RoleAnonymous), time.Duration(hours)*time.Hour)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create session", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"sessionId": cl.ID,
		"token":     token,
		"session":   cl.Store.Snapshot(),
	})
}

// GetSessionHandler returns the current session snapshot and change counter.
func (h *HandlerBundle) GetSessionHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session": cl.Store.Snapshot(),
		"version": cl.Store.Version(),
	})
}

// GoHandler switches the active screen unconditionally. Role-restricted
// screens re-check the gate on mount and bounce back to role selection.
func (h *HandlerBundle) GoHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	var req struct {
		Screen models.Screen `json:"screen" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	cl.Store.Go(req.Screen)
	// Mount-time gate: a role-restricted screen with no role renders
	// nothing and redirects.
	cl.Store.EnsureRole()
	c.JSON(http.StatusOK, gin.H{"session": cl.Store.Snapshot()})
}

// UpdateHandler shallow-merges a patch into the session.
func (h *HandlerBundle) UpdateHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	var patch models.SessionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid patch", err.Error())
		return
	}
	if patch.Role != nil && !patch.Role.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "Invalid role", string(*patch.Role))
		return
	}

	cl.Store.Update(patch)
	c.JSON(http.StatusOK, gin.H{"session": cl.Store.Snapshot()})
}

// SelectRoleHandler records the chosen role and routes into the matching
// auth flow: client and pro verify by phone, admin goes to the password
// screen.
func (h *HandlerBundle) SelectRoleHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	var req struct {
		Role models.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if !req.Role.Valid() || req.Role == models.RoleAnonymous {
		utils.JSONError(c, http.StatusBadRequest, "Invalid role", string(req.Role))
		return
	}

	role := req.Role
	cl.Store.Update(models.SessionPatch{Role: &role})
	switch role {
	case models.RoleAdmin:
		cl.Store.Go(models.ScreenAdminLogin)
	case models.RoleClient, models.RolePro:
		cl.Store.Go(models.ScreenOTP)
	}
	c.JSON(http.StatusOK, gin.H{"session": cl.Store.Snapshot()})
}

// DismissToastHandler removes a toast early; unknown ids are a no-op.
func (h *HandlerBundle) DismissToastHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	cl.Store.RemoveToast(c.Param("toastId"))
	c.JSON(http.StatusOK, gin.H{"toasts": cl.Store.Snapshot().Toasts})
}

// SetNotifsOpenHandler toggles the notification drawer flag.
func (h *HandlerBundle) SetNotifsOpenHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	var req struct {
		Open bool `json:"open"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	open := req.Open
	cl.Store.Update(models.SessionPatch{NotifsOpen: &open})
	c.JSON(http.StatusOK, gin.H{"notifsOpen": open})
}

// GetSidebarPrefHandler reads the one persisted UI preference.
func (h *HandlerBundle) GetSidebarPrefHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	principal := cl.Store.Snapshot().Principal
	collapsed, err := h.Prefs.GetSidebarCollapsed(c.Request.Context(), principal)
	if err != nil {
		// Preference reads are best-effort; fall back to the default.
		h.Logger.Warn("sidebar pref read failed")
		collapsed = false
	}
	c.JSON(http.StatusOK, gin.H{"collapsed": collapsed})
}

// SetSidebarPrefHandler persists the one UI preference that survives a
// reload.
func (h *HandlerBundle) SetSidebarPrefHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	var req struct {
		Collapsed bool `json:"collapsed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	principal := cl.Store.Snapshot().Principal
	if err := h.Prefs.SetSidebarCollapsed(c.Request.Context(), principal, req.Collapsed); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to persist preference", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"collapsed": req.Collapsed})
}
