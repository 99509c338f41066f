package handlers

import (
	"net/http"

	"bookflow/config"
	"bookflow/models"
	"bookflow/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AdminLoginHandler checks the console password against the configured
// bcrypt hash. Success authenticates the session as admin and lands on the
// moderation screen; failure keeps the login screen with an error toast.
func (h *HandlerBundle) AdminLoginHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	hash := config.AppConfig.AdminPasswordHash
	if hash == "" {
		utils.JSONError(c, http.StatusServiceUnavailable, "Admin login disabled", "no admin password configured")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		cl.Store.ShowToast("Mot de passe incorrect", models.ToastError)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	role := models.RoleAdmin
	authed := true
	cl.Store.Update(models.SessionPatch{
		Role:               &role,
		AdminAuthenticated: &authed,
		IsAuthenticated:    &authed,
	})
	cl.Store.Go(models.ScreenAdmin)
	c.JSON(http.StatusOK, gin.H{"session": cl.Store.Snapshot()})
}

// AdminOverviewHandler returns the moderation view data: the full provider
// catalog and the number of live sessions.
func (h *HandlerBundle) AdminOverviewHandler(c *gin.Context) {
	pros, err := h.Backend.ListPros(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Failed to list providers", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pros":     pros,
		"sessions": h.Registry.Len(),
	})
}

// SuspendProHandler flips a provider's suspension flag. Suspension is the
// one moderation action with teeth: a suspended profile stays listed but
// cannot be booked.
func (h *HandlerBundle) SuspendProHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	var req struct {
		Suspended bool `json:"suspended"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	pro, err := h.Backend.GetPro(c.Request.Context(), c.Param("proId"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Unknown provider", err.Error())
		return
	}
	pro.Suspended = req.Suspended
	if err := h.Backend.UpdatePro(c.Request.Context(), *pro); err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Failed to update provider", err.Error())
		return
	}

	if req.Suspended {
		cl.Store.ShowToast("Prestataire suspendu", models.ToastWarning)
	} else {
		cl.Store.ShowToast("Prestataire réactivé", models.ToastSuccess)
	}
	c.JSON(http.StatusOK, gin.H{"pro": pro})
}
