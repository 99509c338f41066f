package handlers

import (
	"net/http"

	"bookflow/models"
	"bookflow/services/backend"
	"bookflow/services/client"
	"bookflow/services/prefs"
	"bookflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandlerBundle wires the gateway handlers to their collaborators.
type HandlerBundle struct {
	Registry *client.Registry
	Prefs    *prefs.Store
	Backend  backend.Service
	Logger   *zap.Logger
}

func NewHandlerBundle(registry *client.Registry, prefsStore *prefs.Store, be backend.Service, logger *zap.Logger) *HandlerBundle {
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &HandlerBundle{
		Registry: registry,
		Prefs:    prefsStore,
		Backend:  be,
		Logger:   logger,
	}
}

// clientFrom resolves the addressed session or writes a 404.
func (h *HandlerBundle) clientFrom(c *gin.Context) (*client.Client, bool) {
	id := c.Param("id")
	cl, ok := h.Registry.Get(id)
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Unknown session", "no session with id "+id)
		return nil, false
	}
	return cl, true
}

// RoleLookup adapts the registry for the role-gate middleware.
func (h *HandlerBundle) RoleLookup(sessionID string) (models.Role, bool) {
	cl, ok := h.Registry.Get(sessionID)
	if !ok {
		return models.RoleAnonymous, false
	}
	return cl.Store.Snapshot().Role, true
}

// AdminLookup adapts the registry for the admin-gate middleware.
func (h *HandlerBundle) AdminLookup(sessionID string) bool {
	cl, ok := h.Registry.Get(sessionID)
	if !ok {
		return false
	}
	return cl.Store.Snapshot().AdminAuthenticated
}
