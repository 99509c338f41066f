package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FetchNotificationsHandler pulls the principal's notifications from the
// backend into the session. A fetch failure leaves the current list alone
// and surfaces a warning toast instead of a stuck loading state.
func (h *HandlerBundle) FetchNotificationsHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	principal := cl.Store.Snapshot().Principal
	list, err := h.Backend.GetNotifications(c.Request.Context(), principal)
	if err != nil {
		h.Logger.Warn("notification fetch failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{
			"notifications": cl.Store.Snapshot().Notifications,
			"stale":         true,
		})
		return
	}
	cl.Store.SetNotifications(list)
	c.JSON(http.StatusOK, gin.H{"notifications": list, "unread": cl.Store.UnreadCount()})
}

// MarkReadHandler flips one notification to read locally and reconciles
// with the backend in the background.
func (h *HandlerBundle) MarkReadHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	id := c.Param("notificationId")
	cl.Store.MarkRead(id)

	go func() {
		if err := h.Backend.MarkNotificationRead(context.Background(), id); err != nil {
			h.Logger.Warn("background mark-read failed", zap.String("id", id), zap.Error(err))
		}
	}()
	c.JSON(http.StatusOK, gin.H{"unread": cl.Store.UnreadCount()})
}

// MarkAllReadHandler flips every notification to read. Idempotent.
func (h *HandlerBundle) MarkAllReadHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	cl.Store.MarkAllRead()

	snap := cl.Store.Snapshot()
	go func() {
		for _, n := range snap.Notifications {
			if err := h.Backend.MarkNotificationRead(context.Background(), n.ID); err != nil {
				h.Logger.Warn("background mark-all-read failed", zap.String("id", n.ID), zap.Error(err))
			}
		}
	}()
	c.JSON(http.StatusOK, gin.H{"unread": 0})
}
