package handlers

import (
	"net/http"

	"bookflow/config"
	"bookflow/services/payment"
	"bookflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListProsHandler lists providers, optionally filtered by category.
func (h *HandlerBundle) ListProsHandler(c *gin.Context) {
	category := c.Query("category")
	if category != "" {
		pros, err := h.Backend.ListProsByCategory(c.Request.Context(), category)
		if err != nil {
			utils.JSONError(c, http.StatusBadGateway, "Failed to list providers", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"pros": pros})
		return
	}

	pros, err := h.Backend.ListPros(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Failed to list providers", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"pros": pros})
}

// GetProHandler returns one provider profile.
func (h *HandlerBundle) GetProHandler(c *gin.Context) {
	pro, err := h.Backend.GetPro(c.Request.Context(), c.Param("proId"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Unknown provider", err.Error())
		return
	}
	c.JSON(http.StatusOK, pro)
}

// WalletHandler returns a provider's available balance and the amount
// still held in escrow.
func (h *HandlerBundle) WalletHandler(c *gin.Context) {
	proID := c.Param("proId")
	solde, err := h.Backend.GetProSolde(c.Request.Context(), proID)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Failed to read balance", err.Error())
		return
	}
	sequestre, err := h.Backend.GetProSequestre(c.Request.Context(), proID)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Failed to read escrow", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"solde": solde, "sequestre": sequestre})
}

// SubscriptionURLHandler builds the fixed-price pro subscription payment
// URL. No network call: the client is redirected to the returned URL.
func (h *HandlerBundle) SubscriptionURLHandler(c *gin.Context) {
	payCfg := payment.Config{
		Instance:   config.AppConfig.PayrexxInstance,
		AppBaseURL: config.AppConfig.AppBaseURL,
	}
	c.JSON(http.StatusOK, gin.H{"url": payCfg.SubscriptionURL(uuid.New().String())})
}
