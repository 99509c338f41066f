package handlers

import (
	"net/http"

	"bookflow/models"
	"bookflow/services/booking"
	"bookflow/utils"

	"github.com/gin-gonic/gin"
)

// StartBookingHandler begins a fresh wizard run, optionally against a
// selected provider whose catalog becomes authoritative.
func (h *HandlerBundle) StartBookingHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	var req struct {
		ProID string `json:"proId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	var pro *models.Pro
	if req.ProID != "" {
		p, err := h.Backend.GetPro(c.Request.Context(), req.ProID)
		if err != nil {
			utils.JSONError(c, http.StatusNotFound, "Unknown provider", err.Error())
			return
		}
		if p.Suspended {
			utils.JSONError(c, http.StatusUnprocessableEntity, "Provider unavailable", "provider is suspended")
			return
		}
		pro = p
	}

	cl.Wizard.Start(pro)
	c.JSON(http.StatusOK, gin.H{
		"wizard":   cl.Wizard.Snapshot(),
		"services": cl.Wizard.Services(),
	})
}

// WizardStateHandler returns the current wizard snapshot.
func (h *HandlerBundle) WizardStateHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cl.Wizard.Snapshot())
}

// ServicesHandler lists the bookable catalog for stage 1.
func (h *HandlerBundle) ServicesHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": cl.Wizard.Services()})
}

// SelectServiceHandler picks one active service.
func (h *HandlerBundle) SelectServiceHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	var req struct {
		ServiceID string `json:"serviceId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	for _, svc := range cl.Wizard.Services() {
		if svc.ID == req.ServiceID {
			if err := cl.Wizard.SelectService(svc); err != nil {
				utils.JSONError(c, http.StatusUnprocessableEntity, "Service unavailable", err.Error())
				return
			}
			c.JSON(http.StatusOK, cl.Wizard.Snapshot())
			return
		}
	}
	utils.JSONError(c, http.StatusNotFound, "Unknown service", req.ServiceID)
}

// SlotsHandler returns the generated slot set for stage 2.
func (h *HandlerBundle) SlotsHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": cl.Wizard.Slots()})
}

// SelectSlotHandler picks one generated slot.
func (h *HandlerBundle) SelectSlotHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	var req struct {
		SlotID string `json:"slotId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	slot, found := booking.FindSlot(cl.Wizard.Slots(), req.SlotID)
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Unknown slot", req.SlotID)
		return
	}
	cl.Wizard.SelectSlot(slot)
	c.JSON(http.StatusOK, cl.Wizard.Snapshot())
}

// ContactHandler stores the stage-3 inputs as typed.
func (h *HandlerBundle) ContactHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	var req struct {
		Phone   string `json:"phone"`
		Adresse string `json:"adresse"`
		Ville   string `json:"ville"`
		Note    string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	cl.Wizard.SetContact(req.Phone, req.Adresse, req.Ville, req.Note)
	c.JSON(http.StatusOK, cl.Wizard.Snapshot())
}

// NextHandler advances the wizard one stage. Rejections leave state
// unchanged and carry the inline error.
func (h *HandlerBundle) NextHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	if err := cl.Wizard.Next(c.Request.Context()); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  err.Error(),
			"wizard": cl.Wizard.Snapshot(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"wizard":  cl.Wizard.Snapshot(),
		"session": cl.Store.Snapshot(),
	})
}

// BackHandler steps back one stage without discarding entered fields.
func (h *HandlerBundle) BackHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	cl.Wizard.Back()
	c.JSON(http.StatusOK, cl.Wizard.Snapshot())
}

// TrackerHandler returns the live-status snapshot once tracking has begun.
func (h *HandlerBundle) TrackerHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	tracker := cl.Wizard.Tracker()
	if tracker == nil {
		utils.JSONError(c, http.StatusNotFound, "No active tracking", "booking has not reached tracking yet")
		return
	}
	c.JSON(http.StatusOK, tracker.Snapshot())
}

// CancelBookingHandler cancels a booking through the backend. On failure
// the local state is untouched and the user is told via toast.
func (h *HandlerBundle) CancelBookingHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	var req struct {
		BookingID string `json:"bookingId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	if err := h.Backend.CancelBooking(c.Request.Context(), req.BookingID); err != nil {
		cl.Store.ShowToast("Annulation impossible", models.ToastError)
		utils.JSONError(c, http.StatusBadGateway, "Cancel failed", err.Error())
		return
	}
	cl.Store.ShowToast("Réservation annulée", models.ToastInfo)
	c.JSON(http.StatusOK, gin.H{"cancelled": req.BookingID})
}

// AcceptBookingHandler and DeclineBookingHandler are the provider-side
// decisions: the local UI advances immediately, the remote call is
// best-effort.
func (h *HandlerBundle) AcceptBookingHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	d := &booking.ProDecisions{Store: cl.Store, Backend: h.Backend, Logger: h.Logger}
	d.Accept(c.Param("bookingId"))
	c.JSON(http.StatusOK, gin.H{"accepted": c.Param("bookingId")})
}

func (h *HandlerBundle) DeclineBookingHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	d := &booking.ProDecisions{Store: cl.Store, Backend: h.Backend, Logger: h.Logger}
	d.Decline(c.Param("bookingId"))
	c.JSON(http.StatusOK, gin.H{"declined": c.Param("bookingId")})
}
