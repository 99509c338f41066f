package handlers

import (
	"errors"
	"net/http"

	"bookflow/services/otp"
	"bookflow/utils"

	"github.com/gin-gonic/gin"
)

// OTPStateHandler returns the verification flow state. Entering the flow
// without a chosen role redirects to role selection before any input is
// rendered.
func (h *HandlerBundle) OTPStateHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	if !cl.OTP.Mount() {
		c.JSON(http.StatusOK, gin.H{
			"redirect": "role",
			"session":  cl.Store.Snapshot(),
		})
		return
	}
	c.JSON(http.StatusOK, cl.OTP.Snapshot())
}

// OTPSendHandler validates the phone number locally and dispatches a code.
// Malformed numbers never reach the OTP service and start no cooldown.
func (h *HandlerBundle) OTPSendHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	var req struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	cl.OTP.SetPhone(req.Phone)
	if err := cl.OTP.Send(c.Request.Context()); err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, otp.ErrInvalidPhone) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error(), "state": cl.OTP.Snapshot()})
		return
	}
	c.JSON(http.StatusOK, cl.OTP.Snapshot())
}

// OTPDigitHandler records one digit; completing all four slots triggers
// verification automatically.
func (h *HandlerBundle) OTPDigitHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	var req struct {
		Index int    `json:"index"`
		Digit string `json:"digit" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	if err := cl.OTP.EnterDigit(c.Request.Context(), req.Index, req.Digit); err != nil {
		// A failed verification keeps the screen on CodeSent with an
		// inline error; the response carries the cleared digits.
		c.JSON(http.StatusOK, gin.H{"error": err.Error(), "state": cl.OTP.Snapshot(), "session": cl.Store.Snapshot()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": cl.OTP.Snapshot(), "session": cl.Store.Snapshot()})
}

// OTPBackspaceHandler clears the focused slot or steps focus back.
func (h *HandlerBundle) OTPBackspaceHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	cl.OTP.Backspace()
	c.JSON(http.StatusOK, cl.OTP.Snapshot())
}

// OTPResendHandler re-dispatches the code once the cooldown reaches zero;
// before that it is a no-op.
func (h *HandlerBundle) OTPResendHandler(c *gin.Context) {
	cl, ok := h.clientFrom(c)
	if !ok {
		return
	}
	if err := cl.OTP.Resend(c.Request.Context()); err != nil {
		if errors.Is(err, otp.ErrCooldownActive) {
			c.JSON(http.StatusOK, gin.H{"state": cl.OTP.Snapshot(), "noop": true})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "state": cl.OTP.Snapshot()})
		return
	}
	c.JSON(http.StatusOK, cl.OTP.Snapshot())
}
