package booking

import (
	"context"

	"bookflow/models"
	"bookflow/services/backend"
	"bookflow/services/session"

	"go.uber.org/zap"
)

// ProDecisions handles the provider-side accept/decline flow. Both are
// two-phase: the local UI advances immediately, and the remote call runs
// in the background as best-effort reconciliation. A failed remote call
// leaves the local state ahead of the backend until the next fetch; that
// divergence is accepted in exchange for perceived responsiveness.
type ProDecisions struct {
	Store   *session.Store
	Backend backend.Service
	Logger  *zap.Logger
}

// Accept confirms a booking on behalf of the provider.
func (p *ProDecisions) Accept(bookingID string) {
	p.Store.ShowToast("Réservation acceptée", models.ToastSuccess)
	snap := p.Store.Snapshot()
	p.Store.Notify(snap.Principal, "booking_accepted", "Vous avez accepté la réservation")

	go func() {
		if err := p.Backend.ConfirmBooking(context.Background(), bookingID); err != nil {
			p.Logger.Warn("background accept failed",
				zap.String("bookingId", bookingID), zap.Error(err))
		}
	}()
}

// Decline rejects a booking on behalf of the provider.
func (p *ProDecisions) Decline(bookingID string) {
	p.Store.ShowToast("Réservation refusée", models.ToastWarning)
	snap := p.Store.Snapshot()
	p.Store.Notify(snap.Principal, "booking_declined", "Vous avez refusé la réservation")

	go func() {
		if err := p.Backend.DeclineBooking(context.Background(), bookingID); err != nil {
			p.Logger.Warn("background decline failed",
				zap.String("bookingId", bookingID), zap.Error(err))
		}
	}()
}
