package booking

import (
	"context"
	"sync"
	"time"

	"bookflow/models"
	"bookflow/services/backend"
	"bookflow/services/session"

	"go.uber.org/zap"
)

// Tracker runs the live-status screen: a bounded countdown ticking once per
// second and an ordered milestone timeline. Provider confirmation is a
// scripted transition after a fixed delay; a real deployment would replace
// the delay with a subscription to the backend's booking-status changes
// while keeping the same timeline semantics.
type Tracker struct {
	mu      sync.Mutex
	store   *session.Store
	backend backend.Service
	logger  *zap.Logger

	bookingID  string
	remaining  int
	confirmed  bool
	milestones []models.Milestone

	window       int
	confirmAfter int
}

// TrackerSnapshot is the tracker state a screen renders from.
type TrackerSnapshot struct {
	BookingID  string             `json:"bookingId"`
	Remaining  int                `json:"remaining"`
	Confirmed  bool               `json:"confirmed"`
	Milestones []models.Milestone `json:"milestones"`
}

func NewTracker(store *session.Store, be backend.Service, bookingID string, timings Timings, logger *zap.Logger) *Tracker {
	return &Tracker{
		store:        store,
		backend:      be,
		logger:       logger,
		bookingID:    bookingID,
		remaining:    timings.TrackerWindowSeconds,
		window:       timings.TrackerWindowSeconds,
		confirmAfter: timings.TrackerConfirmSeconds,
		milestones: []models.Milestone{
			{Label: "Réservation envoyée", Status: models.MilestoneCompleted},
			{Label: "Confirmation du prestataire", Status: models.MilestoneCurrent},
			{Label: "Prestataire en route", Status: models.MilestonePending},
			{Label: "Service en cours", Status: models.MilestonePending},
		},
	}
}

// Start arms the countdown and the scripted confirmation. Both timers are
// owned by the tracking screen and die with it.
func (t *Tracker) Start() {
	tick := t.store.Scheduler().Every(time.Second, t.tick)
	t.store.OwnScreenTask(tick)

	confirm := t.store.Scheduler().After(time.Duration(t.confirmAfter)*time.Second, t.confirm)
	t.store.OwnScreenTask(confirm)
}

// tick decrements the countdown and clamps at zero.
func (t *Tracker) tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.remaining > 0 {
		t.remaining--
	}
}

// confirm marks the booking provider-confirmed. The local state advances
// first; the backend call is best-effort reconciliation in the background.
func (t *Tracker) confirm() {
	t.mu.Lock()
	if t.confirmed {
		t.mu.Unlock()
		return
	}
	t.confirmed = true
	t.milestones[1].Status = models.MilestoneCompleted
	t.milestones[2].Status = models.MilestoneCurrent
	bookingID := t.bookingID
	t.mu.Unlock()

	t.store.ShowToast("Prestataire confirmé", models.ToastSuccess)

	go func() {
		if err := t.backend.ConfirmBooking(context.Background(), bookingID); err != nil {
			t.logger.Warn("background booking confirm failed",
				zap.String("bookingId", bookingID), zap.Error(err))
		}
	}()
}

// Snapshot returns a copy of the tracker state.
func (t *Tracker) Snapshot() TrackerSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return TrackerSnapshot{
		BookingID:  t.bookingID,
		Remaining:  t.remaining,
		Confirmed:  t.confirmed,
		Milestones: append([]models.Milestone(nil), t.milestones...),
	}
}
