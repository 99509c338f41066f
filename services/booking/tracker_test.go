package booking

import (
	"context"
	"testing"
	"time"

	"bookflow/models"
	"bookflow/services/backend"
	"bookflow/services/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestTracker(t *testing.T) (*Tracker, *session.Store, *backend.InMemoryService) {
	t.Helper()
	store := session.NewStore(zap.NewNop())
	t.Cleanup(store.Close)
	be := backend.NewInMemoryService()
	_, err := be.CreateBooking(context.Background(), models.Booking{ID: "bk-1", ProID: "pro-1", Montant: 35})
	require.NoError(t, err)

	timings := Timings{ProcessingSeconds: 8, TrackerWindowSeconds: 1800, TrackerConfirmSeconds: 6}
	return NewTracker(store, be, "bk-1", timings, zap.NewNop()), store, be
}

func TestTracker_InitialTimeline(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	snap := tr.Snapshot()

	assert.Equal(t, "bk-1", snap.BookingID)
	assert.Equal(t, 1800, snap.Remaining)
	assert.False(t, snap.Confirmed)
	require.Len(t, snap.Milestones, 4)
	assert.Equal(t, models.MilestoneCompleted, snap.Milestones[0].Status)
	assert.Equal(t, models.MilestoneCurrent, snap.Milestones[1].Status)
	assert.Equal(t, models.MilestonePending, snap.Milestones[2].Status)
	assert.Equal(t, models.MilestonePending, snap.Milestones[3].Status)
}

func TestTracker_TickClampsAtZero(t *testing.T) {
	store := session.NewStore(zap.NewNop())
	defer store.Close()
	tr := NewTracker(store, backend.NewInMemoryService(), "bk-1",
		Timings{ProcessingSeconds: 8, TrackerWindowSeconds: 3, TrackerConfirmSeconds: 6}, zap.NewNop())

	for i := 0; i < 5; i++ {
		tr.tick()
	}
	assert.Equal(t, 0, tr.Snapshot().Remaining)
}

func TestTracker_ConfirmAdvancesTimeline(t *testing.T) {
	tr, store, be := newTestTracker(t)

	tr.confirm()

	snap := tr.Snapshot()
	assert.True(t, snap.Confirmed)
	assert.Equal(t, models.MilestoneCompleted, snap.Milestones[1].Status)
	assert.Equal(t, models.MilestoneCurrent, snap.Milestones[2].Status)
	assert.Equal(t, models.MilestonePending, snap.Milestones[3].Status)

	toasts := store.Snapshot().Toasts
	require.Len(t, toasts, 1)
	assert.Equal(t, "Prestataire confirmé", toasts[0].Message)
	assert.Equal(t, models.ToastSuccess, toasts[0].Type)

	assert.Eventually(t, func() bool {
		bookings, err := be.GetProBookings(context.Background(), "pro-1")
		return err == nil && len(bookings) == 1 && bookings[0].Status == models.BookingConfirmed
	}, time.Second, 10*time.Millisecond)
}

func TestTracker_ConfirmIsIdempotent(t *testing.T) {
	tr, store, _ := newTestTracker(t)

	tr.confirm()
	tr.confirm()

	assert.Len(t, store.Snapshot().Toasts, 1, "confirm must not announce twice")
	assert.Equal(t, models.MilestoneCurrent, tr.Snapshot().Milestones[2].Status)
}

func TestTracker_SnapshotDoesNotAliasMilestones(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	snap := tr.Snapshot()
	snap.Milestones[1].Status = models.MilestoneCompleted

	assert.Equal(t, models.MilestoneCurrent, tr.Snapshot().Milestones[1].Status)
}
