package session

import (
	"time"

	"bookflow/models"

	"github.com/google/uuid"
)

// DefaultToastDuration is how long a toast stays up unless dismissed.
const DefaultToastDuration = 4 * time.Second

// ShowToast appends a toast and schedules its auto-dismissal. The timer is
// app-lifetime, not screen-owned: toasts survive navigation. Returns the
// generated toast id.
func (s *Store) ShowToast(message string, typ models.ToastType, duration ...time.Duration) string {
	d := DefaultToastDuration
	if len(duration) > 0 && duration[0] > 0 {
		d = duration[0]
	}
	id := uuid.New().String()
	s.Dispatch(PushToast{Toast: models.Toast{ID: id, Message: message, Type: typ}})
	s.sched.After(d, func() {
		s.Dispatch(RemoveToast{ID: id})
	})
	return id
}

// RemoveToast dismisses a toast early. Unknown ids are ignored.
func (s *Store) RemoveToast(id string) {
	s.Dispatch(RemoveToast{ID: id})
}
