package session

import (
	"time"

	"bookflow/models"

	"github.com/google/uuid"
)

// SetNotifications replaces the notification list with records fetched
// from the backend. Rendering order is the given order.
func (s *Store) SetNotifications(list []models.Notification) {
	s.Dispatch(SetNotifications{List: list})
}

// Notify synthesizes a local notification (in addition to any the backend
// creates) and returns its id.
func (s *Store) Notify(userID, typ, message string) string {
	n := models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      typ,
		Message:   message,
		CreatedAt: time.Now(),
	}
	s.Dispatch(PushNotification{Notification: n})
	return n.ID
}

// MarkRead marks one notification as read.
func (s *Store) MarkRead(id string) {
	s.Dispatch(MarkNotificationRead{ID: id})
}

// MarkAllRead marks every notification as read. Calling it twice yields
// the same list as calling it once.
func (s *Store) MarkAllRead() {
	s.Dispatch(MarkAllNotificationsRead{})
}

// UnreadCount reports how many notifications are still unread.
func (s *Store) UnreadCount() int {
	snap := s.Snapshot()
	n := 0
	for _, notif := range snap.Notifications {
		if !notif.Read {
			n++
		}
	}
	return n
}
