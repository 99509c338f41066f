package session

import "bookflow/models"

// Action is one member of the closed set of state transitions. Every
// mutation of the session goes through Store.Dispatch with one of these;
// there is no ad hoc merge path.
type Action interface {
	apply(*models.Session)
}

// SetScreen reassigns the active screen.
type SetScreen struct {
	Screen models.Screen
}

func (a SetScreen) apply(s *models.Session) {
	s.Screen = a.Screen
}

// MergeSession shallow-merges a patch: nil patch fields leave their targets
// untouched, non-nil fields overwrite. Nested records are replaced
// wholesale so a partial update can never clobber sibling fields inside
// them.
type MergeSession struct {
	Patch models.SessionPatch
}

func (a MergeSession) apply(s *models.Session) {
	p := a.Patch
	if p.Role != nil {
		s.Role = *p.Role
	}
	if p.IsAuthenticated != nil {
		s.IsAuthenticated = *p.IsAuthenticated
	}
	if p.AdminAuthenticated != nil {
		s.AdminAuthenticated = *p.AdminAuthenticated
	}
	if p.UserName != nil {
		s.UserName = *p.UserName
	}
	if p.UserPhone != nil {
		s.UserPhone = *p.UserPhone
	}
	if p.UserEmail != nil {
		s.UserEmail = *p.UserEmail
	}
	if p.Principal != nil {
		s.Principal = *p.Principal
	}
	if p.SelectedPro != nil {
		s.SelectedPro = p.SelectedPro
	}
	if p.SelectedService != nil {
		s.SelectedService = p.SelectedService
	}
	if p.BookingData != nil {
		s.BookingData = *p.BookingData
	}
	if p.Notifications != nil {
		s.Notifications = p.Notifications
	}
	if p.NotifsOpen != nil {
		s.NotifsOpen = *p.NotifsOpen
	}
}

// SetBookingData replaces the in-progress booking record.
type SetBookingData struct {
	Data models.BookingData
}

func (a SetBookingData) apply(s *models.Session) {
	s.BookingData = a.Data
}

// ResetBooking clears the booking record for a fresh wizard run.
type ResetBooking struct{}

func (a ResetBooking) apply(s *models.Session) {
	s.BookingData = models.BookingData{}
	s.SelectedService = nil
}

// PushToast appends a toast; queue order is insertion order.
type PushToast struct {
	Toast models.Toast
}

func (a PushToast) apply(s *models.Session) {
	s.Toasts = append(s.Toasts, a.Toast)
}

// RemoveToast removes a toast by id. Removing an unknown id is a no-op.
type RemoveToast struct {
	ID string
}

func (a RemoveToast) apply(s *models.Session) {
	for i, t := range s.Toasts {
		if t.ID == a.ID {
			s.Toasts = append(s.Toasts[:i], s.Toasts[i+1:]...)
			return
		}
	}
}

// SetNotifications replaces the notification list, preserving given order.
type SetNotifications struct {
	List []models.Notification
}

func (a SetNotifications) apply(s *models.Session) {
	s.Notifications = a.List
}

// PushNotification prepends a locally synthesized notification.
type PushNotification struct {
	Notification models.Notification
}

func (a PushNotification) apply(s *models.Session) {
	s.Notifications = append([]models.Notification{a.Notification}, s.Notifications...)
}

// MarkNotificationRead flips one notification to read. It never reverts to
// unread and touches no other field.
type MarkNotificationRead struct {
	ID string
}

func (a MarkNotificationRead) apply(s *models.Session) {
	for i := range s.Notifications {
		if s.Notifications[i].ID == a.ID {
			s.Notifications[i].Read = true
			return
		}
	}
}

// MarkAllNotificationsRead flips every notification to read. Idempotent.
type MarkAllNotificationsRead struct{}

func (a MarkAllNotificationsRead) apply(s *models.Session) {
	for i := range s.Notifications {
		s.Notifications[i].Read = true
	}
}

// SetNotifsOpen toggles the notification drawer flag.
type SetNotifsOpen struct {
	Open bool
}

func (a SetNotifsOpen) apply(s *models.Session) {
	s.NotifsOpen = a.Open
}
