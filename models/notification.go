package models

import "time"

// Notification is a persistent (session-lifetime) user-addressed message
// with read/unread state. Read is monotonic: it is only ever flipped to
// true, and no other field is mutated after creation.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToastType tags a toast for icon/color selection on the client.
type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastInfo    ToastType = "info"
	ToastWarning ToastType = "warning"
	ToastSMS     ToastType = "sms"
)

// Toast is a transient, auto-dismissing message. Queue order is insertion
// order.
type Toast struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	Type    ToastType `json:"type"`
}
