// Package backend declares the remote contract the client consumes. The
// real ledger/storage implementation lives server-side and is out of
// scope; authorization (a caller only acting on their own records, admin
// overrides) is enforced there and assumed here, never re-validated.
package backend

import (
	"context"

	"bookflow/models"
)

// Service is the backend RPC surface.
type Service interface {
	CreateBooking(ctx context.Context, b models.Booking) (models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) error
	ConfirmBooking(ctx context.Context, bookingID string) error
	CompleteBooking(ctx context.Context, bookingID string) error
	DeclineBooking(ctx context.Context, bookingID string) error

	ListPros(ctx context.Context) ([]models.Pro, error)
	ListProsByCategory(ctx context.Context, category string) ([]models.Pro, error)
	GetPro(ctx context.Context, proID string) (*models.Pro, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)

	GetClientBookings(ctx context.Context, clientID string) ([]models.Booking, error)
	GetProBookings(ctx context.Context, proID string) ([]models.Booking, error)

	GetNotifications(ctx context.Context, userID string) ([]models.Notification, error)
	AddNotification(ctx context.Context, n models.Notification) error
	MarkNotificationRead(ctx context.Context, notificationID string) error

	GetProSolde(ctx context.Context, proID string) (float64, error)
	GetProSequestre(ctx context.Context, proID string) (float64, error)
	AddTransaction(ctx context.Context, t models.Transaction) error

	RegisterUser(ctx context.Context, u models.User) (models.User, error)
	RegisterPro(ctx context.Context, p models.Pro) (models.Pro, error)
	UpdateUser(ctx context.Context, u models.User) error
	UpdatePro(ctx context.Context, p models.Pro) error
}
