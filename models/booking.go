package models

import "time"

// BookingData is the record accumulated across the wizard stages. Each
// stage merges its own fields in; stepping back never rolls fields back.
// The record is cleared only when a new booking begins.
type BookingData struct {
	BookingID   string  `json:"bookingId"`
	ServiceID   string  `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	Montant     float64 `json:"montant"`
	Date        string  `json:"date"`  // "2006-01-02"
	Heure       string  `json:"heure"` // "15:04" or "Maintenant"
	Phone       string  `json:"phone"`
	Adresse     string  `json:"adresse"`
	Ville       string  `json:"ville"`
	Note        string  `json:"note"`
	ProID       string  `json:"proId"`
}

// Service is one offering of a provider profile. Read-only to the booking
// flow.
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Prix        float64 `json:"prix"`
	Duree       int     `json:"duree"` // minutes
	Description string  `json:"description"`
	Actif       bool    `json:"actif"`
}

// Slot is one selectable appointment window shown on the slot stage.
type Slot struct {
	ID       string `json:"id"`
	Date     string `json:"date"`  // "2006-01-02"
	Heure    string `json:"heure"` // "15:04" or "Maintenant"
	DayLabel string `json:"dayLabel"`
	Flash    bool   `json:"flash"` // the immediate "Maintenant" slot
}

// MilestoneStatus describes one step of the live-tracking timeline.
type MilestoneStatus string

const (
	MilestoneCompleted MilestoneStatus = "completed"
	MilestoneCurrent   MilestoneStatus = "current"
	MilestonePending   MilestoneStatus = "pending"
)

type Milestone struct {
	Label  string          `json:"label"`
	Status MilestoneStatus `json:"status"`
}

// BookingStatus values used by the backend contract.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
	BookingDeclined  = "declined"
)

// Booking is the backend's booking record, consumed through the remote
// contract.
type Booking struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId"`
	ProID       string    `json:"proId"`
	ServiceID   string    `json:"serviceId"`
	ServiceName string    `json:"serviceName"`
	Montant     float64   `json:"montant"`
	Date        string    `json:"date"`
	Heure       string    `json:"heure"`
	Adresse     string    `json:"adresse"`
	Ville       string    `json:"ville"`
	Note        string    `json:"note"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Transaction is one ledger movement on a provider wallet.
type Transaction struct {
	ID        string    `json:"id"`
	ProID     string    `json:"proId"`
	Montant   float64   `json:"montant"`
	Type      string    `json:"type"` // "credit", "sequestre", "release"
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}
