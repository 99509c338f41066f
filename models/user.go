package models

import "time"

// User is a client account as returned by the backend contract.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Principal string    `json:"principal"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Pro is a service-provider profile. Services are owned by the profile and
// read-only to the booking flow; the selected provider's catalog is
// authoritative for what can be booked.
type Pro struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Ville     string    `json:"ville"`
	Phone     string    `json:"phone"`
	Rating    float64   `json:"rating"`
	Services  []Service `json:"services"`
	Verified  bool      `json:"verified"`
	Suspended bool      `json:"suspended"`
	CreatedAt time.Time `json:"createdAt"`
}
