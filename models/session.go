package models

// Role is the authenticated actor category. The zero value is Anonymous,
// which stands in for the unauthenticated "no role yet" state.
type Role string

const (
	RoleAnonymous Role = ""
	RoleClient    Role = "client"
	RolePro       Role = "pro"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles (Anonymous included).
func (r Role) Valid() bool {
	switch r {
	case RoleAnonymous, RoleClient, RolePro, RoleAdmin:
		return true
	}
	return false
}

// Screen is one named view of the application. Navigation is modeled as
// reassigning the current screen value on the session.
type Screen string

const (
	ScreenLogin      Screen = "login"
	ScreenRole       Screen = "role"
	ScreenOTP        Screen = "otp"
	ScreenAdminLogin Screen = "admin_login"

	ScreenExplorer      Screen = "explorer"
	ScreenProProfile    Screen = "pro_profile"
	ScreenBooking       Screen = "booking"
	ScreenProcessing    Screen = "processing"
	ScreenTracking      Screen = "tracking"
	ScreenPaymentFailed Screen = "payment_failed"
	ScreenWallet        Screen = "wallet"
	ScreenProDashboard  Screen = "pro_dashboard"
	ScreenAdmin         Screen = "admin"
)

// RequiresRole reports whether the screen is outside the auth set and may
// only be mounted with a non-anonymous role.
func (s Screen) RequiresRole() bool {
	switch s {
	case ScreenLogin, ScreenRole, ScreenOTP, ScreenAdminLogin:
		return false
	}
	return true
}

// Session is the root in-memory state for one running client. It is reset
// on a full reload; nothing here is durably persisted except the
// sidebar-collapsed preference, which lives in Redis.
type Session struct {
	Screen             Screen         `json:"screen"`
	Role               Role           `json:"role"`
	IsAuthenticated    bool           `json:"isAuthenticated"`
	AdminAuthenticated bool           `json:"adminAuthenticated"`
	UserName           string         `json:"userName"`
	UserPhone          string         `json:"userPhone"`
	UserEmail          string         `json:"userEmail"`
	Principal          string         `json:"principal"`
	SelectedPro        *Pro           `json:"selectedPro,omitempty"`
	SelectedService    *Service       `json:"selectedService,omitempty"`
	BookingData        BookingData    `json:"bookingData"`
	Notifications      []Notification `json:"notifications"`
	Toasts             []Toast        `json:"toasts"`
	NotifsOpen         bool           `json:"notifsOpen"`
}

// SessionPatch is a shallow top-level merge: nil fields are left untouched,
// non-nil fields overwrite. Nested records (SelectedPro, SelectedService,
// BookingData) are replaced wholesale, never deep-merged.
type SessionPatch struct {
	Role               *Role          `json:"role,omitempty"`
	IsAuthenticated    *bool          `json:"isAuthenticated,omitempty"`
	AdminAuthenticated *bool          `json:"adminAuthenticated,omitempty"`
	UserName           *string        `json:"userName,omitempty"`
	UserPhone          *string        `json:"userPhone,omitempty"`
	UserEmail          *string        `json:"userEmail,omitempty"`
	Principal          *string        `json:"principal,omitempty"`
	SelectedPro        *Pro           `json:"selectedPro,omitempty"`
	SelectedService    *Service       `json:"selectedService,omitempty"`
	BookingData        *BookingData   `json:"bookingData,omitempty"`
	Notifications      []Notification `json:"notifications,omitempty"`
	NotifsOpen         *bool          `json:"notifsOpen,omitempty"`
}
