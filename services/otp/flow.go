package otp

import (
	"context"
	"errors"
	"sync"
	"time"

	"bookflow/models"
	"bookflow/services/session"
	"bookflow/utils"
)

// State is the verification flow phase.
type State string

const (
	StatePhoneEntry State = "phone_entry"
	StateCodeSent   State = "code_sent"
	StateVerifying  State = "verifying"
	StateVerified   State = "verified"
)

var (
	// ErrInvalidPhone is the local validation error for a malformed number.
	ErrInvalidPhone = errors.New("invalid swiss phone number")
	// ErrCooldownActive means resend was requested before the cooldown hit 0.
	ErrCooldownActive = errors.New("resend cooldown active")
	// ErrNotCodeSent means a code-stage operation arrived outside CodeSent.
	ErrNotCodeSent = errors.New("no code has been sent")
)

// Flow drives the OTP screen: phone entry, dispatch with a resend
// cooldown, four digit slots with focus handling, and an auto-submit that
// fires exactly once per complete four-digit sequence.
type Flow struct {
	mu       sync.Mutex
	provider Provider
	store    *session.Store

	cooldownFrom int

	state     State
	phone     string
	digits    [CodeLength]string
	focus     int
	cooldown  int
	errMsg    string
	submitted bool

	cooldownTask *utils.Task
}

// Snapshot is a read-only view of the flow for rendering.
type Snapshot struct {
	State    State              `json:"state"`
	Phone    string             `json:"phone"`
	Digits   [CodeLength]string `json:"digits"`
	Focus    int                `json:"focus"`
	Cooldown int                `json:"cooldown"`
	Error    string             `json:"error,omitempty"`
}

func NewFlow(store *session.Store, provider Provider, cooldownSeconds int) *Flow {
	if cooldownSeconds <= 0 {
		cooldownSeconds = 60
	}
	return &Flow{
		provider:     provider,
		store:        store,
		cooldownFrom: cooldownSeconds,
		state:        StatePhoneEntry,
	}
}

// Mount guards direct navigation: the flow only renders once a role has
// been chosen, otherwise it redirects to role selection.
func (f *Flow) Mount() bool {
	if f.store.Snapshot().Role == models.RoleAnonymous {
		f.store.Go(models.ScreenRole)
		return false
	}
	return true
}

// SetPhone records the phone input as typed. Validation happens on Send.
func (f *Flow) SetPhone(phone string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phone = phone
	f.errMsg = ""
}

// Send validates the number locally and, if well formed, dispatches a code
// and starts the resend cooldown. A malformed number never reaches the
// provider and starts no cooldown.
func (f *Flow) Send(ctx context.Context) error {
	f.mu.Lock()
	phone := CleanPhone(f.phone)
	if !IsValidSwissPhone(phone) {
		f.errMsg = "Numéro invalide. Format: +41 79 123 45 67"
		f.mu.Unlock()
		return ErrInvalidPhone
	}
	f.phone = phone
	f.mu.Unlock()

	if err := f.provider.Send(ctx, phone); err != nil {
		f.mu.Lock()
		f.state = StatePhoneEntry
		f.errMsg = "Envoi du code impossible. Réessayez."
		f.mu.Unlock()
		f.store.ShowToast("Envoi du code impossible", models.ToastError)
		return err
	}

	f.mu.Lock()
	f.state = StateCodeSent
	f.digits = [CodeLength]string{}
	f.focus = 0
	f.errMsg = ""
	f.submitted = false
	f.mu.Unlock()

	f.startCooldown()
	f.store.ShowToast("Code envoyé par SMS", models.ToastSMS)
	return nil
}

func (f *Flow) startCooldown() {
	f.mu.Lock()
	f.cooldown = f.cooldownFrom
	if f.cooldownTask != nil {
		f.cooldownTask.Cancel()
	}
	f.mu.Unlock()

	task := f.store.Scheduler().Every(time.Second, f.tickCooldown)
	f.mu.Lock()
	f.cooldownTask = task
	f.mu.Unlock()
	// Leaving the screen tears the ticker down with the rest of the
	// screen's timers.
	f.store.OwnScreenTask(task)
}

// tickCooldown decrements once per second and clamps at zero.
func (f *Flow) tickCooldown() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cooldown > 0 {
		f.cooldown--
	}
	if f.cooldown <= 0 {
		f.cooldown = 0
		if f.cooldownTask != nil {
			f.cooldownTask.Cancel()
			f.cooldownTask = nil
		}
	}
}

// EnterDigit records one digit. Entering a digit advances focus; the
// moment all four slots are non-empty, verification triggers exactly once.
func (f *Flow) EnterDigit(ctx context.Context, index int, digit string) error {
	f.mu.Lock()
	if f.state != StateCodeSent {
		f.mu.Unlock()
		return ErrNotCodeSent
	}
	if index < 0 || index >= CodeLength || len(digit) != 1 || digit[0] < '0' || digit[0] > '9' {
		f.mu.Unlock()
		return errors.New("invalid digit input")
	}
	f.digits[index] = digit
	if index < CodeLength-1 {
		f.focus = index + 1
	}
	fire := f.allFilled() && !f.submitted
	if fire {
		f.submitted = true
		f.state = StateVerifying
	}
	f.mu.Unlock()

	if fire {
		return f.verify(ctx)
	}
	return nil
}

// Backspace clears the focused slot, or moves focus back when the slot is
// already empty. Either way the auto-submit latch re-arms.
func (f *Flow) Backspace() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.digits[f.focus] != "" {
		f.digits[f.focus] = ""
	} else if f.focus > 0 {
		f.focus--
		f.digits[f.focus] = ""
	}
	f.submitted = false
}

func (f *Flow) allFilled() bool {
	for _, d := range f.digits {
		if d == "" {
			return false
		}
	}
	return true
}

func (f *Flow) verify(ctx context.Context) error {
	f.mu.Lock()
	phone := f.phone
	code := f.digits[0] + f.digits[1] + f.digits[2] + f.digits[3]
	f.mu.Unlock()

	if err := f.provider.Verify(ctx, phone, code); err != nil {
		f.mu.Lock()
		f.state = StateCodeSent
		f.digits = [CodeLength]string{}
		f.focus = 0
		f.errMsg = "Code incorrect. Réessayez."
		f.submitted = false
		f.mu.Unlock()
		return err
	}

	f.mu.Lock()
	f.state = StateVerified
	f.errMsg = ""
	f.mu.Unlock()

	authed := true
	f.store.Update(models.SessionPatch{
		UserPhone:       &phone,
		IsAuthenticated: &authed,
	})

	// Providers land on their dashboard, everyone else on the explorer.
	// The admin console is only reachable through the password login, not
	// through phone verification.
	switch f.store.Snapshot().Role {
	case models.RolePro:
		f.store.Go(models.ScreenProDashboard)
	case models.RoleClient, models.RoleAdmin, models.RoleAnonymous:
		f.store.Go(models.ScreenExplorer)
	}
	f.store.ShowToast("Numéro vérifié", models.ToastSuccess)
	return nil
}

// Resend is only permitted once the cooldown reaches zero; before that it
// is a no-op. It clears digits and error state and re-dispatches.
func (f *Flow) Resend(ctx context.Context) error {
	f.mu.Lock()
	if f.state != StateCodeSent {
		f.mu.Unlock()
		return ErrNotCodeSent
	}
	if f.cooldown > 0 {
		f.mu.Unlock()
		return ErrCooldownActive
	}
	f.digits = [CodeLength]string{}
	f.focus = 0
	f.errMsg = ""
	f.submitted = false
	f.mu.Unlock()

	return f.Send(ctx)
}

// Snapshot returns the current flow state for rendering.
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot{
		State:    f.state,
		Phone:    f.phone,
		Digits:   f.digits,
		Focus:    f.focus,
		Cooldown: f.cooldown,
		Error:    f.errMsg,
	}
}

// Cooldown reports the seconds remaining before resend is allowed.
func (f *Flow) Cooldown() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cooldown
}
