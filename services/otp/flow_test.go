package otp

import (
	"context"
	"errors"
	"sync"
	"testing"

	"bookflow/models"
	"bookflow/services/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeProvider records dispatch/verify calls and can be told to fail.
type fakeProvider struct {
	mu          sync.Mutex
	sendCount   int
	verifyCount int
	sentPhones  []string
	verified    []string
	sendErr     error
	verifyErr   error
}

func (f *fakeProvider) Send(_ context.Context, phone string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sendCount++
	f.sentPhones = append(f.sentPhones, phone)
	return nil
}

func (f *fakeProvider) Verify(_ context.Context, phone, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifyCount++
	if f.verifyErr != nil {
		return f.verifyErr
	}
	f.verified = append(f.verified, phone+":"+code)
	return nil
}

func (f *fakeProvider) sends() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sendCount
}

func (f *fakeProvider) verifies() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.verifyCount
}

func newTestFlow(role models.Role) (*Flow, *fakeProvider, *session.Store) {
	store := session.NewStore(zap.NewNop())
	if role != models.RoleAnonymous {
		r := role
		store.Update(models.SessionPatch{Role: &r})
	}
	provider := &fakeProvider{}
	return NewFlow(store, provider, 60), provider, store
}

func enterCode(t *testing.T, f *Flow, code string) {
	t.Helper()
	for i := 0; i < len(code); i++ {
		require.NoError(t, f.EnterDigit(context.Background(), i, string(code[i])))
	}
}

func TestFlow_SendInvalidPhone(t *testing.T) {
	f, provider, _ := newTestFlow(models.RoleClient)

	f.SetPhone("+4179123")
	err := f.Send(context.Background())

	assert.ErrorIs(t, err, ErrInvalidPhone)
	assert.Equal(t, 0, provider.sends(), "invalid input must never reach the OTP service")
	snap := f.Snapshot()
	assert.Equal(t, StatePhoneEntry, snap.State)
	assert.NotEmpty(t, snap.Error)
	assert.Equal(t, 0, snap.Cooldown, "no cooldown starts on local validation failure")
}

func TestFlow_SendSuccess(t *testing.T) {
	f, provider, _ := newTestFlow(models.RoleClient)

	f.SetPhone("+41 79 123 45 67")
	require.NoError(t, f.Send(context.Background()))

	assert.Equal(t, 1, provider.sends())
	snap := f.Snapshot()
	assert.Equal(t, StateCodeSent, snap.State)
	assert.Equal(t, "+41791234567", snap.Phone, "whitespace is stripped before dispatch")
	assert.Equal(t, 60, snap.Cooldown)
	assert.Empty(t, snap.Error)
}

func TestFlow_SendProviderFailure(t *testing.T) {
	f, provider, _ := newTestFlow(models.RoleClient)
	provider.sendErr = errors.New("gateway down")

	f.SetPhone("+41791234567")
	err := f.Send(context.Background())

	require.Error(t, err)
	snap := f.Snapshot()
	assert.Equal(t, StatePhoneEntry, snap.State)
	assert.NotEmpty(t, snap.Error)
}

func TestFlow_AutoSubmitFiresExactlyOnce(t *testing.T) {
	f, provider, _ := newTestFlow(models.RoleClient)
	f.SetPhone("+41791234567")
	require.NoError(t, f.Send(context.Background()))

	// Fill out of order: last box first. Submission must only fire when
	// all four are non-empty, and only once.
	ctx := context.Background()
	require.NoError(t, f.EnterDigit(ctx, 3, "4"))
	require.NoError(t, f.EnterDigit(ctx, 0, "1"))
	require.NoError(t, f.EnterDigit(ctx, 1, "2"))
	assert.Equal(t, 0, provider.verifies())

	require.NoError(t, f.EnterDigit(ctx, 2, "3"))
	assert.Equal(t, 1, provider.verifies())
	assert.Equal(t, StateVerified, f.Snapshot().State)
}

func TestFlow_VerifySuccessUpdatesSessionAndNavigates(t *testing.T) {
	cases := []struct {
		role models.Role
		want models.Screen
	}{
		{models.RoleClient, models.ScreenExplorer},
		{models.RolePro, models.ScreenProDashboard},
		// Phone verification never opens the admin console.
		{models.RoleAdmin, models.ScreenExplorer},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			f, _, store := newTestFlow(tc.role)
			f.SetPhone("+41791234567")
			require.NoError(t, f.Send(context.Background()))
			enterCode(t, f, "1234")

			snap := store.Snapshot()
			assert.Equal(t, tc.want, snap.Screen)
			assert.True(t, snap.IsAuthenticated)
			assert.Equal(t, "+41791234567", snap.UserPhone)
		})
	}
}

func TestFlow_VerifyFailureClearsDigitsAndRearms(t *testing.T) {
	f, provider, store := newTestFlow(models.RoleClient)
	f.SetPhone("+41791234567")
	require.NoError(t, f.Send(context.Background()))

	provider.verifyErr = ErrCodeMismatch
	ctx := context.Background()
	require.NoError(t, f.EnterDigit(ctx, 0, "1"))
	require.NoError(t, f.EnterDigit(ctx, 1, "2"))
	require.NoError(t, f.EnterDigit(ctx, 2, "3"))
	err := f.EnterDigit(ctx, 3, "4")
	assert.ErrorIs(t, err, ErrCodeMismatch)

	snap := f.Snapshot()
	assert.Equal(t, StateCodeSent, snap.State)
	assert.Equal(t, [CodeLength]string{}, snap.Digits, "all digits cleared on failure")
	assert.Equal(t, 0, snap.Focus, "focus returns to the first box")
	assert.NotEmpty(t, snap.Error)
	assert.False(t, store.Snapshot().IsAuthenticated)

	// The latch re-arms: a second complete sequence verifies again.
	provider.verifyErr = nil
	enterCode(t, f, "5678")
	assert.Equal(t, 2, provider.verifies())
	assert.Equal(t, StateVerified, f.Snapshot().State)
}

func TestFlow_Backspace(t *testing.T) {
	f, _, _ := newTestFlow(models.RoleClient)
	f.SetPhone("+41791234567")
	require.NoError(t, f.Send(context.Background()))

	ctx := context.Background()
	require.NoError(t, f.EnterDigit(ctx, 0, "1"))
	require.NoError(t, f.EnterDigit(ctx, 1, "2"))

	// Focus sits on box 2 (empty): backspace steps back and clears box 1.
	f.Backspace()
	snap := f.Snapshot()
	assert.Equal(t, 1, snap.Focus)
	assert.Equal(t, "", snap.Digits[1])
	assert.Equal(t, "1", snap.Digits[0])

	// Focused box now empty again: another backspace steps to box 0.
	f.Backspace()
	snap = f.Snapshot()
	assert.Equal(t, 0, snap.Focus)
	assert.Equal(t, "", snap.Digits[0])
}

func TestFlow_CooldownDecrementsAndClamps(t *testing.T) {
	f, _, _ := newTestFlow(models.RoleClient)
	f.SetPhone("+41791234567")
	require.NoError(t, f.Send(context.Background()))

	require.Equal(t, 60, f.Cooldown())
	for i := 0; i < 60; i++ {
		f.tickCooldown()
	}
	assert.Equal(t, 0, f.Cooldown())

	// Clamped at zero.
	f.tickCooldown()
	assert.Equal(t, 0, f.Cooldown())
}

func TestFlow_ResendGatedByCooldown(t *testing.T) {
	f, provider, _ := newTestFlow(models.RoleClient)
	f.SetPhone("+41791234567")
	require.NoError(t, f.Send(context.Background()))
	require.Equal(t, 1, provider.sends())

	// Cooldown active: resend is a no-op.
	err := f.Resend(context.Background())
	assert.ErrorIs(t, err, ErrCooldownActive)
	assert.Equal(t, 1, provider.sends())

	for i := 0; i < 60; i++ {
		f.tickCooldown()
	}
	require.NoError(t, f.Resend(context.Background()))
	assert.Equal(t, 2, provider.sends())
	assert.Equal(t, 60, f.Cooldown(), "resend restarts the cooldown")
}

func TestFlow_MountRedirectsWithoutRole(t *testing.T) {
	f, _, store := newTestFlow(models.RoleAnonymous)
	store.Go(models.ScreenOTP)

	assert.False(t, f.Mount())
	assert.Equal(t, models.ScreenRole, store.Snapshot().Screen)

	fWithRole, _, storeWithRole := newTestFlow(models.RolePro)
	storeWithRole.Go(models.ScreenOTP)
	assert.True(t, fWithRole.Mount())
}
