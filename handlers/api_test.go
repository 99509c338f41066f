package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookflow/config"
	"bookflow/handlers"
	"bookflow/models"
	"bookflow/routes"
	"bookflow/services/backend"
	"bookflow/services/booking"
	"bookflow/services/client"
	"bookflow/services/otp"
	"bookflow/services/payment"
	"bookflow/services/prefs"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// fixedCodeProvider accepts exactly one code, standing in for the SMS
// round trip.
type fixedCodeProvider struct {
	code string
}

func (p fixedCodeProvider) Send(ctx context.Context, phone string) error { return nil }

func (p fixedCodeProvider) Verify(ctx context.Context, phone, code string) error {
	if code != p.code {
		return otp.ErrCodeMismatch
	}
	return nil
}

type gateway struct {
	engine *gin.Engine
}

func newGateway(t *testing.T) *gateway {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.MaxRequestsPerMin = 1000

	mr := miniredis.RunT(t)
	be := backend.NewInMemoryService()
	registry := client.NewRegistry(client.Deps{
		Backend:     be,
		OTPProvider: fixedCodeProvider{code: "1234"},
		PayCfg:      payment.Config{Instance: "bookflow", AppBaseURL: "https://app.example.ch"},
		Timings:     booking.Timings{ProcessingSeconds: 8, TrackerWindowSeconds: 1800, TrackerConfirmSeconds: 6},
		OTPCooldown: 60,
		Logger:      zap.NewNop(),
	})
	hb := handlers.NewHandlerBundle(registry,
		prefs.NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()})),
		be, zap.NewNop())

	engine := gin.New()
	routes.RegisterSessionRoutes(engine, hb)
	routes.RegisterProRoutes(engine, hb)
	return &gateway{engine: engine}
}

func (g *gateway) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	g.engine.ServeHTTP(w, req)

	out := map[string]json.RawMessage{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

func (g *gateway) openSession(t *testing.T) (id, token string) {
	t.Helper()
	w, out := g.do(t, http.MethodPost, "/api/sessions", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.Unmarshal(out["sessionId"], &id))
	require.NoError(t, json.Unmarshal(out["token"], &token))
	return id, token
}

func sessionFrom(t *testing.T, raw json.RawMessage) models.Session {
	t.Helper()
	var s models.Session
	require.NoError(t, json.Unmarshal(raw, &s))
	return s
}

func TestGateway_SessionLifecycle(t *testing.T) {
	g := newGateway(t)
	id, token := g.openSession(t)

	// No token, no session.
	w, _ := g.do(t, http.MethodGet, "/api/sessions/"+id, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A token from one session cannot address another.
	otherID, _ := g.openSession(t)
	w, _ = g.do(t, http.MethodGet, "/api/sessions/"+otherID, token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, out := g.do(t, http.MethodGet, "/api/sessions/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	s := sessionFrom(t, out["session"])
	assert.Equal(t, models.ScreenLogin, s.Screen)
	assert.Equal(t, models.RoleAnonymous, s.Role)
}

func TestGateway_RoleGateBlocksBooking(t *testing.T) {
	g := newGateway(t)
	id, token := g.openSession(t)

	w, out := g.do(t, http.MethodPost, "/api/sessions/"+id+"/booking/start", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var redirect string
	require.NoError(t, json.Unmarshal(out["redirect"], &redirect))
	assert.Equal(t, "role", redirect)
}

func TestGateway_ClientJourney(t *testing.T) {
	g := newGateway(t)
	id, token := g.openSession(t)
	base := "/api/sessions/" + id

	// Choosing the client role routes into phone verification.
	w, out := g.do(t, http.MethodPost, base+"/role", token, gin.H{"role": "client"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, models.ScreenOTP, sessionFrom(t, out["session"]).Screen)

	// A malformed number is rejected before any SMS is dispatched.
	w, _ = g.do(t, http.MethodPost, base+"/otp/send", token, gin.H{"phone": "+4179123"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = g.do(t, http.MethodPost, base+"/otp/send", token, gin.H{"phone": "+41 79 123 45 67"})
	require.Equal(t, http.StatusOK, w.Code)

	// Entering the fourth digit submits automatically; a wrong code keeps
	// the screen with cleared slots.
	for i, d := range []string{"9", "9", "9"} {
		w, _ = g.do(t, http.MethodPost, base+"/otp/digit", token, gin.H{"index": i, "digit": d})
		require.Equal(t, http.StatusOK, w.Code)
	}
	w, out = g.do(t, http.MethodPost, base+"/otp/digit", token, gin.H{"index": 3, "digit": "9"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, out, "error")
	require.Equal(t, models.ScreenOTP, sessionFrom(t, out["session"]).Screen)

	// The right code lands the client on the explorer.
	for i, d := range []string{"1", "2", "3", "4"} {
		w, out = g.do(t, http.MethodPost, base+"/otp/digit", token, gin.H{"index": i, "digit": d})
		require.Equal(t, http.StatusOK, w.Code)
	}
	s := sessionFrom(t, out["session"])
	assert.Equal(t, models.ScreenExplorer, s.Screen)
	assert.True(t, s.IsAuthenticated)
	assert.Equal(t, "+41791234567", s.UserPhone)

	// Wizard: service, slot, contact, then the payment handoff.
	w, _ = g.do(t, http.MethodPost, base+"/booking/start", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = g.do(t, http.MethodPost, base+"/booking/next", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "no service chosen yet")

	w, _ = g.do(t, http.MethodPost, base+"/booking/service", token, gin.H{"serviceId": "svc-1"})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = g.do(t, http.MethodPost, base+"/booking/next", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = g.do(t, http.MethodPost, base+"/booking/slot", token, gin.H{"slotId": "slot-now"})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = g.do(t, http.MethodPost, base+"/booking/next", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = g.do(t, http.MethodPost, base+"/booking/contact", token, gin.H{
		"phone": "+41791234567", "adresse": "Rue de Rive 12", "ville": "Geneve",
	})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = g.do(t, http.MethodPost, base+"/booking/next", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, out = g.do(t, http.MethodPost, base+"/booking/next", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ScreenProcessing, sessionFrom(t, out["session"]).Screen)

	var wiz booking.Snapshot
	require.NoError(t, json.Unmarshal(out["wizard"], &wiz))
	assert.Contains(t, wiz.PaymentURL, "bookflow.payrexx.com/pay")
	assert.Contains(t, wiz.PaymentURL, "amount=3500")
	assert.Equal(t, 8, wiz.ProcessingRemaining)

	// Tracking has not started during the countdown.
	w, _ = g.do(t, http.MethodGet, base+"/booking/tracker", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGateway_ProsAndPrefs(t *testing.T) {
	g := newGateway(t)
	id, token := g.openSession(t)
	base := "/api/sessions/" + id

	w, out := g.do(t, http.MethodGet, "/api/pros?category=coiffure", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pros []models.Pro
	require.NoError(t, json.Unmarshal(out["pros"], &pros))
	require.Len(t, pros, 1)
	assert.Equal(t, "Salon Lumière", pros[0].Name)

	w, _ = g.do(t, http.MethodGet, "/api/pros/pro-404", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The sidebar flag round-trips through Redis.
	w, _ = g.do(t, http.MethodPut, base+"/prefs/sidebar", token, gin.H{"collapsed": true})
	require.Equal(t, http.StatusOK, w.Code)

	w, out = g.do(t, http.MethodGet, base+"/prefs/sidebar", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var collapsed bool
	require.NoError(t, json.Unmarshal(out["collapsed"], &collapsed))
	assert.True(t, collapsed)
}

func TestGateway_ToastDismiss(t *testing.T) {
	g := newGateway(t)
	id, token := g.openSession(t)
	base := "/api/sessions/" + id

	// Unknown toast ids are ignored.
	w, out := g.do(t, http.MethodPost, base+"/toasts/no-such-toast/dismiss", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var toasts []models.Toast
	require.NoError(t, json.Unmarshal(out["toasts"], &toasts))
	assert.Empty(t, toasts)
}

func TestGateway_AdminModeration(t *testing.T) {
	g := newGateway(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("console-secret"), bcrypt.MinCost)
	require.NoError(t, err)
	config.AppConfig.AdminPasswordHash = string(hash)
	defer func() { config.AppConfig.AdminPasswordHash = "" }()

	id, token := g.openSession(t)
	base := "/api/sessions/" + id

	// Moderation is closed until the console password has been entered.
	w, _ := g.do(t, http.MethodGet, base+"/admin/overview", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = g.do(t, http.MethodPost, base+"/admin/login", token, gin.H{"password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, out := g.do(t, http.MethodPost, base+"/admin/login", token, gin.H{"password": "console-secret"})
	require.Equal(t, http.StatusOK, w.Code)
	s := sessionFrom(t, out["session"])
	assert.Equal(t, models.ScreenAdmin, s.Screen)
	assert.True(t, s.AdminAuthenticated)

	w, out = g.do(t, http.MethodGet, base+"/admin/overview", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pros []models.Pro
	require.NoError(t, json.Unmarshal(out["pros"], &pros))
	assert.Len(t, pros, 2)

	// Suspension round-trips through the backend and blocks new bookings.
	w, _ = g.do(t, http.MethodPost, base+"/admin/pros/pro-1/suspend", token, gin.H{"suspended": true})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = g.do(t, http.MethodGet, "/api/pros/pro-1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pro models.Pro
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pro))
	assert.True(t, pro.Suspended)

	w, _ = g.do(t, http.MethodPost, base+"/booking/start", token, gin.H{"proId": "pro-1"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = g.do(t, http.MethodPost, base+"/admin/pros/pro-1/suspend", token, gin.H{"suspended": false})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = g.do(t, http.MethodPost, base+"/booking/start", token, gin.H{"proId": "pro-1"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGateway_UpdateRejectsUnknownRole(t *testing.T) {
	g := newGateway(t)
	id, token := g.openSession(t)

	w, _ := g.do(t, http.MethodPost, fmt.Sprintf("/api/sessions/%s/update", id), token, gin.H{"role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
