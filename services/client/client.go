// Package client ties one session store to its stateful flows (OTP, the
// booking wizard) and tracks the set of live clients the gateway serves.
package client

import (
	"sync"
	"time"

	"bookflow/services/backend"
	"bookflow/services/booking"
	"bookflow/services/otp"
	"bookflow/services/payment"
	"bookflow/services/session"
	"bookflow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client is everything one browser tab owns: the session store plus the
// flows that carry state between requests.
type Client struct {
	ID     string
	Store  *session.Store
	OTP    *otp.Flow
	Wizard *booking.Wizard

	lastSeen time.Time
}

// Deps are the collaborators shared by every client.
type Deps struct {
	Backend     backend.Service
	OTPProvider otp.Provider
	PayCfg      payment.Config
	Timings     booking.Timings
	OTPCooldown int
	Logger      *zap.Logger
}

// Registry tracks live clients. Idle ones are pruned by the background
// worker, which also tears down their timers.
type Registry struct {
	mu      sync.Mutex
	clients map[string]*Client
	deps    Deps
	logger  *zap.Logger
}

func NewRegistry(deps Deps) *Registry {
	if deps.Logger == nil {
		deps.Logger = utils.GetLogger()
	}
	return &Registry{
		clients: make(map[string]*Client),
		deps:    deps,
		logger:  deps.Logger,
	}
}

// New creates a fresh client with its own store, OTP flow and wizard.
func (r *Registry) New() *Client {
	store := session.NewStore(r.logger)
	c := &Client{
		ID:       uuid.New().String(),
		Store:    store,
		OTP:      otp.NewFlow(store, r.deps.OTPProvider, r.deps.OTPCooldown),
		Wizard:   booking.NewWizard(store, r.deps.Backend, r.deps.PayCfg, r.deps.Timings, r.logger),
		lastSeen: time.Now(),
	}
	r.mu.Lock()
	r.clients[c.ID] = c
	r.mu.Unlock()
	return c
}

// Get returns the client for an id and refreshes its idle clock.
func (r *Registry) Get(id string) (*Client, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, false
	}
	c.lastSeen = time.Now()
	return c, true
}

// Len reports how many clients are live.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// PruneIdle drops clients idle longer than maxIdle and closes their
// stores. Returns how many were dropped.
func (r *Registry) PruneIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	var stale []*Client

	r.mu.Lock()
	for id, c := range r.clients {
		if c.lastSeen.Before(cutoff) {
			stale = append(stale, c)
			delete(r.clients, id)
		}
	}
	r.mu.Unlock()

	for _, c := range stale {
		c.Store.Close()
	}
	if len(stale) > 0 {
		r.logger.Info("pruned idle clients", zap.Int("count", len(stale)))
	}
	return len(stale)
}
