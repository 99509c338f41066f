// Package session implements the root state container for one running
// client: the current screen, role, auth flags, the in-progress booking
// record, and the toast/notification side channel. All mutation goes
// through a single serialized Dispatch, so the store has exactly one
// writer at a time even though timers and HTTP handlers call in from
// different goroutines.
package session

import (
	"sync"

	"bookflow/models"
	"bookflow/utils"

	"go.uber.org/zap"
)

// Store holds one session and the timers its screens own.
type Store struct {
	mu      sync.Mutex
	state   models.Session
	version uint64

	// sched holds app-lifetime tasks (toast auto-dismissal). Screen-owned
	// tasks are tracked separately so navigating away tears them down.
	sched       *utils.Scheduler
	screenTasks []*utils.Task

	logger *zap.Logger
}

// NewStore returns a store in its initial state: login screen, no role,
// empty booking record.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &Store{
		state: models.Session{
			Screen:        models.ScreenLogin,
			Role:          models.RoleAnonymous,
			Notifications: []models.Notification{},
			Toasts:        []models.Toast{},
		},
		sched:  utils.NewScheduler(),
		logger: logger,
	}
}

// Dispatch applies one action under the store lock. Actions cannot fail;
// they are pure state assignment.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.apply(&s.state)
	s.version++
}

// Snapshot returns a copy of the session. Slices are copied so callers
// never alias live state.
func (s *Store) Snapshot() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.state
	snap.Notifications = append([]models.Notification(nil), s.state.Notifications...)
	snap.Toasts = append([]models.Toast(nil), s.state.Toasts...)
	return snap
}

// Version increments on every dispatch; handlers use it to expose a
// consistent change counter to polling clients.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Go switches the active screen unconditionally and cancels every timer
// the previous screen registered. Role gating is not enforced here; each
// role-restricted screen checks EnsureRole on mount.
func (s *Store) Go(screen models.Screen) {
	s.cancelScreenTasks()
	s.Dispatch(SetScreen{Screen: screen})
	s.logger.Debug("screen switch", zap.String("screen", string(screen)))
}

// Update shallow-merges the patch into the session at the top level only.
// Nested records carried by the patch replace their targets wholesale.
func (s *Store) Update(patch models.SessionPatch) {
	s.Dispatch(MergeSession{Patch: patch})
}

// EnsureRole is the mount-time guard for role-restricted screens: when the
// current screen requires a role and none is set, it redirects to the role
// chooser and reports false so the caller renders nothing.
func (s *Store) EnsureRole() bool {
	snap := s.Snapshot()
	if !snap.Screen.RequiresRole() || snap.Role != models.RoleAnonymous {
		return true
	}
	s.logger.Warn("role gate redirect", zap.String("screen", string(snap.Screen)))
	s.Go(models.ScreenRole)
	return false
}

// Scheduler exposes the store's app-lifetime scheduler.
func (s *Store) Scheduler() *utils.Scheduler {
	return s.sched
}

// OwnScreenTask registers a timer owned by the currently mounted screen.
// The next Go() cancels it.
func (s *Store) OwnScreenTask(t *utils.Task) {
	s.mu.Lock()
	s.screenTasks = append(s.screenTasks, t)
	s.mu.Unlock()
}

func (s *Store) cancelScreenTasks() {
	s.mu.Lock()
	tasks := s.screenTasks
	s.screenTasks = nil
	s.mu.Unlock()
	for _, t := range tasks {
		t.Cancel()
	}
}

// Close cancels every timer the store still owns. Used when a session is
// pruned from the registry.
func (s *Store) Close() {
	s.cancelScreenTasks()
	s.sched.CancelAll()
}
