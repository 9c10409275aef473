package flow

import (
	"context"
	"log/slog"
	"sync"

	"github.com/crumhorn/authflow/authapi"
)

// SessionManager exposes the session-management actions against the
// server-held session collection. The local copy is only ever replaced
// wholesale with the server's authoritative list, never spliced.
type SessionManager struct {
	mu       sync.Mutex
	backend  Backend
	identity *IdentityCache
	notifier Notifier
	logger   *slog.Logger

	sessions []authapi.Session
	errMsg   string

	listing        bool
	revokingOne    bool
	revokingOthers bool
	loggingOut     bool
}

func NewSessionManager(backend Backend, identity *IdentityCache, notifier Notifier, logger *slog.Logger) *SessionManager {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionManager{
		backend:  backend,
		identity: identity,
		notifier: notifier,
		logger:   logger,
	}
}

// Sessions returns a copy of the last fetched collection. Empty when
// the last list attempt failed; no partial or stale list is shown.
func (m *SessionManager) Sessions() []authapi.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]authapi.Session, len(m.sessions))
	copy(out, m.sessions)

	return out
}

// Err returns the inline list error, or empty.
func (m *SessionManager) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.errMsg
}

// IsCurrent reports whether id is the session that authenticated this
// client. The current session is rendered distinctly and never offered
// a revoke action, only logout.
func (m *SessionManager) IsCurrent(id string) bool {
	state := m.identity.Snapshot()

	return state.Identity != nil && state.Identity.SessionID == id
}

// List fetches the full current collection. On failure the list is
// suppressed entirely and the error rendered inline.
func (m *SessionManager) List(ctx context.Context) error {
	m.mu.Lock()
	if m.listing {
		m.mu.Unlock()
		return ErrBusy
	}
	m.listing = true
	m.mu.Unlock()

	defer m.clearFlag(&m.listing)

	sessions, err := m.backend.Sessions(ctx)
	if err != nil {
		m.mu.Lock()
		m.sessions = nil
		m.errMsg = displayMessage(err)
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.sessions = sessions
	m.errMsg = ""
	m.mu.Unlock()

	return nil
}

// RevokeOne revokes the session with the given id. Revoking the
// current session is rejected locally; that action is logout. On
// success the local collection becomes exactly the server's
// post-revocation list; on failure the prior list is untouched.
func (m *SessionManager) RevokeOne(ctx context.Context, id string) error {
	if m.IsCurrent(id) {
		return ErrCurrentSession
	}

	m.mu.Lock()
	if m.revokingOne {
		m.mu.Unlock()
		return ErrBusy
	}
	m.revokingOne = true
	m.mu.Unlock()

	defer m.clearFlag(&m.revokingOne)

	resp, err := m.backend.RevokeSession(ctx, id)
	if err != nil {
		m.notifier.Error(displayMessage(err))
		return err
	}

	m.mu.Lock()
	m.sessions = resp.Sessions
	m.mu.Unlock()

	m.notifier.Success(resp.Message)

	return nil
}

// RevokeOthers revokes every session except the caller's own current
// one, under the same replace-on-success contract.
func (m *SessionManager) RevokeOthers(ctx context.Context) error {
	m.mu.Lock()
	if m.revokingOthers {
		m.mu.Unlock()
		return ErrBusy
	}
	m.revokingOthers = true
	m.mu.Unlock()

	defer m.clearFlag(&m.revokingOthers)

	resp, err := m.backend.RevokeOtherSessions(ctx)
	if err != nil {
		m.notifier.Error(displayMessage(err))
		return err
	}

	m.mu.Lock()
	m.sessions = resp.Sessions
	m.mu.Unlock()

	m.notifier.Success(resp.Message)

	return nil
}

// Logout destroys the current session and refetches the identity cache
// so the shared state reflects the logged-out reality before any
// redirect.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	if m.loggingOut {
		m.mu.Unlock()
		return ErrBusy
	}
	m.loggingOut = true
	m.mu.Unlock()

	defer m.clearFlag(&m.loggingOut)

	msg, err := m.backend.Logout(ctx)
	if err != nil {
		m.notifier.Error(displayMessage(err))
		return err
	}

	if msg == "" {
		msg = "Logged out"
	}
	m.notifier.Success(msg)

	m.identity.Refetch(ctx)

	return nil
}

func (m *SessionManager) clearFlag(flag *bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	*flag = false
}
