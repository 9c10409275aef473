package flow

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/crumhorn/authflow/authapi"
)

// AuthState is a read-only snapshot of the process-wide authentication
// state. While Loading is true, Identity is not authoritative.
// RateLimited true means the last fetch was rejected for backoff, not
// that the user is unauthenticated; consumers must not redirect to
// login on a nil Identity while RateLimited is set.
type AuthState struct {
	Identity    *authapi.User
	Loading     bool
	RateLimited bool
}

// Authenticated reports whether a settled identity is present.
func (s AuthState) Authenticated() bool {
	return !s.Loading && s.Identity != nil
}

// IdentityCache holds the one shared "current user" value. It is the
// sole writer of that value; everything else observes snapshots.
// Concurrent fetches collapse into a single exchange, and a completion
// that lost a race to a newer fetch is discarded rather than applied.
type IdentityCache struct {
	mu       sync.Mutex
	backend  Backend
	notifier Notifier
	logger   *slog.Logger

	state AuthState
	seq   uint64

	group singleflight.Group

	subs    map[int]func(AuthState)
	nextSub int
}

// NewIdentityCache creates the cache in its initial state: loading, no
// identity, not rate limited. The caller triggers exactly one Fetch at
// startup.
func NewIdentityCache(backend Backend, notifier Notifier, logger *slog.Logger) *IdentityCache {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &IdentityCache{
		backend:  backend,
		notifier: notifier,
		logger:   logger,
		state:    AuthState{Loading: true},
		subs:     make(map[int]func(AuthState)),
	}
}

// Snapshot returns the current state.
func (c *IdentityCache) Snapshot() AuthState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Subscribe registers an observer called with a snapshot after every
// settled state change. The returned function cancels the
// subscription. Observers run on the fetching goroutine and must not
// call back into the cache.
func (c *IdentityCache) Subscribe(fn func(AuthState)) (cancel func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Fetch resolves the current identity with one server exchange and
// applies the outcome:
//
//   - success: identity replaced wholesale, rate-limited cleared
//   - rate limited: prior identity kept, RateLimited set, the notifier
//     told to announce the backoff
//   - anything else (including not authenticated): identity cleared
//
// Loading is false after the first completed fetch. Fetch returns once
// the outcome has been applied, so a dependent navigation that runs
// after it sees fresh state.
func (c *IdentityCache) Fetch(ctx context.Context) {
	_, _, _ = c.group.Do("fetch", func() (interface{}, error) {
		c.mu.Lock()
		c.seq++
		seq := c.seq
		c.mu.Unlock()

		user, err := c.backend.GetUser(ctx)
		c.apply(seq, user, err)

		return nil, nil
	})
}

// Refetch is invoked after every identity-mutating action (login,
// registration completion, verification, logout) so the cache is never
// stale at the point of redirect. A fetch already in flight predates
// the action that triggered this refetch, so it must not be joined:
// its result is forgotten and a fresh exchange issued, with the
// sequence number discarding the older completion when it lands.
func (c *IdentityCache) Refetch(ctx context.Context) {
	c.group.Forget("fetch")
	c.Fetch(ctx)
}

func (c *IdentityCache) apply(seq uint64, user *authapi.User, err error) {
	c.mu.Lock()

	if seq != c.seq {
		// A newer fetch was issued while this one was in flight; its
		// completion owns the state.
		c.mu.Unlock()
		c.logger.Debug("discarding stale identity fetch", slog.Uint64("seq", seq))
		return
	}

	rateLimited := false
	switch {
	case err == nil:
		c.state.Identity = user
		c.state.RateLimited = false
	case errors.Is(err, authapi.ErrRateLimited):
		// Keep whatever identity we had; this is a backoff signal,
		// not an authentication verdict.
		c.state.RateLimited = true
		rateLimited = true
	default:
		c.state.Identity = nil
		c.state.RateLimited = false
	}
	c.state.Loading = false

	snapshot := c.state
	observers := make([]func(AuthState), 0, len(c.subs))
	for _, fn := range c.subs {
		observers = append(observers, fn)
	}
	c.mu.Unlock()

	if err != nil && !rateLimited {
		c.logger.Debug("identity fetch failed", slog.String("error", err.Error()))
	}
	if rateLimited {
		c.notifier.Error("You're making too many requests.")
	}

	for _, fn := range observers {
		fn(snapshot)
	}
}
