package flow

import (
	"context"
	"log/slog"
	"sync"
)

// LoginForm is the single-step login action: local validation, one
// exchange, then an awaited identity refetch so the redirect that
// follows sees fresh shared state.
type LoginForm struct {
	mu       sync.Mutex
	backend  Backend
	identity *IdentityCache
	notifier Notifier
	logger   *slog.Logger

	errMsg     string
	fieldErrs  map[string]string
	submitting bool
}

func NewLoginForm(backend Backend, identity *IdentityCache, notifier Notifier, logger *slog.Logger) *LoginForm {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LoginForm{
		backend:  backend,
		identity: identity,
		notifier: notifier,
		logger:   logger,
	}
}

// Err returns the form-local error text, or empty.
func (l *LoginForm) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.errMsg
}

// FieldErrors returns per-field validation messages from the last
// submit.
func (l *LoginForm) FieldErrors() map[string]string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.fieldErrs
}

// ClearError resets the shown error.
func (l *LoginForm) ClearError() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.errMsg = ""
	l.fieldErrs = nil
}

// Submit validates email and password locally, then performs the login
// exchange. On success the identity cache is refetched exactly once;
// the resulting identity comes from that refetch, not from the login
// response itself.
func (l *LoginForm) Submit(ctx context.Context, email, password string) error {
	l.mu.Lock()
	if l.submitting {
		l.mu.Unlock()
		return ErrBusy
	}
	l.submitting = true
	l.errMsg = ""
	l.fieldErrs = nil
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.submitting = false
		l.mu.Unlock()
	}()

	payload := loginPayload{
		Email:    normalizeInput(email),
		Password: password,
	}
	if err := payload.Validate(); err != nil {
		l.mu.Lock()
		l.fieldErrs = fieldErrorMap(err)
		l.mu.Unlock()
		return err
	}

	msg, err := l.backend.Login(ctx, payload.Email, payload.Password)
	if err != nil {
		l.mu.Lock()
		l.errMsg = displayMessage(err)
		l.mu.Unlock()
		return err
	}

	l.notifier.Success(msg)
	l.identity.Refetch(ctx)

	return nil
}
