package flow

import (
	"context"
	"log/slog"
	"sync"
)

// RegistrationStep is the visible step of the registration flow.
type RegistrationStep int

const (
	RegistrationStepCredentials RegistrationStep = iota
	RegistrationStepOTP
)

func (s RegistrationStep) String() string {
	switch s {
	case RegistrationStepCredentials:
		return "collecting-credentials"
	case RegistrationStepOTP:
		return "awaiting-otp"
	}
	return "unknown"
}

// defaultResendTTL is the cooldown assumed when the register response
// omits a ttl.
const defaultResendTTL = 20

// RegistrationFlow drives collecting-credentials → awaiting-otp →
// complete. Entry and regression are resolved from the registration
// step token, which makes the flow resumable across restarts without a
// server round trip.
type RegistrationFlow struct {
	mu       sync.Mutex
	backend  Backend
	tokens   *StepTokens
	identity *IdentityCache
	notifier Notifier
	logger   *slog.Logger
	cooldown *Cooldown

	step      RegistrationStep
	complete  bool
	errMsg    string
	fieldErrs map[string]string

	// cooldownErr disables only the cooldown display, never the form.
	cooldownErr string

	submitting bool
	resending  bool
	syncing    bool
}

// NewRegistrationFlow creates a flow instance and resolves its entry
// step from token presence.
func NewRegistrationFlow(backend Backend, tokens *StepTokens, identity *IdentityCache, notifier Notifier, logger *slog.Logger) *RegistrationFlow {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	f := &RegistrationFlow{
		backend:  backend,
		tokens:   tokens,
		identity: identity,
		notifier: notifier,
		logger:   logger,
		cooldown: NewCooldown(),
	}
	f.Resolve()

	return f
}

// Resolve re-reads the registration step token and sets the current
// step accordingly: token present resumes at awaiting-otp, otherwise
// the flow starts (or regresses) to collecting credentials.
func (f *RegistrationFlow) Resolve() RegistrationStep {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.resolveLocked()
}

func (f *RegistrationFlow) resolveLocked() RegistrationStep {
	if f.tokens.HasRegistration() {
		f.step = RegistrationStepOTP
	} else {
		f.step = RegistrationStepCredentials
	}
	return f.step
}

// Step returns the current step.
func (f *RegistrationFlow) Step() RegistrationStep {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.step
}

// Complete reports whether the flow finished. A complete flow holds no
// terminal UI state; the caller leaves it entirely.
func (f *RegistrationFlow) Complete() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.complete
}

// Err returns the step-local error text, or empty.
func (f *RegistrationFlow) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.errMsg
}

// FieldErrors returns per-field validation messages from the last
// submit, keyed by field name.
func (f *RegistrationFlow) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.fieldErrs
}

// ClearError resets the shown error. The frontend calls this on every
// edit of the OTP input after a failure ("retry on edit").
func (f *RegistrationFlow) ClearError() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.errMsg = ""
	f.fieldErrs = nil
}

// CooldownRemaining returns the seconds until resend is allowed.
func (f *RegistrationFlow) CooldownRemaining() int {
	return f.cooldown.Remaining()
}

// CooldownErr returns the error text for the cooldown display area, or
// empty. A nonzero value hides only that area; inputs stay usable.
func (f *RegistrationFlow) CooldownErr() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.cooldownErr
}

// Close tears down the flow's cooldown timer.
func (f *RegistrationFlow) Close() {
	f.cooldown.Stop()
}

// SubmitCredentials validates name, email and password locally and, on
// success, performs the register exchange. A server success records the
// returned cooldown and advances to awaiting-otp; a failure keeps the
// flow on this step with the server's message surfaced.
func (f *RegistrationFlow) SubmitCredentials(ctx context.Context, name, email, password string) error {
	f.mu.Lock()
	if f.complete {
		f.mu.Unlock()
		return ErrFlowComplete
	}
	if f.step != RegistrationStepCredentials {
		f.mu.Unlock()
		return ErrInvalidStep
	}
	if f.submitting {
		f.mu.Unlock()
		return ErrBusy
	}
	f.submitting = true
	f.errMsg = ""
	f.fieldErrs = nil
	f.mu.Unlock()

	defer f.clearFlag(&f.submitting)

	creds := credentials{
		Name:     normalizeInput(name),
		Email:    normalizeInput(email),
		Password: password,
	}
	if err := creds.Validate(); err != nil {
		f.setFieldErrors(err)
		return err
	}

	resp, err := f.backend.Register(ctx, creds.Name, creds.Email, creds.Password)
	if err != nil {
		f.setError(displayMessage(err))
		return err
	}

	ttl := resp.TTL
	if ttl == 0 {
		ttl = defaultResendTTL
	}
	f.cooldown.Set(ttl)

	f.mu.Lock()
	f.step = RegistrationStepOTP
	f.mu.Unlock()

	f.notifier.Success(resp.Message)

	return nil
}

// SubmitOTP verifies the emailed code. The code must be exactly six
// characters; shorter or longer input fails locally without a network
// call. On server success the identity cache is refetched and the flow
// completes. On failure the flow stays at awaiting-otp, regressing to
// collecting credentials only when the server rejected the step itself
// (expired token) rather than the code.
func (f *RegistrationFlow) SubmitOTP(ctx context.Context, code string) error {
	f.mu.Lock()
	if f.complete {
		f.mu.Unlock()
		return ErrFlowComplete
	}
	if f.step != RegistrationStepOTP {
		f.mu.Unlock()
		return ErrInvalidStep
	}
	if f.submitting {
		f.mu.Unlock()
		return ErrBusy
	}
	f.submitting = true
	f.errMsg = ""
	f.fieldErrs = nil
	f.mu.Unlock()

	defer f.clearFlag(&f.submitting)

	otp := otpCode{Code: code}
	if err := otp.Validate(); err != nil {
		f.setFieldErrors(err)
		return err
	}

	msg, err := f.backend.VerifyRegistration(ctx, otp.Code)
	if err != nil {
		f.setError(displayMessage(err))
		if stepRejected(err) {
			f.Resolve()
		}
		return err
	}

	f.notifier.Success(msg)

	// Awaited so the shared identity is fresh before any redirect.
	f.identity.Refetch(ctx)

	f.cooldown.Stop()

	f.mu.Lock()
	f.complete = true
	f.mu.Unlock()

	return nil
}

// ResendOTP requests a fresh code. It is a no-op unless the cooldown
// has reached zero; on success the cooldown restarts from the server's
// value, never a client-guessed one.
func (f *RegistrationFlow) ResendOTP(ctx context.Context) error {
	f.mu.Lock()
	if f.complete {
		f.mu.Unlock()
		return ErrFlowComplete
	}
	if f.step != RegistrationStepOTP {
		f.mu.Unlock()
		return ErrInvalidStep
	}
	if f.resending {
		f.mu.Unlock()
		return ErrBusy
	}
	if f.cooldown.Remaining() > 0 {
		f.mu.Unlock()
		return ErrCooldownActive
	}
	f.resending = true
	f.mu.Unlock()

	defer f.clearFlag(&f.resending)

	ttl, err := f.backend.ResendRegistrationOTP(ctx)
	if err != nil {
		f.setError(displayMessage(err))
		if stepRejected(err) {
			f.Resolve()
		}
		return err
	}

	f.cooldown.Set(ttl)
	f.notifier.Success("OTP has been sent to your email")

	return nil
}

// SyncCooldown re-reads the server's authoritative cooldown value.
// Called when the awaiting-otp step becomes visible, since the clock
// may already be running from a prior attempt. Failure disables only
// the cooldown display.
func (f *RegistrationFlow) SyncCooldown(ctx context.Context) error {
	f.mu.Lock()
	if f.syncing {
		f.mu.Unlock()
		return ErrBusy
	}
	f.syncing = true
	f.mu.Unlock()

	defer f.clearFlag(&f.syncing)

	ttl, err := f.backend.CooldownTime(ctx)
	if err != nil {
		f.mu.Lock()
		f.cooldownErr = displayMessage(err)
		f.mu.Unlock()
		return err
	}

	f.mu.Lock()
	f.cooldownErr = ""
	f.mu.Unlock()

	if ttl > 0 {
		f.cooldown.Set(ttl)
	}

	return nil
}

func (f *RegistrationFlow) setError(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.errMsg = msg
}

func (f *RegistrationFlow) setFieldErrors(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fieldErrs = fieldErrorMap(err)
}

func (f *RegistrationFlow) clearFlag(flag *bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	*flag = false
}
