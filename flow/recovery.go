package flow

import (
	"context"
	"log/slog"
	"sync"
)

// RecoveryStep is the visible step of the password-recovery flow.
type RecoveryStep int

const (
	RecoveryStepEmail RecoveryStep = iota
	RecoveryStepOTP
	RecoveryStepNewPassword
)

func (s RecoveryStep) String() string {
	switch s {
	case RecoveryStepEmail:
		return "awaiting-email"
	case RecoveryStepOTP:
		return "awaiting-otp"
	case RecoveryStepNewPassword:
		return "awaiting-new-password"
	}
	return "unknown"
}

// RecoveryFlow drives awaiting-email → awaiting-otp →
// awaiting-new-password → complete. The reset token outranks the OTP
// token when resolving the entry step; token checks re-run on every
// step change so a server-side expiry is picked up on the next cycle.
// Completing the flow does not log the user in.
type RecoveryFlow struct {
	mu       sync.Mutex
	backend  Backend
	tokens   *StepTokens
	notifier Notifier
	logger   *slog.Logger
	cooldown *Cooldown

	step      RecoveryStep
	complete  bool
	errMsg    string
	fieldErrs map[string]string

	cooldownErr string

	submitting bool
	resending  bool
	syncing    bool
}

// NewRecoveryFlow creates a flow instance and resolves its entry step
// from token presence.
func NewRecoveryFlow(backend Backend, tokens *StepTokens, notifier Notifier, logger *slog.Logger) *RecoveryFlow {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	f := &RecoveryFlow{
		backend:  backend,
		tokens:   tokens,
		notifier: notifier,
		logger:   logger,
		cooldown: NewCooldown(),
	}
	f.Resolve()

	return f
}

// Resolve re-reads the recovery step tokens: reset token present
// resumes at awaiting-new-password, otherwise an OTP token resumes at
// awaiting-otp, otherwise the flow starts at awaiting-email.
func (f *RecoveryFlow) Resolve() RecoveryStep {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.resolveLocked()
}

func (f *RecoveryFlow) resolveLocked() RecoveryStep {
	switch {
	case f.tokens.HasRecoveryReset():
		f.step = RecoveryStepNewPassword
	case f.tokens.HasRecoveryOTP():
		f.step = RecoveryStepOTP
	default:
		f.step = RecoveryStepEmail
	}
	return f.step
}

// Step returns the current step.
func (f *RecoveryFlow) Step() RecoveryStep {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.step
}

// Complete reports whether the password was reset. The caller then
// navigates to the unauthenticated landing state.
func (f *RecoveryFlow) Complete() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.complete
}

// Err returns the step-local error text, or empty.
func (f *RecoveryFlow) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.errMsg
}

// FieldErrors returns per-field validation messages from the last
// submit, keyed by field name.
func (f *RecoveryFlow) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.fieldErrs
}

// ClearError resets the shown error ("retry on edit").
func (f *RecoveryFlow) ClearError() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.errMsg = ""
	f.fieldErrs = nil
}

// CooldownRemaining returns the seconds until resend is allowed.
func (f *RecoveryFlow) CooldownRemaining() int {
	return f.cooldown.Remaining()
}

// CooldownErr returns the error text for the cooldown display area.
func (f *RecoveryFlow) CooldownErr() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.cooldownErr
}

// Close tears down the flow's cooldown timer.
func (f *RecoveryFlow) Close() {
	f.cooldown.Stop()
}

// SubmitEmail validates the address locally and requests a recovery
// OTP. On success the flow advances to awaiting-otp and independently
// syncs the cooldown clock, which may already be running from a prior
// attempt.
func (f *RecoveryFlow) SubmitEmail(ctx context.Context, email string) error {
	f.mu.Lock()
	if f.complete {
		f.mu.Unlock()
		return ErrFlowComplete
	}
	if f.step != RecoveryStepEmail {
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

	payload := recoveryEmail{Email: normalizeInput(email)}
	if err := payload.Validate(); err != nil {
		f.setFieldErrors(err)
		return err
	}

	msg, err := f.backend.RequestRecoveryOTP(ctx, payload.Email)
	if err != nil {
		f.setError(displayMessage(err))
		return err
	}

	f.mu.Lock()
	f.step = RecoveryStepOTP
	f.mu.Unlock()

	if msg == "" {
		msg = "OTP has been sent to your email"
	}
	f.notifier.Success(msg)

	// Dedicated exchange, distinct from the submit; its failure only
	// disables the cooldown display.
	_ = f.SyncCooldown(ctx)

	return nil
}

// SubmitOTP verifies the emailed code, advancing to
// awaiting-new-password on success. Same six-character local rule as
// registration.
func (f *RecoveryFlow) SubmitOTP(ctx context.Context, code string) error {
	f.mu.Lock()
	if f.complete {
		f.mu.Unlock()
		return ErrFlowComplete
	}
	if f.step != RecoveryStepOTP {
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

	if err := f.backend.VerifyRecoveryOTP(ctx, otp.Code); err != nil {
		f.setError(displayMessage(err))
		if stepRejected(err) {
			f.Resolve()
		}
		return err
	}

	f.cooldown.Stop()

	f.mu.Lock()
	f.step = RecoveryStepNewPassword
	f.mu.Unlock()

	f.notifier.Success("Otp verified successfully")

	return nil
}

// ResendOTP requests a fresh recovery code under the same gating
// contract as registration: only when the cooldown has reached zero,
// restarting from the server's value, always notifying on success.
func (f *RecoveryFlow) ResendOTP(ctx context.Context) error {
	f.mu.Lock()
	if f.complete {
		f.mu.Unlock()
		return ErrFlowComplete
	}
	if f.step != RecoveryStepOTP {
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

	resp, err := f.backend.ResendRecoveryOTP(ctx)
	if err != nil {
		f.setError(displayMessage(err))
		if stepRejected(err) {
			f.Resolve()
		}
		return err
	}

	f.cooldown.Set(resp.TTL)

	msg := resp.Message
	if msg == "" {
		msg = "OTP has been sent to your email"
	}
	f.notifier.Success(msg)

	return nil
}

// SubmitNewPassword validates both fields locally (length and
// equality, with the mismatch attached to the confirmation field) and
// performs the reset exchange. Success completes the flow; the caller
// navigates to the unauthenticated landing state.
func (f *RecoveryFlow) SubmitNewPassword(ctx context.Context, password, confirmPassword string) error {
	f.mu.Lock()
	if f.complete {
		f.mu.Unlock()
		return ErrFlowComplete
	}
	if f.step != RecoveryStepNewPassword {
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

	payload := newPassword{Password: password, ConfirmPassword: confirmPassword}
	if err := payload.Validate(); err != nil {
		f.setFieldErrors(err)
		return err
	}

	if err := f.backend.ResetPassword(ctx, payload.Password, payload.ConfirmPassword); err != nil {
		f.setError(displayMessage(err))
		if stepRejected(err) {
			f.Resolve()
		}
		return err
	}

	f.mu.Lock()
	f.complete = true
	f.mu.Unlock()

	f.notifier.Success("Password reset successfully")

	return nil
}

// SyncCooldown re-reads the server's authoritative cooldown value.
func (f *RecoveryFlow) SyncCooldown(ctx context.Context) error {
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

func (f *RecoveryFlow) setError(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.errMsg = msg
}

func (f *RecoveryFlow) setFieldErrors(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fieldErrs = fieldErrorMap(err)
}

func (f *RecoveryFlow) clearFlag(flag *bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	*flag = false
}
