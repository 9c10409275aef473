// Command authflow is an interactive frontend for the auth flows. It
// is presentational glue only: all state-transition logic lives in the
// flow package.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/crumhorn/authflow/authapi"
	"github.com/crumhorn/authflow/flow"
	"github.com/crumhorn/authflow/internal/config"
	"github.com/crumhorn/authflow/internal/logging"
	"github.com/crumhorn/authflow/internal/state"
)

var Version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// consoleNotifier is the toast layer: transient, dismissable-by-scroll.
type consoleNotifier struct{}

func (consoleNotifier) Success(msg string) {
	if msg != "" {
		fmt.Printf("[ok] %s\n", msg)
	}
}

func (consoleNotifier) Error(msg string) {
	if msg != "" {
		fmt.Printf("[error] %s\n", msg)
	}
}

type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	identity *flow.IdentityCache
	tokens   *flow.StepTokens
	backend  *authapi.Client
	notifier flow.Notifier
	sessions *flow.SessionManager
	in       *bufio.Scanner
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(cfg.Environment)
	logger.Info("authflow starting",
		slog.String("version", Version),
		slog.String("backend", cfg.BackendURL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appState, err := openState(cfg)
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}
	defer appState.Close()

	if err := appState.Prune(); err != nil {
		logger.Warn("pruning expired cookies", slog.String("error", err.Error()))
	}

	client := authapi.NewClient(cfg.BackendURL, appState, &http.Client{Timeout: cfg.HTTPTimeout},
		logging.WithComponent(logger, "authapi"))

	tokens, err := flow.NewStepTokens(appState, cfg.BackendURL)
	if err != nil {
		return err
	}

	notifier := consoleNotifier{}
	identity := flow.NewIdentityCache(client, notifier, logging.WithComponent(logger, "identity"))

	a := &app{
		cfg:      cfg,
		logger:   logger,
		identity: identity,
		tokens:   tokens,
		backend:  client,
		notifier: notifier,
		sessions: flow.NewSessionManager(client, identity, notifier, logging.WithComponent(logger, "sessions")),
		in:       bufio.NewScanner(os.Stdin),
	}

	// The one startup fetch; everything afterward is refetches driven
	// by auth actions.
	identity.Fetch(ctx)

	return a.loop(ctx)
}

func openState(cfg *config.Config) (*state.State, error) {
	if cfg.StateDB != "" {
		return state.LoadAt(cfg.StateDB)
	}
	return state.Load()
}

func (a *app) loop(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		st := a.identity.Snapshot()
		if st.RateLimited {
			// The rate-limit holding page: nothing but retry.
			fmt.Println("\nYou're making too many requests. Wait a moment, then retry.")
			if !a.confirm("retry now?") {
				return nil
			}
			a.identity.Refetch(ctx)
			continue
		}

		if st.Authenticated() {
			fmt.Printf("\nlogged in as %s <%s>\n", st.Identity.Name, st.Identity.Email)
			fmt.Println("commands: sessions, logout, whoami, quit")
		} else {
			fmt.Println("\nnot logged in")
			fmt.Println("commands: login, register, forgot, whoami, quit")
		}

		cmd := a.prompt("> ")
		switch cmd {
		case "login":
			a.runLogin(ctx)
		case "register":
			a.runRegistration(ctx)
		case "forgot":
			a.runRecovery(ctx)
		case "sessions":
			a.runSessions(ctx)
		case "logout":
			_ = a.sessions.Logout(ctx)
		case "whoami":
			a.printIdentity()
		case "quit", "exit", "":
			return nil
		default:
			fmt.Printf("unknown command %q\n", cmd)
		}
	}
}

func (a *app) runLogin(ctx context.Context) {
	form := flow.NewLoginForm(a.backend, a.identity, a.notifier, logging.WithComponent(a.logger, "login"))

	email := a.prompt("email: ")
	password := a.prompt("password: ")

	if err := form.Submit(ctx, email, password); err != nil {
		a.printFormErrors(form.Err(), form.FieldErrors())
	}
}

func (a *app) runRegistration(ctx context.Context) {
	f := flow.NewRegistrationFlow(a.backend, a.tokens, a.identity, a.notifier,
		logging.WithComponent(a.logger, "registration"))
	defer f.Close()

	for !f.Complete() {
		switch f.Step() {
		case flow.RegistrationStepCredentials:
			fmt.Println("\ncreate an account (blank name to cancel)")
			name := a.prompt("name: ")
			if name == "" {
				return
			}
			email := a.prompt("email: ")
			password := a.prompt("password: ")
			if err := f.SubmitCredentials(ctx, name, email, password); err != nil {
				a.printFormErrors(f.Err(), f.FieldErrors())
			}

		case flow.RegistrationStepOTP:
			_ = f.SyncCooldown(ctx)
			if !a.otpStep(ctx, otpStepActions{
				remaining:   f.CooldownRemaining,
				cooldownErr: f.CooldownErr,
				submit:      func(code string) error { return f.SubmitOTP(ctx, code) },
				resend:      func() error { return f.ResendOTP(ctx) },
				clearErr:    f.ClearError,
				errMsg:      f.Err,
				fieldErrs:   f.FieldErrors,
			}) {
				return
			}
			// Re-resolve so a token the server cleared mid-flow drops
			// us back to the credentials step.
			f.Resolve()
		}
	}
}

func (a *app) runRecovery(ctx context.Context) {
	f := flow.NewRecoveryFlow(a.backend, a.tokens, a.notifier,
		logging.WithComponent(a.logger, "recovery"))
	defer f.Close()

	for !f.Complete() {
		switch f.Step() {
		case flow.RecoveryStepEmail:
			fmt.Println("\npassword recovery (blank email to cancel)")
			email := a.prompt("email: ")
			if email == "" {
				return
			}
			if err := f.SubmitEmail(ctx, email); err != nil {
				a.printFormErrors(f.Err(), f.FieldErrors())
			}

		case flow.RecoveryStepOTP:
			if !a.otpStep(ctx, otpStepActions{
				remaining:   f.CooldownRemaining,
				cooldownErr: f.CooldownErr,
				submit:      func(code string) error { return f.SubmitOTP(ctx, code) },
				resend:      func() error { return f.ResendOTP(ctx) },
				clearErr:    f.ClearError,
				errMsg:      f.Err,
				fieldErrs:   f.FieldErrors,
			}) {
				return
			}
			f.Resolve()

		case flow.RecoveryStepNewPassword:
			fmt.Println("\nenter your new password (blank to cancel)")
			password := a.prompt("new password: ")
			if password == "" {
				return
			}
			confirm := a.prompt("confirm password: ")
			if err := f.SubmitNewPassword(ctx, password, confirm); err != nil {
				a.printFormErrors(f.Err(), f.FieldErrors())
			}
			f.Resolve()
		}
	}
}

// otpStepActions decouples the shared OTP prompt from which flow owns
// the step.
type otpStepActions struct {
	remaining   func() int
	cooldownErr func() string
	submit      func(code string) error
	resend      func() error
	clearErr    func()
	errMsg      func() string
	fieldErrs   func() map[string]string
}

// otpStep renders one pass of the OTP prompt. Returns false when the
// user cancels.
func (a *app) otpStep(ctx context.Context, actions otpStepActions) bool {
	fmt.Println("\nenter the otp sent to your email (blank to cancel, \"resend\" for a new code)")
	if msg := actions.cooldownErr(); msg != "" {
		fmt.Printf("[cooldown unavailable: %s]\n", msg)
	} else if r := actions.remaining(); r > 0 {
		fmt.Printf("resend available in %d seconds\n", r)
	}

	input := a.prompt("otp: ")
	switch input {
	case "":
		return false
	case "resend":
		if err := actions.resend(); err != nil {
			if err == flow.ErrCooldownActive {
				fmt.Printf("resend available in %d seconds\n", actions.remaining())
			} else {
				a.printFormErrors(actions.errMsg(), nil)
			}
		}
		return true
	}

	// Editing after a failure clears the previous error.
	actions.clearErr()

	if err := actions.submit(input); err != nil {
		a.printFormErrors(actions.errMsg(), actions.fieldErrs())
	}

	return true
}

func (a *app) runSessions(ctx context.Context) {
	if err := a.sessions.List(ctx); err != nil {
		fmt.Printf("[error] %s\n", a.sessions.Err())
		return
	}

	st := a.identity.Snapshot()
	for _, s := range a.sessions.Sessions() {
		marker := " "
		if a.sessions.IsCurrent(s.ID) {
			marker = "*"
		}
		fmt.Printf("%s %s  %s  %s  expires %s\n", marker, s.ID, s.IPAddress, s.UserAgent, s.ExpiresAt)
	}
	if st.Identity != nil {
		fmt.Println("(* current session; revoke it by logging out)")
	}

	fmt.Println("commands: revoke <id>, revoke-others, back")
	for {
		cmd := a.prompt("sessions> ")
		switch {
		case cmd == "back" || cmd == "":
			return
		case cmd == "revoke-others":
			_ = a.sessions.RevokeOthers(ctx)
		case strings.HasPrefix(cmd, "revoke "):
			id := strings.TrimSpace(strings.TrimPrefix(cmd, "revoke "))
			if err := a.sessions.RevokeOne(ctx, id); err == flow.ErrCurrentSession {
				fmt.Println("[error] that is your current session; use logout")
			}
		default:
			fmt.Printf("unknown command %q\n", cmd)
		}
	}
}

func (a *app) printIdentity() {
	st := a.identity.Snapshot()
	switch {
	case st.Loading:
		fmt.Println("identity: loading")
	case st.RateLimited && st.Identity == nil:
		fmt.Println("identity: unknown (rate limited)")
	case st.Identity == nil:
		fmt.Println("identity: none")
	default:
		fmt.Printf("identity: %s <%s> session %s\n", st.Identity.Name, st.Identity.Email, st.Identity.SessionID)
	}
}

func (a *app) printFormErrors(errMsg string, fieldErrs map[string]string) {
	for field, msg := range fieldErrs {
		fmt.Printf("[error] %s: %s\n", field, msg)
	}
	if errMsg != "" {
		fmt.Printf("[error] %s\n", errMsg)
	}
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) confirm(label string) bool {
	answer := a.prompt(label + " [y/N] ")
	return answer == "y" || answer == "yes"
}
