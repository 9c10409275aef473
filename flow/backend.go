package flow

import (
	"context"

	"github.com/crumhorn/authflow/authapi"
)

//go:generate mockgen -source=backend.go -destination=mock_backend_test.go -package=flow

// Backend is the server surface the flows drive. *authapi.Client
// satisfies it; tests substitute a mock.
type Backend interface {
	GetUser(ctx context.Context) (*authapi.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context) (string, error)
	Register(ctx context.Context, name, email, password string) (*authapi.RegisterResponse, error)
	VerifyRegistration(ctx context.Context, otp string) (string, error)
	ResendRegistrationOTP(ctx context.Context) (int, error)
	RequestRecoveryOTP(ctx context.Context, email string) (string, error)
	VerifyRecoveryOTP(ctx context.Context, otp string) error
	ResendRecoveryOTP(ctx context.Context) (*authapi.ResendRecoveryResponse, error)
	CooldownTime(ctx context.Context) (int, error)
	ResetPassword(ctx context.Context, password, confirmPassword string) error
	Sessions(ctx context.Context) ([]authapi.Session, error)
	RevokeSession(ctx context.Context, id string) (*authapi.SessionsResponse, error)
	RevokeOtherSessions(ctx context.Context) (*authapi.SessionsResponse, error)
}
