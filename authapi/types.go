package authapi

// User is the authenticated identity returned from GET /get-user.
// SessionID identifies the session that authenticated this client.
type User struct {
	Name      string `json:"name"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	SessionID string `json:"session_id"`
	UserAgent string `json:"user_agent"`
}

// Session is one authenticated device/browser instance tied to a user.
// Timestamps are passed through as the server formats them; the server
// is authoritative for expiry and the client never computes it.
type Session struct {
	ID        string `json:"_id"`
	UserAgent string `json:"user_agent"`
	IPAddress string `json:"ip_address"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	ExpiresAt string `json:"expires_at"`
}

// RegisterResponse is returned from POST /register. TTL is the resend
// cooldown in seconds for the verification OTP that was just sent.
type RegisterResponse struct {
	Message string `json:"message"`
	TTL     int    `json:"ttl"`
}

// ResendRecoveryResponse is returned from POST /resend-fp-otp.
type ResendRecoveryResponse struct {
	TTL     int    `json:"ttl"`
	Message string `json:"message"`
}

// SessionsResponse is returned from the revoke endpoints. Sessions is the
// authoritative post-revocation collection and replaces any local copy.
type SessionsResponse struct {
	Sessions []Session `json:"sessions"`
	Message  string    `json:"message"`
}

type getUserResponse struct {
	User *User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type ttlResponse struct {
	TTL int `json:"ttl"`
}

type sessionListResponse struct {
	Sessions []Session `json:"sessions"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type otpRequest struct {
	OTP string `json:"otp"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type revokeSessionRequest struct {
	SessionToRevoke string `json:"session_to_revoke"`
}
