package flow

import (
	"fmt"
	"net/http"
	"net/url"
)

// Step-token cookie names set by the server. Only presence matters; the
// client never reads or constructs their contents.
const (
	registrationTokenCookie = "registration_token"
	recoveryOTPCookie       = "fp_otp"
	recoveryResetCookie     = "fp_reset"
)

// StepTokens reads server-issued step markers out of the cookie jar to
// decide which step of a multi-step flow to resume. Presence is a hint,
// not proof of server-side validity: a resumed step must still expect
// the next exchange to be rejected.
type StepTokens struct {
	jar  http.CookieJar
	base *url.URL
}

// NewStepTokens reads tokens scoped to the given backend base URL from
// jar. The jar should be the same one the API client sends cookies from.
func NewStepTokens(jar http.CookieJar, baseURL string) (*StepTokens, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	return &StepTokens{jar: jar, base: base}, nil
}

func (t *StepTokens) has(name string) bool {
	for _, ck := range t.jar.Cookies(t.base) {
		if ck.Name == name && ck.Value != "" {
			return true
		}
	}
	return false
}

// HasRegistration reports whether a registration step token is present.
func (t *StepTokens) HasRegistration() bool {
	return t.has(registrationTokenCookie)
}

// HasRecoveryOTP reports whether the recovery OTP step token is present.
func (t *StepTokens) HasRecoveryOTP() bool {
	return t.has(recoveryOTPCookie)
}

// HasRecoveryReset reports whether the recovery reset step token is
// present.
func (t *StepTokens) HasRecoveryReset() bool {
	return t.has(recoveryResetCookie)
}
