package flow

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://backend.test"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordNotifier captures toast calls for assertion.
type recordNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *recordNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, msg)
}

func (n *recordNotifier) Successes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.successes...)
}

func (n *recordNotifier) Failures() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.failures...)
}

// testTokens builds a StepTokens over a jar pre-seeded with the named
// cookies, mirroring a client that already holds server-issued step
// markers.
func testTokens(t *testing.T, names ...string) *StepTokens {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	base, err := url.Parse(testBaseURL)
	require.NoError(t, err)

	cookies := make([]*http.Cookie, 0, len(names))
	for _, name := range names {
		cookies = append(cookies, &http.Cookie{Name: name, Value: "tok-" + name, Path: "/"})
	}
	jar.SetCookies(base, cookies)

	tokens, err := NewStepTokens(jar, testBaseURL)
	require.NoError(t, err)

	return tokens
}
