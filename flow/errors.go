package flow

import (
	"errors"

	"github.com/crumhorn/authflow/authapi"
)

var (
	// ErrBusy is returned when an action is triggered while a previous
	// invocation of the same action is still in flight. The caller
	// should disable the triggering control, not queue.
	ErrBusy = errors.New("request already in flight")

	// ErrCooldownActive rejects a resend while the cooldown is nonzero.
	ErrCooldownActive = errors.New("resend cooldown still active")

	// ErrInvalidStep rejects an action that does not belong to the
	// flow's current step.
	ErrInvalidStep = errors.New("action not valid for the current step")

	// ErrFlowComplete rejects actions on a finished flow instance.
	ErrFlowComplete = errors.New("flow already complete")

	// ErrCurrentSession rejects revoking the caller's own active
	// session; that is modeled as logout.
	ErrCurrentSession = errors.New("cannot revoke the current session")
)

// genericErrMsg is the fallback shown when the server response carries
// no message of its own.
const genericErrMsg = "Something went wrong"

// displayMessage converts a server or transport error into the text
// shown next to the step that issued the request.
func displayMessage(err error) string {
	if msg := authapi.ServerMessage(err); msg != "" {
		return msg
	}
	return genericErrMsg
}

// stepRejected reports whether a server rejection invalidates the step
// the client believed it was on, typically because the step token
// behind it expired. Flows react by re-resolving their entry step from
// token presence instead of erroring irrecoverably.
func stepRejected(err error) bool {
	var apiErr *authapi.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == 401 || apiErr.Status == 410
}
