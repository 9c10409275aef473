// Package flow is the client-side authentication state machine: the
// identity cache shared across the whole application, the multi-step
// registration and password-recovery flows, the session-management
// actions, and the cooldown gating resend-code requests.
//
// Flows decide which step is current from server-issued step-token
// cookies, perform one exchange per step through a Backend, and
// classify failures into field-local validation errors, step-local
// server errors, and the process-wide rate-limited condition.
package flow
