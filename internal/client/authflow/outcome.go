package authflow

// Kind classifies how a submission settled. Every kind maps to exactly one
// user-visible behavior; only Succeeded touches the session store or
// navigation.
type Kind int

const (
	// Succeeded: validated envelope, success code, loginCheck true.
	Succeeded Kind = iota
	// Rejected: well-formed success response whose business rule said no
	// (loginCheck false). Credentials problem, not a server problem.
	Rejected
	// FailedTransport: the request never produced a usable response
	// (network unreachable, timeout).
	FailedTransport
	// FailedStatus: the envelope arrived but its business code is not a
	// success code.
	FailedStatus
	// FailedShape: the response body did not match the envelope contract.
	FailedShape
	// Ignored: a submission for the same form was already in flight; this
	// one was dropped without side effects.
	Ignored
)

// Outcome is the terminal result of one submission attempt.
type Outcome struct {
	Kind    Kind
	Message string // user-facing; empty for Succeeded and Ignored
}

// Fixed user-facing messages. Raw parse errors never appear here; they are
// logged only.
const (
	MsgLoginRejected        = "login failed: userId or password incorrect"
	MsgRegistrationRejected = "registration failed"
	MsgServerError          = "server error"
	MsgInvalidResponse      = "the server response format is invalid; please try again"
)
