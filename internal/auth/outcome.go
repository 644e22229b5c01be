package auth

// OutcomeKind tags the three terminal authentication signals
// consumed by the host framework.
type OutcomeKind int

const (
	// OutcomeSuccess carries an authenticated user.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeFail is a recoverable rejection: bad or missing
	// credentials, or no matching user.
	OutcomeFail
	// OutcomeError is a fatal transport or provider failure.
	OutcomeError
)

// Outcome is the result of one authentication attempt. Exactly one
// of User/Info/Err is meaningful per kind; Info may accompany a
// success as auxiliary detail.
type Outcome struct {
	Kind OutcomeKind
	User any    // set on success
	Info string // human-readable detail on fail (and optionally success)
	Err  error  // set on error
}

// Success builds a success outcome for the given user.
func Success(user any, info string) Outcome {
	return Outcome{Kind: OutcomeSuccess, User: user, Info: info}
}

// Fail builds a recoverable failure outcome.
func Fail(info string) Outcome {
	return Outcome{Kind: OutcomeFail, Info: info}
}

// Error builds a fatal error outcome.
func Error(err error) Outcome {
	return Outcome{Kind: OutcomeError, Err: err}
}
