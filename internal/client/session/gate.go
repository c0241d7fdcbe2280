package session

// Decision is what a caller should do with a protected view.
type Decision int

const (
	// Allow renders the protected view.
	Allow Decision = iota
	// Pending shows a placeholder while the session is still settling.
	Pending
	// RedirectLogin sends the user to the unauthenticated entry point.
	RedirectLogin
)

// Gate maps session state to an access decision. It is a pure function:
// all network activity belongs to the manager's bootstrap transition.
func Gate(s State) Decision {
	switch s.Status {
	case Authenticated:
		return Allow
	case Bootstrapping:
		return Pending
	default:
		return RedirectLogin
	}
}
