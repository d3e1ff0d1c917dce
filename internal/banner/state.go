package banner

// State is the visibility state of a banner.
type State int

const (
	// StateHidden means the banner is mounted but visually suppressed.
	StateHidden State = iota
	// StatePresenting means the entrance animation is running.
	StatePresenting
	// StateVisible means the banner is at rest and waiting for its dwell.
	StateVisible
	// StateDismissing means the exit animation is running. It is terminal.
	StateDismissing
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StatePresenting:
		return "presenting"
	case StateVisible:
		return "visible"
	case StateDismissing:
		return "dismissing"
	default:
		return "unknown"
	}
}

// showing reports whether the banner is on its way in or at rest.
func (s State) showing() bool {
	return s == StatePresenting || s == StateVisible
}

// DismissReason describes why a banner went away.
type DismissReason int

const (
	// ReasonExpired means the dwell timer elapsed.
	ReasonExpired DismissReason = iota + 1
	// ReasonSwiped means the user swiped the banner away.
	ReasonSwiped
	// ReasonClosed means the host closed the banner.
	ReasonClosed
)

// String returns the string representation of DismissReason.
func (r DismissReason) String() string {
	switch r {
	case ReasonExpired:
		return "expired"
	case ReasonSwiped:
		return "swiped"
	case ReasonClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Token guards a pending dwell dismissal. It is issued when a banner starts
// presenting and invalidated when the banner leaves the showing states.
// Tokens are only touched from the UI loop.
type Token struct {
	valid bool
}

func newToken() *Token {
	return &Token{valid: true}
}

// Valid reports whether the token still authorises its dismissal.
func (t *Token) Valid() bool {
	return t != nil && t.valid
}

// Invalidate revokes the token.
func (t *Token) Invalidate() {
	if t != nil {
		t.valid = false
	}
}
