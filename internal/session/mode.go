package session

// Mode selects which player archetype and input-handler variant the
// server runs, chosen once at startup via the `-g` flag.
type Mode int

const (
	ModeRType Mode = iota
	ModeFlap
)

// String implements fmt.Stringer for logging.
func (m Mode) String() string {
	switch m {
	case ModeRType:
		return "RType"
	case ModeFlap:
		return "flappyByte"
	default:
		return "unknown"
	}
}
