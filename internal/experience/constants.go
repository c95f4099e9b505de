package experience

// Default levelling curve parameters. XP to advance from level N to N+1 is
// DefaultBaseXP * N^DefaultLevelExponent, scaled by the job class
// experience_multiplier.
const (
	DefaultBaseXP        = 100.0
	DefaultLevelExponent = 1.5
)

// Experience grant sources recorded in the audit trail.
const (
	SourceAdmin = "admin"
)
