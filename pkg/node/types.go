package node

// Stable type names used by the registry and the declarative format.
const (
	TypeRoot = "Root"

	TypeSequence     = "Sequence"
	TypeSelect       = "Select"
	TypeSequenceStar = "SequenceStar"
	TypeSelectStar   = "SelectStar"

	TypeInverter     = "Inverter"
	TypeSucceeder    = "Succeeder"
	TypeFailer       = "Failer"
	TypeLimiter      = "Limiter"
	TypeTimeLimiter  = "TimeLimiter"
	TypeClockLimiter = "ClockLimiter"
	TypeDebug        = "Debug"
)

// Child-count constraints.
const (
	Unbounded = -1
	Leaf      = 0
	Single    = 1
)
