package game

// StartingPlayerRule selects who opens a leg.
type StartingPlayerRule int

const (
	Alternate StartingPlayerRule = iota
	WinnerStarts
	FixedRotation
)

func (r StartingPlayerRule) String() string {
	switch r {
	case Alternate:
		return "alternate"
	case WinnerStarts:
		return "winner_starts"
	case FixedRotation:
		return "fixed_rotation"
	default:
		return "unknown"
	}
}

// allowedStartingScores are the X01 variants this engine accepts, plus the
// 20-point debug score used to exercise checkout logic quickly in tests.
var allowedStartingScores = map[int]bool{
	301: true, 401: true, 501: true, 601: true, 701: true,
	801: true, 901: true, 1001: true, 20: true,
}

// Rules is the immutable configuration of one match. It is constructed
// once by NewRules and never mutated afterward.
type Rules struct {
	StartingScore      int
	DoubleIn           bool
	DoubleOut          bool
	MasterOut          bool
	DartsPerTurn       int
	LegsToWin          int
	SetsEnabled        bool
	SetsToWin          int
	LegsPerSet         int
	StartingPlayerRule StartingPlayerRule
}

// NewRules validates and returns a new Rules value. DartsPerTurn defaults
// to 3 when left at zero.
func NewRules(r Rules) (*Rules, error) {
	if !allowedStartingScores[r.StartingScore] {
		return nil, newError(ErrInvalidRules, "starting score %d is not a supported X01 variant", r.StartingScore)
	}
	if r.LegsToWin < 1 {
		return nil, newError(ErrInvalidRules, "legs_to_win must be >= 1, got %d", r.LegsToWin)
	}
	if r.SetsEnabled {
		if r.SetsToWin < 1 {
			return nil, newError(ErrInvalidRules, "sets_to_win must be >= 1 when sets are enabled, got %d", r.SetsToWin)
		}
		if r.LegsPerSet < 1 {
			return nil, newError(ErrInvalidRules, "legs_per_set must be >= 1 when sets are enabled, got %d", r.LegsPerSet)
		}
	}
	if r.DartsPerTurn == 0 {
		r.DartsPerTurn = 3
	}
	// master_out && !double_out is intentionally permitted: MO overrides DO
	// for checkout validity independently of whether DO is also set.
	return &r, nil
}

// IsValidCheckout reports whether a dart with the given multiplier may
// legally reduce a player's score to exactly zero.
func (r *Rules) IsValidCheckout(multiplier int) bool {
	if r.MasterOut {
		return multiplier == 2 || multiplier == 3
	}
	if r.DoubleOut {
		return multiplier == 2
	}
	return true
}

// IsCheckoutInvalidWhenEqualsOne reports whether landing on exactly 1 is
// always a bust under these rules (true whenever DO or MO is active).
func (r *Rules) IsCheckoutInvalidWhenEqualsOne() bool {
	return r.DoubleOut || r.MasterOut
}

// SetsActive reports whether this match is played across sets rather than
// a flat race to legs_to_win.
func (r *Rules) SetsActive() bool {
	return r.SetsEnabled
}
