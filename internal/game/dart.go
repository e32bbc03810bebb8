package game

// Dart is a single thrown dart, as reported by an input source (manual
// entry, sensor, or replay). Score is derived, never supplied by the
// caller.
type Dart struct {
	Segment    int
	Multiplier int
	Score      int
}

// ValidateDart checks a dart against the fixed input contract: segment
// must be 1-20 or 25 (bullseye), multiplier must be 1-3, and a bullseye
// can only be single or double (no triple bull).
func ValidateDart(segment, multiplier int) error {
	if segment != 25 && (segment < 1 || segment > 20) {
		return newError(ErrInvalidDart, "segment %d is out of range", segment)
	}
	if multiplier < 1 || multiplier > 3 {
		return newError(ErrInvalidDart, "multiplier %d is out of range", multiplier)
	}
	if segment == 25 && multiplier > 2 {
		return newError(ErrInvalidDart, "segment 25 has no triple")
	}
	return nil
}

// NewDart validates and builds a Dart, computing its score.
func NewDart(segment, multiplier int) (Dart, error) {
	if err := ValidateDart(segment, multiplier); err != nil {
		return Dart{}, err
	}
	return Dart{Segment: segment, Multiplier: multiplier, Score: segment * multiplier}, nil
}
