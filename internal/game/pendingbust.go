package game

import "github.com/google/uuid"

// BustReason distinguishes why a tentative dart sequence busted, so a UI
// can explain the bust without re-deriving it from the dart list.
type BustReason int

const (
	BustNegative BustReason = iota
	BustScoreIsOne
	BustInvalidCheckout
)

func (r BustReason) String() string {
	switch r {
	case BustNegative:
		return "negative"
	case BustScoreIsOne:
		return "score_is_one"
	case BustInvalidCheckout:
		return "invalid_checkout"
	default:
		return "unknown"
	}
}

// PendingBust records a turn awaiting confirmation that it busted, so a
// caller (scorer, sensor operator) can confirm or override it before the
// match state advances.
type PendingBust struct {
	ID       uuid.UUID
	PlayerID string
	Reason   BustReason
	Turn     Turn
}
