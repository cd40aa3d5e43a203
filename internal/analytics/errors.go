package analytics

import "errors"

var (
	ErrInvariantViolation = errors.New("conversation must be between exactly two identities")
	ErrEmptyInput         = errors.New("no events")
	ErrEmptyConversation  = errors.New("conversation has no events")
	ErrNotAParticipant    = errors.New("not a participant of the conversation")
	ErrInsufficientData   = errors.New("not enough data points")
	ErrDivisionByZero     = errors.New("ratio denominator is zero")
	ErrInvalidRange       = errors.New("range start is after its end")
)
