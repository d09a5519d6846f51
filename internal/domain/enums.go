package domain

import (
	"fmt"
	"strings"
)

// Side is the direction of a trade.
type Side uint8

const (
	SideBuy Side = iota + 1
	SideSell
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	default:
		return ""
	}
}

func (s Side) Valid() bool { return s == SideBuy || s == SideSell }

func ParseSide(raw string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "buy":
		return SideBuy, true
	case "sell":
		return SideSell, true
	default:
		return 0, false
	}
}

func (s Side) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid side %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(b []byte) error {
	v, ok := ParseSide(string(b))
	if !ok {
		return fmt.Errorf("invalid side %q (use 'buy' or 'sell')", string(b))
	}
	*s = v
	return nil
}

// Status is the lifecycle state of a trade. Pending is the only
// non-terminal state.
type Status uint8

const (
	StatusPending Status = iota + 1
	StatusExecuted
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusExecuted:
		return "executed"
	case StatusCancelled:
		return "cancelled"
	default:
		return ""
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusExecuted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transition is permitted from s.
func (s Status) Terminal() bool { return s == StatusExecuted || s == StatusCancelled }

func ParseStatus(raw string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return StatusPending, true
	case "executed":
		return StatusExecuted, true
	case "cancelled":
		return StatusCancelled, true
	default:
		return 0, false
	}
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	v, ok := ParseStatus(string(b))
	if !ok {
		return fmt.Errorf("invalid status %q", string(b))
	}
	*s = v
	return nil
}

// SortOrder selects the direction of the timestamp sort. Anything that is
// not "desc" sorts ascending.
type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

func ParseSortOrder(raw string) SortOrder {
	switch strings.TrimSpace(raw) {
	case "", string(SortDesc):
		return SortDesc
	default:
		return SortAsc
	}
}
