package booking

import "errors"

var (
	ErrInvalidStatus           = errors.New("invalid booking status")
	ErrInvalidStatusTransition = errors.New("booking status cannot change from its current state")
	ErrMissingParty            = errors.New("beneficiary and shop are required")
	ErrInvalidEntitlement      = errors.New("entitlement must be non-zero and non-negative")
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}
