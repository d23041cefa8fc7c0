// Package shared holds types common to the catalog packages.
package shared

import "errors"

// Status is the closed set of catalog entity states.
type Status int

const (
	StatusInactive Status = 0
	StatusActive   Status = 1
)

// ErrInvalidStatus reports a status outside the closed set.
var ErrInvalidStatus = errors.New("catalog: status must be 0 or 1")

// ParseStatus validates a raw status value.
func ParseStatus(raw int) (Status, error) {
	switch Status(raw) {
	case StatusInactive, StatusActive:
		return Status(raw), nil
	default:
		return 0, ErrInvalidStatus
	}
}

// Valid reports whether the status is in the closed set.
func (s Status) Valid() bool {
	return s == StatusInactive || s == StatusActive
}
