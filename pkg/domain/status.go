package domain

import (
	"fmt"
	"strings"
)

// Status is the result of ticking a node.
// It is the only signal composites and decorators use to decide control flow.
type Status int

const (
	Success Status = iota
	Failure
	Running
	Error
)

var statusNames = [...]string{
	Success: "SUCCESS",
	Failure: "FAILURE",
	Running: "RUNNING",
	Error:   "ERROR",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// ParseStatus converts a status name (case-insensitive) or its numeric code into a Status.
func ParseStatus(text string) (Status, error) {
	t := strings.ToUpper(strings.TrimSpace(text))
	for i, name := range statusNames {
		if t == name || t == fmt.Sprint(i) {
			return Status(i), nil
		}
	}
	return Error, fmt.Errorf("invalid status %q", text)
}

// MarshalText encodes the status as its name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
