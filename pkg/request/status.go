package request

import "fmt"

// Status is the typed error every failed call returns. It carries the resolved
// user-facing message plus whatever the transport and envelope exposed, so
// callers can branch on failure kind instead of collapsing everything to a
// missing value.
type Status struct {
	// HTTPStatus is the transport status, or 0 when no response was obtained.
	HTTPStatus int
	// Code is the backend envelope code, or 0 when no envelope was parsed.
	Code int
	// Message is the resolved user-facing display string.
	Message string
	// Err is the underlying transport or decode error, if any.
	Err error
}

func (s *Status) Error() string {
	if s.Err != nil {
		return fmt.Sprintf("%s: %v", s.Message, s.Err)
	}
	return s.Message
}

func (s *Status) Unwrap() error { return s.Err }

// Notice renders the notification text for this failure, appending the backend
// code when one is present.
func (s *Status) Notice() string {
	if s.Code != 0 {
		return fmt.Sprintf("%s (%d)", s.Message, s.Code)
	}
	return s.Message
}
