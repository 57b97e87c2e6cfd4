package request

import "fmt"

// Messages maps transport and backend failure codes to user-facing display
// strings. Both tables are deliberately swappable: deployments localize or
// extend them without touching the client.
type Messages struct {
	// Status maps HTTP status codes to display strings.
	Status map[int]string
	// Code maps backend envelope codes to display strings.
	Code map[int]string
	// Unknown is shown when no other branch of the failure taxonomy applies.
	Unknown string
	// Contradiction is shown when an error response claims business success.
	Contradiction string
}

// DefaultMessages returns the built-in lookup tables.
func DefaultMessages() *Messages {
	return &Messages{
		Status: map[int]string{
			400: "Request error",
			401: "Not signed in or session expired",
			403: "Access denied",
			404: "Resource not found",
			405: "Method not allowed",
			408: "Request timed out",
			500: "Server error",
			501: "Service not implemented",
			502: "Gateway error",
			503: "Service unavailable",
			504: "Gateway timeout",
			505: "HTTP version not supported",
		},
		// Backend codes; extend as the backend grows its own table.
		Code: map[int]string{
			10001: "Invalid username or password",
			10002: "Session expired, please sign in again",
			10003: "Insufficient permissions",
		},
		Unknown:       "Unknown error, please try again later",
		Contradiction: "Unexpected response state",
	}
}

// StatusText resolves a display string for an HTTP status. Unmapped statuses
// fall back to "{statusText}({status})".
func (m *Messages) StatusText(status int, statusText string) string {
	if m != nil && m.Status != nil {
		if text, ok := m.Status[status]; ok {
			return text
		}
	}
	return fmt.Sprintf("%s(%d)", statusText, status)
}

// CodeText resolves a display string for a backend code, preferring the lookup
// table over the message carried on the wire.
func (m *Messages) CodeText(code int, wireMessage string) string {
	if m != nil && m.Code != nil {
		if text, ok := m.Code[code]; ok {
			return text
		}
	}
	return wireMessage
}

// normalizeMessages fills in any zero-valued table from the defaults so a
// partial override keeps the rest of the taxonomy intact.
func normalizeMessages(m *Messages) *Messages {
	def := DefaultMessages()
	if m == nil {
		return def
	}
	out := *m
	if out.Status == nil {
		out.Status = def.Status
	}
	if out.Code == nil {
		out.Code = def.Code
	}
	if out.Unknown == "" {
		out.Unknown = def.Unknown
	}
	if out.Contradiction == "" {
		out.Contradiction = def.Contradiction
	}
	return &out
}
