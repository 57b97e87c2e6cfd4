package notify

import "time"

// Level classifies a notice for display purposes.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notice is the payload delivered to sinks.
type Notice struct {
	Level Level     `json:"level"`
	Text  string    `json:"text"`
	At    time.Time `json:"at"`
}

// NewNotice constructs a Notice stamped with the current time.
func NewNotice(level Level, text string) Notice {
	return Notice{
		Level: level,
		Text:  text,
		At:    time.Now().UTC(),
	}
}
