// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Source operations
	OpSourceOpen Op = "open video source"

	// Asset operations
	OpAssetKeyLoad Op = "load asset key"

	// Playback operations
	OpPlaybackItem Op = "play media item"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpLogSetup   Op = "set up logging"
	OpInitialize Op = "initialize application"
)

// AlertTitle is the title of every error alert.
const AlertTitle = "Error"

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
