//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpSourceOpen,
			err:      nil,
			expected: "",
		},
		{
			name:     "source operation",
			op:       OpSourceOpen,
			err:      errors.New("malformed locator"),
			expected: "Failed to open video source: malformed locator",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackItem,
			err:      errors.New("decoder error"),
			expected: "Failed to play media item: decoder error",
		},
		{
			name:     "config operation",
			op:       OpConfigLoad,
			err:      errors.New("bad toml"),
			expected: "Failed to load configuration: bad toml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.op, tt.err)
			if got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpAssetKeyLoad,
			context:  "playable",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats with context",
			op:       OpAssetKeyLoad,
			context:  "playable",
			err:      errors.New("unsupported container"),
			expected: "Failed to load asset key 'playable': unsupported container",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpAssetKeyLoad,
			context:  "",
			err:      errors.New("timeout"),
			expected: "Failed to load asset key: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatWith(tt.op, tt.context, tt.err)
			if got != tt.expected {
				t.Errorf("FormatWith() = %q, want %q", got, tt.expected)
			}
		})
	}
}
