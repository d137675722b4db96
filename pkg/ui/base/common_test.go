package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in       string
		width    int
		expected string
	}{
		{"manager", 10, "manager"},
		{"manager", 7, "manager"},
		{"president", 6, "pre..."},
		{"president", 2, "pr"},
		{"développeur", 8, "dével..."},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateString(tt.in, tt.width))
		})
	}
}

func TestColumnWidth(t *testing.T) {
	assert.Equal(t, 9, ColumnWidth("jobTitle", []string{"manager", "president"}, 4, 40))
	assert.Equal(t, 6, ColumnWidth("id", []string{"1"}, 6, 40))
	assert.Equal(t, 10, ColumnWidth("hobbies", []string{"films, football, music, skiing"}, 4, 10))
}
