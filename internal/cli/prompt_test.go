package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, assert.AnError
}

func TestReadConfirmation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		accepted bool
	}{
		{"lowercase y", "y\n", true},
		{"uppercase Y", "Y\n", true},
		{"yes", "yes\n", true},
		{"Yes", "Yes\n", true},
		{"empty defaults to no", "\n", false},
		{"n", "n\n", false},
		{"garbage", "absolutely\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := readConfirmation(strings.NewReader(tt.input))
			assert.Equal(t, tt.accepted, result.Accepted)
			assert.False(t, result.Cancelled)
		})
	}

	t.Run("EOF declines", func(t *testing.T) {
		result := readConfirmation(strings.NewReader(""))
		assert.False(t, result.Accepted)
		assert.False(t, result.Cancelled)
	})

	t.Run("read error cancels", func(t *testing.T) {
		result := readConfirmation(failingReader{})
		assert.True(t, result.Cancelled)
	})
}

func TestConfirmRollback_NonTTYDeclines(t *testing.T) {
	// Tests never run on a TTY, so the prompt must decline without
	// writing anything or consuming the reader.
	var out bytes.Buffer
	result := ConfirmRollback(&out, strings.NewReader("y\n"), "projects", "p-1", 3)

	assert.False(t, result.Accepted)
	assert.Empty(t, out.String())
}
