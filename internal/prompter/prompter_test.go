package prompter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		ok, err := New(strings.NewReader(tt.input), &out).Confirm("Delete job j1?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, ok, "input %q", tt.input)
		assert.Equal(t, "Delete job j1? [y/N]: ", out.String())
	}
}

func TestConfirm_AssumeYes(t *testing.T) {
	var out bytes.Buffer
	ok, err := New(strings.NewReader(""), &out).AssumeYes(true).Confirm("Delete?")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, out.String())
}
