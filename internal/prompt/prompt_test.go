package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerAsk(t *testing.T) {
	var out bytes.Buffer
	s := NewScanner(strings.NewReader("  Alice \nbob\n"), &out)

	v, err := s.Ask("Full name")
	require.NoError(t, err)
	assert.Equal(t, "Alice", v)

	v, err = s.Ask("Next")
	require.NoError(t, err)
	assert.Equal(t, "bob", v)

	_, err = s.Ask("Missing")
	assert.ErrorIs(t, err, ErrNoInput)

	assert.Equal(t, "Full name: Next: Missing: ", out.String())
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		want    bool
		said    int
	}{
		{"yes", []string{"y"}, true, 0},
		{"YES upper case", []string{"YES"}, true, 0},
		{"no", []string{"no"}, false, 0},
		{"re-asks", []string{"maybe", "", "n"}, false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Scripted{Answers: tt.answers}
			got, err := Confirm(p, "Create file?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, p.Said, tt.said)
		})
	}

	_, err := Confirm(&Scripted{}, "Create file?")
	assert.ErrorIs(t, err, ErrNoInput)
}
