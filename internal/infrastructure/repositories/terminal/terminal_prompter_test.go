//go:build unit

package terminal_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pkgprovision/internal/infrastructure/repositories/terminal"
)

// notATerminal is an fd that term.IsTerminal rejects.
const notATerminal = -1

func TestPrompterConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "should accept y", input: "y\n", expected: true},
		{name: "should accept YES", input: "YES\n", expected: true},
		{name: "should reject n", input: "n\n", expected: false},
		{name: "should reject an empty answer", input: "\n", expected: false},
		{name: "should reject EOF", input: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			out := &bytes.Buffer{}
			prompter := terminal.NewPrompterWithIO(strings.NewReader(tt.input), out, notATerminal)

			// when
			answer := terminal.NewConfirmer(prompter).Confirm("Create it?")

			// then
			assert.Equal(t, tt.expected, answer)
			assert.Contains(t, out.String(), "Create it? [y/N]")
		})
	}
}

func TestPrompterAskSecret(t *testing.T) {
	t.Parallel()

	// given
	prompter := terminal.NewPrompterWithIO(strings.NewReader("  ghp_secret  \n"), &bytes.Buffer{}, notATerminal)

	// when
	secret, err := prompter.AskSecret("Token:")

	// then
	require.NoError(t, err)
	assert.Equal(t, "ghp_secret", secret)
}
