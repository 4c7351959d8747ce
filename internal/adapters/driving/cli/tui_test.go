package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
}

func TestTUICmd_Registered(t *testing.T) {
	found := false
	for _, c := range rootCmd.Commands() {
		if c == tuiCmd {
			found = true
		}
	}
	require.True(t, found)
}

func TestTUICmd_Help(t *testing.T) {
	assert.Contains(t, tuiCmd.Long, "Open citation source")
	assert.Contains(t, tuiCmd.Long, "Previous/next page")
}
