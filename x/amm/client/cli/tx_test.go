package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestGetTxCmdStructure verifies the tx command tree structure
func TestGetTxCmdStructure(t *testing.T) {
	t.Parallel()

	txCmd := GetTxCmd()

	require.NotNil(t, txCmd)
	require.Equal(t, "amm", txCmd.Use)
	require.True(t, txCmd.DisableFlagParsing)

	expected := []string{
		"create-pool",
		"add-liquidity",
		"remove-liquidity",
		"swap-exact-in",
		"swap-exact-out",
	}

	commandNames := make(map[string]bool)
	for _, cmd := range txCmd.Commands() {
		name, _, _ := strings.Cut(cmd.Use, " ")
		commandNames[name] = true
	}
	for _, name := range expected {
		require.True(t, commandNames[name], "missing tx subcommand %s", name)
	}
}

func TestSwapCommandFlags(t *testing.T) {
	t.Parallel()

	in := CmdSwapExactIn()
	require.NotNil(t, in.Flags().Lookup(flagDeadline))
	require.NotNil(t, in.Flags().Lookup(flagRecipient))
	require.NotNil(t, in.Flags().Lookup(flagFeeOnTransfer))

	out := CmdSwapExactOut()
	require.NotNil(t, out.Flags().Lookup(flagDeadline))
	require.NotNil(t, out.Flags().Lookup(flagRecipient))
	require.Nil(t, out.Flags().Lookup(flagFeeOnTransfer))
}

func TestTxCommandArgCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cmd  string
		args []string
		ok   bool
	}{
		{"create-pool", []string{"uatom", "uusdc"}, true},
		{"create-pool", []string{"uatom"}, false},
		{"add-liquidity", []string{"1", "100", "100", "0", "0"}, true},
		{"add-liquidity", []string{"1", "100", "100"}, false},
		{"remove-liquidity", []string{"1", "100", "0", "0"}, true},
		{"swap-exact-in", []string{"uatom,uusdc", "100", "0"}, true},
		{"swap-exact-in", []string{"uatom,uusdc", "100"}, false},
		{"swap-exact-out", []string{"uatom,uusdc", "100", "200"}, true},
	}

	for _, cmd := range GetTxCmd().Commands() {
		name, _, _ := strings.Cut(cmd.Use, " ")
		for _, tc := range tests {
			if tc.cmd != name {
				continue
			}
			err := cmd.Args(cmd, tc.args)
			if tc.ok {
				require.NoError(t, err, "%s %v", name, tc.args)
			} else {
				require.Error(t, err, "%s %v", name, tc.args)
			}
		}
	}
}
