package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"scan", "trends", "report", "stats", "import", "migrate"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "openwallet", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestScanCommand_Flags(t *testing.T) {
	require.NotNil(t, scanCmd.Flags().Lookup("image"))
	require.NotNil(t, scanCmd.Flags().Lookup("text"))
	require.NotNil(t, scanCmd.Flags().Lookup("memo"))
	require.NotNil(t, scanCmd.Flags().Lookup("save"))
}

func TestTrendsCommand_Flags(t *testing.T) {
	daysFlag := trendsCmd.Flags().Lookup("days")
	require.NotNil(t, daysFlag)
	assert.Equal(t, "7", daysFlag.DefValue)

	maxFlag := trendsCmd.Flags().Lookup("max-articles")
	require.NotNil(t, maxFlag)
	assert.Equal(t, "30", maxFlag.DefValue)
}

func TestStatsCommand_HasSubcommands(t *testing.T) {
	cmds := statsCmd.Commands()
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	for _, name := range []string{"total", "top-merchants", "trend"} {
		assert.True(t, names[name], "expected stats subcommand %q not found", name)
	}
}

func TestStatsTopMerchantsCommand_LimitDefault(t *testing.T) {
	flag := statsTopMerchantsCmd.Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "5", flag.DefValue)
}
