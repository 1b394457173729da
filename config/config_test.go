package config_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akovalkov/m4-processor/config"
)

func TestDefaultMatchesGNUm4Delimiters(t *testing.T) {
	cfg := config.Default("m4")
	require.Equal(t, "`", cfg.LeftQuote)
	require.Equal(t, "'", cfg.RightQuote)
	require.Equal(t, "#", cfg.BeginComment)
	require.Equal(t, "\n", cfg.EndComment)
	require.Equal(t, 300, cfg.NestingLimit)
	require.Equal(t, "m4", cfg.ProgramName)
}

func TestViewSnapshotsMutableFields(t *testing.T) {
	cfg := config.Default("m4")
	cfg.LeftQuote = "["
	cfg.RightQuote = "]"
	cfg.NoGNUExtensions = true

	view := cfg.View()
	require.Equal(t, "[", view.LeftQuote)
	require.Equal(t, "]", view.RightQuote)
	require.True(t, view.NoGNUExtensions)
	require.Equal(t, "m4", view.ProgramName)
}

func TestOSSymbolMatchesRuntimeGOOS(t *testing.T) {
	short, long := config.OSSymbol()
	if runtime.GOOS == "windows" {
		require.Equal(t, "windows", short)
		require.Equal(t, "__windows__", long)
	} else {
		require.Equal(t, "unix", short)
		require.Equal(t, "__unix__", long)
	}
}
