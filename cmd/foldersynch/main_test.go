package main

import (
	"strconv"
	"testing"

	"github.com/Ricardoipr/foldersynch/internal/config"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_FlagsAndDefaults(t *testing.T) {
	source := rootCmd.Flags().Lookup("source")
	require.NotNil(t, source)
	require.Equal(t, "s", source.Shorthand)
	require.Equal(t, "", source.DefValue)

	replica := rootCmd.Flags().Lookup("replica")
	require.NotNil(t, replica)
	require.Equal(t, "r", replica.Shorthand)
	require.Equal(t, "", replica.DefValue)

	logFlag := rootCmd.Flags().Lookup("log")
	require.NotNil(t, logFlag)
	require.Equal(t, "l", logFlag.Shorthand)
	require.Equal(t, config.DefaultLogFilePath, logFlag.DefValue)

	interval := rootCmd.Flags().Lookup("interval")
	require.NotNil(t, interval)
	require.Equal(t, "i", interval.Shorthand)
	require.Equal(t, strconv.Itoa(config.DefaultIntervalSeconds), interval.DefValue)

	cooldown := rootCmd.Flags().Lookup("cooldown")
	require.NotNil(t, cooldown)
	require.Equal(t, strconv.Itoa(config.DefaultCooldownSeconds), cooldown.DefValue)

	watch := rootCmd.Flags().Lookup("watch")
	require.NotNil(t, watch)
	require.Equal(t, "w", watch.Shorthand)
	require.Equal(t, "false", watch.DefValue)

	configFlag := rootCmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	require.Equal(t, "c", configFlag.Shorthand)
}
