package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("no arguments prints usage", func(t *testing.T) {
		var out bytes.Buffer
		config, shouldExit, err := Parse(nil, &out)
		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, config)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("help flag prints usage", func(t *testing.T) {
		var out bytes.Buffer
		_, shouldExit, err := Parse([]string{"-h"}, &out)
		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Contains(t, out.String(), "fake-mines")
	})

	t.Run("unknown command", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"frobnicate"}, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})
}

func TestParseFakeMines(t *testing.T) {
	t.Run("all flags", func(t *testing.T) {
		var out bytes.Buffer
		config, shouldExit, err := Parse([]string{
			"fake-mines", "-dry-run", "-allow-simultaneous", "-allow-split-timing",
			"-ignore-sm", "-recursive", "-workers", "8", "some/pack",
		}, &out)
		require.NoError(t, err)
		require.False(t, shouldExit)

		assert.Equal(t, "fake-mines", config.Command)
		assert.Equal(t, "some/pack", config.Path)
		assert.True(t, config.DryRun)
		assert.True(t, config.AllowSimultaneous)
		assert.True(t, config.AllowSplitTiming)
		assert.True(t, config.IgnoreSM)
		assert.True(t, config.Recursive)
		assert.Equal(t, 8, config.Workers)
	})

	t.Run("missing path prints command usage", func(t *testing.T) {
		var out bytes.Buffer
		_, shouldExit, err := Parse([]string{"fake-mines"}, &out)
		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Contains(t, out.String(), "stepsmith fake-mines")
	})

	t.Run("too many arguments", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"fake-mines", "a", "b"}, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Contains(t, exitErr.Message, "exactly one PATH")
	})

	t.Run("output flag is not available", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"fake-mines", "-o", "x.ssc", "song"}, &out)
		require.Error(t, err)
	})
}

func TestParseFixScroll(t *testing.T) {
	var out bytes.Buffer
	config, shouldExit, err := Parse([]string{"fix-scroll", "-o", "out.ssc", "song.ssc"}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "fix-scroll", config.Command)
	assert.Equal(t, "song.ssc", config.Path)
	assert.Equal(t, "out.ssc", config.Output)
}

func TestParseServe(t *testing.T) {
	t.Run("flags", func(t *testing.T) {
		var out bytes.Buffer
		config, shouldExit, err := Parse([]string{"serve", "-listen", ":9999", "-config", "stepsmith.hcl"}, &out)
		require.NoError(t, err)
		require.False(t, shouldExit)

		assert.Equal(t, "serve", config.Command)
		assert.Equal(t, ":9999", config.ListenAddr)
		assert.Equal(t, "stepsmith.hcl", config.ConfigPath)
	})

	t.Run("no flags is valid", func(t *testing.T) {
		var out bytes.Buffer
		config, shouldExit, err := Parse([]string{"serve"}, &out)
		require.NoError(t, err)
		assert.False(t, shouldExit)
		assert.Empty(t, config.ListenAddr)
	})
}

func TestLogFlagValidation(t *testing.T) {
	t.Run("invalid level", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"serve", "-log-level", "loud"}, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Contains(t, exitErr.Message, "invalid log-level")
	})

	t.Run("invalid format", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"fake-mines", "-log-format", "xml", "song"}, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Contains(t, exitErr.Message, "invalid log-format")
	})
}
