package hclconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stepsmith.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		path := writeConfig(t, `
server {
  listen_addr      = ":8605"
  max_upload_bytes = 4194304
}

logging {
  level  = "debug"
  format = "json"
}

tools {
  fake_mines {
    allow_split_timing = true
  }
}
`)
		f, err := Load(path)
		require.NoError(t, err)

		require.NotNil(t, f.Server)
		assert.Equal(t, ":8605", f.Server.ListenAddr)
		assert.Equal(t, int64(4194304), f.Server.MaxUploadBytes)

		require.NotNil(t, f.Logging)
		assert.Equal(t, "debug", f.Logging.Level)
		assert.Equal(t, "json", f.Logging.Format)

		require.NotNil(t, f.Tools)
		require.NotNil(t, f.Tools.FakeMines)
		assert.True(t, f.Tools.FakeMines.AllowSplitTiming)
		assert.False(t, f.Tools.FakeMines.AllowSimultaneous)
	})

	t.Run("empty file is valid", func(t *testing.T) {
		f, err := Load(writeConfig(t, ""))
		require.NoError(t, err)
		assert.Nil(t, f.Server)
		assert.Nil(t, f.Logging)
		assert.Nil(t, f.Tools)
	})

	t.Run("env interpolation", func(t *testing.T) {
		t.Setenv("STEPSMITH_TEST_PORT", "9100")
		path := writeConfig(t, `
server {
  listen_addr = ":${env.STEPSMITH_TEST_PORT}"
}
`)
		f, err := Load(path)
		require.NoError(t, err)
		require.NotNil(t, f.Server)
		assert.Equal(t, ":9100", f.Server.ListenAddr)
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server {"))
		assert.ErrorContains(t, err, "failed to parse")
	})

	t.Run("unknown block", func(t *testing.T) {
		_, err := Load(writeConfig(t, "mystery {}\n"))
		assert.ErrorContains(t, err, "invalid config")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
		assert.ErrorContains(t, err, "failed to read config file")
	})
}
