package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionHeaders(content string) []string {
	var sections []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			sections = append(sections, line)
		}
	}
	return sections
}

func TestWriteConfig_FollowsConfigFieldOrder(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, WriteConfig(DefaultConfig(), configPath))

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(content), "# pageflip configuration\n#:schema ./config.schema.json\n"))
	assert.Equal(t, []string{
		"[window]",
		"[output]",
		"[probe]",
		"[hmd]",
		"[database]",
		"[logging]",
		"[logging.file]",
	}, sectionHeaders(string(content)))
}

func TestWriteConfig_RoundTripsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteConfig(DefaultConfig(), configPath))

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, toml.Unmarshal(content, &decoded))
	assert.Equal(t, *DefaultConfig(), decoded)
}

func TestWriteConfig_ReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("garbage = ["), 0o600))

	cfg := DefaultConfig()
	cfg.Window.TargetFPS = 120
	require.NoError(t, WriteConfig(cfg, configPath))

	var decoded Config
	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.NoError(t, toml.Unmarshal(content, &decoded))
	assert.Equal(t, 120.0, decoded.Window.TargetFPS)

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(filePerm), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWriteConfig_RejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	cfg := DefaultConfig()
	cfg.Probe.TimeoutMs = 0
	err := WriteConfig(cfg, configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probe.timeout_ms")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteConfig_NilConfig(t *testing.T) {
	err := WriteConfig(nil, filepath.Join(t.TempDir(), "config.toml"))
	assert.Error(t, err)
}
