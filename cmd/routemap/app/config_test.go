package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/routemap/pkg/constants"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routemap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultSourceDir, config.SourceDir)
	assert.Equal(t, constants.DefaultCleanDir, config.CleanDir)
	assert.Equal(t, constants.DefaultMappingsDir, config.MappingsDir)
	assert.InDelta(t, constants.DefaultMatchThreshold, config.Threshold, 0.001)
	assert.Equal(t, "to-source", config.Direction)
	assert.True(t, config.Provenance)
	assert.NotEmpty(t, config.LogFormat)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
source_dir: raw
threshold: 85
direction: to-canonical
provenance: false
`)

	config, err := loadConfig(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "raw", config.SourceDir)
	assert.InDelta(t, 85.0, config.Threshold, 0.001)
	assert.Equal(t, "to-canonical", config.Direction)
	assert.False(t, config.Provenance)
	assert.Equal(t, path, config.ConfigFile)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("ROUTEMAP_CLEAN_DIR", "out")
	t.Setenv("ROUTEMAP_THRESHOLD", "75")

	config, err := loadConfig(viper.New(), writeConfig(t, "clean_dir: from-file\n"))
	require.NoError(t, err)

	assert.Equal(t, "out", config.CleanDir)
	assert.InDelta(t, 75.0, config.Threshold, 0.001)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration error")
}

func TestConfigReloadKeepsFlags(t *testing.T) {
	config := &Config{Verbose: true, Format: "json", LogLevel: "debug", SourceDir: "before"}

	require.NoError(t, config.Reload(writeConfig(t, "source_dir: after\n")))

	assert.Equal(t, "after", config.SourceDir)
	assert.True(t, config.Verbose)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: "warn"}

	config.UpdateFromFlags(true, false, true, "", "")
	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, "warn", config.LogLevel)

	config.UpdateFromFlags(false, true, false, "json", "error")
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "error", config.LogLevel)
}

func TestLoadEnvFilesLocalWins(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("ROUTEMAP_ENV_ORDER=local\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ROUTEMAP_ENV_ORDER=base\nROUTEMAP_ENV_BASE=base\n"), 0o600))
	for _, key := range []string{"ROUTEMAP_ENV_ORDER", "ROUTEMAP_ENV_BASE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	loadEnvFiles()

	assert.Equal(t, "local", os.Getenv("ROUTEMAP_ENV_ORDER"))
	assert.Equal(t, "base", os.Getenv("ROUTEMAP_ENV_BASE"))
}

func TestLoadEnvFilesKeepsEnvironment(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("ROUTEMAP_ENV_ORDER=local\n"), 0o600))
	t.Setenv("ROUTEMAP_ENV_ORDER", "shell")

	loadEnvFiles()

	assert.Equal(t, "shell", os.Getenv("ROUTEMAP_ENV_ORDER"))
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
