package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes a variable for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad_Empty(t *testing.T) {
	unsetEnv(t, "CRAIFTER_ROOT")
	unsetEnv(t, "CRAIFTER_SHELL")
	unsetEnv(t, "CRAIFTER_CONFIRM")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Root)
	assert.Empty(t, cfg.Shell)
	assert.Nil(t, cfg.Confirm)
}

func TestLoad_ReadsPrefixedVariables(t *testing.T) {
	t.Setenv("CRAIFTER_ROOT", "/srv/sessions")
	t.Setenv("CRAIFTER_SHELL", "/bin/bash")
	t.Setenv("CRAIFTER_CONFIRM", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/sessions", cfg.Root)
	assert.Equal(t, "/bin/bash", cfg.Shell)
	require.NotNil(t, cfg.Confirm)
	assert.True(t, *cfg.Confirm)
}

func TestLoad_IgnoresUnprefixedShell(t *testing.T) {
	unsetEnv(t, "CRAIFTER_SHELL")
	unsetEnv(t, "CRAIFTER_CONFIRM")
	t.Setenv("SHELL", "/usr/bin/fish")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Shell)
}

func TestLoad_InvalidBool(t *testing.T) {
	unsetEnv(t, "CRAIFTER_SHELL")
	t.Setenv("CRAIFTER_CONFIRM", "sometimes")

	_, err := Load()
	assert.Error(t, err)
}
