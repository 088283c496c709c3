package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "data/alumnos.json", cfg.MembersFile)
	assert.Equal(t, "data/libros.json", cfg.BooksFile)
	assert.Equal(t, "data/prestamos.json", cfg.LoansFile)
	assert.Equal(t, "biblioteca.log", cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"members_file: otros/alumnos.json\nlog_level: debug\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "otros/alumnos.json", cfg.MembersFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Unset keys keep their defaults.
	assert.Equal(t, "data/libros.json", cfg.BooksFile)
}

func TestLoadConfigMissingExplicitFileFails(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "no-existe.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: ruidoso\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
