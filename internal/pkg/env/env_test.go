package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupEnvFile_LoadsFirstExistingFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("UPLOAD_ROOT=/srv/uploads\nUPLOAD_BODY_LIMIT=1024\n"), 0o644))

	ok := SetupEnvFile(filepath.Join(dir, "missing.env"), file)
	require.True(t, ok)
	t.Cleanup(func() { Env = nil })

	assert.Equal(t, "/srv/uploads", GetEnv("UPLOAD_ROOT", "uploads"))
	assert.Equal(t, int64(1024), GetEnvInt64("UPLOAD_BODY_LIMIT", 0))
}

func TestSetupEnvFile_MissingFileFallsBackToProcessEnv(t *testing.T) {
	t.Setenv("APP_MODULE", "blog")

	ok := SetupEnvFile(filepath.Join(t.TempDir(), "nope.env"))
	t.Cleanup(func() { Env = nil })

	assert.False(t, ok)
	assert.Equal(t, "blog", GetEnv("APP_MODULE", "default"))
	assert.Equal(t, "fallback", GetEnv("FOXCMS_UNSET_KEY", "fallback"))
}

func TestGetEnvInt64_InvalidValue(t *testing.T) {
	t.Setenv("UPLOAD_BODY_LIMIT", "lots")
	Env = nil

	assert.Equal(t, int64(42), GetEnvInt64("UPLOAD_BODY_LIMIT", 42))
}

func TestIsDev(t *testing.T) {
	Env = nil
	t.Setenv("APP_ENV", "")
	assert.False(t, IsDev())

	t.Setenv("APP_ENV", "dev")
	assert.True(t, IsDev())

	Env = map[string]string{"APP_ENV": "prod"}
	t.Cleanup(func() { Env = nil })
	assert.False(t, IsDev())
}
