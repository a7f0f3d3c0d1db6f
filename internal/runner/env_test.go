package runner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lookup returns the last value of key in env, as exec.Cmd resolves duplicates.
func lookup(env []string, key string) (string, bool) {
	value, found := "", false
	for _, kv := range env {
		if k, v, ok := strings.Cut(kv, "="); ok && k == key {
			value, found = v, true
		}
	}
	return value, found
}

func TestEnvironment(t *testing.T) {
	t.Setenv("VERIFY_HELPER_INHERITED", "process")
	t.Setenv("VERIFY_HELPER_OVERRIDDEN", "process")

	path := filepath.Join(t.TempDir(), "env")
	content := "VERIFY_HELPER_OVERRIDDEN=file\n# comment\nVERIFY_HELPER_QUOTED=\"a b\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	env, err := Environment(path)
	require.NoError(t, err)

	v, ok := lookup(env, "VERIFY_HELPER_INHERITED")
	assert.True(t, ok)
	assert.Equal(t, "process", v)

	v, _ = lookup(env, "VERIFY_HELPER_OVERRIDDEN")
	assert.Equal(t, "file", v)

	v, _ = lookup(env, "VERIFY_HELPER_QUOTED")
	assert.Equal(t, "a b", v)
}

func TestEnvironment_MissingFile(t *testing.T) {
	env, err := Environment(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Equal(t, len(os.Environ()), len(env))
}

func TestEnvironment_NoFile(t *testing.T) {
	env, err := Environment("")
	require.NoError(t, err)
	assert.Equal(t, len(os.Environ()), len(env))
}

func TestEnvironment_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env")
	require.NoError(t, os.WriteFile(path, []byte("BAD-KEY=1\n"), 0o644))

	_, err := Environment(path)
	assert.Error(t, err)
}

func TestEnvironment_AppendsFileVarsSorted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env")
	require.NoError(t, os.WriteFile(path, []byte("YUKICODER_TOKEN=secret\nCXXFLAGS=\"-O2 -std=c++17\"\n"), 0o600))

	env, err := Environment(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"CXXFLAGS=-O2 -std=c++17", "YUKICODER_TOKEN=secret"}, env[len(env)-2:])
}
