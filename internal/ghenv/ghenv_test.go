package ghenv_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/pvpc-tools/pvpc-exporter/internal/ghenv"
)

func TestSink_Publish(t *testing.T) {
	path := filepath.Join(t.TempDir(), "github_env")
	sink := ghenv.NewSink(path)
	require.True(t, sink.Enabled())

	require.NoError(t, sink.Publish("PVPC_DATE_FORMATTED", "2023-06-01"))
	require.NoError(t, sink.Publish("PVPC_OUTPUT_PCB_PATH_FORMATTED", "out/2023/06/01.json"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "\nPVPC_DATE_FORMATTED=2023-06-01\n")
	assert.Contains(t, string(content), "\nPVPC_OUTPUT_PCB_PATH_FORMATTED=out/2023/06/01.json\n")
}

func TestSink_AppendsToExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "github_env")
	require.NoError(t, os.WriteFile(path, []byte("EXISTING=1\n"), 0o644))

	sink := ghenv.NewSink(path)
	require.NoError(t, sink.Publish("NEW", "2"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "EXISTING=1")
	assert.Contains(t, string(content), "NEW=2")
}

func TestFromEnv_Disabled(t *testing.T) {
	t.Setenv(ghenv.EnvFileVar, "")

	sink := ghenv.FromEnv()
	assert.False(t, sink.Enabled())
	assert.NoError(t, sink.Publish("KEY", "value"))
}

func TestFromEnv_Enabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "github_env")
	t.Setenv(ghenv.EnvFileVar, path)

	sink := ghenv.FromEnv()
	require.True(t, sink.Enabled())
	require.NoError(t, sink.Publish("KEY", "value"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "KEY=value")
}
