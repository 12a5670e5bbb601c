package telegram_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/pvpc-tools/pvpc-exporter/pkg/telegram"
)

func TestLoadTiers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiers.yaml")
	data := []byte(`
cheap: 0.05
mid: 0.20
emojis: ["🟢", "🟠", "🔴"]
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	tiers, err := telegram.LoadTiers(path)
	require.NoError(t, err)

	assert.Equal(t, "🟢", tiers.Emoji(0.04))
	assert.Equal(t, "🟠", tiers.Emoji(0.10))
	assert.Equal(t, "🔴", tiers.Emoji(0.25))
}

func TestLoadTiers_PartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cheap: 0.02\n"), 0o644))

	tiers, err := telegram.LoadTiers(path)
	require.NoError(t, err)

	assert.Equal(t, 0.02, tiers.Cheap)
	assert.Equal(t, 0.15, tiers.Mid)
	assert.Equal(t, "🔵", tiers.Emojis[0])
}

func TestLoadTiers_InvalidBounds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cheap: 0.5\nmid: 0.1\n"), 0o644))

	_, err := telegram.LoadTiers(path)
	assert.Error(t, err)
}

func TestLoadTiers_MissingFile(t *testing.T) {
	_, err := telegram.LoadTiers(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
