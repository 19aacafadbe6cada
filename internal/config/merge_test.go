package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pokedex/internal/config"
)

// writeOverlay writes YAML content to a temp file and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestShallowMergeYAML(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		verify func(t *testing.T, got, defaults *config.Config)
	}{
		{
			name: "single section",
			yaml: "logging:\n  level: debug\n",
			verify: func(t *testing.T, got, defaults *config.Config) {
				assert.Equal(t, "debug", got.Logging.Level)
				assert.Equal(t, defaults.Logging.Format, got.Logging.Format)
				assert.Equal(t, defaults.API, got.API)
			},
		},
		{
			name: "several sections",
			yaml: "state:\n  disabled: true\nmetrics:\n  addr: :9100\n",
			verify: func(t *testing.T, got, defaults *config.Config) {
				assert.True(t, got.State.Disabled)
				assert.Equal(t, defaults.State.File, got.State.File)
				assert.Equal(t, ":9100", got.Metrics.Addr)
			},
		},
		{
			name: "empty file",
			yaml: "",
			verify: func(t *testing.T, got, defaults *config.Config) {
				assert.Equal(t, defaults, got)
			},
		},
		{
			name: "comment only",
			yaml: "# nothing here\n",
			verify: func(t *testing.T, got, defaults *config.Config) {
				assert.Equal(t, defaults, got)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			defaults := config.Default()
			target := config.Default()

			require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, tt.yaml)))
			tt.verify(t, target, defaults)
		})
	}
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	isolate(t)

	err := config.ShallowMergeYAML(nil, "unused")
	require.Error(t, err)

	err = config.ShallowMergeYAML(config.Default(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	err = config.ShallowMergeYAML(config.Default(), writeOverlay(t, "api: [broken"))
	require.Error(t, err)

	err = config.ShallowMergeYAML(config.Default(), writeOverlay(t, "dex:\n  max_id: many\n"))
	require.Error(t, err)
}
