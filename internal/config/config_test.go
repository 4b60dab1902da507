package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsWhenNothingConfigured(t *testing.T) {
	cfg, err := Load(LoadOptions{ConfigDir: t.TempDir(), Environ: map[string]string{}})
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dynform.yaml", "addr: \":9090\"\nrenderer: JSON\ntheme_variant: dark\nform_type: addressInfo\n")

	cfg, err := Load(LoadOptions{ConfigDir: dir, Environ: map[string]string{}})
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "json", cfg.Renderer)
	assert.Equal(t, "dark", cfg.ThemeVariant)
	assert.Equal(t, "addressInfo", cfg.FormType)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "dynform", cfg.Theme)
}

func TestLoad_EnvFileAndEnvironmentPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "custom.yaml", "log_level: warn\ncatalog: forms.yaml\naddr: \":7000\"\n")
	envPath := writeFile(t, dir, "local.env", "DYNFORM_LOG_LEVEL=debug\nDYNFORM_ADDR=:7100\n")

	cfg, err := Load(LoadOptions{
		ConfigFile: cfgPath,
		EnvFile:    envPath,
		Environ:    map[string]string{"DYNFORM_ADDR": ":7200", "UNRELATED": "x"},
	})
	require.NoError(t, err)

	assert.Equal(t, "forms.yaml", cfg.Catalog, "config file value kept")
	assert.Equal(t, "debug", cfg.LogLevel, ".env overrides the config file")
	assert.Equal(t, ":7200", cfg.Addr, "environment overrides .env")
}

func TestLoad_MissingExplicitSourcesFail(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(LoadOptions{ConfigFile: filepath.Join(dir, "nope.yaml"), Environ: map[string]string{}})
	require.Error(t, err)

	_, err = Load(LoadOptions{ConfigDir: dir, EnvFile: filepath.Join(dir, "nope.env"), Environ: map[string]string{}})
	require.Error(t, err)
}

func TestLoad_RejectsEmptyRenderer(t *testing.T) {
	_, err := Load(LoadOptions{
		ConfigDir: t.TempDir(),
		Environ:   map[string]string{"DYNFORM_RENDERER": "  "},
	})
	require.Error(t, err)
}
