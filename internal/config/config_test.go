// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/crnc/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
compile:
  lna: true
  quiet: false
style:
  varchar: "~"
  swap:
    a: alpha
  alpha_map: true
params:
  k: 0.5
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crnc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := config.LoadConfig(writeConfig(t, sample))
	require.NoError(t, err)
	assert.True(t, cfg.Compile.LNA)
	assert.False(t, cfg.Compile.Quiet)
	assert.Equal(t, "~", cfg.Style.Varchar)
	assert.Equal(t, map[string]float64{"k": 0.5}, cfg.Params)

	st := cfg.NewStyle()
	assert.Equal(t, "~", st.Varchar())
	assert.Equal(t, "alpha", st.Swap()["a"])
	assert.NotNil(t, st.Map())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CRNC_LNA", "false")
	t.Setenv("CRNC_QUIET", "1")
	t.Setenv("CRNC_VARCHAR", ".")

	cfg, err := config.LoadConfig(writeConfig(t, sample))
	require.NoError(t, err)
	assert.False(t, cfg.Compile.LNA)
	assert.True(t, cfg.Compile.Quiet)
	assert.Equal(t, ".", cfg.Style.Varchar)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = config.LoadConfig(writeConfig(t, "compile: [oops"))
	require.Error(t, err)

	t.Setenv("CRNC_LNA", "maybe")
	_, err = config.LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfig_NoFile(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	assert.False(t, cfg.Compile.LNA)
	assert.Equal(t, "_", cfg.NewStyle().Varchar())
}

func TestLoadConfig_Example(t *testing.T) {
	cfg, err := config.LoadConfig(filepath.Join("..", "..", "examples", "crnc.yaml"))
	require.NoError(t, err)
	assert.True(t, cfg.Compile.Metrics)
	assert.Equal(t, 0.1, cfg.Params["k"])
}
