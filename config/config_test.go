package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "data/hm_list.csv", cfg.Registry.HMListPath)
	assert.Equal(t, "data/output", cfg.Output.Dir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Tushare.Token)
}

func TestLoadConfigFromYAML(t *testing.T) {
	content := `
tushare:
  token: "tk-123"
deepseek:
  api_key: "sk-456"
  model: "deepseek-chat"
registry:
  hm_list_path: "custom/hm.csv"
output:
  dir: "custom/out"
log_level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "tk-123", cfg.Tushare.Token)
	assert.Equal(t, "sk-456", cfg.DeepSeek.APIKey)
	assert.Equal(t, "custom/hm.csv", cfg.Registry.HMListPath)
	assert.Equal(t, "custom/out", cfg.Output.Dir)
	assert.Equal(t, "debug", cfg.LogLevel)
	// 未覆盖的字段保留默认值
	assert.Equal(t, "docs/游资风格画像分析.md", cfg.Registry.StyleProfilePath)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	content := "tushare:\n  token: \"from-yaml\"\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("TUSHARE_TOKEN", "from-env")
	t.Setenv("DEEPSEEK_API_KEY", "env-key")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Tushare.Token)
	assert.Equal(t, "env-key", cfg.DeepSeek.APIKey)
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	// yaml禁止tab缩进
	require.NoError(t, os.WriteFile(path, []byte("tushare:\n\ttoken: x\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
