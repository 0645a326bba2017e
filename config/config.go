package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Tushare  TushareConfig  `yaml:"tushare"`
	DeepSeek DeepSeekConfig `yaml:"deepseek"`
	Registry RegistryConfig `yaml:"registry"`
	Output   OutputConfig   `yaml:"output"`
	LogLevel string         `yaml:"log_level"`
}

type TushareConfig struct {
	Token string `yaml:"token"`
}

type DeepSeekConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type RegistryConfig struct {
	HMListPath       string `yaml:"hm_list_path"`
	StyleProfilePath string `yaml:"style_profile_path"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Registry: RegistryConfig{
			HMListPath:       "data/hm_list.csv",
			StyleProfilePath: "docs/游资风格画像分析.md",
		},
		Output:   OutputConfig{Dir: "data/output"},
		LogLevel: "info",
	}
}

// LoadConfig 加载配置：默认值 -> config.yaml -> 环境变量。
// 配置文件不存在时仅使用默认值和环境变量。
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("TUSHARE_TOKEN"); token != "" {
		cfg.Tushare.Token = token
	}
	if key := os.Getenv("DEEPSEEK_API_KEY"); key != "" {
		cfg.DeepSeek.APIKey = key
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
}
