package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Registry struct {
		BaseURL string `yaml:"base_url" json:"base_url"`
	} `yaml:"registry" json:"registry"`

	Search struct {
		BaseURL        string `yaml:"base_url" json:"base_url"`
		Model          string `yaml:"model" json:"model"`
		RenderModel    string `yaml:"render_model" json:"render_model"`
		TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
	} `yaml:"search" json:"search"`

	Messenger struct {
		WebhookURL string `yaml:"webhook_url" json:"webhook_url"`
		BotID      string `yaml:"bot_id" json:"bot_id"`
		ClientID   string `yaml:"client_id" json:"client_id"`
		MaxPartLen int    `yaml:"max_part_len" json:"max_part_len"`
	} `yaml:"messenger" json:"messenger"`

	Product struct {
		Description string `yaml:"description" json:"description"`
	} `yaml:"product" json:"product"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
