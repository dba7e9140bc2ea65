package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AlertDays          int      `yaml:"alertDays"`
	AlertHour          int      `yaml:"alertHour"`
	AlertMin           int      `yaml:"alertMin"`
	Whois              Whois    `yaml:"whois"`
	Telegram           Telegram `yaml:"telegram"`
	CloudflareAccounts []CF     `yaml:"cloudflareAccounts"`
	ACM                ACM      `yaml:"acm"`
	DomainFiles        []string `yaml:"domainFiles"`
	ResultFile         string   `yaml:"resultFile"`
}

type Whois struct {
	// MaxFollow 为 0 时退回环境变量 WHOIS_MAX_FOLLOW（默认 5）。
	MaxFollow      int `yaml:"maxFollow"`
	TimeoutSeconds int `yaml:"timeoutSeconds"`
	RateLimitMs    int `yaml:"rateLimitMs"`
}

type Telegram struct {
	BotToken string `yaml:"botToken"`
	ChatID   int64  `yaml:"chatID"`
}

type CF struct {
	Label     string `yaml:"label"`
	Email     string `yaml:"email"`
	APIToken  string `yaml:"apiToken"`
	AccountID string `yaml:"accountID"`
}

type ACM struct {
	Label           string `yaml:"label"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"accessKeyID"`
	SecretAccessKey string `yaml:"secretAccessKey"`
}

var Cfg Config

func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取配置文件失败: %w", err)
	}
	// 重新加载时不保留上一次的字段
	Cfg = Config{}
	if err := yaml.Unmarshal(data, &Cfg); err != nil {
		return fmt.Errorf("解析配置失败: %w", err)
	}
	if Cfg.AlertDays <= 0 {
		Cfg.AlertDays = 30
	}
	if Cfg.Whois.TimeoutSeconds <= 0 {
		Cfg.Whois.TimeoutSeconds = 30
	}
	if Cfg.Whois.RateLimitMs <= 0 {
		Cfg.Whois.RateLimitMs = 1000
	}
	return nil
}
