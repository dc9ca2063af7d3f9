package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Defaults mirror the environment the tool was originally written for. They
// are configuration, not invariants: PATH on the command line or a config
// file overrides them.
const DefaultCacheRoot = `C:\PkgCache\VC17LTCG`

var DefaultCheckpointRoots = []string{
	`${APPDATA}\Code\User\globalStorage\microsoftai.ms-roo-cline\tasks`,
	`${APPDATA}\Code\User\globalStorage\rooveterinaryinc.roo-cline\tasks`,
}

type Config struct {
	Version       int                  `mapstructure:"version"`
	Cache         CacheConfig          `mapstructure:"cache"`
	Checkpoints   CheckpointConfig     `mapstructure:"checkpoints"`
	Daemon        DaemonConfig         `mapstructure:"daemon"`
	Logging       LoggingConfig        `mapstructure:"logging"`
	Notifications []NotificationConfig `mapstructure:"notifications"`
}

type CacheConfig struct {
	Root string `mapstructure:"root"`
}

type CheckpointConfig struct {
	Roots []string `mapstructure:"roots"`
}

type DaemonConfig struct {
	Schedule         string `mapstructure:"schedule"`
	CleanCheckpoints bool   `mapstructure:"clean_checkpoints"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

type NotificationConfig struct {
	Type   string              `mapstructure:"type"`
	On     []string            `mapstructure:"on"`
	Config NotificationDetails `mapstructure:"config"`
}

type NotificationDetails struct {
	SMTPHost string            `mapstructure:"smtp_host"`
	SMTPPort int               `mapstructure:"smtp_port"`
	From     string            `mapstructure:"from"`
	To       string            `mapstructure:"to"`
	Username string            `mapstructure:"username"`
	Password string            `mapstructure:"password"`
	URL      string            `mapstructure:"url"`
	Headers  map[string]string `mapstructure:"headers"`
}

func Default() *Config {
	return &Config{
		Version: 1,
		Cache:   CacheConfig{Root: DefaultCacheRoot},
		Checkpoints: CheckpointConfig{
			Roots: append([]string(nil), DefaultCheckpointRoots...),
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// LoadConfig reads the YAML config at path on top of the built-in defaults.
// An empty path yields the defaults unchanged (after env expansion).
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		v := viper.New()
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := v.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	ModifyConfig(cfg)

	return cfg, nil
}

func ModifyConfig(cfg *Config) {
	cfg.Cache.Root = os.ExpandEnv(cfg.Cache.Root)

	for i := range cfg.Checkpoints.Roots {
		cfg.Checkpoints.Roots[i] = os.ExpandEnv(cfg.Checkpoints.Roots[i])
	}

	cfg.Daemon.Schedule = os.ExpandEnv(cfg.Daemon.Schedule)
	cfg.Logging.File = os.ExpandEnv(cfg.Logging.File)

	for i := range cfg.Notifications {
		nt := &cfg.Notifications[i]
		nt.Type = os.ExpandEnv(nt.Type)
		for j := range nt.On {
			nt.On[j] = os.ExpandEnv(nt.On[j])
		}
		nt.Config.SMTPHost = os.ExpandEnv(nt.Config.SMTPHost)
		nt.Config.From = os.ExpandEnv(nt.Config.From)
		nt.Config.To = os.ExpandEnv(nt.Config.To)
		nt.Config.Username = os.ExpandEnv(nt.Config.Username)
		nt.Config.Password = os.ExpandEnv(nt.Config.Password)
		nt.Config.URL = os.ExpandEnv(nt.Config.URL)
		for k, v := range nt.Config.Headers {
			nt.Config.Headers[k] = os.ExpandEnv(v)
		}
	}
}
