package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultConfigPath         = "config.toml"
	DefaultHTTPAddr           = ":8080"
	DefaultTokensFile         = "tokens.txt"
	DefaultBotsFile           = "bots.txt"
	DefaultReplyWindowSeconds = 2
	DefaultRegistryTTLSeconds = 60
)

type Config struct {
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
	Lists  ListsConfig  `toml:"lists"`
	Probe  ProbeConfig  `toml:"probe"`
}

type LogConfig struct {
	Level  string `toml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `toml:"format" validate:"omitempty,oneof=text json"`
}

type ServerConfig struct {
	Addr string `toml:"addr" validate:"required"`
}

type ListsConfig struct {
	TokensFile string `toml:"tokens_file" validate:"required"`
	BotsFile   string `toml:"bots_file" validate:"required"`
}

type ProbeConfig struct {
	ReplyWindowSeconds int `toml:"reply_window_seconds" validate:"min=1"`
	RegistryTTLSeconds int `toml:"registry_ttl_seconds" validate:"min=1"`
}

func (p ProbeConfig) ReplyWindow() time.Duration {
	return time.Duration(p.ReplyWindowSeconds) * time.Second
}

func (p ProbeConfig) RegistryTTL() time.Duration {
	return time.Duration(p.RegistryTTLSeconds) * time.Second
}

var validate = validator.New()

func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		Lists: ListsConfig{
			TokensFile: DefaultTokensFile,
			BotsFile:   DefaultBotsFile,
		},
		Probe: ProbeConfig{
			ReplyWindowSeconds: DefaultReplyWindowSeconds,
			RegistryTTLSeconds: DefaultRegistryTTLSeconds,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
