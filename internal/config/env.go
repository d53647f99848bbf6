package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// ProbeEnv carries the probe transport settings. The token is a secret and
// the endpoint is deployment-specific, so both come from the environment
// rather than the config file.
type ProbeEnv struct {
	BotToken    string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	APIEndpoint string `envconfig:"TELEGRAM_API_ENDPOINT"` // e.g. "http://127.0.0.1:8081/bot%s/%s"
}

// LoadProbeEnv reads the BOTPING_-prefixed probe settings from the
// environment. An empty endpoint means the stock Bot API.
func LoadProbeEnv() (*ProbeEnv, error) {
	var e ProbeEnv
	if err := envconfig.Process("botping", &e); err != nil {
		return nil, fmt.Errorf("load probe env: %w", err)
	}
	return &e, nil
}
