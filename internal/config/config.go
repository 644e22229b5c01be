package config

import (
	"os"
)

type Config struct {
	AppPort string

	YahooClientID     string
	YahooClientSecret string

	// YahooUseDiscovery switches the Yahoo provider to OIDC
	// endpoint discovery instead of the static defaults.
	YahooUseDiscovery bool
}

func Load() Config {

	cfg := Config{

		AppPort: os.Getenv("APP_PORT"),

		YahooClientID:     os.Getenv("YAHOO_CLIENT_ID"),
		YahooClientSecret: os.Getenv("YAHOO_CLIENT_SECRET"),

		YahooUseDiscovery: os.Getenv("YAHOO_USE_DISCOVERY") == "true",
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}

	return cfg

}
