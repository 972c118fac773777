package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Binance API
	BinanceAPIKey    string
	BinanceSecretKey string

	// Network selection: mainnet when true, testnet otherwise
	Mainnet bool

	// Logging
	LogPath string
}

// Load reads .env (when present) and the process environment. Credentials
// may be empty here; unsigned endpoints and dry-run work without them.
func Load() (*Config, error) {
	// Missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.BinanceAPIKey = os.Getenv("BINANCE_API_KEY")
	cfg.BinanceSecretKey = os.Getenv("BINANCE_API_SECRET")
	cfg.Mainnet = parseBool(os.Getenv("BINANCE_MAINNET"))

	cfg.LogPath = os.Getenv("LOG_PATH")
	if cfg.LogPath == "" {
		cfg.LogPath = "bot.log"
	}

	return cfg, nil
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
