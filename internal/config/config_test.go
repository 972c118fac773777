package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BINANCE_API_KEY", "k")
	t.Setenv("BINANCE_API_SECRET", "s")
	t.Setenv("BINANCE_MAINNET", "")
	t.Setenv("LOG_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}
	if cfg.BinanceAPIKey != "k" || cfg.BinanceSecretKey != "s" {
		t.Errorf("credentials not read from environment: %+v", cfg)
	}
	if cfg.Mainnet {
		t.Error("Mainnet should default to false (testnet)")
	}
	if cfg.LogPath != "bot.log" {
		t.Errorf("LogPath = %q, want bot.log default", cfg.LogPath)
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"y", true},
		{"", false},
		{"0", false},
		{"false", false},
		{"no", false},
	}
	for _, tt := range tests {
		if got := parseBool(tt.in); got != tt.want {
			t.Errorf("parseBool(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
