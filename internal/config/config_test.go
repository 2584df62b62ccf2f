package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "CORS_ALLOWED_ORIGINS", "CHAT_TYPING_DELAY", "CHAT_RANDOM_SEED", "CHAT_SESSION_IDLE_TTL", "MOOD_ANALYSIS_DELAY", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Server.Addr)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Fatalf("unexpected origins: %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Chat.TypingDelay != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s typing delay, got %s", cfg.Chat.TypingDelay)
	}
	if cfg.Chat.RandomSeed != 0 {
		t.Fatalf("expected zero seed, got %d", cfg.Chat.RandomSeed)
	}
	if cfg.Chat.SessionIdleTTL != 30*time.Minute {
		t.Fatalf("expected 30m idle ttl, got %s", cfg.Chat.SessionIdleTTL)
	}
	if cfg.Mood.AnalysisDelay != 2*time.Second {
		t.Fatalf("expected 2s analysis delay, got %s", cfg.Mood.AnalysisDelay)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://app.example.com,")
	t.Setenv("CHAT_TYPING_DELAY", "250ms")
	t.Setenv("CHAT_RANDOM_SEED", "42")
	t.Setenv("CHAT_SESSION_IDLE_TTL", "0s")
	t.Setenv("MOOD_ANALYSIS_DELAY", "0s")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr %s", cfg.Server.Addr)
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Chat.TypingDelay != 250*time.Millisecond || cfg.Chat.RandomSeed != 42 || cfg.Chat.SessionIdleTTL != 0 {
		t.Fatalf("unexpected chat config: %+v", cfg.Chat)
	}
	if cfg.Mood.AnalysisDelay != 0 {
		t.Fatalf("expected zero analysis delay, got %s", cfg.Mood.AnalysisDelay)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":              "80 80",
		"CHAT_TYPING_DELAY": "soon",
		"CHAT_RANDOM_SEED":  "abc",
		"LOG_LEVEL":         "loud",
		"LOG_FORMAT":        "xml",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestLoadRejectsNegativeDelay(t *testing.T) {
	t.Setenv("CHAT_TYPING_DELAY", "-1s")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative delay")
	}
}
