package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	Chat   ChatConfig
	Mood   MoodConfig
	Log    LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	mood, err := loadMoodConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Chat: chat, Mood: mood, Log: logCfg}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// loadServerConfig 解析服务器监听地址与跨域来源。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	origins := splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"))

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port, AllowedOrigins: origins}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}
	if _, err := strconv.Atoi(port); err != nil {
		return ServerConfig{}, fmt.Errorf("invalid PORT value %q: %w", port, err)
	}

	return ServerConfig{Addr: ":" + port, AllowedOrigins: origins}, nil
}

// ChatConfig 描述聊天会话的行为。
type ChatConfig struct {
	TypingDelay time.Duration
	RandomSeed  int64
	// SessionIdleTTL 为 0 时会话只在显式关闭时释放
	SessionIdleTTL time.Duration
}

func loadChatConfig() (ChatConfig, error) {
	delay, err := parseDurationEnv("CHAT_TYPING_DELAY", 1500*time.Millisecond)
	if err != nil {
		return ChatConfig{}, err
	}

	seed, err := parseOptionalInt64Env("CHAT_RANDOM_SEED")
	if err != nil {
		return ChatConfig{}, err
	}

	idleTTL, err := parseDurationEnv("CHAT_SESSION_IDLE_TTL", 30*time.Minute)
	if err != nil {
		return ChatConfig{}, err
	}

	cfg := ChatConfig{TypingDelay: delay, SessionIdleTTL: idleTTL}
	if seed != nil {
		cfg.RandomSeed = *seed
	}
	return cfg, nil
}

// MoodConfig 描述情绪检测模拟器配置。
type MoodConfig struct {
	AnalysisDelay time.Duration
}

func loadMoodConfig() (MoodConfig, error) {
	delay, err := parseDurationEnv("MOOD_ANALYSIS_DELAY", 2*time.Second)
	if err != nil {
		return MoodConfig{}, err
	}
	return MoodConfig{AnalysisDelay: delay}, nil
}

// LogConfig 描述日志输出配置。
type LogConfig struct {
	Level  string
	Format string
}

func loadLogConfig() (LogConfig, error) {
	level := strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info"))
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return LogConfig{}, fmt.Errorf("invalid LOG_LEVEL value %q", level)
	}

	format := strings.ToLower(getEnvOrDefault("LOG_FORMAT", "console"))
	if format != "console" && format != "json" {
		return LogConfig{}, fmt.Errorf("invalid LOG_FORMAT value %q", format)
	}

	return LogConfig{Level: level, Format: format}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val < 0 {
		return 0, fmt.Errorf("invalid %s value %q: must not be negative", key, raw)
	}
	return val, nil
}

func parseOptionalInt64Env(key string) (*int64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
