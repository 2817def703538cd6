package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	RedisURL string
	CartTTL  time.Duration

	CatalogBaseURL  string
	CatalogUsername string
	CatalogPassword string

	TelegramBotToken string
	TelegramChatID   string

	KafkaBrokers string
	KafkaTopic   string

	AllowedOrigins []string

	SearchDebounce time.Duration
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:             getEnv("PORT", "8086"),
		Env:              getEnv("ENV", "development"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379"),
		CartTTL:          getTTL("CART_TTL", time.Hour*24*7),
		CatalogBaseURL:   getEnv("CATALOG_BASE_URL", "http://localhost:1337/api"),
		CatalogUsername:  getEnv("CATALOG_USERNAME", ""),
		CatalogPassword:  getEnv("CATALOG_PASSWORD", ""),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		KafkaBrokers:     getEnv("KAFKA_BROKERS", ""),
		KafkaTopic:       getEnv("KAFKA_TOPIC", "order.placed"),
		AllowedOrigins:   strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		SearchDebounce:   getDuration("SEARCH_DEBOUNCE_MS", 400*time.Millisecond),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getTTL reads a duration env var in Go duration syntax, e.g. "168h".
func getTTL(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

// getDuration reads a duration env var given in milliseconds.
func getDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	ms, err := strconv.Atoi(val)
	if err != nil || ms < 0 {
		return defaultVal
	}
	return time.Duration(ms) * time.Millisecond
}
