package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIPort  string
	LogLevel string

	SurrealURL       string
	SurrealNamespace string
	SurrealDatabase  string
	SurrealUsername  string
	SurrealPassword  string

	RedisURL        string
	SessionTTLHours int
	AuthSecret      string

	NATSURL     string
	NATSSubject string

	GeminiURL    string
	GeminiModel  string
	GeminiAPIKey string

	SendGridURL    string
	SendGridAPIKey string
	MailFrom       string

	PublicBaseURL string

	WorkerMetricsPort string
}

// Load builds the configuration from the environment layered over an
// optional YAML file named by TEN99_CONFIG_FILE. Environment variables win;
// the file supplies fallbacks; compiled defaults fill the rest.
func Load() (Config, error) {
	file, err := loadFile(os.Getenv("TEN99_CONFIG_FILE"))
	if err != nil {
		return Config{}, err
	}

	get := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		if v, ok := file[key]; ok && v != "" {
			return v
		}
		return fallback
	}
	getInt := func(key string, fallback int) int {
		v := get(key, "")
		if v == "" {
			return fallback
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fallback
		}
		return n
	}

	return Config{
		APIPort:  get("API_PORT", "8080"),
		LogLevel: get("LOG_LEVEL", "info"),

		SurrealURL:       get("SURREAL_URL", "ws://localhost:8000/rpc"),
		SurrealNamespace: get("SURREAL_NAMESPACE", "ten99"),
		SurrealDatabase:  get("SURREAL_DATABASE", "ten99"),
		SurrealUsername:  get("SURREAL_USERNAME", ""),
		SurrealPassword:  get("SURREAL_PASSWORD", ""),

		RedisURL:        get("REDIS_URL", "redis://localhost:6379/0"),
		SessionTTLHours: getInt("SESSION_TTL_HOURS", 24),
		AuthSecret:      get("AUTH_SECRET", ""),

		NATSURL:     get("NATS_URL", "nats://localhost:4222"),
		NATSSubject: get("NATS_SUBJECT", "proposals.inbox"),

		GeminiURL:    get("GEMINI_URL", "https://generativelanguage.googleapis.com"),
		GeminiModel:  get("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiAPIKey: get("GEMINI_API_KEY", ""),

		SendGridURL:    get("SENDGRID_URL", "https://api.sendgrid.com"),
		SendGridAPIKey: get("SENDGRID_API_KEY", ""),
		MailFrom:       get("MAIL_FROM", "noreply@ten99.app"),

		PublicBaseURL: get("PUBLIC_BASE_URL", "https://ten99.app/shared/job-file"),

		WorkerMetricsPort: get("WORKER_METRICS_PORT", "9090"),
	}, nil
}

func loadFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	values := map[string]string{}
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return values, nil
}
