package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the session server configuration. Values come from defaults, then
// an optional YAML file named by CONFIG_FILE, then the environment.
type Config struct {
	ListenAddr        string        `yaml:"listen_addr"`
	AdminAddr         string        `yaml:"admin_addr"`
	PoWDifficulty     int           `yaml:"pow_difficulty"`
	PoWMaxProofLength int64         `yaml:"pow_max_proof_length"`
	PoWTTL            time.Duration `yaml:"pow_ttl"`
	VerifyAttempts    int           `yaml:"verify_attempts"`
	RateLimit         float64       `yaml:"rate_limit"`
	RateBurst         int           `yaml:"rate_burst"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	DatabaseURL       string        `yaml:"database_url"`
	LogLevel          string        `yaml:"log_level"`
	ShutdownWait      time.Duration `yaml:"shutdown_wait"`
}

// ClientConfig configures the CLI client. Environment only.
type ClientConfig struct {
	ServerAddr string
	Timeout    time.Duration
	UseWorker  bool
	LogLevel   string
}

func Default() Config {
	return Config{
		ListenAddr:        ":8080",
		AdminAddr:         ":9090",
		PoWDifficulty:     2,
		PoWMaxProofLength: 1_000_000,
		PoWTTL:            60 * time.Second,
		VerifyAttempts:    3,
		RateLimit:         5,
		RateBurst:         10,
		IdleTimeout:       2 * time.Minute,
		LogLevel:          "info",
		ShutdownWait:      5 * time.Second,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func atoi64(s string, def int64) int64 {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return def
}

func atof(s string, def float64) float64 {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return def
}

func duration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}

func boolean(s string, def bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return def
}

// Parse loads the server config using CONFIG_FILE when set.
func Parse() (Config, error) {
	return Load(os.Getenv("CONFIG_FILE"))
}

// Load reads path (if non-empty and present) over the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// невалидные значения из окружения игнорируются, остаётся предыдущее значение
func (c *Config) applyEnv() {
	c.ListenAddr = getenv("LISTEN_ADDR", c.ListenAddr)
	c.AdminAddr = getenv("ADMIN_ADDR", c.AdminAddr)
	c.PoWDifficulty = atoi(getenv("POW_DIFFICULTY", ""), c.PoWDifficulty)
	c.PoWMaxProofLength = atoi64(getenv("POW_MAX_PROOF_LENGTH", ""), c.PoWMaxProofLength)
	c.PoWTTL = duration(getenv("POW_TTL", ""), c.PoWTTL)
	c.VerifyAttempts = atoi(getenv("VERIFY_ATTEMPTS", ""), c.VerifyAttempts)
	c.RateLimit = atof(getenv("RATE_LIMIT", ""), c.RateLimit)
	c.RateBurst = atoi(getenv("RATE_BURST", ""), c.RateBurst)
	c.IdleTimeout = duration(getenv("IDLE_TIMEOUT", ""), c.IdleTimeout)
	c.DatabaseURL = getenv("DATABASE_URL", c.DatabaseURL)
	c.LogLevel = getenv("LOG_LEVEL", c.LogLevel)
	c.ShutdownWait = duration(getenv("SHUTDOWN_WAIT", ""), c.ShutdownWait)
}

func ParseClient() ClientConfig {
	return ClientConfig{
		ServerAddr: getenv("SERVER_ADDR", "localhost:8080"),
		Timeout:    duration(getenv("CLIENT_TIMEOUT", ""), 30*time.Second),
		UseWorker:  boolean(getenv("USE_WORKER", ""), true),
		LogLevel:   getenv("LOG_LEVEL", "info"),
	}
}
