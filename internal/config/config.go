package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

type Config struct {
	Addr            string        // API bind address, e.g. ":8080" or "127.0.0.1:8080"
	LogDir          string        // logs directory
	LogLevel        string        // debug | info | warn | error
	PollInterval    time.Duration // wait after each poll pass; 0 disables the poller
	ProbeTimeout    time.Duration // per-probe timeout
	PollConcurrency int           // probes in flight during one pass
	PingRPM         int           // /ping requests per minute per client IP; 0 disables
	PingBurst       int
	PublicKeys      []string // PUBLIC_API_KEYS, comma separated; with AdminKeys empty, auth is off
	AdminKeys       []string // ADMIN_API_KEYS, comma separated
}

// Load reads settings from the environment (ADDR, LOG_DIR, POLL_INTERVAL, ...)
// and from an optional sitewatch.yaml in . or ./config. Environment wins.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("log_dir", "logs")
	v.SetDefault("log_level", LogLevelInfo)
	v.SetDefault("poll_interval", "60s")
	v.SetDefault("probe_timeout", "5s")
	v.SetDefault("poll_concurrency", 8)
	v.SetDefault("ping_rpm", 0)
	v.SetDefault("ping_burst", 10)
	v.SetDefault("public_api_keys", "")
	v.SetDefault("admin_api_keys", "")

	v.SetConfigName("sitewatch")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	pollInterval, err := duration(v, "poll_interval")
	if err != nil {
		return nil, err
	}
	probeTimeout, err := duration(v, "probe_timeout")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Addr:            v.GetString("addr"),
		LogDir:          v.GetString("log_dir"),
		LogLevel:        v.GetString("log_level"),
		PollInterval:    pollInterval,
		ProbeTimeout:    probeTimeout,
		PollConcurrency: v.GetInt("poll_concurrency"),
		PingRPM:         v.GetInt("ping_rpm"),
		PingBurst:       v.GetInt("ping_burst"),
		PublicKeys:      splitKeys(v.GetString("public_api_keys")),
		AdminKeys:       splitKeys(v.GetString("admin_api_keys")),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// duration parses key strictly; viper's GetDuration turns garbage into 0,
// which would silently disable the poller.
func duration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: must be a valid duration (e.g., 30s, 5m): %q", key, raw)
	}
	return d, nil
}

// splitKeys turns "a, b,,c" into [a b c].
func splitKeys(raw string) []string {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required, validation.By(validateHostPort)),
		validation.Field(&c.LogDir, validation.Required),
		validation.Field(&c.LogLevel,
			validation.Required,
			validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
		),
		validation.Field(&c.PollInterval, validation.Min(time.Duration(0))),
		validation.Field(&c.ProbeTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.PollConcurrency, validation.Required, validation.Min(1)),
		validation.Field(&c.PingRPM, validation.Min(0)),
		validation.Field(&c.PingBurst, validation.Min(0)),
	)
}

func validateHostPort(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}
	if port == "" {
		return validation.NewError("validation_invalid_port", "port cannot be empty")
	}
	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}
	return nil
}
