package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "15m" decode.
type Duration time.Duration

// Duration returns the wrapped time.Duration.
func (d Duration) Duration() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds all kidcon configuration.
type Config struct {
	// LogDir is the prefix directory for hour-bucket log files.
	LogDir string `yaml:"log_dir"`

	// DBPath is the SQLite database for counter samples.
	DBPath string `yaml:"db"`

	// Provider selects the device registry implementation
	// ("routeros" or "memory").
	Provider string `yaml:"provider"`

	// Devices are the registry names of the tracked devices, reported
	// in order each capture run.
	Devices []string `yaml:"devices"`

	// Router holds the appliance connection settings for the routeros
	// provider.
	Router RouterConfig `yaml:"router"`

	// Interval is the delay between capture runs.
	Interval Duration `yaml:"interval"`

	// LogLevel sets the slog level ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level"`
}

// RouterConfig holds RouterOS SSH connection settings.
type RouterConfig struct {
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	KeyFile  string   `yaml:"key_file"`
	Timeout  Duration `yaml:"timeout"`
}

// Load reads configuration from environment variables with sensible
// defaults, then overlays the YAML file at path if path is non-empty.
func Load(path string) (Config, error) {
	cfg := Config{
		LogDir:   getenv("KIDCON_LOG_DIR", "logs"),
		DBPath:   getenv("KIDCON_DB", "mtkidcon.db"),
		Provider: getenv("KIDCON_PROVIDER", "routeros"),
		Devices:  splitList(os.Getenv("KIDCON_DEVICES")),
		Router: RouterConfig{
			Host:     os.Getenv("KIDCON_ROUTER_HOST"),
			Port:     getenvInt("KIDCON_ROUTER_PORT", 22),
			Username: getenv("KIDCON_ROUTER_USER", "admin"),
			Password: os.Getenv("KIDCON_ROUTER_PASSWORD"),
			KeyFile:  os.Getenv("KIDCON_ROUTER_KEY_FILE"),
		},
		Interval: Duration(getenvDuration("KIDCON_INTERVAL", 15*time.Minute)),
		LogLevel: getenv("KIDCON_LOG_LEVEL", "info"),
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// splitList splits a comma-separated device list, trimming whitespace
// and dropping empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
