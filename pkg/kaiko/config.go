package kaiko

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ratefeed-api/pkg/confkit"
)

// Config describes the Kaiko API connection. String fields support
// ${VAR} environment expansion so API keys stay out of the file.
type Config struct {
	APIKey           string `yaml:"api_key"`
	MarketDataURL    string `yaml:"market_data_url"`
	ReferenceDataURL string `yaml:"reference_data_url"`

	TimeoutRaw string        `yaml:"timeout"`
	Timeout    time.Duration `yaml:"-"`
	MaxRetries int           `yaml:"max_retries"`
}

// LoadConfig reads a Kaiko configuration file from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open kaiko config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// LoadConfigFromReader constructs a Config from an io.Reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	confkit.LoadDotenvOnce()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read kaiko config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal kaiko config: %w", err)
	}
	if err := cfg.normalise(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalise() error {
	c.APIKey = strings.TrimSpace(os.ExpandEnv(c.APIKey))
	c.MarketDataURL = strings.TrimSpace(os.ExpandEnv(c.MarketDataURL))
	c.ReferenceDataURL = strings.TrimSpace(os.ExpandEnv(c.ReferenceDataURL))

	raw := strings.TrimSpace(os.ExpandEnv(c.TimeoutRaw))
	if raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("kaiko config: parse timeout %q: %w", raw, err)
		}
		c.Timeout = d
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("kaiko config: max_retries must not be negative")
	}
	return nil
}
