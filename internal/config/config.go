package config

import (
	"fmt"
	"path/filepath"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"

	"ratefeed-api/pkg/confkit"
	"ratefeed-api/pkg/kaiko"
)

// PricingConf holds the resolver settings.
type PricingConf struct {
	// MaxProxyAssets bounds the proxy candidate list per vwap request.
	MaxProxyAssets int `json:",default=5"`
	// SampleLimit is the sample window requested per rate fetch.
	SampleLimit int `json:",default=600"`
	// Interval is the trade aggregation interval sent upstream.
	Interval string `json:",default=1m"`
	// RoundScale is the decimal scale of the final rounded result.
	RoundScale int `json:",default=0"`
}

type Config struct {
	rest.RestConf

	Pricing PricingConf                   `json:",optional"`
	Kaiko   confkit.Section[kaiko.Config] `json:",optional"`

	mainPath string
	baseDir  string
}

func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	confkit.LoadDotenvOnce()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	var cfg Config
	if err := conf.Load(absPath, &cfg, conf.UseEnv()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", absPath, err)
	}

	cfg.mainPath = absPath
	cfg.baseDir = filepath.Dir(absPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Kaiko.Hydrate(cfg.baseDir, kaiko.LoadConfig); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalises the pricing section, falling back to the documented
// defaults when a value is unset.
func (c *Config) Validate() error {
	if c.Pricing.MaxProxyAssets <= 0 {
		c.Pricing.MaxProxyAssets = 5
	}
	if c.Pricing.SampleLimit <= 0 {
		c.Pricing.SampleLimit = 600
	}
	if c.Pricing.Interval == "" {
		c.Pricing.Interval = "1m"
	}
	if c.Pricing.RoundScale < 0 {
		return fmt.Errorf("config: pricing round scale must not be negative")
	}
	return nil
}
