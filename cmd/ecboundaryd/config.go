package main

import (
	"fmt"
	"net"
	"strings"

	"github.com/spf13/viper"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
)

const envPrefix = "ECBOUNDARY"

// Config is the daemon configuration. Every key can be set in the YAML
// file or through an ECBOUNDARY_<KEY> environment variable.
type Config struct {
	Listen      string   `mapstructure:"listen"`
	MaxMsgBytes int      `mapstructure:"max_msg_bytes"`
	LogLevel    string   `mapstructure:"log_level"`
	LogFormat   string   `mapstructure:"log_format"`
	Curves      []string `mapstructure:"curves"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("listen", "127.0.0.1:7443")
	v.SetDefault("max_msg_bytes", 64<<20)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("curves", []string{})
}

func loadConfig(path string) (*Config, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, _, err := net.SplitHostPort(c.Listen); err != nil {
		return fmt.Errorf("listen %q: %w", c.Listen, err)
	}
	if c.MaxMsgBytes <= 0 {
		return fmt.Errorf("max_msg_bytes must be positive, got %d", c.MaxMsgBytes)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q: want debug, info, warn or error", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format %q: want text or json", c.LogFormat)
	}
	_, err := c.tags()
	return err
}

// tags resolves the curve allow-list. An empty list means every curve.
func (c *Config) tags() ([]curve.Tag, error) {
	tags := make([]curve.Tag, 0, len(c.Curves))
	for _, name := range c.Curves {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		t, err := curve.TagByName(name)
		if err != nil {
			return nil, fmt.Errorf("curves: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, nil
}
