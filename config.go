package commander

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/commander/service/terminal"
	"gopkg.in/yaml.v3"
)

// DefaultStoreURL is where the blocklist is persisted unless configured otherwise
const DefaultStoreURL = "config.json"

// Config is a serialisable representation of the commander configuration.
// JSON documents are valid YAML, so either can be loaded with LoadConfig.
type Config struct {
	Terminal terminal.Config `json:"terminal" yaml:"terminal"`
	Policy   PolicyConfig    `json:"policy" yaml:"policy"`
	Log      LogConfig       `json:"log" yaml:"log"`
	Tracing  TracingConfig   `json:"tracing" yaml:"tracing"`
}

// PolicyConfig controls the command blocklist. An empty StoreURL keeps the
// blocklist in memory only. Blocked seeds the list when nothing was stored yet.
type PolicyConfig struct {
	StoreURL string   `json:"storeURL" yaml:"storeURL"`
	Blocked  []string `json:"blocked,omitempty" yaml:"blocked,omitempty"`
}

type LogConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

type TracingConfig struct {
	Enabled    bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	OutputFile string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// DefaultConfig returns a Config populated with the stock settings. Callers
// may modify the returned struct before passing it to WithConfig.
func DefaultConfig() *Config {
	return &Config{
		Terminal: terminal.DefaultConfig(),
		Policy:   PolicyConfig{StoreURL: DefaultStoreURL},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if err := c.Terminal.Validate(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// LoadConfig reads a YAML or JSON config from any afs URL. Unset fields keep
// their DefaultConfig values.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	if URL == "" {
		return nil, fmt.Errorf("config URL cannot be empty")
	}
	URL = url.Normalize(URL, file.Scheme)
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", URL, err)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	if err = ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
