package loader

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/roach88/socperf/internal/analysis"
	"github.com/roach88/socperf/internal/contention"
	"github.com/roach88/socperf/internal/model"
)

//go:embed schema.cue
var schemaSource string

// Config is the decoded analysis configuration.
type Config struct {
	ClockMHz     float64           `json:"clock_mhz"`
	MaxDepth     int               `json:"max_depth"`
	Distribution string            `json:"distribution"`
	Components   []model.Component `json:"components"`
}

// LoadConfig reads and validates a CUE configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data, path)
}

// ParseConfig validates CUE configuration source against #Config.
func ParseConfig(data []byte, filename string) (*Config, error) {
	raw, err := cueToJSON(data, filename, "#Config")
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, &LoadError{Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("decoding config: %v", err), Path: filename}
	}
	return &cfg, nil
}

// Catalog returns the configured component table.
func (c *Config) Catalog() model.Catalog {
	return model.NewCatalog(c.Components)
}

// Options converts the configuration into analysis options.
func (c *Config) Options() ([]analysis.ContextOption, error) {
	mode, err := contention.ParseMode(c.Distribution)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeInvalid, Message: err.Error()}
	}
	return []analysis.ContextOption{
		analysis.WithCatalog(c.Catalog()),
		analysis.WithClockMHz(c.ClockMHz),
		analysis.WithMaxDepth(c.MaxDepth),
		analysis.WithDistribution(mode),
	}, nil
}
