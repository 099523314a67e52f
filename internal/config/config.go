package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/lecture-fuse/internal/fuser"
)

type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Paths       PathsConfig       `yaml:"paths"`
	Fusion      FusionConfig      `yaml:"fusion"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Gemini      GeminiConfig      `yaml:"gemini"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type PathsConfig struct {
	Meta        string `yaml:"meta"`
	Timestamped string `yaml:"timestamped"`
	Export      string `yaml:"export"`
	Summaries   string `yaml:"summaries"`
}

type FusionConfig struct {
	// Policy is "corrected" or "source"
	Policy         string `yaml:"policy"`
	StrictOrdering *bool  `yaml:"strict_ordering"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

// FuserOptions converts the fusion section into fuser options.
// Call after Validate.
func (c *Config) FuserOptions() fuser.Options {
	policy, _ := fuser.ParsePolicy(c.Fusion.Policy)
	strict := true
	if c.Fusion.StrictOrdering != nil {
		strict = *c.Fusion.StrictOrdering
	}
	return fuser.Options{
		Policy:         policy,
		StrictOrdering: strict,
	}
}

func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Paths.Meta == "" {
		return fmt.Errorf("paths.meta is required")
	}
	if c.Paths.Timestamped == "" {
		return fmt.Errorf("paths.timestamped is required")
	}
	if _, ok := fuser.ParsePolicy(c.Fusion.Policy); !ok {
		return fmt.Errorf("fusion.policy must be %q or %q, got %q",
			fuser.PolicyCorrected, fuser.PolicySource, c.Fusion.Policy)
	}

	if c.Fusion.Policy == "" {
		c.Fusion.Policy = string(fuser.PolicyCorrected)
	}
	if c.Paths.Export == "" {
		c.Paths.Export = "data/export"
	}
	if c.Paths.Summaries == "" {
		c.Paths.Summaries = "data/summaries"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if keys := os.Getenv("GEMINI_API_KEYS"); keys != "" {
		c.Gemini.APIKeys = splitKeys(keys)
	}

	return nil
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
