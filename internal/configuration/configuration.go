package configuration

import (
	"encoding/json"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/malonaz/gemchat/internal/file"
	"github.com/malonaz/gemchat/internal/markdown"
)

// DefaultPath is where the configuration lives unless overridden.
const DefaultPath = "~/.config/gemchat/config.json"

// Environment variables that override the configuration file.
const (
	APIKeyEnvVar = "GEMINI_API_KEY"
	ModelEnvVar  = "GEMINI_MODEL"
)

var defaultConfig = Config{
	GeminiAPIKey:      "API_KEY",
	GeminiAPIHost:     "https://generativelanguage.googleapis.com",
	Model:             "gemini-1.5-flash",
	RequestTimeout:    0,
	RevealDelayMS:     50,
	CopiedIndicatorMS: 2000,
	UserName:          "simo",
	AssistantName:     "Gemini",
	CodeStyle:         string(markdown.CodeStyleDecorative),
	LogFile:           "/tmp/gemchat-debug.log",
	LogLevel:          "info",
}

// Config holds configuration for the gemchat tool.
type Config struct {
	GeminiAPIKey  string `json:"gemini_api_key"`
	GeminiAPIHost string `json:"gemini_api_host"`
	Model         string `json:"model"`
	// Seconds. 0 means no timeout.
	RequestTimeout int `json:"request_timeout"`

	// Delay between two revealed lines.
	RevealDelayMS int `json:"reveal_delay_ms"`
	// How long a "copied" indicator stays visible.
	CopiedIndicatorMS int `json:"copied_indicator_ms"`

	UserName      string `json:"user_name"`
	AssistantName string `json:"assistant_name"`
	CodeStyle     string `json:"code_style"`

	LogFile  string `json:"log_file"`
	LogLevel string `json:"log_level"`
}

// Default returns a copy of the default configuration.
func Default() *Config {
	config := defaultConfig
	return &config
}

// Parse a configuration file, then apply `.env` and environment overrides.
func Parse(path string) (*Config, error) {
	path, err := file.ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	if err := initializeIfNotPresent(path); err != nil {
		return nil, errors.Wrap(err, "initializing configuration")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	// Fields missing from the file keep their default.
	config := Default()
	if err = json.Unmarshal(bytes, config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into config")
	}

	// A missing .env file is fine.
	_ = godotenv.Load(".env")
	config.applyEnvironment()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating config")
	}
	return config, nil
}

func (c *Config) applyEnvironment() {
	if key := os.Getenv(APIKeyEnvVar); key != "" {
		c.GeminiAPIKey = key
	}
	if model := os.Getenv(ModelEnvVar); model != "" {
		c.Model = model
	}
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Model == "" {
		return errors.New("model must be set")
	}
	if c.RequestTimeout < 0 {
		return errors.Errorf("request_timeout must be >= 0, got %d", c.RequestTimeout)
	}
	if c.RevealDelayMS < 0 {
		return errors.Errorf("reveal_delay_ms must be >= 0, got %d", c.RevealDelayMS)
	}
	if c.CopiedIndicatorMS < 0 {
		return errors.Errorf("copied_indicator_ms must be >= 0, got %d", c.CopiedIndicatorMS)
	}
	if _, err := markdown.ParseCodeStyle(c.CodeStyle); err != nil {
		return errors.Wrap(err, "code_style")
	}
	return nil
}

// Timeout returns the request timeout. Zero means none.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// RevealDelay returns the delay between two revealed lines.
func (c *Config) RevealDelay() time.Duration {
	return time.Duration(c.RevealDelayMS) * time.Millisecond
}

// CopiedIndicator returns how long a copied indicator stays visible.
func (c *Config) CopiedIndicator() time.Duration {
	return time.Duration(c.CopiedIndicatorMS) * time.Millisecond
}

// save a configuration file.
func (c *Config) save(path string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	err = os.WriteFile(path, bytes, 0644)
	if err != nil {
		return errors.Wrap(err, "writing file")
	}

	return nil
}

// initializeIfNotPresent initializes a config if it does not exist.
func initializeIfNotPresent(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	if err := file.EnsureParentDirectory(path); err != nil {
		return errors.Wrap(err, "creating folders")
	}

	if err := defaultConfig.save(path); err != nil {
		return errors.Wrap(err, "saving default config")
	}
	return nil
}
