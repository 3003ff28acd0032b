package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the askdocs API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Vector     VectorConfig     `yaml:"vector"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Completion CompletionConfig `yaml:"completion"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Answer     AnswerConfig     `yaml:"answer"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// VectorConfig holds vector index connection settings. An empty Addrs
// list means the semantic path has no index and stays disabled.
type VectorConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	KeyPrefix        string   `yaml:"key_prefix"`
	IndexName        string   `yaml:"index_name"`
	Dimensions       int      `yaml:"dimensions"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// EmbeddingConfig holds embedding provider settings. An empty APIKey
// disables the semantic path.
type EmbeddingConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// CompletionConfig holds the generative provider settings. APIKey and
// BaseURL default to the embedding provider's when empty.
type CompletionConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// RetrievalConfig bounds both retrieval paths.
type RetrievalConfig struct {
	SemanticLimit     int     `yaml:"semantic_limit"`
	SemanticThreshold float64 `yaml:"semantic_threshold"`
	LexicalLimit      int     `yaml:"lexical_limit"`
	LexicalMinScore   float64 `yaml:"lexical_min_score"`
}

// AnswerConfig overrides the extractive answer boilerplate. Empty
// fields keep the built-in wording.
type AnswerConfig struct {
	NoResults     string `yaml:"no_results"`
	Header        string `yaml:"header"`
	CountSentence string `yaml:"count_sentence"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// SemanticEnabled reports whether both semantic backends are configured.
// Either one missing means every query answers through the lexical path.
func (c *Config) SemanticEnabled() bool {
	return len(c.Vector.Addrs) > 0 && c.Embedding.APIKey != ""
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		// Streamed answers hold the connection open far longer than a
		// plain JSON response.
		c.HTTP.WriteTimeoutSec = 120
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Vector.KeyPrefix == "" {
		c.Vector.KeyPrefix = "askdocs:doc:"
	}
	if c.Vector.IndexName == "" {
		c.Vector.IndexName = "askdocs_idx"
	}
	if c.Vector.Dimensions <= 0 {
		c.Vector.Dimensions = 1536
	}
	if c.Vector.ReadinessTimeout <= 0 {
		c.Vector.ReadinessTimeout = 10
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	if c.Completion.APIKey == "" {
		c.Completion.APIKey = c.Embedding.APIKey
	}
	if c.Completion.BaseURL == "" {
		c.Completion.BaseURL = c.Embedding.BaseURL
	}
	if c.Completion.Model == "" {
		c.Completion.Model = "gpt-4o-mini"
	}
	if c.Retrieval.SemanticLimit <= 0 {
		c.Retrieval.SemanticLimit = 5
	}
	if c.Retrieval.SemanticThreshold <= 0 {
		c.Retrieval.SemanticThreshold = 0.6
	}
	if c.Retrieval.LexicalLimit <= 0 {
		c.Retrieval.LexicalLimit = 5
	}
	if c.Retrieval.LexicalMinScore <= 0 {
		c.Retrieval.LexicalMinScore = 0.01
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Vector.Addrs) > 0 && c.Embedding.APIKey == "" {
		return fmt.Errorf("embedding.api_key is required when vector.addrs is set")
	}
	if c.Retrieval.SemanticThreshold > 1 {
		return fmt.Errorf("retrieval.semantic_threshold must be at most 1, got %g", c.Retrieval.SemanticThreshold)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
