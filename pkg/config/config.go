package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/NewsFeedBlocks/pkg/logging"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultItemsPerPage applies when a block leaves itemsPerPage unset or unusable.
const DefaultItemsPerPage = 10

// Source kinds.
const (
	KindHTTP  = "http"
	KindMongo = "mongo"
)

// BlockConfig describes one news feed block as authored by the host page.
type BlockConfig struct {
	Name         string `json:"name" yaml:"name"`
	Source       string `json:"source" yaml:"source"`             // feed URL for http blocks
	Kind         string `json:"kind" yaml:"kind"`                 // "http" (default) or "mongo"
	Transformer  string `json:"transformer" yaml:"transformer"`   // "sheet" (default) or "rss"
	ItemsPerPage ScalarText `json:"itemsPerPage" yaml:"itemsPerPage"` // number or text
}

// ScalarText keeps the raw text of a scalar that may be authored either as a
// number or as a string. Coercion is left to the reader.
type ScalarText string

func (t *ScalarText) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(raw, []byte("null")):
		*t = ""
	case len(raw) > 0 && raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*t = ScalarText(s)
	default:
		*t = ScalarText(raw)
	}
	return nil
}

func (t *ScalarText) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar, got %s", node.Line, node.ShortTag())
	}
	*t = ScalarText(node.Value)
	return nil
}

// PageSize coerces ItemsPerPage to a positive integer, falling back to
// DefaultItemsPerPage when it is blank, non-numeric or below 1.
func (b BlockConfig) PageSize() int {
	raw := strings.TrimSpace(string(b.ItemsPerPage))
	if raw == "" {
		return DefaultItemsPerPage
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		slog.Warn("Invalid items per page, using default", "block", b.Name, "value", string(b.ItemsPerPage), "default", DefaultItemsPerPage)
		return DefaultItemsPerPage
	}
	return n
}

// SourceKind returns Kind, defaulting to http.
func (b BlockConfig) SourceKind() string {
	if b.Kind == "" {
		return KindHTTP
	}
	return b.Kind
}

type Config struct {
	Environment     string
	ServerPort      string
	Blocks          []BlockConfig
	BlocksFilePath  string
	FetchTimeout    time.Duration
	TransitionDelay time.Duration
	TracingEnabled  bool
	MongoURI        string
	MongoDBName     string
	MongoColl       string
	KafkaBrokers    []string
	KafkaTopic      string
}

// Diagnostics reports whether debug logging is wanted.
func (c *Config) Diagnostics() bool {
	return logging.DiagnosticsEnabled(c.Environment)
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Environment:     getEnv("APP_ENV", "production"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		BlocksFilePath:  getEnv("BLOCKS_FILE_PATH", "config/blocks.json"),
		FetchTimeout:    getDurationEnv("FETCH_TIMEOUT", 10*time.Second),
		TransitionDelay: getDurationEnv("TRANSITION_DELAY", 200*time.Millisecond),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),
		MongoURI:        getEnv("MONGO_URI", ""),
		MongoDBName:     getEnv("MONGO_DB_NAME", "news_feed"),
		MongoColl:       getEnv("MONGO_COLLECTION", "feed_items"),
		KafkaBrokers:    splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "news_feed_page_changes"),
	}
	cfg.Blocks = loadBlocks(cfg.BlocksFilePath)
	return cfg
}

func loadBlocks(path string) []BlockConfig {
	// If path doesn't exist, try fallback for convenience during dev/test if default was used
	if _, err := os.Stat(path); os.IsNotExist(err) && path == "config/blocks.json" {
		fallback := "../config/blocks.json"
		if _, err := os.Stat(fallback); err == nil {
			path = fallback
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("Could not read blocks file, using default news feed block", "path", path, "error", err)
		return []BlockConfig{
			{
				Name:   "news",
				Source: getEnv("NEWS_FEED_URL", "http://localhost:8081/feed"),
			},
		}
	}

	blocks, err := parseBlocks(path, raw)
	if err != nil {
		slog.Error("Error decoding blocks file", "path", path, "error", err)
		return nil
	}
	return blocks
}

func parseBlocks(path string, raw []byte) ([]BlockConfig, error) {
	var blocks []BlockConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &blocks); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(raw, &blocks); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	}
	return blocks, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		// Try parsing as duration string (e.g. "200ms", "10s")
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		// Try parsing as integer milliseconds
		if i, err := strconv.Atoi(value); err == nil {
			return time.Duration(i) * time.Millisecond
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
