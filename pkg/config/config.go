package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Timezone    string `yaml:"timezone"` // exchange-local zone, e.g. America/New_York
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Backend struct {
		Type      string `yaml:"type"` // kafka | clickhouse | none
		BatchSize int    `yaml:"batch_size"`
	} `yaml:"backend"`
	Feed struct {
		BaseURL     string        `yaml:"base_url"`
		Region      string        `yaml:"region"`
		Lang        string        `yaml:"lang"`
		Timeout     time.Duration `yaml:"timeout"`
		TickerPause time.Duration `yaml:"ticker_pause"` // min spacing between per-ticker fetches
	} `yaml:"feed"`
	Article struct {
		Timeout   time.Duration `yaml:"timeout"`
		UserAgent string        `yaml:"user_agent"`
	} `yaml:"article"`
	Screener struct {
		NewsURL     string        `yaml:"news_url"`
		ScreenerURL string        `yaml:"screener_url"`
		Filters     string        `yaml:"filters"`
		APIToken    string        `yaml:"api_token"`
		Timeout     time.Duration `yaml:"timeout"`
		DataDir     string        `yaml:"data_dir"`
	} `yaml:"screener"`
	MarketData struct {
		BaseURL        string        `yaml:"base_url"`
		APIKey         string        `yaml:"api_key"`
		WebSocketURL   string        `yaml:"websocket_url"`
		Timeout        time.Duration `yaml:"timeout"`
		ReconnectDelay time.Duration `yaml:"reconnect_delay"`
		PingInterval   time.Duration `yaml:"ping_interval"`
		BarCacheTTL    time.Duration `yaml:"bar_cache_ttl"`
	} `yaml:"marketdata"`
	FinBERT struct {
		URL           string        `yaml:"url"`
		Timeout       time.Duration `yaml:"timeout"`
		MaxTokens     int           `yaml:"max_tokens"` // chunk threshold in token-equivalents
		WarmupTimeout time.Duration `yaml:"warmup_timeout"`
	} `yaml:"finbert"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		Table            string        `yaml:"table"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Cache struct {
		MemoryMaxSize int `yaml:"memory_max_size"`
		Redis         struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Output struct {
		UniverseFile string `yaml:"universe_file"`
		RecordsFile  string `yaml:"records_file"`
	} `yaml:"output"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("FINVIZ_API_TOKEN"); v != "" {
		c.Screener.APIToken = v
	}
	if v := os.Getenv("FINBERT_URL"); v != "" {
		c.FinBERT.URL = v
	}
	if v := os.Getenv("MARKETDATA_API_KEY"); v != "" {
		c.MarketData.APIKey = v
	}
	if v := os.Getenv("MARKETDATA_BASE_URL"); v != "" {
		c.MarketData.BaseURL = v
	}
	if v := os.Getenv("BACKEND"); v != "" {
		c.Backend.Type = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Timezone == "" {
		c.Timezone = "America/New_York"
	}
	if c.Backend.Type == "" {
		c.Backend.Type = "none"
	}
	if c.Server.Port <= 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Feed.Timeout <= 0 {
		c.Feed.Timeout = 30 * time.Second
	}
	if c.Feed.TickerPause <= 0 {
		c.Feed.TickerPause = time.Second
	}
	if c.Feed.Region == "" {
		c.Feed.Region = "US"
	}
	if c.Feed.Lang == "" {
		c.Feed.Lang = "en-US"
	}
	if c.Article.Timeout <= 0 {
		c.Article.Timeout = 10 * time.Second
	}
	if c.Screener.Timeout <= 0 {
		c.Screener.Timeout = 30 * time.Second
	}
	if c.Screener.DataDir == "" {
		c.Screener.DataDir = "data"
	}
	if c.MarketData.Timeout <= 0 {
		c.MarketData.Timeout = 15 * time.Second
	}
	if c.MarketData.BarCacheTTL <= 0 {
		c.MarketData.BarCacheTTL = time.Minute
	}
	if c.MarketData.ReconnectDelay <= 0 {
		c.MarketData.ReconnectDelay = 5 * time.Second
	}
	if c.MarketData.PingInterval <= 0 {
		c.MarketData.PingInterval = 15 * time.Second
	}
	if c.ClickHouse.Table == "" {
		c.ClickHouse.Table = "news_records"
	}
	if c.FinBERT.Timeout <= 0 {
		c.FinBERT.Timeout = 30 * time.Second
	}
	if c.FinBERT.MaxTokens <= 0 {
		c.FinBERT.MaxTokens = 500
	}
	if c.Output.UniverseFile == "" {
		c.Output.UniverseFile = "finviz_news_and_stock_data.csv"
	}
	if c.Output.RecordsFile == "" {
		c.Output.RecordsFile = "yahoo_rss_news_with_sentiment_analysis.csv"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Backend.Type {
	case "kafka", "clickhouse", "none":
	default:
		return fmt.Errorf("backend.type must be 'kafka', 'clickhouse' or 'none', got '%s'", c.Backend.Type)
	}
	if c.Backend.Type == "kafka" && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers required for kafka backend")
	}
	if c.Backend.Type == "clickhouse" && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host required for clickhouse backend")
	}
	if c.Feed.BaseURL == "" {
		return fmt.Errorf("feed.base_url is required")
	}
	if c.MarketData.BaseURL == "" {
		return fmt.Errorf("marketdata.base_url is required")
	}
	return nil
}
