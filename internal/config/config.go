package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"10m"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
	} `yaml:"server"`

	LLM struct {
		Provider    string  `yaml:"provider" default:"gemini"`
		APIKey      string  `yaml:"api_key"`
		Model       string  `yaml:"model" default:"gemini-1.5-flash"`
		MaxTokens   int     `yaml:"max_tokens" default:"8192"`
		Temperature float32 `yaml:"temperature" default:"0.1"`
	} `yaml:"llm"`

	Scraper struct {
		Engine       string        `yaml:"engine" default:"rod"`
		UserAgent    string        `yaml:"user_agent"`
		ChromeBin    string        `yaml:"chrome_bin"` // empty = let the launcher find or download one
		PageTimeout  time.Duration `yaml:"page_timeout" default:"60s"`
		SettleDelay  time.Duration `yaml:"settle_delay" default:"5s"`
		HeadlessMode bool          `yaml:"headless_mode" default:"true"`
		StealthMode  bool          `yaml:"stealth_mode" default:"true"`
	} `yaml:"scraper"`

	Chunking struct {
		DefaultSize    int `yaml:"default_size" default:"5000"`
		DefaultOverlap int `yaml:"default_overlap" default:"2000"`
	} `yaml:"chunking"`

	Jobs struct {
		Workers   int           `yaml:"workers" default:"2"`
		QueueSize int           `yaml:"queue_size" default:"20"`
		Timeout   time.Duration `yaml:"timeout" default:"10m"`
		Retention time.Duration `yaml:"retention" default:"24h"`
	} `yaml:"jobs"`

	Session struct {
		Store      string        `yaml:"store" default:"memory"` // memory or redis
		TTL        time.Duration `yaml:"ttl" default:"24h"`
		CookieName string        `yaml:"cookie_name" default:"scraper_session"`
	} `yaml:"session"`

	Redis struct {
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"redis"`

	Firecrawl struct {
		APIKey string `yaml:"api_key"`
		APIURL string `yaml:"api_url" default:"https://api.firecrawl.dev"`
	} `yaml:"firecrawl"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`
}

var (
	bracedVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)
	bareVarPattern   = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax.
// Unknown variables are left untouched.
func expandEnvVars(s string) string {
	s = bracedVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[2 : len(match)-1]); val != "" {
			return val
		}
		return match
	})

	return bareVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[1:]); val != "" {
			return val
		}
		return match
	})
}

// Default returns a configuration populated with defaults only
func Default() *Config {
	config := &Config{}

	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 10 * time.Minute
	config.Server.IdleTimeout = 60 * time.Second

	config.LLM.Provider = "gemini"
	config.LLM.Model = "gemini-1.5-flash"
	config.LLM.MaxTokens = 8192
	config.LLM.Temperature = 0.1

	config.Scraper.Engine = "rod"
	config.Scraper.PageTimeout = 60 * time.Second
	config.Scraper.SettleDelay = 5 * time.Second
	config.Scraper.HeadlessMode = true
	config.Scraper.StealthMode = true
	config.Scraper.UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	config.Chunking.DefaultSize = 5000
	config.Chunking.DefaultOverlap = 2000

	config.Jobs.Workers = 2
	config.Jobs.QueueSize = 20
	config.Jobs.Timeout = 10 * time.Minute
	config.Jobs.Retention = 24 * time.Hour

	config.Session.Store = "memory"
	config.Session.TTL = 24 * time.Hour
	config.Session.CookieName = "scraper_session"

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.Timeout = 5 * time.Second

	config.Firecrawl.APIURL = "https://api.firecrawl.dev"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.Output = "stdout"

	return config
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := Default()

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), config); err != nil {
				return nil, err
			}
		}
	}

	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		c.LLM.Provider = provider
	}

	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		c.LLM.APIKey = apiKey
	}

	if model := os.Getenv("LLM_MODEL"); model != "" {
		c.LLM.Model = model
	}

	if engine := os.Getenv("SCRAPER_ENGINE"); engine != "" {
		c.Scraper.Engine = engine
	}

	if chromeBin := os.Getenv("CHROME_BIN"); chromeBin != "" {
		c.Scraper.ChromeBin = chromeBin
	}

	if pageTimeout := os.Getenv("SCRAPER_PAGE_TIMEOUT"); pageTimeout != "" {
		if d, err := time.ParseDuration(pageTimeout); err == nil {
			c.Scraper.PageTimeout = d
		}
	}

	if settleDelay := os.Getenv("SCRAPER_SETTLE_DELAY"); settleDelay != "" {
		if d, err := time.ParseDuration(settleDelay); err == nil {
			c.Scraper.SettleDelay = d
		}
	}

	if firecrawlAPIKey := os.Getenv("FIRECRAWL_API_KEY"); firecrawlAPIKey != "" {
		c.Firecrawl.APIKey = firecrawlAPIKey
	}

	if firecrawlAPIURL := os.Getenv("FIRECRAWL_API_URL"); firecrawlAPIURL != "" {
		c.Firecrawl.APIURL = firecrawlAPIURL
	}

	if workers := os.Getenv("JOBS_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil {
			c.Jobs.Workers = n
		}
	}

	if store := os.Getenv("SESSION_STORE"); store != "" {
		c.Session.Store = store
	}

	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.Session.TTL = d
		}
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}
}
