// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

type Config struct {
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL"`

	// BrowserPath is resolved once here and passed into the rendered fetch;
	// nothing looks it up ad hoc afterwards. Empty means playwright's own
	// managed chromium.
	BrowserPath string `yaml:"browser_path" env:"BROWSER_PATH"`

	UserAgent string `yaml:"user_agent"`

	// timeouts are tuned constants, not yaml surface
	StaticTimeout time.Duration `yaml:"-"`
	RenderTimeout time.Duration `yaml:"-"`
	SettleDelay   time.Duration `yaml:"-"`
	PoliteDelay   time.Duration `yaml:"-"`

	// Optional run-summary reporting
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.DatabaseURL = dbURL
	}

	if path := os.Getenv("BROWSER_PATH"); path != "" {
		cfg.BrowserPath = path
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	//Set default values if not set
	if cfg.BrowserPath == "" {
		cfg.BrowserPath = defaultBrowserPath()
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	if cfg.StaticTimeout <= 0 {
		cfg.StaticTimeout = 20 * time.Second
	}

	if cfg.RenderTimeout <= 0 {
		cfg.RenderTimeout = 90 * time.Second
	}

	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = 2 * time.Second
	}

	if cfg.PoliteDelay <= 0 {
		cfg.PoliteDelay = 1500 * time.Millisecond
	}

	return cfg
}

// defaultBrowserPath returns the usual Chrome install location for the
// platform, or empty when nothing is there (playwright then uses its own
// chromium).
func defaultBrowserPath() string {
	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome"}
	case "windows":
		candidates = []string{
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
		}
	default:
		candidates = []string{"/usr/bin/google-chrome", "/usr/bin/chromium", "/usr/bin/chromium-browser"}
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
