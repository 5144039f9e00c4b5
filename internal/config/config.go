// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	//Listing source
	FilterURL string `yaml:"filter_url"`
	LoginURL  string `yaml:"login_url"`
	//Credentials, env only
	SimplifyEmail    string `env:"SIMPLIFY_EMAIL"`
	SimplifyPassword string `env:"SIMPLIFY_PASSWORD"`
	//Persistence
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL"`
	//Operator notifications, optional
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	//Paths
	CookiesPath string `yaml:"cookies_path"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
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
	cfg.SimplifyEmail = os.Getenv("SIMPLIFY_EMAIL")
	cfg.SimplifyPassword = os.Getenv("SIMPLIFY_PASSWORD")

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
	if cfg.FilterURL == "" {
		cfg.FilterURL = "https://simplify.jobs/jobs?experience=Internship"
	}
	if cfg.LoginURL == "" {
		cfg.LoginURL = "https://simplify.jobs/auth/login"
	}
	if cfg.CookiesPath == "" {
		cfg.CookiesPath = ".cookies"
	}

	//Validate required fields
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	return cfg
}

// RequireLogin aborts unless the scraper credentials are configured. The
// dashboard only reads the database and never calls this.
func (c *Config) RequireLogin() {
	if c.SimplifyEmail == "" {
		log.Fatal("SIMPLIFY_EMAIL is required")
	}
	if c.SimplifyPassword == "" {
		log.Fatal("SIMPLIFY_PASSWORD is required")
	}
}
