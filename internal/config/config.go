package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aliskhannn/sight-words-bot/internal/domain/entities"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid configuration")
)

// Word sources.
const (
	WordSourceCSV      = "csv"
	WordSourcePostgres = "postgres"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env      string   `mapstructure:"env"` // current application environment (local, dev, production etc)
	Telegram Telegram `mapstructure:"telegram"`
	Assets   Assets   `mapstructure:"assets"`
	Quiz     Quiz     `mapstructure:"quiz"`
	TTS      TTS      `mapstructure:"tts"`
	Words    Words    `mapstructure:"words"`
	DB       DB       `mapstructure:"database"` // database configuration section
}

// Telegram contains bot settings.
type Telegram struct {
	APIToken      string `mapstructure:"-"`               // Telegram API token loaded from environment
	AllowedChatID int64  `mapstructure:"allowed_chat_id"` // chat the quiz is bound to, 0 binds the first chat
	Debug         bool   `mapstructure:"debug"`
}

// Assets points at the word lists, images and sounds.
type Assets struct {
	RootDir string `mapstructure:"root_dir"`
}

// Quiz contains quiz tuning.
type Quiz struct {
	DefaultLanguage string `mapstructure:"default_language"`
	OptionsCount    int    `mapstructure:"options_count"` // images shown per question
	Seed            int64  `mapstructure:"seed"`          // 0 seeds from the clock
}

// TTS configures the pronunciation synthesizer.
type TTS struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Words selects where word lists are read from.
type Words struct {
	Source string `mapstructure:"source"` // csv or postgres
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	// Load sensitive values from environment variables.
	if cfg.Telegram.APIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	return cfg, nil
}

// LoadForImport reads configuration for tools that only talk to the database.
func LoadForImport() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
	}

	return cfg, nil
}

func load() (*Config, error) {
	// Pick up a local .env file if there is one.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("telegram.allowed_chat_id", 0)
	v.SetDefault("telegram.debug", false)
	v.SetDefault("assets.root_dir", ".")
	v.SetDefault("quiz.default_language", entities.DefaultLanguageCode)
	v.SetDefault("quiz.options_count", 3)
	v.SetDefault("quiz.seed", 0)
	v.SetDefault("tts.base_url", "https://translate.google.com/translate_tts")
	v.SetDefault("tts.timeout", "10s")
	v.SetDefault("words.source", WordSourceCSV)
	v.SetDefault("database.max_connections", 5)
	v.SetDefault("database.max_conn_lifetime", "30m")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.Telegram.APIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Quiz.OptionsCount < 1 {
		return fmt.Errorf("%w: quiz.options_count must be positive, got %d", ErrInvalidConfig, c.Quiz.OptionsCount)
	}

	if _, ok := entities.LookupLanguage(c.Quiz.DefaultLanguage); !ok {
		return fmt.Errorf("%w: unknown quiz.default_language %q", ErrInvalidConfig, c.Quiz.DefaultLanguage)
	}

	switch c.Words.Source {
	case WordSourceCSV:
	case WordSourcePostgres:
		if c.DB.URL == "" {
			return fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
		}
	default:
		return fmt.Errorf("%w: unknown words.source %q", ErrInvalidConfig, c.Words.Source)
	}

	return nil
}
