// Package config loads, defaults and validates the bot configuration. Values
// come from built-in defaults, an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ErrConfiguration wraps every error returned by LoadConfig.
var ErrConfiguration = errors.New("configuration error")

// Config defines the application configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Store     StoreConfig     `mapstructure:"store"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot credential and the owner account.
type TelegramConfig struct {
	Token   string `mapstructure:"token"    validate:"required"`
	OwnerID int64  `mapstructure:"owner_id" validate:"required"`
}

// StoreConfig points at the remote key-value store.
type StoreConfig struct {
	URL         string        `mapstructure:"url"          validate:"required,url"`
	Token       string        `mapstructure:"token"        validate:"required"`
	KeyPrefix   string        `mapstructure:"key_prefix"   validate:"required"`
	DialTimeout time.Duration `mapstructure:"dial_timeout" validate:"min=100ms,max=1m"`
}

// HTTPConfig configures the health endpoint listener.
type HTTPConfig struct {
	Port int `mapstructure:"port" validate:"min=1,max=65535"`
}

// Addr returns the listen address for the health server.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// MetricsConfig configures the optional Prometheus listener, which runs on
// its own address next to the health listener.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr" validate:"required_if=Enabled true"`
}

// SchedulerConfig maps task names to their schedule.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig enables a scheduled task with a cron expression (seconds field allowed).
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// MessagesConfig holds every user-facing text. The placeholders {name},
// {group} and {count} are replaced where the text is used.
type MessagesConfig struct {
	Welcome           string `mapstructure:"welcome"            validate:"required"`
	RegisterButton    string `mapstructure:"register_button"    validate:"required"`
	RegisteredButton  string `mapstructure:"registered_button"  validate:"required"`
	AlreadyRegistered string `mapstructure:"already_registered" validate:"required"`
	AccessDenied      string `mapstructure:"access_denied"      validate:"required"`
	Registered        string `mapstructure:"registered"         validate:"required"`
	EnableDMAlert     string `mapstructure:"enable_dm_alert"    validate:"required"`
	EnableDMPrompt    string `mapstructure:"enable_dm_prompt"   validate:"required"`
	OpenChatButton    string `mapstructure:"open_chat_button"   validate:"required"`
	DMReady           string `mapstructure:"dm_ready"           validate:"required"`
	Stats             string `mapstructure:"stats"              validate:"required"`
	MemberReport      string `mapstructure:"member_report"      validate:"required"`
	NotAuthorized     string `mapstructure:"not_authorized"     validate:"required"`
}

// envBindings maps config keys to the environment variable names used by
// existing deployments. Other keys are read from REGBOT_* variables.
var envBindings = map[string]string{
	"telegram.token":    "BOT_TOKEN",
	"telegram.owner_id": "OWNER_ID",
	"store.url":         "UPSTASH_REDIS_REST_URL",
	"store.token":       "UPSTASH_REDIS_REST_TOKEN",
	"http.port":         "PORT",
	"log.level":         "LOG_LEVEL",
	"log.json":          "LOG_JSON",
}

// LoadConfig loads and validates configuration from:
// 1. Default values
// 2. the YAML file at path (optional, may be missing)
// 3. environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("REGBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env, "REGBOT_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_"))); err != nil {
			return nil, fmt.Errorf("%w: failed to bind %s: %v", ErrConfiguration, env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: failed to read config file: %v", ErrConfiguration, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}

// Validate checks the struct tags and reports every failing field by its
// config key.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fieldKey(fe.Namespace()), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// fieldKey turns "Config.Telegram.OwnerID" into "telegram.ownerid".
func fieldKey(namespace string) string {
	return strings.ToLower(strings.TrimPrefix(namespace, "Config."))
}
