package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// AppName is used for the config directory and env prefix.
const AppName = "pagesift"

// Validation errors returned by Config.Validate.
var (
	ErrInvalidTimeout       = errors.New("invalid timeout: must be positive")
	ErrInvalidFormat        = errors.New("invalid output format: must be text or markdown")
	ErrInvalidDisplayLength = errors.New("invalid max display length: must be positive")
	ErrInvalidLogLevel      = errors.New("invalid log level: must be debug, info, warn or error")
	ErrInvalidBodySize      = errors.New("invalid max body size: must be positive")
)

type Config struct {
	Network NetworkConfig `mapstructure:"network"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type NetworkConfig struct {
	Timeout         int    `mapstructure:"timeout"`
	UserAgent       string `mapstructure:"user_agent"`
	FollowRedirects bool   `mapstructure:"follow_redirects"`
	MaxBodyMB       int    `mapstructure:"max_body_mb"`
}

type OutputConfig struct {
	SaveDir          string `mapstructure:"save_dir"`
	Format           string `mapstructure:"format"`
	MaxDisplayLength int    `mapstructure:"max_display_length"`
	Color            bool   `mapstructure:"color"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

func Default() *Config {
	return &Config{
		Network: NetworkConfig{
			Timeout:         10,
			UserAgent:       "",
			FollowRedirects: true,
			MaxBodyMB:       10,
		},
		Output: OutputConfig{
			SaveDir:          "",
			Format:           "text",
			MaxDisplayLength: 10000,
			Color:            true,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Dir returns the directory holding config.toml.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultPath returns the config file used when --config is not given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads configFile, or the default XDG location when configFile is
// empty, on top of Default(). A missing default file is not an error.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	setDefaults(v, cfg)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(Dir())
		v.SetConfigType("toml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override values that
// are absent from the file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("network.timeout", cfg.Network.Timeout)
	v.SetDefault("network.user_agent", cfg.Network.UserAgent)
	v.SetDefault("network.follow_redirects", cfg.Network.FollowRedirects)
	v.SetDefault("network.max_body_mb", cfg.Network.MaxBodyMB)
	v.SetDefault("output.save_dir", cfg.Output.SaveDir)
	v.SetDefault("output.format", cfg.Output.Format)
	v.SetDefault("output.max_display_length", cfg.Output.MaxDisplayLength)
	v.SetDefault("output.color", cfg.Output.Color)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

func (c *Config) Validate() error {
	if c.Network.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Network.MaxBodyMB <= 0 {
		return ErrInvalidBodySize
	}
	switch c.Output.Format {
	case "text", "markdown":
	default:
		return ErrInvalidFormat
	}
	if c.Output.MaxDisplayLength <= 0 {
		return ErrInvalidDisplayLength
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	return nil
}

func (c *Config) CreateExampleConfig(configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	exampleContent := `# pagesift configuration file

[network]
timeout = 10              # seconds for the single page fetch
user_agent = ""           # empty = pagesift/1.0 (Go); auto, chrome, firefox, safari, edge or a custom string
follow_redirects = true
max_body_mb = 10          # response bodies larger than this are cut off

[output]
save_dir = ""             # directory for saved results (empty = ask on start)
format = "text"           # text, markdown
max_display_length = 10000 # console output is truncated past this many characters
color = true

[logging]
level = "warn"            # debug, info, warn, error
`

	return os.WriteFile(configPath, []byte(exampleContent), 0644)
}
