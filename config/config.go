package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var (
	config   *Config
	once     sync.Once
	mu       sync.Mutex
	validate = validator.New()
)

// Config represents the configuration implementation.
type Config struct {
	AppName string   `mapstructure:"app_name" validate:"required"`
	RunMode string   `mapstructure:"run_mode" validate:"omitempty,oneof=debug release"`
	Logger  *Logger  `mapstructure:"logger"`
	Console *Console `mapstructure:"console"`
	Viper   *viper.Viper
}

// Logger holds logging configuration.
type Logger struct {
	// Level matches logrus levels: 0 panic .. 6 trace.
	Level      int    `mapstructure:"level" validate:"min=0,max=6"`
	Format     string `mapstructure:"format" validate:"omitempty,oneof=text json"`
	Output     string `mapstructure:"output" validate:"omitempty,oneof=stdout stderr file"`
	OutputFile string `mapstructure:"output_file" validate:"required_if=Output file"`
}

// Console holds the interactive console configuration.
type Console struct {
	Prompt string `mapstructure:"prompt"`
	// MaxPasses bounds ProcessUntilEmpty drains triggered from the
	// console; 0 means unbounded.
	MaxPasses int `mapstructure:"max_passes" validate:"min=0"`
}

// Init initializes and loads the configuration.
func Init(path string) (cfg *Config, err error) {
	once.Do(func() {
		cfg, err = loadConfiguration(path)
		if err == nil {
			config = cfg
		}
	})
	if cfg == nil {
		cfg = config
	}
	return cfg, err
}

// GetConfig returns the loaded configuration.
// It does not handle errors internally; instead, it returns the error for the caller to handle.
func GetConfig() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()
	if config == nil {
		return nil, fmt.Errorf("config not initialized")
	}
	return config, nil
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return &Config{
		AppName: "escore",
		RunMode: "release",
		Logger: &Logger{
			Level:  4, // info
			Format: "text",
			Output: "stderr",
		},
		Console: &Console{
			Prompt: "> ",
		},
	}
}

// loadConfiguration loads the configuration from the file and sets it globally.
func loadConfiguration(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("escore")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.Viper = v

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Reload on file change.
	v.OnConfigChange(func(e fsnotify.Event) {
		mu.Lock()
		defer mu.Unlock()
		next := Default()
		if err := v.Unmarshal(next); err != nil {
			return
		}
		if err := next.Validate(); err != nil {
			return
		}
		next.Viper = v
		config = next
	})
	v.WatchConfig()

	return cfg, nil
}

// Validate checks the configuration against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// EnsureDir makes sure the directory of the given file path exists.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
