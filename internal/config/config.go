// Package config holds the application configuration, loaded through viper
// from a yaml file and UIPROBE_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the whole application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Player PlayerConfig `mapstructure:"player" yaml:"player"`
}

// ServerConfig configures the command socket.
type ServerConfig struct {
	// ListenAddr is the TCP address the player listens on for the driver.
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"`
	// MaxMessageSize bounds a single framed command payload, in bytes.
	MaxMessageSize int `mapstructure:"max_message_size" yaml:"max_message_size"`
}

// LoggerConfig configures the global zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"` // "console" or "json"
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`

	// File output, rotated by lumberjack when LogFile is set.
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"` // days
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// PlayerConfig tunes command execution.
type PlayerConfig struct {
	// GrabFormat is the image format reported for screenshots when the
	// driver does not ask for one.
	GrabFormat string `mapstructure:"grab_format" yaml:"grab_format"`
	// DragSteps is the number of intermediate move events synthesized
	// during a drag and drop.
	DragSteps int `mapstructure:"drag_steps" yaml:"drag_steps"`
	// DragInterval is the delay between drag steps.
	DragInterval time.Duration `mapstructure:"drag_interval" yaml:"drag_interval"`
}

// SetDefaults installs the default values on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.listen_addr", "127.0.0.1:9010")
	v.SetDefault("server.max_message_size", 16<<20)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "uiprobe")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)

	v.SetDefault("player.grab_format", "PNG")
	v.SetDefault("player.drag_steps", 4)
	v.SetDefault("player.drag_interval", 10*time.Millisecond)
}

// Load reads the configuration. cfgFile may be empty, in which case
// config.yaml is searched in the given directories ("." when none).
func Load(cfgFile string, searchPaths ...string) (Config, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if len(searchPaths) == 0 {
			searchPaths = []string{"."}
		}
		for _, p := range searchPaths {
			v.AddConfigPath(p)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("UIPROBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		// No config file: defaults and env vars apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}
