package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address      string `mapstructure:"address"`
	Port         int    `mapstructure:"port"`
	Mode         string `mapstructure:"mode"`
	TemplateGlob string `mapstructure:"template_glob"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type SessionConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type SecurityConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Security SecurityConfig `mapstructure:"security"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load loads configuration from the given file path (e.g. "config.yaml").
// A missing file is not an error: defaults and environment variables are
// enough to run. DATABASE_URL and SESSION_SECRET override the file; both
// have insecure defaults that a production deployment must replace.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		v.SetDefault("server.address", "0.0.0.0")
		v.SetDefault("server.port", 5000)
		v.SetDefault("server.mode", "debug")
		v.SetDefault("server.template_glob", "web/templates/*")
		v.SetDefault("database.url", "data/financebinder.db")
		v.SetDefault("session.secret", "dev_secret_key")
		v.SetDefault("session.expire_hours", 24)
		v.SetDefault("security.bcrypt_cost", 12)

		// environment overrides, e.g. FB_SERVER_PORT=9000
		v.SetEnvPrefix("FB")
		v.AutomaticEnv()
		_ = v.BindEnv("database.url", "DATABASE_URL")
		_ = v.BindEnv("session.secret", "SESSION_SECRET")

		if readErr := v.ReadInConfig(); readErr != nil {
			_, notFound := readErr.(viper.ConfigFileNotFoundError)
			if !notFound && !os.IsNotExist(readErr) {
				err = fmt.Errorf("read config: %w", readErr)
				return
			}
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
