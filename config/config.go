package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultListenAddr = "127.0.0.1:8080"
	DefaultLogLevel   = "info"
	DefaultDBFile     = "dao.db"
)

type Config struct {
	Home       string `mapstructure:"-"`
	ListenAddr string `mapstructure:"listen_addr"`
	DBPath     string `mapstructure:"db_path"`
	LogLevel   string `mapstructure:"log_level"`
}

func DefaultConfig(home string) *Config {
	if len(home) == 0 {
		home = os.ExpandEnv("$HOME/.xmrtd")
	}
	return &Config{
		Home:       home,
		ListenAddr: DefaultListenAddr,
		DBPath:     filepath.Join(home, DefaultDBFile),
		LogLevel:   DefaultLogLevel,
	}
}

// NewConfig builds the default configuration and creates the home layout on
// disk.
func NewConfig(home string) *Config {
	config := DefaultConfig(home)
	_ = os.MkdirAll(filepath.Join(config.Home, "config"), DefaultDirPerm)
	return config
}

func (c *Config) ConfigFile() string {
	return filepath.Join(c.Home, "config", "config.toml")
}

func (c *Config) ValidateBasic() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr must not be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	return nil
}
