package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

type Config struct {
	Mode             string `mapstructure:"mode" json:"mode"`
	Addr             string `mapstructure:"addr" json:"addr"`
	HumanPlayer      string `mapstructure:"human_player" json:"human_player"`
	LogLevel         string `mapstructure:"log_level" json:"log_level"`
	AiDepth          int    `mapstructure:"ai_depth" json:"ai_depth"`
	AiWorkers        int    `mapstructure:"ai_workers" json:"ai_workers"`
	AiLogSearchStats bool   `mapstructure:"ai_log_search_stats" json:"ai_log_search_stats"`
}

const (
	ModeConsole = "console"
	ModeServer  = "server"
)

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		Mode:        ModeConsole,
		Addr:        ":8080",
		HumanPlayer: "white",
		LogLevel:    "info",

		AiDepth: DefaultSearchDepth,
		// 0 = one goroutine per root candidate
		AiWorkers:        0,
		AiLogSearchStats: true,
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}

// LoadConfig layers the optional config file at path and PENTE_* environment
// variables over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("mode", defaults.Mode)
	v.SetDefault("addr", defaults.Addr)
	v.SetDefault("human_player", defaults.HumanPlayer)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("ai_depth", defaults.AiDepth)
	v.SetDefault("ai_workers", defaults.AiWorkers)
	v.SetDefault("ai_log_search_stats", defaults.AiLogSearchStats)

	v.SetEnvPrefix("PENTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Mode != ModeConsole && c.Mode != ModeServer {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.AiDepth < 1 {
		return errors.New("ai_depth must be at least 1")
	}
	if c.AiWorkers < 0 {
		return errors.New("ai_workers must not be negative")
	}
	if _, err := c.Settings(); err != nil {
		return err
	}
	return nil
}

// Settings maps human_player onto the seats of a game: "white" or "black"
// plays the computer, "both" is a two-human game and "none" lets the
// computer play itself.
func (c Config) Settings() (GameSettings, error) {
	settings := DefaultGameSettings()
	switch strings.ToLower(c.HumanPlayer) {
	case "white", "":
		settings.WhiteType = PlayerHuman
		settings.BlackType = PlayerAI
	case "black":
		settings.WhiteType = PlayerAI
		settings.BlackType = PlayerHuman
	case "both":
		settings.WhiteType = PlayerHuman
		settings.BlackType = PlayerHuman
	case "none":
		settings.WhiteType = PlayerAI
		settings.BlackType = PlayerAI
	default:
		return GameSettings{}, fmt.Errorf("unknown human_player %q", c.HumanPlayer)
	}
	return settings, nil
}
