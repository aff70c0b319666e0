package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/wordwizards/duel-server/internal/engine"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Game      GameConfig      `mapstructure:"game"`
	Spellbook SpellbookConfig `mapstructure:"spellbook"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type GameConfig struct {
	StartingHealth      int `mapstructure:"starting_health"`
	ManaCap             int `mapstructure:"mana_cap"`
	ManaRegenPerTurn    int `mapstructure:"mana_regen_per_turn"`
	ShieldCap           int `mapstructure:"shield_cap"`
	BaseAttackWindowMs  int `mapstructure:"base_attack_window_ms"`
	BaseCounterWindowMs int `mapstructure:"base_counter_window_ms"`
}

type SpellbookConfig struct {
	// Seed for the one-time magnitude rolls; 0 means time-seeded.
	Seed int64 `mapstructure:"seed"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" | "console"
}

// Load reads configuration from an optional yaml file plus WW_* env overrides,
// falling back to defaults for everything.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("WW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")

	d := engine.DefaultRules()
	v.SetDefault("game.starting_health", d.StartingHealth)
	v.SetDefault("game.mana_cap", d.ManaCap)
	v.SetDefault("game.mana_regen_per_turn", d.ManaRegenPerTurn)
	v.SetDefault("game.shield_cap", d.ShieldCap)
	v.SetDefault("game.base_attack_window_ms", d.BaseAttackWindowMs)
	v.SetDefault("game.base_counter_window_ms", d.BaseCounterWindowMs)

	v.SetDefault("spellbook.seed", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Rules maps the game section onto the engine's constants struct.
func (g GameConfig) Rules() engine.Rules {
	return engine.Rules{
		StartingHealth:      g.StartingHealth,
		ManaCap:             g.ManaCap,
		ManaRegenPerTurn:    g.ManaRegenPerTurn,
		ShieldCap:           g.ShieldCap,
		BaseAttackWindowMs:  g.BaseAttackWindowMs,
		BaseCounterWindowMs: g.BaseCounterWindowMs,
	}
}
