package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Load reads the TOML config from path, or config.toml in the working
// directory when path is empty, applies the log level and re-applies it
// whenever the file changes.
func Load(path string) error {
	setDefaults()

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
	}

	viper.SetConfigType("toml")

	log.Info().Msg("reading config file...")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("could not read config file: %w", err)
	}

	ApplyLogLevel()

	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Info().Str("file", e.Name).Str("op", e.Op.String()).Msg("config file changed")
		ApplyLogLevel()
	})
	viper.WatchConfig()

	return nil
}

func setDefaults() {
	viper.SetDefault("bot.log_level", "info")
	viper.SetDefault("bot.autodefer", "on")
	viper.SetDefault("handler.timeout", "5m")
	viper.SetDefault("discord.sync_commands", true)
	viper.SetDefault("telegram.sync_commands", true)
}

// LogLevel maps the configured level name to a zerolog level. Unknown names are info.
func LogLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ApplyLogLevel sets the global log level from bot.log_level.
func ApplyLogLevel() {
	level := LogLevel(viper.GetString("bot.log_level"))
	if zerolog.GlobalLevel() != level {
		log.Info().Str("level", level.String()).Msg("setting log level")
	}

	zerolog.SetGlobalLevel(level)
}
