package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var ErrMissingToken = errors.New("DISCORD_BOT_TOKEN not set")

const defaultPrefix = ">>"

type Config struct {
	LogLevel       zerolog.Level
	Prefix         string
	Token          string
	HandlerTimeout time.Duration
	AlarmSound     string
	AlarmPlayback  time.Duration
}

// Load reads config.toml from the working directory if present and the environment, with .env loaded first.
// Only the bot token is required.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg(".env file not found, relying on environment variables")
	}

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
		log.Info().Msg("config file not found, using defaults")
	}

	return fromViper()
}

func fromViper() (*Config, error) {
	setDefaults()

	if err := viper.BindEnv("discord.bot_token", "DISCORD_BOT_TOKEN"); err != nil {
		return nil, err
	}

	token := viper.GetString("discord.bot_token")
	if token == "" {
		return nil, ErrMissingToken
	}

	handlerTimeout, err := time.ParseDuration(viper.GetString("handler.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid timeout for handler in config: %w", err)
	}

	playback, err := time.ParseDuration(viper.GetString("alarm.playback"))
	if err != nil {
		return nil, fmt.Errorf("invalid playback duration for alarm in config: %w", err)
	}

	prefix := strings.TrimSpace(viper.GetString("bot.prefix"))
	if prefix == "" {
		prefix = defaultPrefix
	}

	return &Config{
		LogLevel:       parseLogLevel(viper.GetString("bot.log_level")),
		Prefix:         prefix,
		Token:          token,
		HandlerTimeout: handlerTimeout,
		AlarmSound:     viper.GetString("alarm.sound"),
		AlarmPlayback:  playback,
	}, nil
}

func setDefaults() {
	viper.SetDefault("bot.log_level", "info")
	viper.SetDefault("bot.prefix", defaultPrefix)
	viper.SetDefault("handler.timeout", "10s")
	viper.SetDefault("alarm.sound", "alarm.mp3")
	viper.SetDefault("alarm.playback", "30s")
}

func parseLogLevel(level string) zerolog.Level {
	switch level {
	case "info":
		return zerolog.InfoLevel
	case "debug":
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}
