package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"alarmbot/internal/adapters/converter"
	"alarmbot/internal/adapters/file"
	"alarmbot/internal/adapters/handler"
	"alarmbot/internal/adapters/sender"
	"alarmbot/internal/adapters/voice"
	"alarmbot/internal/config"
	"alarmbot/internal/core/domain/command"
	"alarmbot/internal/core/port"
	"alarmbot/internal/core/service"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Info().Msg("starting alarmbot...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	zerolog.SetGlobalLevel(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// run has finished its own cleanup by the time it returns
	if err := run(ctx, cfg, openSession); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("bot stopped")
	}
}

// run wires the bot and blocks until ctx is done. connect opens the gateway connection.
func run(ctx context.Context, cfg *config.Config, connect func(*discordgo.Session) error) error {
	session, err := discordgo.New(botAuth(cfg.Token))
	if err != nil {
		return fmt.Errorf("failed initializing discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildMembers

	sound, removeSound, err := file.ResolveSound(ctx, cfg.AlarmSound)
	if err != nil {
		log.Warn().Err(err).Str("sound", cfg.AlarmSound).Msg("alarm sound unavailable, voice alarms will fail")
		sound, removeSound = cfg.AlarmSound, func() {}
	}
	defer removeSound()

	var decoder port.AudioDecoder
	if ffmpeg, err := converter.NewFFmpegDecoder(); err != nil {
		log.Warn().Err(err).Msg("voice playback disabled")
	} else {
		decoder = ffmpeg
	}

	s := sender.NewDiscord(session)

	v := voice.NewDiscord(session, decoder)

	afk := service.NewAfkRegistry()
	scheduler := service.NewAlarmScheduler(ctx, s, v, sound, cfg.AlarmPlayback)
	defer scheduler.Stop()

	commandRegistry := &command.Registry{}
	commandRegistry.Register(command.NewAlarm(scheduler, s, cfg.Prefix, "alarm"))
	commandRegistry.Register(command.NewAfk(afk, s, "afk"))
	commandRegistry.Register(command.NewPing(session, s, "ping"))
	commandRegistry.Register(command.NewHelp(s, cfg.Prefix, "help"))

	dispatcher := command.NewDispatcher(commandRegistry, cfg.Prefix)
	observer := service.NewObserver(afk, s, dispatcher)
	messageHandler := handler.NewMessage(observer, cfg.HandlerTimeout)

	session.AddHandler(messageHandler.Handle)
	session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		log.Info().Str("user", r.User.String()).Msg("bot is ready")
	})

	if err := connect(session); err != nil {
		return fmt.Errorf("failed connecting to discord: %w", err)
	}

	log.Info().Str("prefix", cfg.Prefix).Msg("bot listening")
	<-ctx.Done()

	log.Info().Int("pendingAlarms", len(scheduler.Pending())).Msg("shutting down")

	if err := session.Close(); err != nil {
		log.Warn().Err(err).Msg("failed closing discord session")
	}

	return nil
}

func openSession(session *discordgo.Session) error {
	return session.Open()
}

func botAuth(token string) string {
	token = strings.TrimSpace(token)
	if strings.HasPrefix(strings.ToLower(token), "bot ") {
		return token
	}

	return "Bot " + token
}
