package service

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"alarmbot/internal/core/domain"
	"alarmbot/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// AlarmLocation is Indian Standard Time. All alarm times are read in this zone.
var AlarmLocation = time.FixedZone("IST", 5*60*60+30*60)

const DefaultPlayback = 30 * time.Second

const (
	joinedMessage      = "Joined voice channel: %s"
	finishedMessage    = "Alarm finished, leaving the voice channel."
	joinFailedMessage  = "Failed to join voice channel: %s"
	playFailedMessage  = "Failed to play alarm sound: %s"
	notInVoiceTemplate = "%s, you're not in a voice channel! 🔔"
)

type Scheduler interface {
	Schedule(alarm domain.Alarm) (domain.Alarm, error)
}

type AlarmScheduler struct {
	ctx      context.Context
	pending  map[uuid.UUID]*pendingAlarm
	mutex    *sync.Mutex
	wg       *sync.WaitGroup
	sender   port.EmbedSender
	voice    port.Voice
	sound    string
	playback time.Duration
	now      func() time.Time
	wait     func(ctx context.Context, d time.Duration) error
}

type pendingAlarm struct {
	alarm  domain.Alarm
	cancel context.CancelFunc
}

// NewAlarmScheduler creates a scheduler whose alarms live at most as long as ctx. sound is the path of the
// audio file played in voice channels, playback caps how long it plays.
func NewAlarmScheduler(ctx context.Context, sender port.EmbedSender, voice port.Voice, sound string,
	playback time.Duration) *AlarmScheduler {
	if playback <= 0 {
		playback = DefaultPlayback
	}

	return &AlarmScheduler{
		ctx:      ctx,
		pending:  make(map[uuid.UUID]*pendingAlarm),
		mutex:    &sync.Mutex{},
		wg:       &sync.WaitGroup{},
		sender:   sender,
		voice:    voice,
		sound:    sound,
		playback: playback,
		now:      time.Now,
		wait:     sleep,
	}
}

// ParseAlarmTime reads a 24-hour "HH:MM" value.
func ParseAlarmTime(value string) (int, int, error) {
	fields := strings.Split(value, ":")
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: expected HH:MM, got %q", domain.ErrInvalidAlarmTime, value)
	}

	hour, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: hour: %w", domain.ErrInvalidAlarmTime, err)
	}

	minute, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: minute: %w", domain.ErrInvalidAlarmTime, err)
	}

	if !validTime(hour, minute) {
		return 0, 0, fmt.Errorf("%w: %02d:%02d out of range", domain.ErrInvalidAlarmTime, hour, minute)
	}

	return hour, minute, nil
}

// NextOccurrence returns the first instant strictly after now at hour:minute in AlarmLocation.
func NextOccurrence(now time.Time, hour, minute int) time.Time {
	now = now.In(AlarmLocation)
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, AlarmLocation)

	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}

	return target
}

// Schedule arms a one-shot alarm. Alarms are independent of each other, a user may have any number pending.
func (s *AlarmScheduler) Schedule(alarm domain.Alarm) (domain.Alarm, error) {
	if !validTime(alarm.Hour, alarm.Minute) {
		return domain.Alarm{}, fmt.Errorf("%w: %02d:%02d out of range", domain.ErrInvalidAlarmTime,
			alarm.Hour, alarm.Minute)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return domain.Alarm{}, fmt.Errorf("failed to create alarm id: %w", err)
	}

	now := s.now()
	alarm.ID = id
	alarm.Target = NextOccurrence(now, alarm.Hour, alarm.Minute)
	delay := alarm.Target.Sub(now)

	ctx, cancel := context.WithCancel(s.ctx)

	s.mutex.Lock()
	s.pending[id] = &pendingAlarm{alarm: alarm, cancel: cancel}
	s.mutex.Unlock()

	log.Info().
		Str("alarmId", id.String()).
		Str("userId", alarm.UserID).
		Time("target", alarm.Target).
		Dur("delay", delay).
		Msg("alarm armed")

	s.wg.Add(1)
	go s.run(ctx, alarm, delay)

	return alarm, nil
}

// Cancel stops a pending alarm before it fires. It reports whether the alarm was still pending.
func (s *AlarmScheduler) Cancel(id uuid.UUID) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	p, ok := s.pending[id]
	if !ok {
		return false
	}

	p.cancel()
	return true
}

// Pending lists alarms that have not completed yet, earliest target first.
func (s *AlarmScheduler) Pending() []domain.Alarm {
	s.mutex.Lock()
	alarms := make([]domain.Alarm, 0, len(s.pending))
	for _, p := range s.pending {
		alarms = append(alarms, p.alarm)
	}
	s.mutex.Unlock()

	slices.SortFunc(alarms, func(a, b domain.Alarm) int {
		return a.Target.Compare(b.Target)
	})

	return alarms
}

// Stop cancels every pending alarm and waits for their tasks to return.
func (s *AlarmScheduler) Stop() {
	s.mutex.Lock()
	for _, p := range s.pending {
		p.cancel()
	}
	s.mutex.Unlock()

	s.wg.Wait()
}

func (s *AlarmScheduler) run(ctx context.Context, alarm domain.Alarm, delay time.Duration) {
	defer s.wg.Done()
	defer s.remove(alarm.ID)

	l := log.With().Str("alarmId", alarm.ID.String()).Str("userId", alarm.UserID).Logger()

	if err := s.wait(ctx, delay); err != nil {
		l.Info().Err(err).Msg("alarm dropped before firing")
		return
	}

	l.Info().Msg("alarm firing")
	s.fire(ctx, alarm)
}

func (s *AlarmScheduler) fire(ctx context.Context, alarm domain.Alarm) {
	channel, ok := s.voice.UserVoiceChannel(alarm.GuildID, alarm.UserID)
	if !ok {
		log.Debug().Str("alarmId", alarm.ID.String()).Msg("user not in voice, tagging")
		s.send(ctx, alarm.ChannelID, domain.Embed{
			Title:       "No Voice Channel",
			Description: fmt.Sprintf(notInVoiceTemplate, alarm.UserMention),
			Color:       domain.Red,
		})
		return
	}

	s.ring(ctx, alarm, channel)
}

func (s *AlarmScheduler) ring(ctx context.Context, alarm domain.Alarm, channel domain.VoiceChannel) {
	l := log.With().
		Str("alarmId", alarm.ID.String()).
		Str("guildId", alarm.GuildID).
		Str("voiceChannelId", channel.ID).
		Logger()

	conn, err := s.voice.Join(ctx, alarm.GuildID, channel.ID)
	if err != nil {
		err = s.sender.NotifyAndReturnError(ctx, alarm.ChannelID, fmt.Sprintf(joinFailedMessage, err), err)
		l.Error().Err(err).Msg("failed to join voice channel")
		return
	}

	s.send(ctx, alarm.ChannelID, domain.Embed{
		Title:       "Joined Voice Channel",
		Description: fmt.Sprintf(joinedMessage, channel.Name),
		Color:       domain.Blue,
	})

	playCtx, stop := context.WithTimeout(ctx, s.playback)
	playErr := <-conn.Play(playCtx, s.sound)
	stop()

	if playErr != nil {
		playErr = s.sender.NotifyAndReturnError(ctx, alarm.ChannelID,
			fmt.Sprintf(playFailedMessage, playErr), playErr)
		l.Error().Err(playErr).Msg("failed to play alarm sound")
	}

	if err := conn.Disconnect(); err != nil {
		l.Warn().Err(err).Msg("failed to leave voice channel")
	}

	if playErr != nil {
		return
	}

	l.Debug().Msg("alarm finished")
	s.send(ctx, alarm.ChannelID, domain.Embed{
		Title:       "Alarm Finished",
		Description: finishedMessage,
		Color:       domain.Blue,
	})
}

func (s *AlarmScheduler) send(ctx context.Context, channelID string, embed domain.Embed) {
	if err := s.sender.SendEmbed(ctx, channelID, embed); err != nil {
		log.Warn().Err(err).Str("channelId", channelID).Str("title", embed.Title).Msg("failed to send alarm message")
	}
}

func (s *AlarmScheduler) remove(id uuid.UUID) {
	s.mutex.Lock()
	if p, ok := s.pending[id]; ok {
		p.cancel()
		delete(s.pending, id)
	}
	s.mutex.Unlock()
}

func validTime(hour, minute int) bool {
	return hour >= 0 && hour < 24 && minute >= 0 && minute < 60
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
