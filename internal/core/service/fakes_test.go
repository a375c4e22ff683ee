package service

import (
	"context"
	"sync"

	"alarmbot/internal/core/domain"
	"alarmbot/internal/core/port"
)

type sentEmbed struct {
	channelID string
	embed     domain.Embed
}

type recordingSender struct {
	mutex   sync.Mutex
	sent    []sentEmbed
	sendErr error
}

func (r *recordingSender) SendEmbed(_ context.Context, channelID string, embed domain.Embed) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.sent = append(r.sent, sentEmbed{channelID: channelID, embed: embed})
	return r.sendErr
}

func (r *recordingSender) NotifyAndReturnError(ctx context.Context, channelID string, description string,
	err error) error {
	_ = r.SendEmbed(ctx, channelID, domain.Embed{Title: "Error", Description: description, Color: domain.Red})
	return err
}

func (r *recordingSender) embeds() []domain.Embed {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	embeds := make([]domain.Embed, 0, len(r.sent))
	for _, s := range r.sent {
		embeds = append(embeds, s.embed)
	}
	return embeds
}

func (r *recordingSender) titles() []string {
	titles := []string{}
	for _, e := range r.embeds() {
		titles = append(titles, e.Title)
	}
	return titles
}

type fakeVoice struct {
	channel    domain.VoiceChannel
	inVoice    bool
	joinErr    error
	conn       *fakeConnection
	joinedWith []string
}

func (f *fakeVoice) UserVoiceChannel(_, _ string) (domain.VoiceChannel, bool) {
	return f.channel, f.inVoice
}

func (f *fakeVoice) Join(_ context.Context, guildID, channelID string) (port.VoiceConnection, error) {
	f.joinedWith = []string{guildID, channelID}
	if f.joinErr != nil {
		return nil, f.joinErr
	}
	return f.conn, nil
}

type fakeConnection struct {
	playErr      error
	blockUntil   bool
	playedPath   string
	disconnected bool
	stoppedEarly bool
}

func (f *fakeConnection) Play(ctx context.Context, path string) <-chan error {
	f.playedPath = path
	done := make(chan error, 1)

	go func() {
		defer close(done)
		if f.blockUntil {
			<-ctx.Done()
			f.stoppedEarly = true
			done <- nil
			return
		}
		done <- f.playErr
	}()

	return done
}

func (f *fakeConnection) Disconnect() error {
	f.disconnected = true
	return nil
}
