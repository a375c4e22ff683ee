package handler

import (
	"context"
	"regexp"
	"time"

	"alarmbot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type Observer interface {
	Observe(ctx context.Context, message *domain.Message)
}

type Message struct {
	observer Observer
	timeout  time.Duration
}

func NewMessage(observer Observer, timeout time.Duration) *Message {
	return &Message{observer: observer, timeout: timeout}
}

// Handle is registered as the discordgo MessageCreate handler.
func (h *Message) Handle(_ *discordgo.Session, event *discordgo.MessageCreate) {
	if event == nil || event.Message == nil || event.Author == nil {
		return
	}

	log.Debug().Str("messageId", event.ID).Str("channelId", event.ChannelID).Msg("received message")

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	h.observer.Observe(ctx, toDomainMessage(event.Message))
}

func toDomainMessage(m *discordgo.Message) *domain.Message {
	return &domain.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
		Author:    toDomainUser(m.Author),
		Mentions:  orderedMentions(m),
		Text:      m.Content,
	}
}

func toDomainUser(u *discordgo.User) domain.User {
	return domain.User{ID: u.ID, Mention: u.Mention(), IsBot: u.Bot}
}

var mentionPattern = regexp.MustCompile(`<@!?(\d+)>`)

// orderedMentions lists mentioned users in the order they appear in the content, repeats included. Users the
// platform reports as mentioned without a token in the content (reply pings) follow at the end.
func orderedMentions(m *discordgo.Message) []domain.User {
	known := make(map[string]*discordgo.User, len(m.Mentions))
	for _, u := range m.Mentions {
		if u != nil {
			known[u.ID] = u
		}
	}

	mentions := make([]domain.User, 0, len(m.Mentions))
	seen := make(map[string]bool, len(m.Mentions))

	for _, match := range mentionPattern.FindAllStringSubmatch(m.Content, -1) {
		u, ok := known[match[1]]
		if !ok {
			continue
		}

		mentions = append(mentions, toDomainUser(u))
		seen[u.ID] = true
	}

	for _, u := range m.Mentions {
		if u != nil && !seen[u.ID] {
			mentions = append(mentions, toDomainUser(u))
		}
	}

	return mentions
}
