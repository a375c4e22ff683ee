package service

import (
	"context"
	"errors"
	"testing"

	"alarmbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, message *domain.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

var (
	author = domain.User{ID: "author", Mention: "<@author>"}
	alice  = domain.User{ID: "alice", Mention: "<@alice>"}
	bob    = domain.User{ID: "bob", Mention: "<@bob>"}
)

func TestObserver_Observe(t *testing.T) {
	tests := []struct {
		name         string
		afk          map[string]string
		message      *domain.Message
		wantEmbeds   []domain.Embed
		wantDispatch bool
		wantAfk      []string
	}{
		{
			name:         "plain message from non afk user",
			message:      &domain.Message{ChannelID: "c", Author: author, Text: "hello"},
			wantEmbeds:   []domain.Embed{},
			wantDispatch: true,
		},
		{
			name:    "afk author is welcomed back once",
			afk:     map[string]string{"author": "lunch"},
			message: &domain.Message{ChannelID: "c", Author: author, Text: "back"},
			wantEmbeds: []domain.Embed{
				{
					Title:       "Welcome Back",
					Description: "Welcome back, <@author>! I removed your AFK status.",
					Color:       domain.Blue,
				},
			},
			wantDispatch: true,
		},
		{
			name:    "mention of afk user keeps their entry",
			afk:     map[string]string{"alice": "in a meeting"},
			message: &domain.Message{ChannelID: "c", Author: author, Mentions: []domain.User{alice}},
			wantEmbeds: []domain.Embed{
				{
					Title:       "AFK Alert",
					Description: "<@alice> is currently AFK: in a meeting",
					Color:       domain.Orange,
				},
			},
			wantDispatch: true,
			wantAfk:      []string{"alice"},
		},
		{
			name: "two afk mentions in mention order",
			afk:  map[string]string{"alice": "lunch", "bob": "sleeping"},
			message: &domain.Message{
				ChannelID: "c",
				Author:    author,
				Mentions:  []domain.User{bob, alice},
			},
			wantEmbeds: []domain.Embed{
				{Title: "AFK Alert", Description: "<@bob> is currently AFK: sleeping", Color: domain.Orange},
				{Title: "AFK Alert", Description: "<@alice> is currently AFK: lunch", Color: domain.Orange},
			},
			wantDispatch: true,
			wantAfk:      []string{"alice", "bob"},
		},
		{
			name: "duplicate mention alerts twice",
			afk:  map[string]string{"alice": "lunch"},
			message: &domain.Message{
				ChannelID: "c",
				Author:    author,
				Mentions:  []domain.User{alice, alice},
			},
			wantEmbeds: []domain.Embed{
				{Title: "AFK Alert", Description: "<@alice> is currently AFK: lunch", Color: domain.Orange},
				{Title: "AFK Alert", Description: "<@alice> is currently AFK: lunch", Color: domain.Orange},
			},
			wantDispatch: true,
			wantAfk:      []string{"alice"},
		},
		{
			name: "non afk mention is silent",
			message: &domain.Message{
				ChannelID: "c",
				Author:    author,
				Mentions:  []domain.User{bob},
			},
			wantEmbeds:   []domain.Embed{},
			wantDispatch: true,
		},
		{
			name: "welcome back comes before alerts",
			afk:  map[string]string{"author": "brb", "alice": "lunch"},
			message: &domain.Message{
				ChannelID: "c",
				Author:    author,
				Mentions:  []domain.User{alice},
			},
			wantEmbeds: []domain.Embed{
				{
					Title:       "Welcome Back",
					Description: "Welcome back, <@author>! I removed your AFK status.",
					Color:       domain.Blue,
				},
				{Title: "AFK Alert", Description: "<@alice> is currently AFK: lunch", Color: domain.Orange},
			},
			wantDispatch: true,
			wantAfk:      []string{"alice"},
		},
		{
			name: "bot messages are ignored entirely",
			afk:  map[string]string{"bot": "never", "alice": "lunch"},
			message: &domain.Message{
				ChannelID: "c",
				Author:    domain.User{ID: "bot", Mention: "<@bot>", IsBot: true},
				Mentions:  []domain.User{alice},
				Text:      ">>ping",
			},
			wantEmbeds:   []domain.Embed{},
			wantDispatch: false,
			wantAfk:      []string{"alice", "bot"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewAfkRegistry()
			for user, reason := range tt.afk {
				registry.SetAfk(user, reason)
			}

			sender := &recordingSender{}
			dispatcher := new(MockDispatcher)
			if tt.wantDispatch {
				dispatcher.On("Dispatch", mock.Anything, tt.message).Return(nil).Once()
			}

			NewObserver(registry, sender, dispatcher).Observe(t.Context(), tt.message)

			assert.Equal(t, tt.wantEmbeds, sender.embeds())
			dispatcher.AssertExpectations(t)
			if !tt.wantDispatch {
				assert.Empty(t, dispatcher.Calls)
			}

			remaining := []string{}
			for _, user := range []string{"alice", "author", "bob", "bot"} {
				if _, ok := registry.IsAfk(user); ok {
					remaining = append(remaining, user)
				}
			}
			if tt.wantAfk == nil {
				tt.wantAfk = []string{}
			}
			assert.Equal(t, tt.wantAfk, remaining)
		})
	}
}

func TestObserver_AfkCommandFromAfkUser(t *testing.T) {
	registry := NewAfkRegistry()
	registry.SetAfk("author", "old reason")
	sender := &recordingSender{}

	message := &domain.Message{ChannelID: "c", Author: author, Text: ">>afk new reason"}
	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", mock.Anything, message).Run(func(_ mock.Arguments) {
		_, ok := registry.IsAfk("author")
		assert.False(t, ok, "entry is cleared before the command runs")
		registry.SetAfk("author", "new reason")
	}).Return(nil).Once()

	NewObserver(registry, sender, dispatcher).Observe(t.Context(), message)

	entry, ok := registry.IsAfk("author")
	assert.True(t, ok)
	assert.Equal(t, "new reason", entry.Reason)
	assert.Equal(t, []string{"Welcome Back"}, sender.titles())
}

func TestObserver_DispatchesEvenWhenSendFails(t *testing.T) {
	registry := NewAfkRegistry()
	registry.SetAfk("author", "brb")
	sender := &recordingSender{sendErr: errors.New("discord down")}

	message := &domain.Message{ChannelID: "c", Author: author, Text: ">>ping"}
	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", mock.Anything, message).Return(errors.New("send failed")).Once()

	NewObserver(registry, sender, dispatcher).Observe(t.Context(), message)

	dispatcher.AssertExpectations(t)
	_, ok := registry.IsAfk("author")
	assert.False(t, ok)
}
