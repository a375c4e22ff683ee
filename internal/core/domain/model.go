package domain

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type User struct {
	ID      string
	Mention string
	IsBot   bool
}

type Message struct {
	ID        string
	ChannelID string
	GuildID   string
	Author    User
	Mentions  []User
	Text      string
}

type Color int

const (
	Blue   Color = 0x3498db
	Green  Color = 0x2ecc71
	Red    Color = 0xe74c3c
	Orange Color = 0xe67e22
)

type Embed struct {
	Title       string
	Description string
	Color       Color
}

type VoiceChannel struct {
	ID   string
	Name string
}

// AfkEntry is a user's declared absence.
type AfkEntry struct {
	Reason string
	Since  time.Time
}

// Alarm is a single armed alarm request. Target is expressed in the alarm timezone.
type Alarm struct {
	ID          uuid.UUID
	Hour        int
	Minute      int
	UserID      string
	UserMention string
	GuildID     string
	ChannelID   string
	Target      time.Time
}
