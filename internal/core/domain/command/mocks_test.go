package command

import (
	"context"
	"time"

	"alarmbot/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendEmbed(ctx context.Context, channelID string, embed domain.Embed) error {
	args := m.Called(ctx, channelID, embed)
	return args.Error(0)
}

func (m *MockSender) NotifyAndReturnError(ctx context.Context, channelID string, description string,
	err error) error {
	m.Called(ctx, channelID, description, err)
	return err
}

type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) Schedule(alarm domain.Alarm) (domain.Alarm, error) {
	args := m.Called(alarm)
	return args.Get(0).(domain.Alarm), args.Error(1)
}

type fixedLatency time.Duration

func (f fixedLatency) HeartbeatLatency() time.Duration {
	return time.Duration(f)
}
