package domain

import "errors"

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrMissingAlarmTime   = errors.New("missing alarm time")
	ErrInvalidAlarmTime   = errors.New("invalid alarm time")
)

const DefaultAfkReason = "I'm busy right now."
