package notifier

import "errors"

var (
	// ErrSendFailed is returned when the email provider rejects the message
	ErrSendFailed = errors.New("notifier client: send failed")

	// ErrDisabled is returned when notifications are turned off in config
	ErrDisabled = errors.New("notifier client: notifications disabled")
)
