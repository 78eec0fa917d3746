package adapter

import "context"

type NotificationLevel string

const (
	NotifySuccess NotificationLevel = "success"
	NotifyError   NotificationLevel = "error"
)

// Notification is a short user-facing message (a toast in the web UI).
type Notification struct {
	Level   NotificationLevel
	Title   string
	Message string
}

// Notifier surfaces notifications to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}
