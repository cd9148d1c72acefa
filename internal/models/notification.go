package models

import "time"

// NotificationLifetime is how long success and error notifications stay up.
const NotificationLifetime = 4 * time.Second

type NotificationKind int

const (
	NotificationSuccess NotificationKind = iota
	NotificationError
	NotificationLoading
)

func (k NotificationKind) String() string {
	switch k {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification is the transient status line. ID identifies the timer that
// is allowed to clear it; zero means nothing is shown.
type Notification struct {
	ID      uint64
	Message string
	Kind    NotificationKind
}

func (n Notification) Visible() bool {
	return n.ID != 0 && n.Message != ""
}

// Expires reports whether the notification clears itself on a timer.
func (n Notification) Expires() bool {
	return n.Kind != NotificationLoading
}
