// Package notification keeps the storefront's toast feed as a reducer.
package notification

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// DefaultDuration is how long a toast stays on screen when the sender does not say.
const DefaultDuration = 5 * time.Second

// Kind is the toast severity.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// ParseKind reports whether s names a known kind.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindSuccess, KindError, KindWarning, KindInfo:
		return k, true
	default:
		return "", false
	}
}

// Link is an optional call to action attached to a notification.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type Notification struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	DurationMS int64     `json:"duration"`
	Timestamp  time.Time `json:"timestamp"`
	Read       bool      `json:"read"`
	Action     *Link     `json:"action,omitempty"`
}

// New builds an unread notification with a fresh id and the default duration.
func New(kind Kind, title, message string, now time.Time) Notification {
	return Notification{
		ID:         uuid.NewString(),
		Kind:       kind,
		Title:      title,
		Message:    message,
		DurationMS: DefaultDuration.Milliseconds(),
		Timestamp:  now.UTC(),
	}
}

// State is the feed, newest first, with a running unread count.
type State struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}

type Action interface {
	isAction()
}

type Add struct {
	Notification Notification
}

type Remove struct {
	ID string
}

type MarkRead struct {
	ID string
}

type MarkAllRead struct{}

type ClearAll struct{}

func (Add) isAction()         {}
func (Remove) isAction()      {}
func (MarkRead) isAction()    {}
func (MarkAllRead) isAction() {}
func (ClearAll) isAction()    {}

// Reduce applies a to s without modifying s. The unread count only moves
// when a notification actually changes between read and unread.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case Add:
		n := act.Notification
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if n.DurationMS <= 0 {
			n.DurationMS = DefaultDuration.Milliseconds()
		}
		n.Read = false
		list := make([]Notification, 0, len(s.Notifications)+1)
		list = append(list, n)
		list = append(list, s.Notifications...)
		return State{Notifications: list, UnreadCount: s.UnreadCount + 1}
	case Remove:
		i := s.index(act.ID)
		if i < 0 {
			return s
		}
		unread := s.UnreadCount
		if !s.Notifications[i].Read {
			unread--
		}
		list := slices.Delete(slices.Clone(s.Notifications), i, i+1)
		return State{Notifications: list, UnreadCount: max(unread, 0)}
	case MarkRead:
		i := s.index(act.ID)
		if i < 0 || s.Notifications[i].Read {
			return s
		}
		list := slices.Clone(s.Notifications)
		list[i].Read = true
		return State{Notifications: list, UnreadCount: max(s.UnreadCount-1, 0)}
	case MarkAllRead:
		list := slices.Clone(s.Notifications)
		for i := range list {
			list[i].Read = true
		}
		return State{Notifications: list}
	case ClearAll:
		return State{}
	default:
		return s
	}
}

func (s State) index(id string) int {
	return slices.IndexFunc(s.Notifications, func(n Notification) bool { return n.ID == id })
}
