package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func TestAddPrependsAndCountsUnread(t *testing.T) {
	first := New(KindSuccess, "Added to cart", "Gown added", now)
	second := New(KindInfo, "Heads up", "Rental needs dates", now.Add(time.Minute))

	s := Reduce(State{}, Add{Notification: first})
	s = Reduce(s, Add{Notification: second})

	require.Len(t, s.Notifications, 2)
	assert.Equal(t, second.ID, s.Notifications[0].ID)
	assert.Equal(t, 2, s.UnreadCount)
	assert.Equal(t, int64(5000), s.Notifications[1].DurationMS)
}

func TestAddFillsDefaults(t *testing.T) {
	s := Reduce(State{}, Add{Notification: Notification{Kind: KindWarning, Title: "x", Read: true}})
	n := s.Notifications[0]
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, DefaultDuration.Milliseconds(), n.DurationMS)
	assert.False(t, n.Read)
}

func TestMarkReadIsCountedOnce(t *testing.T) {
	n := New(KindSuccess, "t", "m", now)
	s := Reduce(State{}, Add{Notification: n})

	s = Reduce(s, MarkRead{ID: n.ID})
	assert.Equal(t, 0, s.UnreadCount)
	assert.True(t, s.Notifications[0].Read)

	s = Reduce(s, MarkRead{ID: n.ID})
	assert.Equal(t, 0, s.UnreadCount)

	s = Reduce(s, MarkRead{ID: "missing"})
	assert.Equal(t, 0, s.UnreadCount)
}

func TestRemoveAdjustsUnreadOnlyForUnread(t *testing.T) {
	a := New(KindSuccess, "a", "", now)
	b := New(KindError, "b", "", now)
	s := Reduce(State{}, Add{Notification: a})
	s = Reduce(s, Add{Notification: b})
	s = Reduce(s, MarkRead{ID: a.ID})
	require.Equal(t, 1, s.UnreadCount)

	s = Reduce(s, Remove{ID: a.ID})
	assert.Equal(t, 1, s.UnreadCount)
	assert.Len(t, s.Notifications, 1)

	s = Reduce(s, Remove{ID: b.ID})
	assert.Equal(t, 0, s.UnreadCount)
	assert.Empty(t, s.Notifications)

	assert.Equal(t, s, Reduce(s, Remove{ID: b.ID}))
}

func TestMarkAllReadAndClearAll(t *testing.T) {
	s := Reduce(State{}, Add{Notification: New(KindInfo, "a", "", now)})
	s = Reduce(s, Add{Notification: New(KindInfo, "b", "", now)})

	read := Reduce(s, MarkAllRead{})
	assert.Equal(t, 0, read.UnreadCount)
	for _, n := range read.Notifications {
		assert.True(t, n.Read)
	}
	assert.False(t, s.Notifications[0].Read, "input state must not change")

	cleared := Reduce(read, ClearAll{})
	assert.Empty(t, cleared.Notifications)
	assert.Equal(t, 0, cleared.UnreadCount)
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("warning")
	assert.True(t, ok)
	assert.Equal(t, KindWarning, k)

	_, ok = ParseKind("fatal")
	assert.False(t, ok)
}
