package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"wardrobe-storefront/internal/domain"
	"wardrobe-storefront/internal/notification"
	sessionrepo "wardrobe-storefront/internal/repository/session"
	"wardrobe-storefront/internal/theme"
)

type stubRepo struct {
	sessions    map[string]*sessionrepo.Session
	createErr   error
	updateCalls int
}

func newStubRepo() *stubRepo {
	return &stubRepo{sessions: map[string]*sessionrepo.Session{}}
}

func (s *stubRepo) Create(_ context.Context, sess *sessionrepo.Session) error {
	if s.createErr != nil {
		return s.createErr
	}
	cp := *sess
	s.sessions[sess.ID] = &cp
	return nil
}

func (s *stubRepo) Get(_ context.Context, id string) (*sessionrepo.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *stubRepo) Update(_ context.Context, id string, fn func(*sessionrepo.Session) error) (*sessionrepo.Session, error) {
	s.updateCalls++
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *sess
	if err := fn(&cp); err != nil {
		return nil, err
	}
	s.sessions[id] = &cp
	out := cp
	return &out, nil
}

func TestCreate_StartsLightAndRemembersSystemPreference(t *testing.T) {
	repo := newStubRepo()
	svc := New(repo)

	sess, err := svc.Create(context.Background(), true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sess.ID == "" || sess.Theme.Theme != theme.Light || sess.Theme.IsDark || !sess.Theme.SystemDark {
		t.Fatalf("unexpected session %+v", sess)
	}
	if _, ok := repo.sessions[sess.ID]; !ok {
		t.Fatalf("session not stored")
	}
}

func TestLookup_MalformedIDIsNotFound(t *testing.T) {
	repo := newStubRepo()
	svc := New(repo)

	if _, err := svc.Lookup(context.Background(), "not-a-uuid"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.MarkAllRead(context.Background(), "../../etc"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("malformed ids must not reach the store")
	}
}

func TestNotificationFlow(t *testing.T) {
	svc := New(newStubRepo())
	ctx := context.Background()
	sess, err := svc.Create(ctx, false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	push := func(kind notification.Kind, title, message string) (notification.State, error) {
		n := notification.New(kind, title, message, time.Now())
		return svc.dispatchNotification(ctx, sess.ID, notification.Add{Notification: n})
	}
	state, err := push(notification.KindSuccess, "Added to cart", "Gown")
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	if _, err = push(notification.KindInfo, "Tip", "Pick rental dates"); err != nil {
		t.Fatalf("push: %v", err)
	}
	first := state.Notifications[0].ID

	state, err = svc.MarkRead(ctx, sess.ID, first)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if state.UnreadCount != 1 {
		t.Fatalf("expected 1 unread, got %d", state.UnreadCount)
	}

	state, err = svc.RemoveNotification(ctx, sess.ID, first)
	if err != nil {
		t.Fatalf("RemoveNotification: %v", err)
	}
	if len(state.Notifications) != 1 || state.UnreadCount != 1 {
		t.Fatalf("unexpected state after remove %+v", state)
	}

	state, err = svc.MarkAllRead(ctx, sess.ID)
	if err != nil || state.UnreadCount != 0 {
		t.Fatalf("MarkAllRead: %+v %v", state, err)
	}

	state, err = svc.ClearNotifications(ctx, sess.ID)
	if err != nil || len(state.Notifications) != 0 {
		t.Fatalf("ClearNotifications: %+v %v", state, err)
	}
}

func TestThemeFlow(t *testing.T) {
	svc := New(newStubRepo())
	ctx := context.Background()
	sess, err := svc.Create(ctx, false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	state, err := svc.SetSystemPreference(ctx, sess.ID, true)
	if err != nil || !state.IsDark {
		t.Fatalf("SetSystemPreference: %+v %v", state, err)
	}

	state, err = svc.SetTheme(ctx, sess.ID, "light", nil)
	if err != nil || state.IsDark || !state.SystemDark {
		t.Fatalf("SetTheme light: %+v %v", state, err)
	}

	state, err = svc.ToggleTheme(ctx, sess.ID)
	if err != nil || state.Theme != theme.Dark {
		t.Fatalf("ToggleTheme: %+v %v", state, err)
	}

	off := false
	state, err = svc.SetTheme(ctx, sess.ID, "AUTO", &off)
	if err != nil || state.IsDark {
		t.Fatalf("SetTheme auto: %+v %v", state, err)
	}

	if _, err := svc.SetTheme(ctx, sess.ID, "neon", nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	got, err := svc.Theme(ctx, sess.ID)
	if err != nil || got.Theme != theme.Auto {
		t.Fatalf("Theme: %+v %v", got, err)
	}
}
