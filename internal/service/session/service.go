package session

import (
	"context"

	"github.com/google/uuid"

	"wardrobe-storefront/internal/domain"
	"wardrobe-storefront/internal/notification"
	sessionrepo "wardrobe-storefront/internal/repository/session"
	"wardrobe-storefront/internal/theme"
)

type sessionRepo interface {
	Create(ctx context.Context, s *sessionrepo.Session) error
	Get(ctx context.Context, id string) (*sessionrepo.Session, error)
	Update(ctx context.Context, id string, fn func(*sessionrepo.Session) error) (*sessionrepo.Session, error)
}

// Service issues anonymous storefront sessions and manages the toast feed
// and theme kept in them.
type Service struct {
	repo sessionRepo
}

func New(repo sessionRepo) *Service {
	return &Service{repo: repo}
}

// Create starts a session with an empty cart and the auto theme resolved
// against the client's reported system preference.
func (s *Service) Create(ctx context.Context, systemDark bool) (*sessionrepo.Session, error) {
	sess := &sessionrepo.Session{
		ID:    uuid.NewString(),
		Theme: theme.Reduce(theme.Initial(), theme.SystemPreference{Dark: systemDark}),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Lookup returns the session for id. Malformed ids are reported as not found.
func (s *Service) Lookup(ctx context.Context, id string) (*sessionrepo.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Notifications(ctx context.Context, id string) (notification.State, error) {
	sess, err := s.Lookup(ctx, id)
	if err != nil {
		return notification.State{}, err
	}
	return sess.Notifications, nil
}

func (s *Service) MarkRead(ctx context.Context, id, notificationID string) (notification.State, error) {
	return s.dispatchNotification(ctx, id, notification.MarkRead{ID: notificationID})
}

func (s *Service) MarkAllRead(ctx context.Context, id string) (notification.State, error) {
	return s.dispatchNotification(ctx, id, notification.MarkAllRead{})
}

func (s *Service) RemoveNotification(ctx context.Context, id, notificationID string) (notification.State, error) {
	return s.dispatchNotification(ctx, id, notification.Remove{ID: notificationID})
}

func (s *Service) ClearNotifications(ctx context.Context, id string) (notification.State, error) {
	return s.dispatchNotification(ctx, id, notification.ClearAll{})
}

func (s *Service) dispatchNotification(ctx context.Context, id string, a notification.Action) (notification.State, error) {
	sess, err := s.update(ctx, id, func(sess *sessionrepo.Session) error {
		sess.Notifications = notification.Reduce(sess.Notifications, a)
		return nil
	})
	if err != nil {
		return notification.State{}, err
	}
	return sess.Notifications, nil
}

func (s *Service) Theme(ctx context.Context, id string) (theme.State, error) {
	sess, err := s.Lookup(ctx, id)
	if err != nil {
		return theme.State{}, err
	}
	return sess.Theme, nil
}

// SetTheme stores an explicit choice. systemDark, when given, replaces the
// remembered OS preference.
func (s *Service) SetTheme(ctx context.Context, id, name string, systemDark *bool) (theme.State, error) {
	t, ok := theme.Parse(name)
	if !ok {
		return theme.State{}, domain.Invalid("theme must be light, dark or auto")
	}
	return s.dispatchTheme(ctx, id, func(cur theme.State) theme.Action {
		dark := cur.SystemDark
		if systemDark != nil {
			dark = *systemDark
		}
		return theme.Set{Theme: t, SystemDark: dark}
	})
}

func (s *Service) ToggleTheme(ctx context.Context, id string) (theme.State, error) {
	return s.dispatchTheme(ctx, id, func(theme.State) theme.Action { return theme.Toggle{} })
}

func (s *Service) SetSystemPreference(ctx context.Context, id string, dark bool) (theme.State, error) {
	return s.dispatchTheme(ctx, id, func(theme.State) theme.Action { return theme.SystemPreference{Dark: dark} })
}

func (s *Service) dispatchTheme(ctx context.Context, id string, action func(theme.State) theme.Action) (theme.State, error) {
	sess, err := s.update(ctx, id, func(sess *sessionrepo.Session) error {
		sess.Theme = theme.Reduce(sess.Theme, action(sess.Theme))
		return nil
	})
	if err != nil {
		return theme.State{}, err
	}
	return sess.Theme, nil
}

func (s *Service) update(ctx context.Context, id string, fn func(*sessionrepo.Session) error) (*sessionrepo.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	return s.repo.Update(ctx, id, fn)
}
