// Package notification holds the alerts shown to the current user and
// tracks their read state. The list is kept newest-first and persisted in
// full under notifications:<userId> on every mutation. A user with no
// persisted record starts from a fixed demonstration seed instead of an
// empty list.
package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"agriconnect/internal/alert"
	"agriconnect/internal/domain"
	"agriconnect/internal/kv"
	"agriconnect/internal/session"
)

func notificationsKey(userID string) string { return "notifications:" + userID }

// Store holds the current user's notifications.
type Store struct {
	mu      sync.Mutex
	kv      kv.Store
	session session.Accessor
	alerts  alert.Sink

	userID string
	items  []domain.Notification
	loaded bool
}

func New(store kv.Store, sess session.Accessor, alerts alert.Sink) *Store {
	return &Store{kv: store, session: sess, alerts: alerts}
}

// AddInput is the caller-supplied part of a new notification; id, date
// label and read state are synthesized.
type AddInput struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Type        domain.NotificationType `json:"type"`
	HasVideo    bool                    `json:"hasVideo"`
	VideoURL    string                  `json:"videoUrl"`
}

// Add prepends a new unread notification and returns it.
func (s *Store) Add(ctx context.Context, in AddInput) (domain.Notification, error) {
	user, ok := s.session.Current()
	if !ok {
		return domain.Notification{}, session.ErrNoSession
	}
	if !domain.ValidNotificationType(in.Type) {
		return domain.Notification{}, fmt.Errorf("unknown notification type %q", in.Type)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx, user.ID); err != nil {
		return domain.Notification{}, err
	}

	n := domain.Notification{
		ID:          "notification-" + uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Date:        "Just now",
		IsRead:      false,
		Type:        in.Type,
		HasVideo:    in.HasVideo,
		VideoURL:    in.VideoURL,
	}
	s.items = append([]domain.Notification{n}, s.items...)
	if err := s.persist(ctx); err != nil {
		return domain.Notification{}, err
	}
	s.alerts.Notify(alert.Alert{
		Title:    "New notification",
		Message:  in.Title,
		Severity: alert.SeverityInfo,
	})
	return n, nil
}

// MarkAsRead flags the matching notification as read. Already-read or
// missing ids are silent no-ops.
func (s *Store) MarkAsRead(ctx context.Context, id string) error {
	user, ok := s.session.Current()
	if !ok {
		return session.ErrNoSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx, user.ID); err != nil {
		return err
	}

	for i, n := range s.items {
		if n.ID != id {
			continue
		}
		if n.IsRead {
			return nil
		}
		s.items[i].IsRead = true
		return s.persist(ctx)
	}
	return nil
}

// MarkAllAsRead flags every notification as read. Idempotent.
func (s *Store) MarkAllAsRead(ctx context.Context) error {
	user, ok := s.session.Current()
	if !ok {
		return session.ErrNoSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx, user.ID); err != nil {
		return err
	}

	for i := range s.items {
		s.items[i].IsRead = true
	}
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.alerts.Notify(alert.Alert{
		Title:    "All notifications marked as read",
		Message:  "All notifications have been marked as read",
		Severity: alert.SeverityInfo,
	})
	return nil
}

// Delete removes the matching notification. Missing ids are silent no-ops.
func (s *Store) Delete(ctx context.Context, id string) error {
	user, ok := s.session.Current()
	if !ok {
		return session.ErrNoSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx, user.ID); err != nil {
		return err
	}

	for i, n := range s.items {
		if n.ID != id {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		if err := s.persist(ctx); err != nil {
			return err
		}
		s.alerts.Notify(alert.Alert{
			Title:    "Notification deleted",
			Message:  "The notification has been removed",
			Severity: alert.SeverityInfo,
		})
		return nil
	}
	return nil
}

// ByType returns the notifications of the given category, or all of them
// for "all". The returned slice is a copy.
func (s *Store) ByType(ctx context.Context, t string) ([]domain.Notification, error) {
	user, ok := s.session.Current()
	if !ok {
		return nil, session.ErrNoSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx, user.ID); err != nil {
		return nil, err
	}

	if t == "all" || t == "" {
		out := make([]domain.Notification, len(s.items))
		copy(out, s.items)
		return out, nil
	}
	var out []domain.Notification
	for _, n := range s.items {
		if n.Type == domain.NotificationType(t) {
			out = append(out, n)
		}
	}
	return out, nil
}

// All returns every notification, newest first.
func (s *Store) All(ctx context.Context) ([]domain.Notification, error) {
	return s.ByType(ctx, "all")
}

// UnreadCount is the number of unread notifications.
func (s *Store) UnreadCount(ctx context.Context) (int, error) {
	items, err := s.All(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range items {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

// ensureLoaded makes the in-memory list match the given user, seeding the
// demonstration entries when no record exists. Caller holds s.mu.
func (s *Store) ensureLoaded(ctx context.Context, userID string) error {
	if s.loaded && s.userID == userID {
		return nil
	}
	raw, err := s.kv.Get(ctx, notificationsKey(userID))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			s.userID = userID
			s.items = seedNotifications()
			s.loaded = true
			return nil
		}
		return fmt.Errorf("load notifications: %w", err)
	}
	var items []domain.Notification
	if err := json.Unmarshal(raw, &items); err != nil {
		// a corrupt record falls back to the seed, like the client did
		s.userID = userID
		s.items = seedNotifications()
		s.loaded = true
		return nil
	}
	s.userID = userID
	s.items = items
	s.loaded = true
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.items)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, notificationsKey(s.userID), raw); err != nil {
		return fmt.Errorf("persist notifications: %w", err)
	}
	return nil
}
