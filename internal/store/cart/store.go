// Package cart maintains the authenticated retailer's pending purchase
// list. Every mutation persists the full list under cart:<userId>; when the
// active user changes the store reloads against the new key, so carts never
// leak between accounts.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"agriconnect/internal/alert"
	"agriconnect/internal/domain"
	"agriconnect/internal/kv"
	"agriconnect/internal/session"
)

func cartKey(userID string) string { return "cart:" + userID }

type RejectReason string

const (
	ReasonUnauthenticated  RejectReason = "unauthenticated"
	ReasonWrongRole        RejectReason = "wrong_role"
	ReasonCapacityExceeded RejectReason = "capacity_exceeded"
)

// Rejection is a refused mutation. It is a result, not an error: the caller
// decides how to surface it.
type Rejection struct {
	Reason  RejectReason `json:"reason"`
	Message string       `json:"message"`
}

// Store holds the current user's cart lines.
type Store struct {
	mu      sync.Mutex
	kv      kv.Store
	session session.Accessor
	alerts  alert.Sink

	userID string
	items  []domain.CartLine
}

func New(store kv.Store, sess session.Accessor, alerts alert.Sink) *Store {
	return &Store{kv: store, session: sess, alerts: alerts}
}

// AddItem inserts line into the cart, or raises the quantity of an existing
// line with the same product id. A line whose combined quantity would exceed
// MaxAvailable is rejected whole, leaving the previous quantity in place.
// Only an authenticated retailer may add items.
func (s *Store) AddItem(ctx context.Context, line domain.CartLine) (*Rejection, error) {
	user, ok := s.session.Current()
	if !ok {
		s.alerts.Notify(alert.Alert{
			Title:    "Authentication required",
			Message:  "Please log in to add items to your cart",
			Severity: alert.SeverityError,
		})
		return &Rejection{Reason: ReasonUnauthenticated, Message: "log in to add items to your cart"}, nil
	}
	if user.Role != domain.RoleRetailer {
		s.alerts.Notify(alert.Alert{
			Title:    "Action not allowed",
			Message:  "Only retailers can add items to cart",
			Severity: alert.SeverityError,
		})
		return &Rejection{Reason: ReasonWrongRole, Message: "only retailers can add items to cart"}, nil
	}

	if line.Quantity <= 0 {
		line.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx, user.ID); err != nil {
		return nil, err
	}

	for i, existing := range s.items {
		if existing.ID != line.ID {
			continue
		}
		newQty := existing.Quantity + line.Quantity
		if newQty > existing.MaxAvailable {
			s.alerts.Notify(alert.Alert{
				Title:    "Maximum quantity reached",
				Message:  fmt.Sprintf("Only %d units available", existing.MaxAvailable),
				Severity: alert.SeverityError,
			})
			return &Rejection{
				Reason:  ReasonCapacityExceeded,
				Message: fmt.Sprintf("only %d units of %s available", existing.MaxAvailable, existing.Name),
			}, nil
		}
		s.items[i].Quantity = newQty
		if err := s.persist(ctx); err != nil {
			return nil, err
		}
		s.alerts.Notify(alert.Alert{
			Title:    "Cart updated",
			Message:  fmt.Sprintf("%s quantity updated to %d", existing.Name, newQty),
			Severity: alert.SeverityInfo,
		})
		return nil, nil
	}

	if line.MaxAvailable > 0 && line.Quantity > line.MaxAvailable {
		s.alerts.Notify(alert.Alert{
			Title:    "Maximum quantity reached",
			Message:  fmt.Sprintf("Only %d units available", line.MaxAvailable),
			Severity: alert.SeverityError,
		})
		return &Rejection{
			Reason:  ReasonCapacityExceeded,
			Message: fmt.Sprintf("only %d units of %s available", line.MaxAvailable, line.Name),
		}, nil
	}
	s.items = append(s.items, line)
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	s.alerts.Notify(alert.Alert{
		Title:    "Item added to cart",
		Message:  fmt.Sprintf("%s added to your cart", line.Name),
		Severity: alert.SeverityInfo,
	})
	return nil, nil
}

// UpdateQuantity sets the quantity of the line with the given product id.
// A quantity of zero or less removes the line; one above MaxAvailable is
// clamped down to it with a capacity alert. A missing id is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	user, ok := s.session.Current()
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx, user.ID); err != nil {
		return err
	}

	idx := -1
	for i, item := range s.items {
		if item.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	if quantity <= 0 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
		return s.persist(ctx)
	}

	if quantity > s.items[idx].MaxAvailable {
		quantity = s.items[idx].MaxAvailable
		s.alerts.Notify(alert.Alert{
			Title:    "Maximum quantity reached",
			Message:  fmt.Sprintf("Only %d units available", quantity),
			Severity: alert.SeverityError,
		})
	}
	s.items[idx].Quantity = quantity
	return s.persist(ctx)
}

// RemoveItem deletes the line with the given product id, if present.
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	user, ok := s.session.Current()
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx, user.ID); err != nil {
		return err
	}

	for i, item := range s.items {
		if item.ID != id {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		if err := s.persist(ctx); err != nil {
			return err
		}
		s.alerts.Notify(alert.Alert{
			Title:    "Item removed",
			Message:  fmt.Sprintf("%s removed from your cart", item.Name),
			Severity: alert.SeverityInfo,
		})
		return nil
	}
	return nil
}

// Clear empties the cart and purges the persisted record.
func (s *Store) Clear(ctx context.Context) error {
	user, ok := s.session.Current()
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = user.ID
	s.items = nil
	if err := s.kv.Delete(ctx, cartKey(user.ID)); err != nil {
		return fmt.Errorf("purge cart: %w", err)
	}
	s.alerts.Notify(alert.Alert{
		Title:    "Cart cleared",
		Message:  "All items have been removed from your cart",
		Severity: alert.SeverityInfo,
	})
	return nil
}

// Items returns a copy of the current user's cart lines. Without a session
// the cart reads as empty.
func (s *Store) Items(ctx context.Context) ([]domain.CartLine, error) {
	user, ok := s.session.Current()
	if !ok {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx, user.ID); err != nil {
		return nil, err
	}
	out := make([]domain.CartLine, len(s.items))
	copy(out, s.items)
	return out, nil
}

// SubtotalCents is the sum of unit price times quantity over all lines.
func (s *Store) SubtotalCents(ctx context.Context) (int64, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, item := range items {
		total += item.TotalCents()
	}
	return total, nil
}

// ItemCount is the total unit count across all lines.
func (s *Store) ItemCount(ctx context.Context) (int, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count, nil
}

// ensureLoaded makes the in-memory lines match the given user, reloading
// from storage on a user switch. Caller holds s.mu.
func (s *Store) ensureLoaded(ctx context.Context, userID string) error {
	if s.userID == userID {
		return nil
	}
	raw, err := s.kv.Get(ctx, cartKey(userID))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			s.userID = userID
			s.items = nil
			return nil
		}
		return fmt.Errorf("load cart: %w", err)
	}
	var items []domain.CartLine
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("decode cart: %w", err)
	}
	s.userID = userID
	s.items = items
	return nil
}

// persist writes the full list under the current user's key. Caller holds
// s.mu and has ensured a user is loaded.
func (s *Store) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.items)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, cartKey(s.userID), raw); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
