// Package chat maintains the support chat transcript and answers each user
// message with a canned reply chosen by an ordered rule list. The
// transcript persists under a single global key, not per user; that
// mirrors the behavior this service replaces.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"agriconnect/internal/domain"
	"agriconnect/internal/kv"
)

// DefaultKey is the storage key for the global transcript.
const DefaultKey = "chat:messages"

const (
	welcomeText = "Hello! I'm your AgriConnect assistant. I can tell you about our platform, its features, and how it works. How can I help you today?"
	apologyText = "I'm sorry, I'm having trouble connecting right now. Please try again later."
)

// Store holds the transcript, the open/busy flags and the pending reply
// machinery. Replies are appended after an artificial delay on a goroutine
// guarded by the store's lifecycle context, so nothing writes after Close.
type Store struct {
	mu       sync.Mutex
	kv       kv.Store
	key      string
	delay    time.Duration
	respond  func(string) string
	logger   *log.Logger
	messages []domain.ChatMessage
	busy     bool
	open     bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(store kv.Store, key string, delay time.Duration, logger *log.Logger) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	return &Store{
		kv:      store,
		key:     key,
		delay:   delay,
		respond: FindBestResponse,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Restore loads the persisted transcript, seeding a welcome message when
// none exists.
func (s *Store) Restore(ctx context.Context) error {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			return fmt.Errorf("load transcript: %w", err)
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.messages = []domain.ChatMessage{{
			ID:        "welcome-msg",
			Role:      domain.ChatRoleAssistant,
			Content:   welcomeText,
			Timestamp: time.Now().UTC(),
		}}
		return s.persist(ctx)
	}

	var messages []domain.ChatMessage
	if err := json.Unmarshal(raw, &messages); err != nil {
		return fmt.Errorf("decode transcript: %w", err)
	}
	s.mu.Lock()
	s.messages = messages
	s.mu.Unlock()
	return nil
}

// AddMessage appends the user message synchronously, marks the store busy
// and schedules the assistant reply after the configured delay. The reply
// never fails hard: a panicking responder is replaced with a fixed apology
// and the busy flag clears either way.
func (s *Store) AddMessage(ctx context.Context, content string) (domain.ChatMessage, error) {
	msg := domain.ChatMessage{
		ID:        "user-" + uuid.NewString(),
		Role:      domain.ChatRoleUser,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}

	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.busy = true
	if err := s.persist(ctx); err != nil {
		s.busy = false
		s.mu.Unlock()
		return domain.ChatMessage{}, err
	}
	s.mu.Unlock()

	s.wg.Add(1)
	go s.reply(content)
	return msg, nil
}

func (s *Store) reply(content string) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-s.ctx.Done():
			return
		case <-timer.C:
		}
	} else if s.ctx.Err() != nil {
		return
	}

	text := s.safeRespond(content)
	msg := domain.ChatMessage{
		ID:        "assistant-" + uuid.NewString(),
		Role:      domain.ChatRoleAssistant,
		Content:   text,
		Timestamp: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx.Err() != nil {
		return
	}
	s.messages = append(s.messages, msg)
	if err := s.persist(s.ctx); err != nil {
		s.logger.Printf("persist chat reply: %v", err)
	}
}

// safeRespond absorbs responder panics into the apology reply.
func (s *Store) safeRespond(content string) (text string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("chat responder failed: %v", r)
			text = apologyText
		}
	}()
	return s.respond(content)
}

// Messages returns a copy of the transcript in append order.
func (s *Store) Messages() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Busy reports whether an assistant reply is pending.
func (s *Store) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Open reports the chat window visibility flag.
func (s *Store) Open() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Toggle flips the visibility flag and returns the new state. No other
// side effects.
func (s *Store) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
	return s.open
}

// Wait blocks until every scheduled reply has run to completion.
func (s *Store) Wait() {
	s.wg.Wait()
}

// Close stops pending replies and waits for their goroutines. Replies that
// have not fired yet are dropped.
func (s *Store) Close() {
	s.cancel()
	s.wg.Wait()
}

// persist writes the transcript under the store key. Caller holds s.mu.
func (s *Store) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.messages)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("persist transcript: %w", err)
	}
	return nil
}
