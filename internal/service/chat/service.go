package chat

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mnemolabs/mnemo/internal/model/chat"
)

var (
	ErrSessionRequired = errors.New("session id is required")
	ErrChatNotFound    = errors.New("chat not found")
)

// Service holds every chat in memory behind a single lock.
type Service struct {
	mu       sync.RWMutex
	chats    map[string]chat.Chat
	messages map[string][]chat.Message
}

// NewService bootstraps an empty in-memory chat store.
func NewService() *Service {
	return &Service{
		chats:    make(map[string]chat.Chat),
		messages: make(map[string][]chat.Message),
	}
}

// CreateChat provisions a chat bound to the caller's session key. Session
// ids are a correlation key, not a unique one: repeated calls yield distinct
// chats.
func (s *Service) CreateChat(_ context.Context, sessionID string) (chat.Chat, error) {
	if sessionID == "" {
		return chat.Chat{}, ErrSessionRequired
	}

	now := time.Now().UTC()
	record := chat.Chat{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.chats[record.ID] = record
	s.messages[record.ID] = make([]chat.Message, 0, 16)
	s.mu.Unlock()

	return record, nil
}

// GetChat retrieves a chat by identifier.
func (s *Service) GetChat(_ context.Context, chatID string) (chat.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.chats[chatID]
	if !ok {
		return chat.Chat{}, ErrChatNotFound
	}
	return record, nil
}

// ListChats returns every chat, oldest first.
func (s *Service) ListChats(_ context.Context) ([]chat.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]chat.Chat, 0, len(s.chats))
	for _, record := range s.chats {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// AppendMessages adds messages to a chat's history and bumps its update
// timestamp.
func (s *Service) AppendMessages(_ context.Context, chatID string, messages []chat.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.chats[chatID]
	if !ok {
		return ErrChatNotFound
	}

	s.messages[chatID] = append(s.messages[chatID], messages...)
	record.UpdatedAt = s.bumped(record.UpdatedAt)
	s.chats[chatID] = record
	return nil
}

// GetMessages returns the stored messages of a chat in append order.
func (s *Service) GetMessages(_ context.Context, chatID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[chatID]
	if !ok {
		return nil, ErrChatNotFound
	}

	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}

// SetSummary replaces a chat's summary.
func (s *Service) SetSummary(_ context.Context, chatID, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.chats[chatID]
	if !ok {
		return ErrChatNotFound
	}

	record.Summary = summary
	record.UpdatedAt = s.bumped(record.UpdatedAt)
	s.chats[chatID] = record
	return nil
}

// bumped keeps UpdatedAt monotonically non-decreasing even when the clock
// has not advanced between writes.
func (s *Service) bumped(previous time.Time) time.Time {
	now := time.Now().UTC()
	if now.Before(previous) {
		return previous
	}
	return now
}
