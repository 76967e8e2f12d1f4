package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/notify"
	"github.com/lovemypet/backend/internal/storage"
)

const autoReplyText = "Thanks for the message! I'll take a look."

// InboxEntry is one thread as its participant sees it in the inbox.
type InboxEntry struct {
	Thread      models.ChatThread   `json:"thread"`
	Other       *models.User        `json:"other,omitempty"`
	LastMessage *models.ChatMessage `json:"last_message,omitempty"`
}

// ChatService runs private conversations between members. When replyDelay is
// positive, every message gets a canned reply from the other participant
// after that delay.
type ChatService struct {
	threads    storage.Repository[models.ChatThread]
	messages   storage.Repository[models.ChatMessage]
	users      storage.Repository[models.User]
	broker     notify.Broker
	replyDelay time.Duration
	now        func() time.Time

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewChatService(stores *storage.Stores, broker notify.Broker, replyDelay time.Duration) *ChatService {
	return &ChatService{
		threads:    stores.ChatThreads,
		messages:   stores.ChatMessages,
		users:      stores.Users,
		broker:     broker,
		replyDelay: replyDelay,
		now:        time.Now,
		done:       make(chan struct{}),
	}
}

// Close cancels pending auto-replies and waits for running ones.
func (s *ChatService) Close() {
	s.closeOnce.Do(func() { close(s.done) })
	s.wg.Wait()
}

// threadID is derived from the participant pair so two concurrent starts
// between the same members collide on create instead of opening two threads.
func threadID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return "chat-" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(a+"|"+b)).String()
}

// Start returns the thread between the actor and participantID, opening one
// when none exists yet.
func (s *ChatService) Start(ctx context.Context, actor Actor, participantID string) (models.ChatThread, error) {
	if participantID == "" || participantID == actor.ID {
		return models.ChatThread{}, validationError("choose another member to chat with")
	}
	if _, err := s.users.Get(ctx, participantID); err != nil {
		return models.ChatThread{}, mapNotFound(err, ErrUserNotFound)
	}

	existing, err := storage.FindOne(ctx, s.threads, func(t models.ChatThread) bool {
		return t.HasParticipant(actor.ID) && t.HasParticipant(participantID)
	})
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.ChatThread{}, err
	}

	id := threadID(actor.ID, participantID)
	thread, err := s.threads.Create(ctx, models.ChatThread{
		ID:             id,
		ParticipantIDs: []string{actor.ID, participantID},
		CreatedAt:      s.now().UTC(),
	})
	if errors.Is(err, storage.ErrConflict) {
		return s.threads.Get(ctx, id)
	}
	if err != nil {
		return models.ChatThread{}, fmt.Errorf("failed to start chat: %w", err)
	}
	slog.Info("chat started", "chat_id", thread.ID, "user_id", actor.ID, "participant_id", participantID)
	return thread, nil
}

// thread loads a thread the actor takes part in.
func (s *ChatService) thread(ctx context.Context, actor Actor, chatID string) (models.ChatThread, error) {
	t, err := s.threads.Get(ctx, chatID)
	if err != nil {
		return models.ChatThread{}, mapNotFound(err, ErrChatNotFound)
	}
	if !t.HasParticipant(actor.ID) {
		return models.ChatThread{}, ErrForbidden
	}
	return t, nil
}

func (s *ChatService) threadMessages(ctx context.Context, chatID string) ([]models.ChatMessage, error) {
	msgs, err := storage.Filter(ctx, s.messages, func(m models.ChatMessage) bool { return m.ChatID == chatID })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Timestamp.Before(msgs[j].Timestamp) })
	return msgs, nil
}

// Messages returns a thread's messages oldest first.
func (s *ChatService) Messages(ctx context.Context, actor Actor, chatID string) ([]models.ChatMessage, error) {
	if _, err := s.thread(ctx, actor, chatID); err != nil {
		return nil, err
	}
	return s.threadMessages(ctx, chatID)
}

// Inbox lists the actor's threads, most recent conversation first. Threads
// without messages go last.
func (s *ChatService) Inbox(ctx context.Context, actor Actor) ([]InboxEntry, error) {
	threads, err := storage.Filter(ctx, s.threads, func(t models.ChatThread) bool { return t.HasParticipant(actor.ID) })
	if err != nil {
		return nil, err
	}
	last := make(map[string]models.ChatMessage)
	msgs, err := s.messages.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range msgs {
		if cur, ok := last[m.ChatID]; !ok || m.Timestamp.After(cur.Timestamp) {
			last[m.ChatID] = m
		}
	}

	entries := make([]InboxEntry, 0, len(threads))
	for _, t := range threads {
		entry := InboxEntry{Thread: t}
		if other, err := s.users.Get(ctx, t.Other(actor.ID)); err == nil {
			entry.Other = &other
		}
		if m, ok := last[t.ID]; ok {
			entry.LastMessage = &m
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].LastMessage, entries[j].LastMessage
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.Timestamp.After(b.Timestamp)
	})
	return entries, nil
}

// Send posts text to a thread and notifies the other participant.
func (s *ChatService) Send(ctx context.Context, actor Actor, chatID, text string) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, validationError("message text is required")
	}
	t, err := s.thread(ctx, actor, chatID)
	if err != nil {
		return models.ChatMessage{}, err
	}
	msg, err := s.post(ctx, t.ID, actor.ID, text)
	if err != nil {
		return models.ChatMessage{}, err
	}
	if other := t.Other(actor.ID); other != "" {
		s.notify(ctx, msg, other)
		s.scheduleReply(t.ID, other, actor.ID)
	}
	return msg, nil
}

func (s *ChatService) post(ctx context.Context, chatID, senderID, text string) (models.ChatMessage, error) {
	msg, err := s.messages.Create(ctx, models.ChatMessage{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		SenderID:  senderID,
		Text:      text,
		Timestamp: s.now().UTC(),
	})
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("failed to send message: %w", err)
	}
	return msg, nil
}

func (s *ChatService) notify(ctx context.Context, msg models.ChatMessage, recipientID string) {
	n := notify.Notification{
		Type:        notify.TypeChat,
		Title:       "New message",
		Message:     msg.Text,
		Link:        "/chat/" + msg.ChatID,
		RecipientID: recipientID,
	}
	if sender, err := s.users.Get(ctx, msg.SenderID); err == nil {
		n.Title = "New message from " + sender.DisplayName
		n.ImageURL = sender.ProfilePhotoURL
	}
	publish(ctx, s.broker, n)
}

// scheduleReply answers on behalf of from after replyDelay unless the
// service is closed first.
func (s *ChatService) scheduleReply(chatID, from, to string) {
	if s.replyDelay <= 0 {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		timer := time.NewTimer(s.replyDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-s.done:
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		reply, err := s.post(ctx, chatID, from, autoReplyText)
		if err != nil {
			slog.Warn("auto-reply failed", "chat_id", chatID, "error", err)
			return
		}
		s.notify(ctx, reply, to)
	}()
}
