package service

import (
	"context"
	"fmt"
	"strings"

	"senateur-site/internal/data"
)

// MessageStore is the slice of the generic store the message service uses.
type MessageStore interface {
	Create(ctx context.Context, table string, fields data.Row) (data.Row, error)
	Update(ctx context.Context, table string, id int64, fields data.Row) (data.Row, error)
	Delete(ctx context.Context, table string, id int64) (data.Row, error)
}

// MessageReader lists stored contact messages.
type MessageReader interface {
	GetContactMessages(ctx context.Context) ([]*data.ContactMessage, error)
	CountUnreadMessages(ctx context.Context) (int, error)
}

// MessageService handles the public contact form and the back-office inbox.
type MessageService struct {
	store  MessageStore
	reader MessageReader
}

// NewMessageService creates a new MessageService.
func NewMessageService(store MessageStore, reader MessageReader) *MessageService {
	return &MessageService{store: store, reader: reader}
}

// Submit stores a message from the public contact form.
func (s *MessageService) Submit(ctx context.Context, name, email, phone, subject, message string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)
	if name == "" || email == "" || message == "" {
		return fmt.Errorf("name, email and message are required")
	}

	fields := data.Row{
		"name":    name,
		"email":   email,
		"subject": strings.TrimSpace(subject),
		"message": message,
		"is_read": false,
	}
	if p := strings.TrimSpace(phone); p != "" {
		fields["phone"] = p
	}
	if _, err := s.store.Create(ctx, "contact_messages", fields); err != nil {
		return err
	}
	return nil
}

// Messages returns all messages, newest first.
func (s *MessageService) Messages(ctx context.Context) ([]*data.ContactMessage, error) {
	return s.reader.GetContactMessages(ctx)
}

// UnreadCount returns the number of unread messages, shown on the dashboard.
func (s *MessageService) UnreadCount(ctx context.Context) (int, error) {
	return s.reader.CountUnreadMessages(ctx)
}

// MarkRead flags a message as read.
func (s *MessageService) MarkRead(ctx context.Context, id int64) error {
	_, err := s.store.Update(ctx, "contact_messages", id, data.Row{"is_read": true})
	return err
}

// Delete removes a message.
func (s *MessageService) Delete(ctx context.Context, id int64) error {
	_, err := s.store.Delete(ctx, "contact_messages", id)
	return err
}
