package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/insurancepro-api/internal/domain"
)

type NotificationStore interface {
	ListByScope(ctx context.Context, scope domain.Scope) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, notificationID string) (*domain.Notification, error)
	MarkAllAsRead(ctx context.Context, scope domain.Scope) (int, error)
}

// Inbox is a scope's notifications, newest first, with the unread tally.
type Inbox struct {
	Notifications []domain.Notification
	UnreadCount   int
}

type Service interface {
	List(ctx context.Context, scope domain.Scope) (*Inbox, error)
	MarkAsRead(ctx context.Context, notificationID string) (*domain.Notification, error)
	MarkAllAsRead(ctx context.Context, scope domain.Scope) (int, error)
}

type service struct {
	repo NotificationStore
}

func NewService(repo NotificationStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, scope domain.Scope) (*Inbox, error) {
	notifications, err := s.repo.ListByScope(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	unread := 0
	for _, n := range notifications {
		if n.Status == domain.NotificationUnread {
			unread++
		}
	}
	return &Inbox{Notifications: notifications, UnreadCount: unread}, nil
}

func (s *service) MarkAsRead(ctx context.Context, notificationID string) (*domain.Notification, error) {
	if strings.TrimSpace(notificationID) == "" {
		return nil, fmt.Errorf("notification id is required: %w", domain.ErrBadRequest)
	}
	return s.repo.MarkAsRead(ctx, notificationID)
}

func (s *service) MarkAllAsRead(ctx context.Context, scope domain.Scope) (int, error) {
	return s.repo.MarkAllAsRead(ctx, scope)
}
