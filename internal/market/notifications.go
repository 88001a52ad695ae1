package market

import (
	"context"

	"skillora/internal/model"
)

// GetNotifications returns the notification feed, newest first.
func (s *Service) GetNotifications(ctx context.Context) ([]model.Notification, error) {
	return s.notifications.load(ctx)
}

// MarkNotificationsRead marks every notification read and returns how many
// were unread.
func (s *Service) MarkNotificationsRead(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifs, err := s.notifications.load(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range notifs {
		if !notifs[i].IsRead {
			notifs[i].IsRead = true
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	if err := s.notifications.save(ctx, notifs); err != nil {
		return 0, err
	}
	return changed, nil
}
