package market

import (
	"context"

	"skillora/internal/model"
)

// selfSenderID marks messages sent while nobody is logged in.
const selfSenderID = "me"

// GetContacts returns the messaging directory.
func (s *Service) GetContacts(ctx context.Context) ([]model.ChatContact, error) {
	if err := s.wait(ctx, delayGetContacts); err != nil {
		return nil, err
	}
	return s.contacts.load(ctx)
}

// GetMessages returns the thread with contactID in send order, or an empty
// slice if there is none.
func (s *Service) GetMessages(ctx context.Context, contactID string) ([]model.Message, error) {
	if err := s.wait(ctx, delayGetMessages); err != nil {
		return nil, err
	}

	threads, err := s.messages.load(ctx)
	if err != nil {
		return nil, err
	}
	if msgs, ok := threads[contactID]; ok && msgs != nil {
		return msgs, nil
	}
	return []model.Message{}, nil
}

// SendMessage appends a message from the session's user to the thread with
// contactID and updates the contact's last-message snippet.
func (s *Service) SendMessage(ctx context.Context, sess *Session, contactID, text string) (*model.Message, error) {
	if err := s.wait(ctx, delaySendMessage); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	threads, err := s.messages.load(ctx)
	if err != nil {
		return nil, err
	}
	if threads == nil {
		threads = make(map[string][]model.Message)
	}

	senderID := selfSenderID
	if sess != nil {
		senderID = sess.UserID()
	}

	msg := model.Message{
		ID:        s.idgen.New(),
		SenderID:  senderID,
		Text:      text,
		Timestamp: justNow,
		IsMe:      true,
	}
	threads[contactID] = append(threads[contactID], msg)
	if err := s.messages.save(ctx, threads); err != nil {
		return nil, err
	}

	contacts, err := s.contacts.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range contacts {
		if contacts[i].ID == contactID {
			contacts[i].LastMessage = text
			contacts[i].LastMessageTime = justNow
		}
	}
	if err := s.contacts.save(ctx, contacts); err != nil {
		return nil, err
	}

	s.logger.Debug("message sent", "contact_id", contactID, "message_id", msg.ID)
	return &msg, nil
}
