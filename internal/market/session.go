package market

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"skillora/internal/model"
)

// ErrInvalidRole is returned by Login for roles other than freelancer and client.
var ErrInvalidRole = errors.New("invalid role")

const (
	unknownID           = "unknown"
	welcomeID           = "notif_welcome"
	defaultBio          = "I am passionate about creating great work and collaborating with amazing people on Skillora."
	defaultLocation     = "Remote, India"
	defaultHourlyRate   = "Rs 1000/hr"
	avatarBaseURL       = "https://i.pravatar.cc/150"
	emailDomain         = "@skillora.com"
	freelancerSessionID = "freelancer_current"
	clientSessionID     = "client_current"
)

// Session identifies the user an operation acts for. It is a snapshot of the
// persisted user taken when the session was built.
//
// A nil *Session is the anonymous actor; its accessors return the same
// placeholders the demo uses when nobody is logged in.
type Session struct {
	user model.User
}

// NewSession returns a session for u, or nil if u is nil.
func NewSession(u *model.User) *Session {
	if u == nil {
		return nil
	}
	return &Session{user: *u}
}

// UserID returns the acting user's id, or "unknown" for the anonymous actor.
func (s *Session) UserID() string {
	if s == nil {
		return unknownID
	}
	return s.user.ID
}

// User returns a copy of the session's user, or nil for the anonymous actor.
func (s *Session) User() *model.User {
	if s == nil {
		return nil
	}
	u := s.user
	return &u
}

// Login returns the persisted user when its role matches; otherwise it
// creates and persists a new user for role and name and posts a welcome
// notification.
func (s *Service) Login(ctx context.Context, role model.Role, name string) (*model.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.user.load(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Role == role {
		s.logger.Debug("session reused", "user_id", existing.ID)
		return existing, nil
	}

	user := newUser(role, name)
	if err := s.user.save(ctx, user); err != nil {
		return nil, err
	}

	if err := s.notify(ctx, model.Notification{
		ID:     welcomeID,
		Text:   fmt.Sprintf("Welcome to Skillora, %s! Your account is ready.", name),
		Time:   justNow,
		IsRead: false,
		Type:   model.NotificationInfo,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID, "role", string(role))
	return user, nil
}

// newUser builds a fresh user with profile fields derived from role and name.
func newUser(role model.Role, name string) *model.User {
	u := &model.User{
		Name:     name,
		Email:    replaceSpace(strings.ToLower(name), ".") + emailDomain,
		Role:     role,
		Avatar:   avatarBaseURL + "?u=" + replaceSpace(name, ""),
		Bio:      defaultBio,
		Location: defaultLocation,
	}
	if role == model.RoleFreelancer {
		u.ID = freelancerSessionID
		u.Headline = "Professional Freelancer"
		u.HourlyRate = defaultHourlyRate
		u.Skills = []string{"React", "Design", "Communication"}
	} else {
		u.ID = clientSessionID
		u.Headline = "Hiring Manager"
		u.Skills = []string{}
	}
	return u
}

// replaceSpace replaces every whitespace rune in s with repl.
func replaceSpace(s, repl string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CurrentUser returns the persisted user, or nil if nobody is logged in.
func (s *Service) CurrentUser(ctx context.Context) (*model.User, error) {
	return s.user.load(ctx)
}

// Session returns a session for the persisted user, or nil if nobody is logged in.
func (s *Service) Session(ctx context.Context) (*Session, error) {
	u, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return NewSession(u), nil
}

// UpdateUser merges update into the persisted user and returns the result.
// It returns nil if nobody is logged in or sess belongs to a different user.
func (s *Service) UpdateUser(ctx context.Context, sess *Session, update model.ProfileUpdate) (*model.User, error) {
	if err := s.wait(ctx, delayUpdateUser); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.user.load(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil || sess == nil || current.ID != sess.UserID() {
		return nil, nil
	}

	update.Apply(current)
	if err := s.user.save(ctx, current); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", current.ID)
	return current, nil
}

// Logout removes the persisted user. Every other collection survives.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.user.remove(ctx); err != nil {
		return err
	}
	s.logger.Info("user logged out")
	return nil
}

// ResetDatabase clears all persisted state and writes the seed documents back.
func (s *Service) ResetDatabase(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing store: %w", err)
	}
	if err := s.jobs.save(ctx, SeedJobs()); err != nil {
		return err
	}
	if err := s.contacts.save(ctx, SeedContacts()); err != nil {
		return err
	}
	if err := s.messages.save(ctx, SeedMessages()); err != nil {
		return err
	}

	s.logger.Info("database reset")
	return nil
}
