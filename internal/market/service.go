package market

import (
	"context"
	"fmt"
	"sync"
	"time"

	"skillora/internal/model"
)

// Simulated round-trip times per operation.
const (
	delayUpdateUser       = 400 * time.Millisecond
	delayGetJobs          = 300 * time.Millisecond
	delayGetJob           = 200 * time.Millisecond
	delayGetMyJobs        = 300 * time.Millisecond
	delayPostJob          = 800 * time.Millisecond
	delaySubmitProposal   = 800 * time.Millisecond
	delayGetProposals     = 300 * time.Millisecond
	delayGetMyProposals   = 300 * time.Millisecond
	delayHire             = 1000 * time.Millisecond
	delayGetContract      = 200 * time.Millisecond
	delayCompleteContract = 400 * time.Millisecond
	delayGetContacts      = 300 * time.Millisecond
	delayGetMessages      = 200 * time.Millisecond
	delaySendMessage      = 200 * time.Millisecond
)

// justNow is the display time stamped on freshly created records.
const justNow = "Just now"

// Service is the local data service: the only sanctioned read/write path for
// every marketplace entity. It emulates a remote backend on top of a Store.
//
// Read-modify-write sequences are serialized by mu, so one Service may be
// shared by concurrent callers within a process. Separate processes on the
// same store do not coordinate.
type Service struct {
	store   Store
	logger  Logger
	clock   Clock
	idgen   IDGenerator
	rand    Randomizer
	latency Latency

	mu sync.Mutex

	user          document[*model.User]
	jobs          document[[]model.Job]
	proposals     document[[]model.Proposal]
	contracts     document[[]model.Contract]
	notifications document[[]model.Notification]
	contacts      document[[]model.ChatContact]
	messages      document[map[string][]model.Message]
}

// NewService creates a new Service with the provided dependencies.
func NewService(store Store, logger Logger, clock Clock, idgen IDGenerator, rnd Randomizer, latency Latency) *Service {
	return &Service{
		store:   store,
		logger:  logger,
		clock:   clock,
		idgen:   idgen,
		rand:    rnd,
		latency: latency,

		user:          newDocument(store, logger, KeyUser, func() *model.User { return nil }),
		jobs:          newDocument(store, logger, KeyJobs, SeedJobs),
		proposals:     newDocument(store, logger, KeyProposals, emptyOf[model.Proposal]()),
		contracts:     newDocument(store, logger, KeyContracts, emptyOf[model.Contract]()),
		notifications: newDocument(store, logger, KeyNotifications, emptyOf[model.Notification]()),
		contacts:      newDocument(store, logger, KeyContacts, SeedContacts),
		messages:      newDocument(store, logger, KeyMessages, SeedMessages),
	}
}

// wait applies the simulated latency for an operation.
func (s *Service) wait(ctx context.Context, d time.Duration) error {
	if err := s.latency.Wait(ctx, d); err != nil {
		return fmt.Errorf("waiting for simulated latency: %w", err)
	}
	return nil
}

// newID returns a fresh identifier with the given prefix.
func (s *Service) newID(prefix string) string {
	return prefix + s.idgen.New()
}

// notify prepends a notification to the feed. Callers must hold mu.
func (s *Service) notify(ctx context.Context, n model.Notification) error {
	notifs, err := s.notifications.load(ctx)
	if err != nil {
		return err
	}
	notifs = append([]model.Notification{n}, notifs...)
	return s.notifications.save(ctx, notifs)
}

// successNotice builds an unread success notification with a generated id.
func (s *Service) successNotice(text string) model.Notification {
	return model.Notification{
		ID:     s.idgen.New(),
		Text:   text,
		Time:   justNow,
		IsRead: false,
		Type:   model.NotificationSuccess,
	}
}
