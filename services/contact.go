package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

const notifyTimeout = 15 * time.Second

type contactStore interface {
	Create(ctx context.Context, message *models.ContactMessage) error
}

// SubmitResult is the outcome of an accepted submission. Discarded means the
// honeypot was filled and nothing was stored.
type SubmitResult struct {
	Message   *models.ContactMessage
	Discarded bool
}

// ContactService runs the public contact form: honeypot, per-client cooldown
// reservation, validation and insert, then an out-of-band notification. A
// submission that is not stored gives its reservation back.
type ContactService struct {
	messages contactStore
	cooldown CooldownStore
	notifier Notifier
	logger   zerolog.Logger
	now      func() time.Time

	pending sync.WaitGroup
}

func NewContactService(store contactStore, cooldown CooldownStore, notifier Notifier) *ContactService {
	return &ContactService{
		messages: store,
		cooldown: cooldown,
		notifier: notifier,
		logger:   log.With().Str("service", "contact").Logger(),
		now:      time.Now,
	}
}

// WithClock replaces the time source.
func (s *ContactService) WithClock(now func() time.Time) *ContactService {
	s.now = now
	return s
}

// Submit processes one form post from client (the caller's address).
func (s *ContactService) Submit(ctx context.Context, client string, in models.ContactInput) (SubmitResult, error) {
	if in.IsBot() {
		s.logger.Info().Str("client", client).Msg("honeypot filled, discarding contact submission")
		return SubmitResult{Discarded: true}, nil
	}

	now := s.now()
	reserved := false
	remaining, err := s.cooldown.Reserve(ctx, client, now)
	switch {
	case err != nil:
		// an unreachable cooldown store must not take the form down
		s.logger.Warn().Err(err).Msg("cooldown reservation failed, allowing submission")
	case remaining > 0:
		return SubmitResult{}, errs.NewCooldownError(remaining)
	default:
		reserved = true
	}

	msg, err := s.store(ctx, in)
	if err != nil {
		if reserved {
			if releaseErr := s.cooldown.Release(ctx, client, now); releaseErr != nil {
				s.logger.Warn().Err(releaseErr).Msg("failed to release cooldown reservation")
			}
		}
		return SubmitResult{}, err
	}

	s.notify(msg)
	return SubmitResult{Message: msg}, nil
}

// store validates and inserts one submission.
func (s *ContactService) store(ctx context.Context, in models.ContactInput) (*models.ContactMessage, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	msg := in.ToMessage()
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, errs.NewDatabaseError("create", "contact message", err)
	}
	return msg, nil
}

func (s *ContactService) notify(msg *models.ContactMessage) {
	if s.notifier == nil {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.Notify(ctx, msg); err != nil {
			s.logger.Error().Err(err).Str("messageId", msg.ID.String()).Msg("contact notification failed")
		}
	}()
}

// Wait blocks until in-flight notifications finish.
func (s *ContactService) Wait() {
	s.pending.Wait()
}
