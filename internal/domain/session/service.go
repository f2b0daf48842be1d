package session

import (
	"context"
	"time"

	"themis/pkg/errors"
	"themis/pkg/logger"
)

// Service provides business logic for chat session state
type Service struct {
	repo Repository
	ttl  time.Duration
	log  *logger.Logger
}

// NewService creates a new session service
func NewService(repo Repository, ttl time.Duration) *Service {
	return &Service{
		repo: repo,
		ttl:  ttl,
		log:  logger.Get().With("component", "session_service"),
	}
}

// GetOrCreate returns the session for id, creating a fresh one when the id
// is empty or unknown.
func (s *Service) GetOrCreate(ctx context.Context, id string) (*Session, error) {
	if id != "" {
		sess, err := s.repo.Get(ctx, id)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, errors.ErrNotFound) {
			return nil, errors.Wrap(err, "failed to load session")
		}
	}

	sess := NewSession()
	if err := s.repo.Save(ctx, sess, s.ttl); err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	s.log.Infof("Created session %s", sess.ID)
	return sess, nil
}

// Save persists the session and refreshes its TTL
func (s *Service) Save(ctx context.Context, sess *Session) error {
	if sess == nil || sess.ID == "" {
		return errors.Wrap(errors.ErrInvalidInput, "session id is required")
	}
	return s.repo.Save(ctx, sess, s.ttl)
}
