package share

import (
	"context"
	"errors"

	"github.com/examflow/examflow/internal/config"
	"github.com/examflow/examflow/internal/localstore"
	"github.com/examflow/examflow/internal/quiz"
)

// ErrNotOwner is returned when someone other than the owner tries to publish
// a quiz.
var ErrNotOwner = errors.New("only the owner can share a quiz")

type Service interface {
	// Promote makes a quiz public and returns its share URL. Idempotent: a
	// public quiz keeps its URL.
	Promote(ctx context.Context, quizID, userID string) (string, error)
	// RegisterDiscovered remembers that a client opened this quiz through a
	// share link.
	RegisterDiscovered(ctx context.Context, clientID, quizID string) error
	// ListDiscovered resolves the client's registry: still-public quizzes not
	// owned by the caller. Vanished quizzes are pruned; transiently
	// unreachable ones are kept registered but omitted.
	ListDiscovered(ctx context.Context, clientID, userID string) ([]quiz.Quiz, error)
}

type service struct {
	quizzes  quiz.Service
	registry *localstore.Store
}

func NewService(quizzes quiz.Service, registry *localstore.Store) Service {
	return &service{quizzes: quizzes, registry: registry}
}

func (s *service) Promote(ctx context.Context, quizID, userID string) (string, error) {
	if userID == quiz.DemoUserID {
		return "", ErrNotOwner
	}
	q, err := s.quizzes.GetQuiz(ctx, quizID, userID)
	if err != nil {
		return "", err
	}
	if q.IsPublic && q.PublicURL != "" {
		return q.PublicURL, nil
	}
	if q.UserID != userID {
		return "", ErrNotOwner
	}

	q.IsPublic = true
	saved, err := s.quizzes.SaveQuiz(ctx, q, userID)
	if err != nil {
		return "", err
	}
	return saved.PublicURL, nil
}

func (s *service) RegisterDiscovered(ctx context.Context, clientID, quizID string) error {
	if clientID == "" || quizID == "" {
		return nil
	}
	return s.registry.AddSharedQuizID(clientID, quizID)
}

func (s *service) ListDiscovered(ctx context.Context, clientID, userID string) ([]quiz.Quiz, error) {
	log := config.WithContext(ctx)

	ids, err := s.registry.SharedQuizIDs(clientID)
	if err != nil {
		return nil, err
	}

	quizzes := make([]quiz.Quiz, 0, len(ids))
	for _, id := range ids {
		q, err := s.quizzes.GetQuiz(ctx, id, userID)
		switch {
		case errors.Is(err, quiz.ErrNotFound):
			// Gone for good; drop the registration.
			if perr := s.registry.RemoveSharedQuizID(clientID, id); perr != nil {
				log.WithError(perr).WithField("quiz_id", id).Warn("failed to prune share registry")
			}
			continue
		case errors.Is(err, quiz.ErrForbidden):
			// Unpublished since discovery; keep registered in case it comes
			// back, omit from the list.
			continue
		case err != nil:
			log.WithError(err).WithField("quiz_id", id).Warn("skipping unreachable shared quiz")
			continue
		}
		if q.UserID == userID || !q.IsPublic {
			// Own quizzes live in the main list, not the discovered one.
			continue
		}
		quizzes = append(quizzes, *q)
	}
	return quizzes, nil
}
