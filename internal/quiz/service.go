package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/examflow/examflow/internal/config"
	"github.com/google/uuid"
)

type Service interface {
	ListQuizzes(ctx context.Context, userID string) ([]Quiz, error)
	// GetQuiz succeeds iff userID owns the quiz, the quiz is public, or it is
	// a demo quiz; otherwise ErrForbidden.
	GetQuiz(ctx context.Context, id, userID string) (*Quiz, error)
	// GetPublicQuiz is the unauthenticated variant: public quizzes only.
	GetPublicQuiz(ctx context.Context, id string) (*Quiz, error)
	SaveQuiz(ctx context.Context, q *Quiz, userID string) (*Quiz, error)
	DeleteQuiz(ctx context.Context, id, userID string) error
}

type service struct {
	repo    Repository
	baseURL string
}

func NewService(repo Repository, baseURL string) Service {
	return &service{repo: repo, baseURL: baseURL}
}

// ShareURL derives the deterministic share link for a quiz id.
func ShareURL(baseURL, quizID string) string {
	return baseURL + "/quiz/" + quizID
}

func (s *service) ListQuizzes(ctx context.Context, userID string) ([]Quiz, error) {
	return s.repo.List(ctx, userID)
}

func (s *service) GetQuiz(ctx context.Context, id, userID string) (*Quiz, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !q.VisibleTo(userID) {
		return nil, ErrForbidden
	}
	return q, nil
}

func (s *service) GetPublicQuiz(ctx context.Context, id string) (*Quiz, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !q.IsPublic {
		// Private quizzes stay indistinguishable from missing ones here.
		return nil, ErrNotFound
	}
	return q, nil
}

func (s *service) SaveQuiz(ctx context.Context, q *Quiz, userID string) (*Quiz, error) {
	log := config.WithContext(ctx)

	if userID == "" || userID == DemoUserID {
		// The demo owner is a server-side sentinel; callers never write as it.
		return nil, ErrForbidden
	}
	if q.ID == "" {
		q.ID = uuid.NewString()
	}

	existing, err := s.repo.Get(ctx, q.ID)
	switch {
	case err == nil:
		// Full-replace save: only the owner may overwrite. Demo quizzes are
		// immutable to regular users.
		if existing.UserID != userID {
			log.WithField("quiz_id", q.ID).Warn("save rejected: caller does not own quiz")
			return nil, ErrForbidden
		}
		if q.CreatedAt == 0 {
			q.CreatedAt = existing.CreatedAt
		}
	case errors.Is(err, ErrNotFound):
		// First save.
	default:
		return nil, err
	}

	q.UserID = userID
	if q.CreatedAt == 0 {
		q.CreatedAt = time.Now().UnixMilli()
	}
	if q.IsPublic {
		q.PublicURL = ShareURL(s.baseURL, q.ID)
	} else {
		q.PublicURL = ""
	}

	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if err := s.repo.Upsert(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *service) DeleteQuiz(ctx context.Context, id, userID string) error {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if q.UserID != userID || q.IsDemo() {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
