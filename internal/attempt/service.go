package attempt

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Service interface {
	// Record appends one finished attempt. The id and completion time are
	// minted here when absent.
	Record(ctx context.Context, a *Attempt) (*Attempt, error)
	ListByQuiz(ctx context.Context, quizID string) ([]Attempt, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, a *Attempt) (*Attempt, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CompletedAt == 0 {
		a.CompletedAt = time.Now().UnixMilli()
	}
	if a.Answers == nil {
		a.Answers = map[string]string{}
	}
	if err := s.repo.Append(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) ListByQuiz(ctx context.Context, quizID string) ([]Attempt, error) {
	return s.repo.ListByQuiz(ctx, quizID)
}

// BestScore returns the highest score across attempts, or false when there is
// no history.
func BestScore(attempts []Attempt) (int, bool) {
	if len(attempts) == 0 {
		return 0, false
	}
	best := attempts[0].Score
	for _, a := range attempts[1:] {
		if a.Score > best {
			best = a.Score
		}
	}
	return best, true
}
