package session

import (
	"context"
	"errors"

	"github.com/examflow/examflow/internal/attempt"
	"github.com/examflow/examflow/internal/config"
	"github.com/examflow/examflow/internal/importer"
	"github.com/examflow/examflow/internal/quiz"
	"github.com/google/uuid"
)

type Service interface {
	// Start loads the quiz through the visibility rules and opens a session.
	Start(ctx context.Context, quizID, userID string, instantFeedback bool) (*Session, error)
	Get(id string) (*Session, error)
	// Finish grades the session and records the attempt. A persistence
	// failure is logged, never surfaced; the grading result stands.
	Finish(ctx context.Context, id string, confirmed bool) (*attempt.Attempt, error)
	// Explain runs the side-channel AI call for the session's current
	// question and applies the stale-drop rule to the reply.
	Explain(ctx context.Context, id, credential string) (delivered bool, err error)
}

type service struct {
	store    *Store
	quizzes  quiz.Service
	attempts attempt.Service
	ai       importer.Service
}

func NewService(store *Store, quizzes quiz.Service, attempts attempt.Service, ai importer.Service) Service {
	return &service{store: store, quizzes: quizzes, attempts: attempts, ai: ai}
}

func (s *service) Start(ctx context.Context, quizID, userID string, instantFeedback bool) (*Session, error) {
	q, err := s.quizzes.GetQuiz(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}
	sess, err := NewSession(uuid.NewString(), q, instantFeedback)
	if err != nil {
		return nil, err
	}
	s.store.Put(sess)
	return sess, nil
}

func (s *service) Get(id string) (*Session, error) {
	return s.store.Get(id)
}

func (s *service) Finish(ctx context.Context, id string, confirmed bool) (*attempt.Attempt, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	result, err := sess.Finish(confirmed)
	if err != nil {
		return nil, err
	}

	recorded, rerr := s.attempts.Record(ctx, result)
	if rerr != nil {
		config.WithContext(ctx).WithError(rerr).WithField("quiz_id", result.QuizID).
			Warn("failed to record attempt, result kept in session only")
		return result, nil
	}
	s.store.Delete(id)
	return recorded, nil
}

func (s *service) Explain(ctx context.Context, id, credential string) (bool, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return false, err
	}
	questionID, question, err := sess.RequestExplanation()
	if err != nil {
		return false, err
	}

	text, err := s.ai.ExplainQuestion(ctx, credential, question)
	if err != nil {
		if errors.Is(err, importer.ErrMissingCredential) || errors.Is(err, importer.ErrInvalidCredential) {
			return false, err
		}
		// Transient failures still open the panel so the player sees what
		// happened, unless the reply is stale by now.
		return sess.ResolveExplanation(questionID, "The explanation could not be loaded. Try again."), err
	}
	return sess.ResolveExplanation(questionID, text), nil
}
