package attempt

import (
	"context"
	"encoding/json"

	"github.com/examflow/examflow/internal/config"
	"github.com/examflow/examflow/internal/localstore"
)

// fallbackRepository mirrors every recorded attempt locally and serves history
// from the mirror when the document store is unreachable.
type fallbackRepository struct {
	remote Repository
	local  *localstore.Store
}

func NewFallbackRepository(remote Repository, local *localstore.Store) Repository {
	return &fallbackRepository{remote: remote, local: local}
}

func (r *fallbackRepository) Append(ctx context.Context, a *Attempt) error {
	remoteErr := r.remote.Append(ctx, a)

	doc, merr := json.Marshal(a)
	if merr == nil {
		if lerr := r.local.AppendAttempt(a.QuizID, a.CompletedAt, doc); lerr != nil {
			config.WithContext(ctx).WithError(lerr).Warn("failed to mirror attempt locally")
		}
	}

	if remoteErr != nil {
		config.WithContext(ctx).WithError(remoteErr).Warn("attempt save degraded to local mirror")
		if merr != nil {
			return remoteErr
		}
		return nil
	}
	return nil
}

func (r *fallbackRepository) ListByQuiz(ctx context.Context, quizID string) ([]Attempt, error) {
	attempts, err := r.remote.ListByQuiz(ctx, quizID)
	if err == nil {
		return attempts, nil
	}
	config.WithContext(ctx).WithError(err).Warn("attempt history read failed, reading local mirror")

	docs, lerr := r.local.AttemptDocs(quizID)
	if lerr != nil {
		return nil, err
	}
	attempts = make([]Attempt, 0, len(docs))
	for _, doc := range docs {
		var a Attempt
		if uerr := json.Unmarshal(doc, &a); uerr != nil {
			config.WithContext(ctx).WithError(uerr).Warn("skipping corrupt mirror document")
			continue
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}
