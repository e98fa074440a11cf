package share

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/examflow/examflow/internal/localstore"
	"github.com/examflow/examflow/internal/quiz"
)

// quizzesStub serves quizzes from a map and applies the real visibility rule.
type quizzesStub struct {
	quizzes map[string]*quiz.Quiz
	fail    map[string]error
}

func newQuizzesStub() *quizzesStub {
	return &quizzesStub{quizzes: map[string]*quiz.Quiz{}, fail: map[string]error{}}
}

func (s *quizzesStub) ListQuizzes(context.Context, string) ([]quiz.Quiz, error) { return nil, nil }

func (s *quizzesStub) GetQuiz(_ context.Context, id, userID string) (*quiz.Quiz, error) {
	if err, ok := s.fail[id]; ok {
		return nil, err
	}
	q, ok := s.quizzes[id]
	if !ok {
		return nil, quiz.ErrNotFound
	}
	if !q.VisibleTo(userID) {
		return nil, quiz.ErrForbidden
	}
	copied := *q
	return &copied, nil
}

func (s *quizzesStub) GetPublicQuiz(ctx context.Context, id string) (*quiz.Quiz, error) {
	q, err := s.GetQuiz(ctx, id, "")
	if err != nil {
		return nil, err
	}
	if !q.IsPublic {
		return nil, quiz.ErrNotFound
	}
	return q, nil
}

func (s *quizzesStub) SaveQuiz(_ context.Context, q *quiz.Quiz, userID string) (*quiz.Quiz, error) {
	if q.IsPublic {
		q.PublicURL = quiz.ShareURL("https://quiz.example.com", q.ID)
	} else {
		q.PublicURL = ""
	}
	copied := *q
	s.quizzes[q.ID] = &copied
	return q, nil
}

func (s *quizzesStub) DeleteQuiz(context.Context, string, string) error { return nil }

func newFixture(t *testing.T) (*quizzesStub, Service) {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "registry.db"))
	if err != nil {
		t.Fatalf("open registry: %v", err)
	}
	quizzes := newQuizzesStub()
	return quizzes, NewService(quizzes, store)
}

func addQuiz(s *quizzesStub, id, owner string, public bool) {
	s.quizzes[id] = &quiz.Quiz{ID: id, UserID: owner, Title: id, IsPublic: public}
	if public {
		s.quizzes[id].PublicURL = quiz.ShareURL("https://quiz.example.com", id)
	}
}

func TestPromote(t *testing.T) {
	ctx := context.Background()

	t.Run("OwnerPromotes", func(t *testing.T) {
		quizzes, svc := newFixture(t)
		addQuiz(quizzes, "q1", "u1", false)

		url, err := svc.Promote(ctx, "q1", "u1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if url != quiz.ShareURL("https://quiz.example.com", "q1") {
			t.Errorf("url = %q", url)
		}
		if !quizzes.quizzes["q1"].IsPublic {
			t.Error("quiz not marked public")
		}
	})

	t.Run("IdempotentURL", func(t *testing.T) {
		quizzes, svc := newFixture(t)
		addQuiz(quizzes, "q1", "u1", false)

		first, err := svc.Promote(ctx, "q1", "u1")
		if err != nil {
			t.Fatal(err)
		}
		second, err := svc.Promote(ctx, "q1", "u1")
		if err != nil {
			t.Fatal(err)
		}
		if first != second {
			t.Errorf("share url changed: %q vs %q", first, second)
		}
	})

	t.Run("AlreadyPublicNoOpForAnyViewer", func(t *testing.T) {
		quizzes, svc := newFixture(t)
		addQuiz(quizzes, "q1", "u1", true)

		url, err := svc.Promote(ctx, "q1", "u2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if url != quiz.ShareURL("https://quiz.example.com", "q1") {
			t.Errorf("url = %q", url)
		}
		if quizzes.quizzes["q1"].UserID != "u1" {
			t.Error("no-op promote must not touch the quiz")
		}
	})

	t.Run("NonOwnerRejected", func(t *testing.T) {
		quizzes, svc := newFixture(t)
		addQuiz(quizzes, "q1", quiz.DemoUserID, false)

		if _, err := svc.Promote(ctx, "q1", "u2"); !errors.Is(err, ErrNotOwner) {
			t.Fatalf("expected ErrNotOwner, got %v", err)
		}
	})

	t.Run("DemoImpersonationRejected", func(t *testing.T) {
		quizzes, svc := newFixture(t)
		addQuiz(quizzes, "q1", quiz.DemoUserID, false)

		if _, err := svc.Promote(ctx, "q1", quiz.DemoUserID); !errors.Is(err, ErrNotOwner) {
			t.Fatalf("expected ErrNotOwner, got %v", err)
		}
		if quizzes.quizzes["q1"].IsPublic {
			t.Error("demo quiz published by a caller claiming the demo identity")
		}
	})

	t.Run("Missing", func(t *testing.T) {
		_, svc := newFixture(t)
		if _, err := svc.Promote(ctx, "nope", "u1"); !errors.Is(err, quiz.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestDiscoveredRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("RegisterAndList", func(t *testing.T) {
		quizzes, svc := newFixture(t)
		addQuiz(quizzes, "shared", "owner", true)

		if err := svc.RegisterDiscovered(ctx, "client-1", "shared"); err != nil {
			t.Fatal(err)
		}
		// Idempotent.
		if err := svc.RegisterDiscovered(ctx, "client-1", "shared"); err != nil {
			t.Fatal(err)
		}

		got, err := svc.ListDiscovered(ctx, "client-1", "viewer")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].ID != "shared" {
			t.Fatalf("discovered = %+v", got)
		}
	})

	t.Run("OwnQuizzesExcluded", func(t *testing.T) {
		quizzes, svc := newFixture(t)
		addQuiz(quizzes, "mine", "u1", true)
		if err := svc.RegisterDiscovered(ctx, "client-1", "mine"); err != nil {
			t.Fatal(err)
		}

		got, err := svc.ListDiscovered(ctx, "client-1", "u1")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Errorf("own quiz must not appear in discovered list: %+v", got)
		}
	})

	t.Run("VanishedPruned", func(t *testing.T) {
		quizzes, svc := newFixture(t)
		addQuiz(quizzes, "gone", "owner", true)
		if err := svc.RegisterDiscovered(ctx, "client-1", "gone"); err != nil {
			t.Fatal(err)
		}
		delete(quizzes.quizzes, "gone")

		got, err := svc.ListDiscovered(ctx, "client-1", "viewer")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Fatalf("vanished quiz listed: %+v", got)
		}

		// Pruned: even if the quiz comes back public later under the same id,
		// the client must re-discover it through a link.
		addQuiz(quizzes, "gone", "owner", true)
		got, err = svc.ListDiscovered(ctx, "client-1", "viewer")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Errorf("pruned registration resurrected: %+v", got)
		}
	})

	t.Run("UnpublishedKeptButOmitted", func(t *testing.T) {
		quizzes, svc := newFixture(t)
		addQuiz(quizzes, "flip", "owner", true)
		if err := svc.RegisterDiscovered(ctx, "client-1", "flip"); err != nil {
			t.Fatal(err)
		}

		quizzes.quizzes["flip"].IsPublic = false
		got, err := svc.ListDiscovered(ctx, "client-1", "viewer")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Fatalf("private quiz leaked: %+v", got)
		}

		// Re-published: still registered, so it reappears without a new visit.
		quizzes.quizzes["flip"].IsPublic = true
		got, err = svc.ListDiscovered(ctx, "client-1", "viewer")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 {
			t.Errorf("re-published quiz missing: %+v", got)
		}
	})

	t.Run("TransientFailureOmitted", func(t *testing.T) {
		quizzes, svc := newFixture(t)
		addQuiz(quizzes, "ok", "owner", true)
		quizzes.fail["flaky"] = errors.New("timeout")
		for _, id := range []string{"ok", "flaky"} {
			if err := svc.RegisterDiscovered(ctx, "client-1", id); err != nil {
				t.Fatal(err)
			}
		}

		got, err := svc.ListDiscovered(ctx, "client-1", "viewer")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].ID != "ok" {
			t.Fatalf("discovered = %+v", got)
		}

		// Back up again: the registration survived the transient failure.
		delete(quizzes.fail, "flaky")
		addQuiz(quizzes, "flaky", "owner", true)
		got, err = svc.ListDiscovered(ctx, "client-1", "viewer")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Errorf("recovered quiz missing: %+v", got)
		}
	})

	t.Run("ClientsIsolated", func(t *testing.T) {
		quizzes, svc := newFixture(t)
		addQuiz(quizzes, "shared", "owner", true)
		if err := svc.RegisterDiscovered(ctx, "client-1", "shared"); err != nil {
			t.Fatal(err)
		}

		got, err := svc.ListDiscovered(ctx, "client-2", "viewer")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Errorf("registry leaked across clients: %+v", got)
		}
	})
}
