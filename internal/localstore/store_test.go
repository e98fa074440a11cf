package localstore

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "mirror.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func TestQuizMirror(t *testing.T) {
	s := openTestStore(t)

	t.Run("MissingReadsNotFound", func(t *testing.T) {
		if _, err := s.QuizDoc("nope"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("PutOverwrites", func(t *testing.T) {
		if err := s.PutQuiz("q1", "u1", false, 10, []byte(`{"v":1}`)); err != nil {
			t.Fatal(err)
		}
		if err := s.PutQuiz("q1", "u1", true, 10, []byte(`{"v":2}`)); err != nil {
			t.Fatal(err)
		}
		doc, err := s.QuizDoc("q1")
		if err != nil {
			t.Fatal(err)
		}
		if string(doc) != `{"v":2}` {
			t.Errorf("doc = %s", doc)
		}
	})

	t.Run("VisibilityAndOrder", func(t *testing.T) {
		if err := s.PutQuiz("private", "u2", false, 20, []byte(`{"id":"private"}`)); err != nil {
			t.Fatal(err)
		}
		if err := s.PutQuiz("demo1", "demo", false, 30, []byte(`{"id":"demo1"}`)); err != nil {
			t.Fatal(err)
		}

		docs, err := s.QuizDocs("u1", "demo")
		if err != nil {
			t.Fatal(err)
		}
		// u1 sees: own q1 (public by now), demo1. Not u2's private quiz.
		if len(docs) != 2 {
			t.Fatalf("docs = %d, want 2", len(docs))
		}
		// Newest first: demo1 (30) before q1 (10).
		if string(docs[0]) != `{"id":"demo1"}` {
			t.Errorf("order wrong: first = %s", docs[0])
		}

		anon, err := s.QuizDocs("", "demo")
		if err != nil {
			t.Fatal(err)
		}
		if len(anon) != 2 {
			// Anonymous sees demo1 plus the public q1.
			t.Errorf("anonymous docs = %d, want 2", len(anon))
		}
	})

	t.Run("Remove", func(t *testing.T) {
		if err := s.RemoveQuiz("q1"); err != nil {
			t.Fatal(err)
		}
		if _, err := s.QuizDoc("q1"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound after remove, got %v", err)
		}
		// Removing twice is harmless.
		if err := s.RemoveQuiz("q1"); err != nil {
			t.Fatal(err)
		}
	})
}

func TestAttemptMirror(t *testing.T) {
	s := openTestStore(t)

	for i, doc := range []string{`{"n":1}`, `{"n":2}`, `{"n":3}`} {
		if err := s.AppendAttempt("q1", int64(10*(i+1)), []byte(doc)); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.AppendAttempt("other", 99, []byte(`{"n":9}`)); err != nil {
		t.Fatal(err)
	}

	docs, err := s.AttemptDocs("q1")
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 3 {
		t.Fatalf("docs = %d, want 3", len(docs))
	}
	if string(docs[0]) != `{"n":3}` {
		t.Errorf("newest first expected, got %s", docs[0])
	}
}

func TestSharedQuizRegistry(t *testing.T) {
	s := openTestStore(t)

	if err := s.AddSharedQuizID("c1", "q1"); err != nil {
		t.Fatal(err)
	}
	// Duplicate registration is a no-op.
	if err := s.AddSharedQuizID("c1", "q1"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddSharedQuizID("c2", "q2"); err != nil {
		t.Fatal(err)
	}

	ids, err := s.SharedQuizIDs("c1")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != "q1" {
		t.Fatalf("ids = %v", ids)
	}

	if err := s.RemoveSharedQuizID("c1", "q1"); err != nil {
		t.Fatal(err)
	}
	ids, err = s.SharedQuizIDs("c1")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Errorf("ids after remove = %v", ids)
	}
}
