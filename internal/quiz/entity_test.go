package quiz

import "testing"

func sampleQuestion(id string) Question {
	return Question{
		ID:              id,
		Prompt:          "prompt",
		Options:         BuildOptions(id, [4]string{"w", "x", "y", "z"}),
		CorrectOptionID: OptionID(id, "A"),
	}
}

func TestBuildOptions(t *testing.T) {
	opts := BuildOptions("q1", [4]string{"one", "two", "three", "four"})
	if len(opts) != 4 {
		t.Fatalf("expected 4 options, got %d", len(opts))
	}
	if opts[0].ID != "q1-a" || opts[0].Label != "A" || opts[0].Text != "one" {
		t.Errorf("unexpected first option: %+v", opts[0])
	}
	if opts[3].ID != "q1-d" || opts[3].Label != "D" {
		t.Errorf("unexpected last option: %+v", opts[3])
	}
}

func TestQuestionValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		q := sampleQuestion("q1")
		if err := q.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("WrongOptionCount", func(t *testing.T) {
		q := sampleQuestion("q1")
		q.Options = q.Options[:3]
		if err := q.Validate(); err == nil {
			t.Fatal("expected error for 3 options")
		}
	})

	t.Run("DuplicateLabel", func(t *testing.T) {
		q := sampleQuestion("q1")
		q.Options[1].Label = "A"
		if err := q.Validate(); err == nil {
			t.Fatal("expected error for duplicate label")
		}
	})

	t.Run("DanglingCorrectOption", func(t *testing.T) {
		q := sampleQuestion("q1")
		q.CorrectOptionID = "q1-z"
		if err := q.Validate(); err == nil {
			t.Fatal("expected error for unknown correct option id")
		}
	})
}

func TestQuizValidate(t *testing.T) {
	t.Run("EmptyQuestionsIsValid", func(t *testing.T) {
		q := Quiz{ID: "x", UserID: "u1", Title: "Drafts"}
		if err := q.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Playable() {
			t.Error("quiz with zero questions must not be playable")
		}
	})

	t.Run("MissingTitle", func(t *testing.T) {
		q := Quiz{ID: "x", UserID: "u1", Title: "  "}
		if err := q.Validate(); err == nil {
			t.Fatal("expected error for blank title")
		}
	})
}

func TestVisibleTo(t *testing.T) {
	cases := []struct {
		name   string
		quiz   Quiz
		caller string
		want   bool
	}{
		{"Owner", Quiz{UserID: "u1"}, "u1", true},
		{"Stranger", Quiz{UserID: "u1"}, "u2", false},
		{"Anonymous", Quiz{UserID: "u1"}, "", false},
		{"PublicStranger", Quiz{UserID: "u1", IsPublic: true}, "u2", true},
		{"PublicAnonymous", Quiz{UserID: "u1", IsPublic: true}, "", true},
		{"DemoAnonymous", Quiz{UserID: DemoUserID}, "", true},
		{"DemoStranger", Quiz{UserID: DemoUserID}, "u2", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.quiz.VisibleTo(tc.caller); got != tc.want {
				t.Errorf("VisibleTo(%q) = %v, want %v", tc.caller, got, tc.want)
			}
		})
	}
}

func TestOptionByLabel(t *testing.T) {
	q := sampleQuestion("q1")
	opt, ok := q.OptionByLabel(" b ")
	if !ok || opt.ID != "q1-b" {
		t.Fatalf("expected q1-b, got %+v ok=%v", opt, ok)
	}
	if _, ok := q.OptionByLabel("E"); ok {
		t.Error("label E must not resolve")
	}
}
