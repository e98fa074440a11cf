package quiz

import (
	"context"
	"errors"
	"time"

	"github.com/examflow/examflow/internal/config"
)

// DemoQuizID is the id of the seeded practice quiz.
const DemoQuizID = "fe-fall-25"

func demoQuestion(id string, order int, prompt string, texts [4]string, correctLabel string) Question {
	return Question{
		ID:              id,
		Order:           order,
		Prompt:          prompt,
		Options:         BuildOptions(id, texts),
		CorrectOptionID: OptionID(id, correctLabel),
	}
}

func demoQuiz() *Quiz {
	return &Quiz{
		ID:          DemoQuizID,
		UserID:      DemoUserID,
		Title:       "FE FALL 25",
		Description: "Software Testing Foundation Practice Questions",
		CreatedAt:   time.Now().UnixMilli(),
		Questions: []Question{
			demoQuestion("q1", 1,
				"Which is not the testing objectives",
				[4]string{
					"Finding defects",
					"Gaining confidence about the level of quality and providing information",
					"Preventing defects",
					"Debugging defects",
				},
				"D"),
			demoQuestion("q2", 2,
				"A person who documents all the issues, problems and open points that were identified during a formal review",
				[4]string{"Moderator", "Scribe", "Author", "Manager"},
				"B"),
			demoQuestion("q3", 3,
				"Statement Coverage will not check for the following.",
				[4]string{"Missing Statements", "Unused Branches", "Dead Code", "Unused Statement"},
				"A"),
			demoQuestion("q4", 4,
				"Which of the following is not a static testing technique?",
				[4]string{"Error guessing", "Walkthrough", "Data flow analysis", "Inspections"},
				"A"),
			demoQuestion("q5", 5,
				"Testware (test cases, test dataset)",
				[4]string{
					"Needs configuration management just like requirements, design and code",
					"Should be newly constructed for each new version of the software",
					"Is needed only until the software is released into production or use",
					"Does not need to be documented and commented, as it does not form part of the released software system",
				},
				"A"),
		},
	}
}

// EnsureDemo seeds the shared demo quiz once. An existing copy is left
// untouched so the seed never clobbers prior state.
func EnsureDemo(ctx context.Context, repo Repository) error {
	_, err := repo.Get(ctx, DemoQuizID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	config.WithContext(ctx).WithField("quiz_id", DemoQuizID).Info("seeding demo quiz")
	return repo.Upsert(ctx, demoQuiz())
}
