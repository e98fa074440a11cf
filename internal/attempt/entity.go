package attempt

import (
	"errors"
	"fmt"
	"strings"
)

// Attempt is one finished run of a quiz. Attempts are append-only history;
// nothing ever updates or deletes them.
type Attempt struct {
	ID          string            `bson:"_id" json:"id"`
	QuizID      string            `bson:"quizId" json:"quizId"`
	Answers     map[string]string `bson:"answers" json:"answers"`
	Score       int               `bson:"score" json:"score"`
	Total       int               `bson:"total" json:"total"`
	CompletedAt int64             `bson:"completedAt" json:"completedAt"`
}

var ErrInvalidAttempt = errors.New("invalid attempt")

func (a *Attempt) Validate() error {
	if strings.TrimSpace(a.QuizID) == "" {
		return fmt.Errorf("%w: missing quiz id", ErrInvalidAttempt)
	}
	if a.Total < 0 || a.Score < 0 || a.Score > a.Total {
		return fmt.Errorf("%w: score %d/%d out of range", ErrInvalidAttempt, a.Score, a.Total)
	}
	return nil
}
