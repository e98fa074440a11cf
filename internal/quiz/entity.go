package quiz

import (
	"fmt"
	"strings"
)

// DemoUserID is the sentinel owner of the seeded demo quiz. Demo quizzes are
// visible to every caller but immutable through the public API.
const DemoUserID = "demo"

// OptionLabels are the four fixed labels every question carries.
var OptionLabels = [4]string{"A", "B", "C", "D"}

type Option struct {
	ID    string `bson:"id" json:"id"`
	Label string `bson:"label" json:"label"`
	Text  string `bson:"text" json:"text"`
}

type Question struct {
	ID              string   `bson:"id" json:"id"`
	Order           int      `bson:"order" json:"order"`
	Prompt          string   `bson:"prompt" json:"prompt"`
	Options         []Option `bson:"options" json:"options"`
	CorrectOptionID string   `bson:"correctOptionId" json:"correctOptionId"`
}

type Quiz struct {
	ID          string     `bson:"_id" json:"id"`
	UserID      string     `bson:"userId" json:"userId"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	Questions   []Question `bson:"questions" json:"questions"`
	CreatedAt   int64      `bson:"createdAt" json:"createdAt"`
	IsPublic    bool       `bson:"isPublic,omitempty" json:"isPublic,omitempty"`
	PublicURL   string     `bson:"publicUrl,omitempty" json:"publicUrl,omitempty"`
}

// OptionID builds the conventional option id for a question and label.
func OptionID(questionID, label string) string {
	return questionID + "-" + strings.ToLower(label)
}

// BuildOptions mints the four options of a question in label order.
func BuildOptions(questionID string, texts [4]string) []Option {
	options := make([]Option, 0, 4)
	for i, label := range OptionLabels {
		options = append(options, Option{
			ID:    OptionID(questionID, label),
			Label: label,
			Text:  texts[i],
		})
	}
	return options
}

func (q *Question) OptionByID(id string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

func (q *Question) OptionByLabel(label string) (Option, bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	for _, opt := range q.Options {
		if opt.Label == label {
			return opt, true
		}
	}
	return Option{}, false
}

// Validate enforces the question invariants: exactly four options carrying the
// fixed labels A-D exactly once, and a correct option id referencing one of them.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return fmt.Errorf("question has no id")
	}
	if len(q.Options) != len(OptionLabels) {
		return fmt.Errorf("question %s must have exactly %d options, got %d", q.ID, len(OptionLabels), len(q.Options))
	}
	seen := map[string]bool{}
	for _, opt := range q.Options {
		valid := false
		for _, label := range OptionLabels {
			if opt.Label == label {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("question %s has invalid option label %q", q.ID, opt.Label)
		}
		if seen[opt.Label] {
			return fmt.Errorf("question %s has duplicate option label %q", q.ID, opt.Label)
		}
		seen[opt.Label] = true
	}
	if _, ok := q.OptionByID(q.CorrectOptionID); !ok {
		return fmt.Errorf("question %s correct option %q does not reference any option", q.ID, q.CorrectOptionID)
	}
	return nil
}

// Validate checks the quiz and every question. A quiz with zero questions is
// valid; it can be viewed but not played.
func (q *Quiz) Validate() error {
	if strings.TrimSpace(q.Title) == "" {
		return fmt.Errorf("quiz title is required")
	}
	for i := range q.Questions {
		if err := q.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Playable reports whether the quiz has at least one question.
func (q *Quiz) Playable() bool {
	return len(q.Questions) > 0
}

func (q *Quiz) IsDemo() bool {
	return q.UserID == DemoUserID
}

// VisibleTo applies the access rule: owner, public, or demo.
func (q *Quiz) VisibleTo(userID string) bool {
	return (userID != "" && q.UserID == userID) || q.IsPublic || q.IsDemo()
}
