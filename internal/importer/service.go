package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/examflow/examflow/internal/config"
	"github.com/examflow/examflow/internal/quiz"
	"github.com/google/uuid"
)

// extractedQuestion is the wire shape the extraction prompt demands.
type extractedQuestion struct {
	Prompt  string `json:"prompt"`
	Options []struct {
		Label string `json:"label"`
		Text  string `json:"text"`
	} `json:"options"`
	CorrectLabel *string `json:"correctLabel"`
}

// ImportResult carries the built questions plus the review side-table: ids of
// questions whose correct answer was not found in the source text. The answer
// on those is either an AI suggestion or the option A placeholder; the caller
// must surface the flags before accepting the import.
type ImportResult struct {
	Questions   []quiz.Question `json:"questions"`
	NeedsReview []string        `json:"needsReview"`
}

type Service interface {
	ImportQuestions(ctx context.Context, credential, rawText string) (*ImportResult, error)
	// ExplainQuestion is the read-only side channel used while playing.
	ExplainQuestion(ctx context.Context, credential string, q *quiz.Question) (string, error)
}

type service struct {
	provider Provider
}

func NewService(provider Provider) Service {
	return &service{provider: provider}
}

func (s *service) ImportQuestions(ctx context.Context, credential, rawText string) (*ImportResult, error) {
	log := config.WithContext(ctx)

	if strings.TrimSpace(rawText) == "" {
		return nil, ErrEmptyInput
	}
	if credential == "" {
		return nil, ErrMissingCredential
	}

	raw, err := s.provider.Generate(ctx, credential, BuildExtractionPrompt(rawText))
	if err != nil {
		return nil, err
	}

	var extracted []extractedQuestion
	if err := json.Unmarshal([]byte(StripFences(raw)), &extracted); err != nil {
		log.WithError(err).Warn("model reply is not a question array")
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	result := &ImportResult{NeedsReview: []string{}}
	for i, item := range extracted {
		questionID := uuid.NewString()

		var texts [4]string
		for _, opt := range item.Options {
			for j, label := range quiz.OptionLabels {
				if strings.EqualFold(strings.TrimSpace(opt.Label), label) {
					texts[j] = strings.TrimSpace(opt.Text)
				}
			}
		}

		q := quiz.Question{
			ID:      questionID,
			Order:   i + 1,
			Prompt:  strings.TrimSpace(item.Prompt),
			Options: quiz.BuildOptions(questionID, texts),
		}

		label := normalizeLabel(item.CorrectLabel)
		if opt, ok := q.OptionByLabel(label); ok {
			q.CorrectOptionID = opt.ID
		} else {
			// Placeholder until the suggestion pass runs; either way the
			// question is flagged for review.
			q.CorrectOptionID = q.Options[0].ID
			result.NeedsReview = append(result.NeedsReview, questionID)
		}
		result.Questions = append(result.Questions, q)
	}

	// Second pass, sequential and best-effort: ask for the missing answers one
	// at a time. A failed suggestion keeps the placeholder.
	for _, id := range result.NeedsReview {
		for i := range result.Questions {
			if result.Questions[i].ID != id {
				continue
			}
			q := &result.Questions[i]
			suggestion, err := s.suggestAnswer(ctx, credential, q)
			if err != nil {
				log.WithError(err).WithField("question_id", id).Warn("answer suggestion failed")
				break
			}
			if opt, ok := q.OptionByLabel(suggestion); ok {
				q.CorrectOptionID = opt.ID
			}
			break
		}
	}

	return result, nil
}

func (s *service) suggestAnswer(ctx context.Context, credential string, q *quiz.Question) (string, error) {
	raw, err := s.provider.Generate(ctx, credential, BuildSuggestionPrompt(q.Prompt, q.Options))
	if err != nil {
		return "", err
	}
	reply := strings.ToUpper(strings.TrimSpace(StripFences(raw)))
	if reply == "" {
		return "", fmt.Errorf("empty suggestion reply")
	}
	// Keep the leading letter only; models sometimes append prose.
	return reply[:1], nil
}

func (s *service) ExplainQuestion(ctx context.Context, credential string, q *quiz.Question) (string, error) {
	if credential == "" {
		return "", ErrMissingCredential
	}
	return s.provider.Generate(ctx, credential, BuildExplanationPrompt(q))
}

// normalizeLabel reduces a raw correctLabel to a single label, taking the
// first when several were designated ("A B D" picks A).
func normalizeLabel(raw *string) string {
	if raw == nil {
		return ""
	}
	fields := strings.Fields(*raw)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}
