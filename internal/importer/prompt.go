package importer

import (
	"fmt"
	"strings"

	"github.com/examflow/examflow/internal/quiz"
)

// BuildExtractionPrompt asks the model to turn pasted source text into a JSON
// array of questions. The model must not guess missing answers; those come
// back with a null correctLabel and get a dedicated suggestion pass.
func BuildExtractionPrompt(text string) string {
	return fmt.Sprintf(`You are an assistant that converts raw multiple-choice question text into JSON.

TASK:
Analyze the following text and extract every multiple-choice question. Each question has:
- a prompt
- four options (A, B, C, D)
- a correct answer (only when it is FOUND in the text, otherwise null)

RESPONSE FORMAT (JSON):
Return ONE JSON array with this shape (no markdown, raw JSON only):
[
  {
    "prompt": "question text here",
    "options": [
      {"label": "A", "text": "option A text"},
      {"label": "B", "text": "option B text"},
      {"label": "C", "text": "option C text"},
      {"label": "D", "text": "option D text"}
    ],
    "correctLabel": "A" or "B" or "C" or "D" (ONLY when found in the text, otherwise null)
  }
]

IMPORTANT RULES:
- Only return correctLabel when the text explicitly designates the correct answer (e.g. "Answer: C", "Correct: D", or a marked option)
- When the text does NOT designate a correct answer, set correctLabel to null (do NOT guess, do NOT pick one)
- When multiple answers are designated (e.g. "A B D"), use the first as correctLabel
- Strip question numbering when present
- Strip stray special characters
- Keep question and option wording unchanged

TEXT TO ANALYZE:
%s
`, text)
}

// BuildSuggestionPrompt asks the model for the single best answer to one
// question, as one bare letter.
func BuildSuggestionPrompt(prompt string, options []quiz.Option) string {
	lines := make([]string, 0, len(options))
	for _, opt := range options {
		lines = append(lines, fmt.Sprintf("%s. %s", opt.Label, opt.Text))
	}
	return fmt.Sprintf(`You are an assistant that analyzes multiple-choice questions and determines the correct answer.

TASK:
Analyze the following multiple-choice question and determine the correct answer (A, B, C, or D).

QUESTION:
%s

OPTIONS:
%s

REQUIREMENTS:
- Analyze the question and every option carefully
- Determine the correct answer from domain knowledge
- Return ONLY one letter: "A", "B", "C", or "D"
- No explanation, no markdown, just the letter

CORRECT ANSWER:
`, prompt, strings.Join(lines, "\n"))
}

// BuildExplanationPrompt asks for a structured walkthrough of one question,
// shown in the side panel while playing.
func BuildExplanationPrompt(q *quiz.Question) string {
	lines := make([]string, 0, len(q.Options))
	for _, opt := range q.Options {
		lines = append(lines, fmt.Sprintf("%s. %s", opt.Label, opt.Text))
	}
	correct, _ := q.OptionByID(q.CorrectOptionID)
	return fmt.Sprintf(`You are a subject-matter tutor. Explain the following multiple-choice question in this structure:

1. The question and all four options restated briefly.

2. The correct answer:
[label of the correct option]. [text of the correct option]

3. Explanation:
- Explain the core concept behind the question.
- Explain in detail why the correct answer is right.
- Briefly explain why each other option is wrong or less suitable.

Identify the question's domain first and explain with matching domain knowledge.

QUESTION DETAILS:
Question: %q
Options:
%s
Correct Answer: %s. %s
`, q.Prompt, strings.Join(lines, "\n"), correct.Label, correct.Text)
}
