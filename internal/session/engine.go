package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/examflow/examflow/internal/attempt"
	"github.com/examflow/examflow/internal/quiz"
)

var (
	ErrFinished           = errors.New("session is finished")
	ErrNotCurrentQuestion = errors.New("not the current question")
	ErrUnknownOption      = errors.New("option does not belong to the question")
	// ErrNoSelection means CheckAnswer ran before any option was selected.
	ErrNoSelection = errors.New("select an answer first")
	// ErrDeferredOnly means CheckAnswer was called in instant-feedback mode,
	// where selection already checks.
	ErrDeferredOnly = errors.New("answers are checked on selection in this mode")
)

// ConfirmRequiredError is returned by Finish when unanswered questions remain
// and the caller has not confirmed yet.
type ConfirmRequiredError struct {
	Unanswered int
}

func (e *ConfirmRequiredError) Error() string {
	return fmt.Sprintf("%d questions unanswered, confirmation required", e.Unanswered)
}

// Session is one run through a quiz. All state transitions go through the
// mutex; a session is safe for concurrent handlers.
type Session struct {
	mu sync.Mutex

	ID              string
	Quiz            *quiz.Quiz
	InstantFeedback bool

	index    int
	answers  map[string]string
	checked  map[string]bool
	finished bool
	score    int

	panelOpen bool
	panelText string
}

// NewSession starts a run. A quiz without questions cannot be played.
func NewSession(id string, q *quiz.Quiz, instantFeedback bool) (*Session, error) {
	if !q.Playable() {
		return nil, quiz.ErrNotPlayable
	}
	return &Session{
		ID:              id,
		Quiz:            q,
		InstantFeedback: instantFeedback,
		answers:         map[string]string{},
		checked:         map[string]bool{},
	}, nil
}

// View is a read-only snapshot served to clients.
type View struct {
	ID              string            `json:"id"`
	QuizID          string            `json:"quizId"`
	InstantFeedback bool              `json:"instantFeedback"`
	Index           int               `json:"index"`
	Total           int               `json:"total"`
	Question        *quiz.Question    `json:"question,omitempty"`
	Answers         map[string]string `json:"answers"`
	Checked         map[string]bool   `json:"checked"`
	Finished        bool              `json:"finished"`
	Score           int               `json:"score"`
	PanelOpen       bool              `json:"panelOpen"`
	PanelText       string            `json:"panelText,omitempty"`
}

func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:              s.ID,
		QuizID:          s.Quiz.ID,
		InstantFeedback: s.InstantFeedback,
		Index:           s.index,
		Total:           len(s.Quiz.Questions),
		Answers:         map[string]string{},
		Checked:         map[string]bool{},
		Finished:        s.finished,
		Score:           s.score,
		PanelOpen:       s.panelOpen,
		PanelText:       s.panelText,
	}
	for k, val := range s.answers {
		v.Answers[k] = val
	}
	for k, val := range s.checked {
		v.Checked[k] = val
	}
	if !s.finished {
		q := s.Quiz.Questions[s.index]
		v.Question = &q
	}
	return v
}

func (s *Session) current() *quiz.Question {
	return &s.Quiz.Questions[s.index]
}

// SelectOption records an answer on the current question. A checked question
// keeps its answer; reselection is a silent no-op. Instant-feedback mode
// checks immediately.
func (s *Session) SelectOption(questionID, optionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return ErrFinished
	}
	q := s.current()
	if q.ID != questionID {
		return ErrNotCurrentQuestion
	}
	if s.checked[q.ID] {
		return nil
	}
	if _, ok := q.OptionByID(optionID); !ok {
		return ErrUnknownOption
	}
	s.answers[q.ID] = optionID
	if s.InstantFeedback {
		s.checked[q.ID] = true
	}
	return nil
}

// CheckAnswer locks in the current answer in deferred mode. Checking an
// already-checked question is a no-op.
func (s *Session) CheckAnswer() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkCurrentLocked()
}

func (s *Session) checkCurrentLocked() error {
	if s.finished {
		return ErrFinished
	}
	if s.InstantFeedback {
		return ErrDeferredOnly
	}
	q := s.current()
	if s.checked[q.ID] {
		return nil
	}
	if _, ok := s.answers[q.ID]; !ok {
		return ErrNoSelection
	}
	s.checked[q.ID] = true
	return nil
}

func (s *Session) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveLocked(1)
}

func (s *Session) Retreat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveLocked(-1)
}

// moveLocked clamps navigation to the question range and never grades.
func (s *Session) moveLocked(delta int) {
	if s.finished {
		return
	}
	next := s.index + delta
	if next < 0 {
		next = 0
	}
	if max := len(s.Quiz.Questions) - 1; next > max {
		next = max
	}
	s.index = next
}

// Finish grades the run. When unanswered questions remain, the caller must
// pass confirmed=true, otherwise a ConfirmRequiredError reports the count.
// Finishing twice returns the recorded result.
func (s *Session) Finish(confirmed bool) (*attempt.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return s.buildAttemptLocked(), nil
	}

	unanswered := 0
	for _, q := range s.Quiz.Questions {
		if _, ok := s.answers[q.ID]; !ok {
			unanswered++
		}
	}
	if unanswered > 0 && !confirmed {
		return nil, &ConfirmRequiredError{Unanswered: unanswered}
	}

	score := 0
	for _, q := range s.Quiz.Questions {
		if s.answers[q.ID] == q.CorrectOptionID {
			score++
		}
	}
	s.score = score
	s.finished = true
	s.panelOpen = false
	s.panelText = ""
	return s.buildAttemptLocked(), nil
}

func (s *Session) buildAttemptLocked() *attempt.Attempt {
	answers := map[string]string{}
	for k, v := range s.answers {
		answers[k] = v
	}
	return &attempt.Attempt{
		QuizID:  s.Quiz.ID,
		Answers: answers,
		Score:   s.score,
		Total:   len(s.Quiz.Questions),
	}
}

// PressKey maps a keyboard event onto the engine. Digits 1-4 and letters a-d
// pick options by position, arrows navigate, enter checks. Keys are inert
// once finished or while the explanation panel is open.
func (s *Session) PressKey(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished || s.panelOpen {
		return nil
	}

	q := s.current()
	switch k := strings.ToLower(key); k {
	case "1", "2", "3", "4":
		return s.selectByPositionLocked(q, int(k[0]-'1'))
	case "a", "b", "c", "d":
		return s.selectByPositionLocked(q, int(k[0]-'a'))
	case "arrowright", "right":
		s.moveLocked(1)
	case "arrowleft", "left":
		s.moveLocked(-1)
	case "enter":
		if s.InstantFeedback {
			return nil
		}
		return s.checkCurrentLocked()
	}
	return nil
}

// selectByPositionLocked picks the option at a display position, which is not
// necessarily the option with the matching label.
func (s *Session) selectByPositionLocked(q *quiz.Question, pos int) error {
	if pos < 0 || pos >= len(q.Options) {
		return nil
	}
	if s.checked[q.ID] {
		return nil
	}
	s.answers[q.ID] = q.Options[pos].ID
	if s.InstantFeedback {
		s.checked[q.ID] = true
	}
	return nil
}

// RequestExplanation captures the current question for the side-channel AI
// call. The returned question id must accompany the resolution so stale
// replies can be dropped.
func (s *Session) RequestExplanation() (string, *quiz.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return "", nil, ErrFinished
	}
	q := *s.current()
	return q.ID, &q, nil
}

// ResolveExplanation opens the panel with the reply text, unless the session
// has moved on to a different question, in which case the reply is dropped.
func (s *Session) ResolveExplanation(questionID, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished || s.current().ID != questionID {
		return false
	}
	s.panelOpen = true
	s.panelText = text
	return true
}

// ClosePanel dismisses the explanation panel and re-enables keys.
func (s *Session) ClosePanel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panelOpen = false
	s.panelText = ""
}
