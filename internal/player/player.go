// Package player holds the navigation state of one quiz session: the
// current index, which questions have been revealed, and the choices made.
// It does no I/O; the session service loads questions and persists State.
package player

import (
	"errors"

	"medqbank/internal/domain"
)

// ExplanationPlaceholder is shown until the correction is revealed.
const ExplanationPlaceholder = "La correction sera affichée après avoir répondu."

var (
	ErrEmptySession  = errors.New("player: session has no questions")
	ErrUnknownChoice = errors.New("player: choice does not belong to the current question")
)

// Player walks an ordered, non-empty list of session questions.
// It is not safe for concurrent use.
type Player struct {
	sessionID  string
	questions  []domain.SessionQuestion
	index      int
	revealed   map[int]bool
	selections map[int]string
}

func New(sessionID string, questions []domain.SessionQuestion) (*Player, error) {
	if len(questions) == 0 {
		return nil, ErrEmptySession
	}
	return &Player{
		sessionID:  sessionID,
		questions:  questions,
		revealed:   make(map[int]bool),
		selections: make(map[int]string),
	}, nil
}

func (p *Player) SessionID() string { return p.sessionID }

func (p *Player) Index() int { return p.index }

func (p *Player) Total() int { return len(p.questions) }

func (p *Player) Current() domain.SessionQuestion { return p.questions[p.index] }

func (p *Player) HasPrev() bool { return p.index > 0 }

func (p *Player) HasNext() bool { return p.index < len(p.questions)-1 }

// Next moves forward one question. At the last question it does nothing and
// returns false.
func (p *Player) Next() bool {
	if !p.HasNext() {
		return false
	}
	p.index++
	return true
}

// Prev moves back one question. At the first question it does nothing and
// returns false.
func (p *Player) Prev() bool {
	if !p.HasPrev() {
		return false
	}
	p.index--
	return true
}

// Seek jumps to i, clamped to [0, Total()-1], and returns the new index.
func (p *Player) Seek(i int) int {
	p.index = clamp(i, len(p.questions))
	return p.index
}

// Progress is the percentage of the session reached, counting the current
// question as reached.
func (p *Player) Progress() int {
	return Progress(p.index, len(p.questions))
}

// Progress returns round(100 * (index+1) / total) with halves rounded up.
func Progress(index, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*(index+1) + total) / (2 * total)
}

// Reveal exposes the correction of the current question.
func (p *Player) Reveal() {
	p.revealed[p.index] = true
}

func (p *Player) Revealed() bool {
	return p.revealed[p.index]
}

// Selection returns the choice recorded for the current question.
func (p *Player) Selection() (string, bool) {
	id, ok := p.selections[p.index]
	return id, ok
}

// Result is the outcome of selecting a choice.
type Result struct {
	SessionQuestionID string
	QuestionID        string
	ChoiceID          string
	CorrectChoiceID   string
	IsCorrect         bool
}

// Select records choiceID for the current question, scores it and reveals
// the correction. Selecting again replaces the earlier choice.
func (p *Player) Select(choiceID string) (Result, error) {
	current := p.questions[p.index]
	choice, ok := current.Question.FindChoice(choiceID)
	if !ok {
		return Result{}, ErrUnknownChoice
	}

	p.selections[p.index] = choice.ID
	p.revealed[p.index] = true

	return Result{
		SessionQuestionID: current.ID,
		QuestionID:        current.QuestionID,
		ChoiceID:          choice.ID,
		CorrectChoiceID:   current.Question.CorrectChoiceID(),
		IsCorrect:         choice.IsCorrect,
	}, nil
}

func clamp(i, total int) int {
	if i < 0 {
		return 0
	}
	if i > total-1 {
		return total - 1
	}
	return i
}
