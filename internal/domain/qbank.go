package domain

import (
	"strings"
	"time"
)

// Bank is a named question pool.
type Bank string

const (
	BankGeneral   Bank = "general"
	BankResidanat Bank = "residanat"
)

// Banks lists every bank in display order.
var Banks = []Bank{BankGeneral, BankResidanat}

// ParseBank accepts the route form of a bank name.
func ParseBank(s string) (Bank, error) {
	switch Bank(strings.ToLower(strings.TrimSpace(s))) {
	case BankGeneral:
		return BankGeneral, nil
	case BankResidanat:
		return BankResidanat, nil
	}
	return "", NewInvalidBankError(s)
}

// AllowsYearFilter reports whether questions of this bank can be narrowed by
// study year. Residanat questions are targeted at the exam, not a year.
func (b Bank) AllowsYearFilter() bool {
	return b == BankGeneral
}

func (b Bank) Title() string {
	if b == BankGeneral {
		return "Qbank Générale"
	}
	return "Qbank Résidanat"
}

func (b Bank) Description() string {
	if b == BankGeneral {
		return "Questions de toutes les années (1–6). Filtrez par année, chapitre, module…"
	}
	return "Questions ciblées sur les cours inclus dans le Résidanat."
}

// Badge is the short tag shown on the bank list.
func (b Bank) Badge() string {
	if b == BankGeneral {
		return "Années 1 à 6"
	}
	return "Ciblage concours"
}

const (
	MinYear = 1
	MaxYear = 6
)

// Difficulty is the 1–5 ordinal attached to every question.
type Difficulty int

const (
	MinDifficulty Difficulty = 1
	MaxDifficulty Difficulty = 5
)

func (d Difficulty) Valid() bool {
	return d >= MinDifficulty && d <= MaxDifficulty
}

type Chapter struct {
	ID          string
	Slug        string
	Title       string
	Description string
	SortOrder   int
}

type Module struct {
	ID          string
	Slug        string
	Title       string
	Description string
	ChapterID   string
	YearMin     *int
	YearMax     *int
	SortOrder   int
}

// CoversYear reports whether the module is taught in the given study year.
// A missing upper bound means the module spans a single year.
func (m Module) CoversYear(year int) bool {
	if m.YearMin == nil {
		return false
	}
	upper := *m.YearMin
	if m.YearMax != nil {
		upper = *m.YearMax
	}
	return *m.YearMin <= year && year <= upper
}

type Choice struct {
	ID         string
	QuestionID string
	Label      string
	IsCorrect  bool
}

type Question struct {
	ID          string
	Bank        Bank
	ModuleID    string
	Stem        string
	Explanation string
	Difficulty  Difficulty
	Choices     []Choice
}

// CorrectChoiceID returns the first choice flagged correct, or "" when the
// question has none.
func (q *Question) CorrectChoiceID() string {
	for _, c := range q.Choices {
		if c.IsCorrect {
			return c.ID
		}
	}
	return ""
}

// FindChoice looks a choice up by id.
func (q *Question) FindChoice(choiceID string) (Choice, bool) {
	for _, c := range q.Choices {
		if c.ID == choiceID {
			return c, true
		}
	}
	return Choice{}, false
}

// SessionQuestion places a question at a fixed position inside a session.
type SessionQuestion struct {
	ID         string
	SessionID  string
	QuestionID string
	Index      int
	Question   Question
}

type Session struct {
	ID        string
	UserID    string
	Bank      Bank
	Criteria  SessionCriteria
	CreatedAt time.Time
	Questions []SessionQuestion
}

// SessionCriteria is the filter selection a session is materialised from.
// Nil pointers mean "no constraint".
type SessionCriteria struct {
	Bank       Bank   `json:"bank"`
	ChapterID  string `json:"chapter_id,omitempty"`
	ModuleID   string `json:"module_id,omitempty"`
	Year       *int   `json:"year,omitempty"`
	Difficulty *int   `json:"difficulty,omitempty"`
	UnseenOnly bool   `json:"unseen_only,omitempty"`
	UserID     string `json:"-"`
	Count      int    `json:"count,omitempty"`
}

// Answer is a user's recorded choice for one question of a session.
type Answer struct {
	ID         string
	SessionID  string
	QuestionID string
	ChoiceID   string
	UserID     string
	IsCorrect  bool
	AnsweredAt time.Time
}

// Profile backs the auth-aware header.
type Profile struct {
	ID        string
	UserID    string
	FullName  string
	AvatarURL string
	Bio       string
	CreatedAt time.Time
	UpdatedAt time.Time
}
