package dto

import "time"

// BankResponse describes one question bank
// @Description Question bank summary
type BankResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Badge       string `json:"badge"`
	YearFilter  bool   `json:"year_filter"`
}

// FilterStateResponse is the state of the filter panel for one bank
// @Description Filter panel state
type FilterStateResponse struct {
	Bank          string            `json:"bank"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	YearEnabled   bool              `json:"year_enabled"`
	Chapters      []ChapterResponse `json:"chapters"`
	Modules       []ModuleResponse  `json:"modules"`
	ChapterID     string            `json:"chapter_id,omitempty"`
	ModuleID      string            `json:"module_id,omitempty"`
	Year          *int              `json:"year,omitempty"`
	Difficulty    *int              `json:"difficulty,omitempty"`
	UnseenOnly    bool              `json:"unseen_only"`
	ModulesError  string            `json:"modules_error,omitempty"`
	MatchingCount *int              `json:"matching_count,omitempty"`
}

// CreateSessionRequest is the filter selection a session is built from
// @Description Request body for starting a session
type CreateSessionRequest struct {
	ChapterID  string `json:"chapter_id" validate:"omitempty,max=64"`
	ModuleID   string `json:"module_id" validate:"omitempty,max=64"`
	Year       *int   `json:"year"`
	Difficulty *int   `json:"difficulty" validate:"omitempty,min=1,max=5"`
	UnseenOnly bool   `json:"unseen_only"`
	Count      int    `json:"count" validate:"omitempty,min=1"`
}

// SessionCriteriaResponse echoes the filters a session was built from
type SessionCriteriaResponse struct {
	ChapterID  string `json:"chapter_id,omitempty"`
	ModuleID   string `json:"module_id,omitempty"`
	Year       *int   `json:"year,omitempty"`
	Difficulty *int   `json:"difficulty,omitempty"`
	UnseenOnly bool   `json:"unseen_only"`
	Count      int    `json:"count"`
}

// SessionResponse represents a materialised session
// @Description Session summary
type SessionResponse struct {
	ID            string                  `json:"id"`
	Bank          string                  `json:"bank"`
	Label         string                  `json:"label"`
	QuestionCount int                     `json:"question_count"`
	Criteria      SessionCriteriaResponse `json:"criteria"`
	CreatedAt     time.Time               `json:"created_at"`
}

// ChoiceResponse is one answer option. IsCorrect is only set once the
// question has been revealed.
type ChoiceResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Selected  bool   `json:"selected,omitempty"`
	IsCorrect *bool  `json:"is_correct,omitempty"`
}

// QuestionResponse is a question as shown by the player
type QuestionResponse struct {
	ID         string           `json:"id"`
	Stem       string           `json:"stem"`
	Difficulty int              `json:"difficulty"`
	Choices    []ChoiceResponse `json:"choices"`
}

// SessionQuestionResponse is one entry of the ordered session list
type SessionQuestionResponse struct {
	ID       string           `json:"id"`
	Index    int              `json:"index"`
	Question QuestionResponse `json:"question"`
}

// SessionQuestionsResponse is the full ordered question list of a session
// @Description Ordered questions of a session
type SessionQuestionsResponse struct {
	SessionID string                    `json:"session_id"`
	Total     int                       `json:"total"`
	Questions []SessionQuestionResponse `json:"questions"`
}

// PlayerViewResponse is the current question of a session
// @Description Session player view
type PlayerViewResponse struct {
	SessionID        string           `json:"session_id"`
	Label            string           `json:"label"`
	Index            int              `json:"index"`
	Position         int              `json:"position"`
	Total            int              `json:"total"`
	Progress         int              `json:"progress"`
	HasPrev          bool             `json:"has_prev"`
	HasNext          bool             `json:"has_next"`
	Revealed         bool             `json:"revealed"`
	SelectedChoiceID string           `json:"selected_choice_id,omitempty"`
	Question         QuestionResponse `json:"question"`
	Explanation      string           `json:"explanation"`
}

// SeekRequest moves the player to an index (clamped)
type SeekRequest struct {
	Index *int `json:"index" validate:"required"`
}

// AnswerRequest selects a choice for the current question
// @Description Request body for answering the current question
type AnswerRequest struct {
	ChoiceID string `json:"choice_id" validate:"required,max=64"`
}

// AnswerResponse is the scored selection plus the updated view
// @Description Scored answer
type AnswerResponse struct {
	QuestionID      string             `json:"question_id"`
	ChoiceID        string             `json:"choice_id"`
	CorrectChoiceID string             `json:"correct_choice_id"`
	IsCorrect       bool               `json:"is_correct"`
	Recorded        bool               `json:"recorded"`
	View            PlayerViewResponse `json:"view"`
}
