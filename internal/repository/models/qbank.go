package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Column aliases are quoted lower-case in every query so Oracle, which folds
// unquoted identifiers to upper case, maps onto these tags too.

type Chapter struct {
	ID          string         `db:"id"`
	Slug        string         `db:"slug"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	SortOrder   int            `db:"sort_order"`
}

type Module struct {
	ID          string         `db:"id"`
	Slug        string         `db:"slug"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	ChapterID   string         `db:"chapter_id"`
	YearMin     sql.NullInt64  `db:"year_min"`
	YearMax     sql.NullInt64  `db:"year_max"`
	SortOrder   int            `db:"sort_order"`
}

type Session struct {
	ID        string         `db:"id"`
	UserID    sql.NullString `db:"user_id"`
	Bank      string         `db:"bank"`
	Criteria  CriteriaJSON   `db:"criteria"`
	CreatedAt time.Time      `db:"created_at"`
}

// SessionQuestionRow is one row of the session/question/choice join. A
// question with N choices yields N rows; one without choices yields a single
// row with NULL choice columns.
type SessionQuestionRow struct {
	LinkID      string         `db:"link_id"`
	Idx         int            `db:"idx"`
	QuestionID  string         `db:"question_id"`
	Bank        string         `db:"bank"`
	ModuleID    string         `db:"module_id"`
	Stem        string         `db:"stem"`
	Explanation sql.NullString `db:"explanation"`
	Difficulty  int            `db:"difficulty"`
	ChoiceID    sql.NullString `db:"choice_id"`
	ChoiceLabel sql.NullString `db:"choice_label"`
	IsCorrect   sql.NullInt64  `db:"is_correct"`
}

type Answer struct {
	ID         string         `db:"id"`
	SessionID  string         `db:"session_id"`
	QuestionID string         `db:"question_id"`
	ChoiceID   string         `db:"choice_id"`
	UserID     sql.NullString `db:"user_id"`
	IsCorrect  int            `db:"is_correct"`
	AnsweredAt time.Time      `db:"answered_at"`
}

type Profile struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	FullName  sql.NullString `db:"full_name"`
	AvatarURL sql.NullString `db:"avatar_url"`
	Bio       sql.NullString `db:"bio"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// CriteriaJSON stores the filter selection of a session as a JSON text column.
type CriteriaJSON struct {
	ChapterID  string `json:"chapter_id,omitempty"`
	ModuleID   string `json:"module_id,omitempty"`
	Year       *int   `json:"year,omitempty"`
	Difficulty *int   `json:"difficulty,omitempty"`
	UnseenOnly bool   `json:"unseen_only,omitempty"`
	Count      int    `json:"count,omitempty"`
}

// Value implements driver.Valuer. A string is returned rather than []byte so
// CLOB and TEXT columns both accept it.
func (c CriteriaJSON) Value() (driver.Value, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner. NULL and empty text decode to the zero value.
func (c *CriteriaJSON) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*c = CriteriaJSON{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("CriteriaJSON Scan: unsupported type %T", value)
	}
	if len(raw) == 0 || string(raw) == "null" {
		*c = CriteriaJSON{}
		return nil
	}
	return json.Unmarshal(raw, c)
}

// BoolToInt converts a flag to the 0/1 encoding used by every boolean column.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
