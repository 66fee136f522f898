package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"medqbank/internal/domain"
	"medqbank/internal/repository/models"
	"medqbank/internal/util"
)

// SessionDatabaseAdapter implements domain.SessionRepository.
type SessionDatabaseAdapter struct {
	db DBTX
	tm domain.TransactionManager
}

func NewSessionDatabaseAdapter(db DBTX, tm domain.TransactionManager) domain.SessionRepository {
	return &SessionDatabaseAdapter{db: db, tm: tm}
}

// CreateSession writes the session row and its links in one transaction.
// Indices are assigned from the slice position, so they are gapless.
func (r *SessionDatabaseAdapter) CreateSession(ctx context.Context, session *domain.Session, questionIDs []string) error {
	if session == nil {
		return fmt.Errorf("cannot save nil session")
	}
	if len(questionIDs) == 0 {
		return fmt.Errorf("cannot save session without questions")
	}

	if session.ID == "" {
		session.ID = util.NewULID()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	model := toModelSession(session)

	err := r.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, r.db)

		insertSession := `INSERT INTO qbank_sessions (id, user_id, bank, criteria, created_at) VALUES (?, ?, ?, ?, ?)`
		if _, err := exec.ExecContext(txCtx, exec.Rebind(insertSession),
			model.ID, model.UserID, model.Bank, model.Criteria, model.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert session: %w", err)
		}

		insertLink := exec.Rebind(`INSERT INTO qbank_session_questions (id, session_id, question_id, idx) VALUES (?, ?, ?, ?)`)
		links := make([]domain.SessionQuestion, 0, len(questionIDs))
		for idx, questionID := range questionIDs {
			link := domain.SessionQuestion{
				ID:         util.NewULID(),
				SessionID:  model.ID,
				QuestionID: questionID,
				Index:      idx,
			}
			if _, err := exec.ExecContext(txCtx, insertLink, link.ID, link.SessionID, link.QuestionID, link.Index); err != nil {
				return fmt.Errorf("failed to insert session question %d: %w", idx, err)
			}
			links = append(links, link)
		}
		session.Questions = links
		return nil
	})
	if err != nil {
		session.Questions = nil
		return err
	}
	return nil
}

func (r *SessionDatabaseAdapter) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	exec := GetExecutor(ctx, r.db)
	var row models.Session
	query := `SELECT id "id", user_id "user_id", bank "bank", criteria "criteria", created_at "created_at"
		FROM qbank_sessions WHERE id = ?`
	if err := exec.GetContext(ctx, &row, exec.Rebind(query), sessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session %s: %w", sessionID, err)
	}
	return toDomainSession(&row), nil
}

// GetSessionQuestions runs a single join ordered by link index then choice
// order, and folds consecutive rows of the same link into one question.
func (r *SessionDatabaseAdapter) GetSessionQuestions(ctx context.Context, sessionID string) ([]domain.SessionQuestion, error) {
	exec := GetExecutor(ctx, r.db)
	query := `SELECT
		sq.id "link_id",
		sq.idx "idx",
		q.id "question_id",
		q.bank "bank",
		q.module_id "module_id",
		q.stem "stem",
		q.explanation "explanation",
		q.difficulty "difficulty",
		c.id "choice_id",
		c.label "choice_label",
		c.is_correct "is_correct"
	FROM qbank_session_questions sq
	JOIN qbank_questions q ON q.id = sq.question_id
	LEFT JOIN qbank_choices c ON c.question_id = q.id
	WHERE sq.session_id = ?
	ORDER BY sq.idx ASC, c.sort_order ASC, c.id ASC`

	rows, err := exec.QueryxContext(ctx, exec.Rebind(query), sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s questions: %w", sessionID, err)
	}
	defer rows.Close()

	questions := []domain.SessionQuestion{}
	for rows.Next() {
		var row models.SessionQuestionRow
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("failed to scan session question row: %w", err)
		}

		n := len(questions)
		if n == 0 || questions[n-1].ID != row.LinkID {
			questions = append(questions, domain.SessionQuestion{
				ID:         row.LinkID,
				SessionID:  sessionID,
				QuestionID: row.QuestionID,
				Index:      row.Idx,
				Question: domain.Question{
					ID:          row.QuestionID,
					Bank:        domain.Bank(row.Bank),
					ModuleID:    row.ModuleID,
					Stem:        row.Stem,
					Explanation: row.Explanation.String,
					Difficulty:  domain.Difficulty(row.Difficulty),
					Choices:     []domain.Choice{},
				},
			})
			n++
		}

		if row.ChoiceID.Valid {
			current := &questions[n-1].Question
			current.Choices = append(current.Choices, domain.Choice{
				ID:         row.ChoiceID.String,
				QuestionID: row.QuestionID,
				Label:      row.ChoiceLabel.String,
				IsCorrect:  row.IsCorrect.Valid && row.IsCorrect.Int64 != 0,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session %s questions: %w", sessionID, err)
	}
	return questions, nil
}

func toModelSession(s *domain.Session) *models.Session {
	return &models.Session{
		ID:     s.ID,
		UserID: util.StringToNullString(s.UserID),
		Bank:   string(s.Bank),
		Criteria: models.CriteriaJSON{
			ChapterID:  s.Criteria.ChapterID,
			ModuleID:   s.Criteria.ModuleID,
			Year:       s.Criteria.Year,
			Difficulty: s.Criteria.Difficulty,
			UnseenOnly: s.Criteria.UnseenOnly,
			Count:      s.Criteria.Count,
		},
		CreatedAt: s.CreatedAt,
	}
}

func toDomainSession(m *models.Session) *domain.Session {
	bank := domain.Bank(m.Bank)
	return &domain.Session{
		ID:     m.ID,
		UserID: m.UserID.String,
		Bank:   bank,
		Criteria: domain.SessionCriteria{
			Bank:       bank,
			ChapterID:  m.Criteria.ChapterID,
			ModuleID:   m.Criteria.ModuleID,
			Year:       m.Criteria.Year,
			Difficulty: m.Criteria.Difficulty,
			UnseenOnly: m.Criteria.UnseenOnly,
			UserID:     m.UserID.String,
			Count:      m.Criteria.Count,
		},
		CreatedAt: m.CreatedAt,
	}
}
