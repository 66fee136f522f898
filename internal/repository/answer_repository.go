package repository

import (
	"context"
	"fmt"
	"time"

	"medqbank/internal/domain"
	"medqbank/internal/repository/models"
	"medqbank/internal/util"
)

// AnswerDatabaseAdapter implements domain.AnswerRepository.
type AnswerDatabaseAdapter struct {
	db DBTX
}

func NewAnswerDatabaseAdapter(db DBTX) domain.AnswerRepository {
	return &AnswerDatabaseAdapter{db: db}
}

func (r *AnswerDatabaseAdapter) SaveAnswer(ctx context.Context, answer *domain.Answer) error {
	if answer == nil {
		return fmt.Errorf("cannot save nil answer")
	}
	if answer.ID == "" {
		answer.ID = util.NewULID()
	}
	if answer.AnsweredAt.IsZero() {
		answer.AnsweredAt = time.Now().UTC()
	}

	exec := GetExecutor(ctx, r.db)
	query := `INSERT INTO qbank_answers (id, session_id, question_id, choice_id, user_id, is_correct, answered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := exec.ExecContext(ctx, exec.Rebind(query),
		answer.ID,
		answer.SessionID,
		answer.QuestionID,
		answer.ChoiceID,
		util.StringToNullString(answer.UserID),
		models.BoolToInt(answer.IsCorrect),
		answer.AnsweredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save answer: %w", err)
	}
	return nil
}

func (r *AnswerDatabaseAdapter) ListAnswersBySession(ctx context.Context, sessionID string) ([]domain.Answer, error) {
	exec := GetExecutor(ctx, r.db)
	var rows []models.Answer
	query := `SELECT id "id", session_id "session_id", question_id "question_id", choice_id "choice_id",
		user_id "user_id", is_correct "is_correct", answered_at "answered_at"
		FROM qbank_answers WHERE session_id = ? ORDER BY answered_at ASC`
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), sessionID); err != nil {
		return nil, fmt.Errorf("failed to list answers for session %s: %w", sessionID, err)
	}

	answers := make([]domain.Answer, len(rows))
	for i, row := range rows {
		answers[i] = domain.Answer{
			ID:         row.ID,
			SessionID:  row.SessionID,
			QuestionID: row.QuestionID,
			ChoiceID:   row.ChoiceID,
			UserID:     row.UserID.String,
			IsCorrect:  row.IsCorrect != 0,
			AnsweredAt: row.AnsweredAt,
		}
	}
	return answers, nil
}
