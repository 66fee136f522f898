package repository

import (
	"context"
	"fmt"
	"strings"

	"medqbank/internal/domain"
)

// QuestionDatabaseAdapter implements domain.QuestionRepository.
type QuestionDatabaseAdapter struct {
	db DBTX
}

func NewQuestionDatabaseAdapter(db DBTX) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// buildCriteriaFilter turns criteria into a WHERE clause over
// qbank_questions q JOIN modules m. The year constraint is dropped for banks
// that don't allow it, and "unseen" excludes every question already placed in
// one of the user's earlier sessions.
func buildCriteriaFilter(criteria domain.SessionCriteria) (string, []interface{}) {
	conds := []string{"q.bank = ?"}
	args := []interface{}{string(criteria.Bank)}

	if criteria.ChapterID != "" {
		conds = append(conds, "m.chapter_id = ?")
		args = append(args, criteria.ChapterID)
	}
	if criteria.ModuleID != "" {
		conds = append(conds, "q.module_id = ?")
		args = append(args, criteria.ModuleID)
	}
	if criteria.Difficulty != nil {
		conds = append(conds, "q.difficulty = ?")
		args = append(args, *criteria.Difficulty)
	}
	if criteria.Year != nil && criteria.Bank.AllowsYearFilter() {
		conds = append(conds, "m.year_min <= ?", "COALESCE(m.year_max, m.year_min) >= ?")
		args = append(args, *criteria.Year, *criteria.Year)
	}
	if criteria.UnseenOnly && criteria.UserID != "" {
		conds = append(conds, `q.id NOT IN (SELECT sq.question_id FROM qbank_session_questions sq
			JOIN qbank_sessions s ON s.id = sq.session_id WHERE s.user_id = ?)`)
		args = append(args, criteria.UserID)
	}

	return strings.Join(conds, " AND "), args
}

func (a *QuestionDatabaseAdapter) FindMatchingIDs(ctx context.Context, criteria domain.SessionCriteria) ([]string, error) {
	exec := GetExecutor(ctx, a.db)
	where, args := buildCriteriaFilter(criteria)
	query := `SELECT q.id "id" FROM qbank_questions q JOIN modules m ON m.id = q.module_id WHERE ` + where + ` ORDER BY q.id`

	var ids []string
	if err := exec.SelectContext(ctx, &ids, exec.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to find matching questions: %w", err)
	}
	return ids, nil
}

func (a *QuestionDatabaseAdapter) CountMatching(ctx context.Context, criteria domain.SessionCriteria) (int, error) {
	exec := GetExecutor(ctx, a.db)
	where, args := buildCriteriaFilter(criteria)
	query := `SELECT COUNT(*) FROM qbank_questions q JOIN modules m ON m.id = q.module_id WHERE ` + where

	var count int
	if err := exec.GetContext(ctx, &count, exec.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("failed to count matching questions: %w", err)
	}
	return count, nil
}
