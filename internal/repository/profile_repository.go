package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"medqbank/internal/domain"
	"medqbank/internal/repository/models"
)

// ProfileDatabaseAdapter implements domain.ProfileRepository.
type ProfileDatabaseAdapter struct {
	db DBTX
}

func NewProfileDatabaseAdapter(db DBTX) domain.ProfileRepository {
	return &ProfileDatabaseAdapter{db: db}
}

func (r *ProfileDatabaseAdapter) GetProfileByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	exec := GetExecutor(ctx, r.db)
	var row models.Profile
	query := `SELECT id "id", user_id "user_id", full_name "full_name", avatar_url "avatar_url", bio "bio",
		created_at "created_at", updated_at "updated_at"
		FROM profiles WHERE user_id = ?`
	if err := exec.GetContext(ctx, &row, exec.Rebind(query), userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile for user %s: %w", userID, err)
	}
	return &domain.Profile{
		ID:        row.ID,
		UserID:    row.UserID,
		FullName:  row.FullName.String,
		AvatarURL: row.AvatarURL.String,
		Bio:       row.Bio.String,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
