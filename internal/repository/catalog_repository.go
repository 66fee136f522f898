package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"medqbank/internal/domain"
	"medqbank/internal/repository/models"
)

const chapterColumns = `id "id", slug "slug", title "title", description "description", sort_order "sort_order"`

const moduleColumns = `id "id", slug "slug", title "title", description "description", chapter_id "chapter_id",
	year_min "year_min", year_max "year_max", sort_order "sort_order"`

// CatalogDatabaseAdapter implements domain.CatalogRepository.
type CatalogDatabaseAdapter struct {
	db DBTX
}

func NewCatalogDatabaseAdapter(db DBTX) domain.CatalogRepository {
	return &CatalogDatabaseAdapter{db: db}
}

func (r *CatalogDatabaseAdapter) ListChapters(ctx context.Context) ([]domain.Chapter, error) {
	exec := GetExecutor(ctx, r.db)
	var rows []models.Chapter
	query := `SELECT ` + chapterColumns + ` FROM chapters ORDER BY sort_order ASC, title ASC`
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query)); err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}

	chapters := make([]domain.Chapter, len(rows))
	for i := range rows {
		chapters[i] = toDomainChapter(&rows[i])
	}
	return chapters, nil
}

func (r *CatalogDatabaseAdapter) GetChapterBySlug(ctx context.Context, slug string) (*domain.Chapter, error) {
	exec := GetExecutor(ctx, r.db)
	var row models.Chapter
	query := `SELECT ` + chapterColumns + ` FROM chapters WHERE slug = ?`
	if err := exec.GetContext(ctx, &row, exec.Rebind(query), slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chapter %s: %w", slug, err)
	}
	chapter := toDomainChapter(&row)
	return &chapter, nil
}

func (r *CatalogDatabaseAdapter) ListModulesByChapter(ctx context.Context, chapterID string) ([]domain.Module, error) {
	exec := GetExecutor(ctx, r.db)
	var rows []models.Module
	query := `SELECT ` + moduleColumns + ` FROM modules WHERE chapter_id = ? ORDER BY sort_order ASC, title ASC`
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), chapterID); err != nil {
		return nil, fmt.Errorf("failed to list modules for chapter %s: %w", chapterID, err)
	}

	modules := make([]domain.Module, len(rows))
	for i := range rows {
		modules[i] = toDomainModule(&rows[i])
	}
	return modules, nil
}

func (r *CatalogDatabaseAdapter) GetModule(ctx context.Context, moduleID string) (*domain.Module, error) {
	exec := GetExecutor(ctx, r.db)
	var row models.Module
	query := `SELECT ` + moduleColumns + ` FROM modules WHERE id = ?`
	if err := exec.GetContext(ctx, &row, exec.Rebind(query), moduleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get module %s: %w", moduleID, err)
	}
	module := toDomainModule(&row)
	return &module, nil
}

func toDomainChapter(m *models.Chapter) domain.Chapter {
	return domain.Chapter{
		ID:          m.ID,
		Slug:        m.Slug,
		Title:       m.Title,
		Description: m.Description.String,
		SortOrder:   m.SortOrder,
	}
}

func toDomainModule(m *models.Module) domain.Module {
	module := domain.Module{
		ID:          m.ID,
		Slug:        m.Slug,
		Title:       m.Title,
		Description: m.Description.String,
		ChapterID:   m.ChapterID,
		SortOrder:   m.SortOrder,
	}
	if m.YearMin.Valid {
		v := int(m.YearMin.Int64)
		module.YearMin = &v
	}
	if m.YearMax.Valid {
		v := int(m.YearMax.Int64)
		module.YearMax = &v
	}
	return module
}
