package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"medqbank/internal/domain"
	"medqbank/internal/dto"
	"medqbank/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHandler_ListChapters(t *testing.T) {
	catalog := &MockCatalogService{
		ListChaptersFunc: func(ctx context.Context) ([]domain.Chapter, error) {
			return []domain.Chapter{
				{ID: "c1", Slug: "cardio", Title: "Cardiologie", SortOrder: 1},
				{ID: "c2", Slug: "neuro", Title: "Neurologie", SortOrder: 2},
			}, nil
		},
	}
	app := newTestApp(catalog, nil, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/chapters", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var chapters []dto.ChapterResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&chapters))
	require.Len(t, chapters, 2)
	assert.Equal(t, "cardio", chapters[0].Slug)
	assert.Equal(t, 2, chapters[1].SortOrder)
}

func TestCatalogHandler_ListChapters_Error(t *testing.T) {
	catalog := &MockCatalogService{
		ListChaptersFunc: func(ctx context.Context) ([]domain.Chapter, error) {
			return nil, domain.NewInternalError("Failed to list chapters", errors.New("db down"))
		},
	}
	app := newTestApp(catalog, nil, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/chapters", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestCatalogHandler_GetChapter(t *testing.T) {
	yearMin, yearMax := 2, 3
	catalog := &MockCatalogService{
		GetChapterBySlugFunc: func(ctx context.Context, slug string) (*service.ChapterDetail, error) {
			if slug != "cardio" {
				return nil, domain.NewChapterNotFoundError(slug)
			}
			return &service.ChapterDetail{
				Chapter: domain.Chapter{ID: "c1", Slug: "cardio", Title: "Cardiologie"},
				Modules: []domain.Module{{ID: "m1", Slug: "ecg", Title: "ECG", ChapterID: "c1", YearMin: &yearMin, YearMax: &yearMax}},
			}, nil
		},
	}
	app := newTestApp(catalog, nil, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/chapters/cardio", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var detail dto.ChapterDetailResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
	assert.Equal(t, "Cardiologie", detail.Title)
	require.Len(t, detail.Modules, 1)
	assert.Equal(t, 2, *detail.Modules[0].YearMin)
	assert.Equal(t, 3, *detail.Modules[0].YearMax)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/chapters/unknown", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// A malformed slug never reaches the service.
	resp, err = app.Test(httptest.NewRequest("GET", "/api/chapters/Bad_Slug", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCatalogHandler_ListModules(t *testing.T) {
	var gotChapter string
	catalog := &MockCatalogService{
		ListModulesFunc: func(ctx context.Context, chapterID string) ([]domain.Module, error) {
			gotChapter = chapterID
			return []domain.Module{{ID: "m1", ChapterID: chapterID}}, nil
		},
	}
	app := newTestApp(catalog, nil, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/modules?chapter_id=c1", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "c1", gotChapter)

	var modules []dto.ModuleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&modules))
	assert.Len(t, modules, 1)
}
