package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"medqbank/internal/cache"
	"medqbank/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_ListChapters_CacheHit(t *testing.T) {
	repo := new(MockCatalogRepository)
	mockCache := new(MockCache)
	svc := NewCatalogService(repo, mockCache, testConfig())

	cached, _ := json.Marshal([]domain.Chapter{{ID: "c1", Slug: "cardio", Title: "Cardiologie"}})
	mockCache.On("Get", mock.Anything, cache.ChaptersKey()).Return(string(cached), nil).Once()

	chapters, err := svc.ListChapters(context.Background())
	require.NoError(t, err)
	require.Len(t, chapters, 1)
	assert.Equal(t, "cardio", chapters[0].Slug)
	repo.AssertNotCalled(t, "ListChapters", mock.Anything)
	mockCache.AssertExpectations(t)
}

func TestCatalogService_ListChapters_CacheMiss(t *testing.T) {
	repo := new(MockCatalogRepository)
	mockCache := new(MockCache)
	svc := NewCatalogService(repo, mockCache, testConfig())

	chapters := []domain.Chapter{
		{ID: "c1", Slug: "cardio", Title: "Cardiologie", SortOrder: 1},
		{ID: "c2", Slug: "neuro", Title: "Neurologie", SortOrder: 2},
	}
	mockCache.On("Get", mock.Anything, cache.ChaptersKey()).Return("", domain.ErrCacheMiss).Once()
	repo.On("ListChapters", mock.Anything).Return(chapters, nil).Once()
	mockCache.On("Set", mock.Anything, cache.ChaptersKey(), mock.AnythingOfType("string"), 10*time.Minute).Return(nil).Once()

	got, err := svc.ListChapters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, chapters, got)
	repo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestCatalogService_ListChapters_CorruptCacheEntryFallsBack(t *testing.T) {
	repo := new(MockCatalogRepository)
	mockCache := new(MockCache)
	svc := NewCatalogService(repo, mockCache, testConfig())

	mockCache.On("Get", mock.Anything, cache.ChaptersKey()).Return("{not json", nil).Once()
	repo.On("ListChapters", mock.Anything).Return([]domain.Chapter{{ID: "c1"}}, nil).Once()
	mockCache.On("Set", mock.Anything, cache.ChaptersKey(), mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()

	got, err := svc.ListChapters(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
	repo.AssertExpectations(t)
}

func TestCatalogService_ListChapters_RepositoryError(t *testing.T) {
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo, nil, testConfig())

	repo.On("ListChapters", mock.Anything).Return(nil, errors.New("db down")).Once()

	_, err := svc.ListChapters(context.Background())
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInternal, domainErr.Code)
}

func TestCatalogService_ListModules_EmptyChapter(t *testing.T) {
	repo := new(MockCatalogRepository)
	svc := NewCatalogService(repo, nil, testConfig())

	modules, err := svc.ListModules(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, modules)
	repo.AssertNotCalled(t, "ListModulesByChapter", mock.Anything, mock.Anything)
}

func TestCatalogService_GetChapterBySlug(t *testing.T) {
	repo := new(MockCatalogRepository)
	mockCache := new(MockCache)
	svc := NewCatalogService(repo, mockCache, testConfig())

	chapter := &domain.Chapter{ID: "c1", Slug: "cardio", Title: "Cardiologie"}
	modules := []domain.Module{{ID: "m1", ChapterID: "c1", Title: "ECG"}}

	mockCache.On("Get", mock.Anything, cache.ChapterKey("cardio")).Return("", domain.ErrCacheMiss).Once()
	repo.On("GetChapterBySlug", mock.Anything, "cardio").Return(chapter, nil).Once()
	mockCache.On("Set", mock.Anything, cache.ChapterKey("cardio"), mock.Anything, 10*time.Minute).Return(nil).Once()
	mockCache.On("Get", mock.Anything, cache.ModulesKey("c1")).Return("", domain.ErrCacheMiss).Once()
	repo.On("ListModulesByChapter", mock.Anything, "c1").Return(modules, nil).Once()
	mockCache.On("Set", mock.Anything, cache.ModulesKey("c1"), mock.Anything, 10*time.Minute).Return(nil).Once()

	detail, err := svc.GetChapterBySlug(context.Background(), "cardio")
	require.NoError(t, err)
	assert.Equal(t, *chapter, detail.Chapter)
	assert.Equal(t, modules, detail.Modules)
	repo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestCatalogService_GetChapterBySlug_NotFound(t *testing.T) {
	repo := new(MockCatalogRepository)
	mockCache := new(MockCache)
	svc := NewCatalogService(repo, mockCache, testConfig())

	mockCache.On("Get", mock.Anything, cache.ChapterKey("nope")).Return("", domain.ErrCacheMiss).Once()
	repo.On("GetChapterBySlug", mock.Anything, "nope").Return(nil, nil).Once()

	_, err := svc.GetChapterBySlug(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, &domain.DomainError{Code: domain.CodeChapterNotFound}))
	mockCache.AssertNotCalled(t, "Set", mock.Anything, cache.ChapterKey("nope"), mock.Anything, mock.Anything)
}

func TestCatalogService_InvalidateChapter(t *testing.T) {
	t.Run("Deletes list, detail and modules", func(t *testing.T) {
		mockCache := new(MockCache)
		svc := NewCatalogService(new(MockCatalogRepository), mockCache, testConfig())

		keys := []string{cache.ChaptersKey(), cache.ChapterKey("cardio"), cache.ModulesKey("c1")}
		mockCache.On("Delete", mock.Anything, keys).Return(nil).Once()

		require.NoError(t, svc.InvalidateChapter(context.Background(), "cardio", "c1"))
		mockCache.AssertExpectations(t)
	})

	t.Run("Cache error", func(t *testing.T) {
		mockCache := new(MockCache)
		svc := NewCatalogService(new(MockCatalogRepository), mockCache, testConfig())

		mockCache.On("Delete", mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()

		err := svc.InvalidateChapter(context.Background(), "cardio", "")
		assertCode(t, err, domain.CodeInternal)
		mockCache.AssertExpectations(t)
	})

	t.Run("Without cache", func(t *testing.T) {
		svc := NewCatalogService(new(MockCatalogRepository), nil, testConfig())
		assert.NoError(t, svc.InvalidateChapter(context.Background(), "cardio", "c1"))
	})
}
