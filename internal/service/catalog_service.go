package service

import (
	"context"

	"medqbank/internal/cache"
	"medqbank/internal/config"
	"medqbank/internal/domain"
	"medqbank/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ChapterDetail is a chapter with its ordered modules.
type ChapterDetail struct {
	Chapter domain.Chapter
	Modules []domain.Module
}

// CatalogService serves the chapter/module reference data.
type CatalogService interface {
	ListChapters(ctx context.Context) ([]domain.Chapter, error)
	ListModules(ctx context.Context, chapterID string) ([]domain.Module, error)
	GetChapterBySlug(ctx context.Context, slug string) (*ChapterDetail, error)
	InvalidateChapter(ctx context.Context, slug, chapterID string) error
}

type catalogService struct {
	repo  domain.CatalogRepository
	cache domain.Cache
	ttl   config.CacheConfig
	group singleflight.Group
}

// NewCatalogService creates a catalog service. cache may be nil, in which
// case every call goes to the repository.
func NewCatalogService(repo domain.CatalogRepository, cache domain.Cache, cfg *config.Config) CatalogService {
	return &catalogService{repo: repo, cache: cache, ttl: cfg.Cache}
}

func (s *catalogService) ListChapters(ctx context.Context) ([]domain.Chapter, error) {
	key := cache.ChaptersKey()

	var chapters []domain.Chapter
	if getCachedJSON(ctx, s.cache, key, &chapters) {
		return chapters, nil
	}

	chapters, err := loadShared(ctx, &s.group, key, func(ctx context.Context) ([]domain.Chapter, error) {
		chapters, err := s.repo.ListChapters(ctx)
		if err != nil {
			return nil, err
		}
		setCachedJSON(ctx, s.cache, key, chapters, s.ttl.CatalogTTL)
		return chapters, nil
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to list chapters", err)
	}
	return chapters, nil
}

func (s *catalogService) ListModules(ctx context.Context, chapterID string) ([]domain.Module, error) {
	if chapterID == "" {
		return []domain.Module{}, nil
	}
	key := cache.ModulesKey(chapterID)

	var modules []domain.Module
	if getCachedJSON(ctx, s.cache, key, &modules) {
		return modules, nil
	}

	modules, err := loadShared(ctx, &s.group, key, func(ctx context.Context) ([]domain.Module, error) {
		modules, err := s.repo.ListModulesByChapter(ctx, chapterID)
		if err != nil {
			return nil, err
		}
		setCachedJSON(ctx, s.cache, key, modules, s.ttl.CatalogTTL)
		return modules, nil
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to list modules", err)
	}
	return modules, nil
}

func (s *catalogService) GetChapterBySlug(ctx context.Context, slug string) (*ChapterDetail, error) {
	key := cache.ChapterKey(slug)

	var chapter domain.Chapter
	if !getCachedJSON(ctx, s.cache, key, &chapter) {
		found, err := loadShared(ctx, &s.group, key, func(ctx context.Context) (*domain.Chapter, error) {
			found, err := s.repo.GetChapterBySlug(ctx, slug)
			if err != nil || found == nil {
				return found, err
			}
			setCachedJSON(ctx, s.cache, key, found, s.ttl.CatalogTTL)
			return found, nil
		})
		if err != nil {
			return nil, domain.NewInternalError("Failed to get chapter", err)
		}
		if found == nil {
			logger.Get().Debug("Chapter not found", zap.String("slug", slug))
			return nil, domain.NewChapterNotFoundError(slug)
		}
		chapter = *found
	}

	modules, err := s.ListModules(ctx, chapter.ID)
	if err != nil {
		return nil, err
	}
	return &ChapterDetail{Chapter: chapter, Modules: modules}, nil
}

// InvalidateChapter drops the cached chapter list together with the
// chapter's detail and module entries. Used after the catalog changes
// outside the API, e.g. by the seeder.
func (s *catalogService) InvalidateChapter(ctx context.Context, slug, chapterID string) error {
	if s.cache == nil {
		return nil
	}
	keys := []string{cache.ChaptersKey(), cache.ChapterKey(slug)}
	if chapterID != "" {
		keys = append(keys, cache.ModulesKey(chapterID))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		return domain.NewInternalError("Failed to invalidate catalog cache", err)
	}
	logger.Get().Debug("Catalog cache invalidated", zap.String("slug", slug), zap.Strings("keys", keys))
	return nil
}
