package service

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"medqbank/internal/config"
	"medqbank/internal/domain"
	"medqbank/internal/logger"

	"github.com/stretchr/testify/mock"
)

// --- MockCatalogRepository ---
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListChapters(ctx context.Context) ([]domain.Chapter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Chapter), args.Error(1)
}

func (m *MockCatalogRepository) GetChapterBySlug(ctx context.Context, slug string) (*domain.Chapter, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chapter), args.Error(1)
}

func (m *MockCatalogRepository) ListModulesByChapter(ctx context.Context, chapterID string) ([]domain.Module, error) {
	args := m.Called(ctx, chapterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Module), args.Error(1)
}

func (m *MockCatalogRepository) GetModule(ctx context.Context, moduleID string) (*domain.Module, error) {
	args := m.Called(ctx, moduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Module), args.Error(1)
}

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) FindMatchingIDs(ctx context.Context, criteria domain.SessionCriteria) ([]string, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockQuestionRepository) CountMatching(ctx context.Context, criteria domain.SessionCriteria) (int, error) {
	args := m.Called(ctx, criteria)
	return args.Int(0), args.Error(1)
}

// --- MockSessionRepository ---
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) CreateSession(ctx context.Context, session *domain.Session, questionIDs []string) error {
	args := m.Called(ctx, session, questionIDs)
	return args.Error(0)
}

func (m *MockSessionRepository) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) GetSessionQuestions(ctx context.Context, sessionID string) ([]domain.SessionQuestion, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SessionQuestion), args.Error(1)
}

// --- MockAnswerRepository ---
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) SaveAnswer(ctx context.Context, answer *domain.Answer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

func (m *MockAnswerRepository) ListAnswersBySession(ctx context.Context, sessionID string) ([]domain.Answer, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Answer), args.Error(1)
}

// --- MockProfileRepository ---
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetProfileByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
	Written []map[string]string
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockCache) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// HUpdate feeds the stored hash (first return value, may be nil) to fn and
// keeps whatever fn writes in Written.
func (m *MockCache) HUpdate(ctx context.Context, key string, expiration time.Duration, fn func(current map[string]string) (map[string]string, error)) error {
	args := m.Called(ctx, key, expiration)
	if err := args.Error(1); err != nil {
		return err
	}
	var current map[string]string
	if args.Get(0) != nil {
		current = args.Get(0).(map[string]string)
	}
	fields, err := fn(current)
	if err != nil {
		return err
	}
	if fields != nil {
		m.Written = append(m.Written, fields)
	}
	return args.Error(2)
}

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Env: "test", Level: "error"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{JWTSecret: "test-secret"},
		Cache: config.CacheConfig{
			CatalogTTL: 10 * time.Minute,
			SessionTTL: time.Hour,
			CursorTTL:  24 * time.Hour,
		},
		Session: config.SessionConfig{DefaultSize: 20, MaxSize: 100},
	}
}

// versionedHashCache is an in-memory domain.Cache whose HUpdate behaves like
// WATCH/EXEC: a write is rejected and retried when the hash changed after it
// was read. While gate is set, every first attempt waits on it, so callers all
// read the same version before any of them writes.
type versionedHashCache struct {
	mu       sync.Mutex
	hashes   map[string]map[string]string
	versions map[string]int
	gate     *sync.WaitGroup
}

func newVersionedHashCache(gate *sync.WaitGroup) *versionedHashCache {
	return &versionedHashCache{
		hashes:   map[string]map[string]string{},
		versions: map[string]int{},
		gate:     gate,
	}
}

func (c *versionedHashCache) Get(ctx context.Context, key string) (string, error) {
	return "", domain.ErrCacheMiss
}

func (c *versionedHashCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return nil
}

func (c *versionedHashCache) Delete(ctx context.Context, keys ...string) error { return nil }

func (c *versionedHashCache) Exists(ctx context.Context, key string) (bool, error) { return false, nil }

func (c *versionedHashCache) Ping(ctx context.Context) error { return nil }

func (c *versionedHashCache) HUpdate(ctx context.Context, key string, expiration time.Duration, fn func(current map[string]string) (map[string]string, error)) error {
	for attempt := 0; ; attempt++ {
		c.mu.Lock()
		var current map[string]string
		if stored := c.hashes[key]; len(stored) > 0 {
			current = make(map[string]string, len(stored))
			for k, v := range stored {
				current[k] = v
			}
		}
		seen := c.versions[key]
		c.mu.Unlock()

		if attempt == 0 && c.gate != nil {
			c.gate.Done()
			c.gate.Wait()
		}

		fields, err := fn(current)
		if err != nil || fields == nil {
			return err
		}

		c.mu.Lock()
		if c.versions[key] != seen {
			c.mu.Unlock()
			continue
		}
		c.hashes[key] = fields
		c.versions[key]++
		c.mu.Unlock()
		return nil
	}
}
