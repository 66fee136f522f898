package handler_test

import (
	"context"
	"errors"

	"medqbank/internal/auth"
	"medqbank/internal/domain"
	"medqbank/internal/dto"
	"medqbank/internal/handler"
	"medqbank/internal/middleware"
	"medqbank/internal/player"
	"medqbank/internal/service"
	"medqbank/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// --- Manual Mocks ---

type MockCatalogService struct {
	ListChaptersFunc      func(ctx context.Context) ([]domain.Chapter, error)
	ListModulesFunc       func(ctx context.Context, chapterID string) ([]domain.Module, error)
	GetChapterBySlugFunc  func(ctx context.Context, slug string) (*service.ChapterDetail, error)
	InvalidateChapterFunc func(ctx context.Context, slug, chapterID string) error
}

func (m *MockCatalogService) ListChapters(ctx context.Context) ([]domain.Chapter, error) {
	if m.ListChaptersFunc != nil {
		return m.ListChaptersFunc(ctx)
	}
	panic("MockCatalogService.ListChaptersFunc not implemented")
}

func (m *MockCatalogService) ListModules(ctx context.Context, chapterID string) ([]domain.Module, error) {
	if m.ListModulesFunc != nil {
		return m.ListModulesFunc(ctx, chapterID)
	}
	panic("MockCatalogService.ListModulesFunc not implemented")
}

func (m *MockCatalogService) GetChapterBySlug(ctx context.Context, slug string) (*service.ChapterDetail, error) {
	if m.GetChapterBySlugFunc != nil {
		return m.GetChapterBySlugFunc(ctx, slug)
	}
	panic("MockCatalogService.GetChapterBySlugFunc not implemented")
}

func (m *MockCatalogService) InvalidateChapter(ctx context.Context, slug, chapterID string) error {
	if m.InvalidateChapterFunc != nil {
		return m.InvalidateChapterFunc(ctx, slug, chapterID)
	}
	return nil
}

type MockSessionService struct {
	CreateSessionFunc func(ctx context.Context, criteria domain.SessionCriteria) (*domain.Session, error)
	CountMatchingFunc func(ctx context.Context, criteria domain.SessionCriteria) (int, error)
	GetSessionFunc    func(ctx context.Context, sessionID string) (*domain.Session, error)
	LoadQuestionsFunc func(ctx context.Context, sessionID string) ([]domain.SessionQuestion, error)
	ViewFunc          func(ctx context.Context, sessionID string) (player.View, error)
	NextFunc          func(ctx context.Context, sessionID string) (player.View, error)
	PrevFunc          func(ctx context.Context, sessionID string) (player.View, error)
	SeekFunc          func(ctx context.Context, sessionID string, index int) (player.View, error)
	RevealFunc        func(ctx context.Context, sessionID string) (player.View, error)
	AnswerFunc        func(ctx context.Context, sessionID, choiceID string) (*service.AnswerOutcome, error)
}

func (m *MockSessionService) CreateSession(ctx context.Context, criteria domain.SessionCriteria) (*domain.Session, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, criteria)
	}
	panic("MockSessionService.CreateSessionFunc not implemented")
}

func (m *MockSessionService) CountMatching(ctx context.Context, criteria domain.SessionCriteria) (int, error) {
	if m.CountMatchingFunc != nil {
		return m.CountMatchingFunc(ctx, criteria)
	}
	return 0, errors.New("count not configured")
}

func (m *MockSessionService) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	panic("MockSessionService.GetSessionFunc not implemented")
}

func (m *MockSessionService) LoadQuestions(ctx context.Context, sessionID string) ([]domain.SessionQuestion, error) {
	if m.LoadQuestionsFunc != nil {
		return m.LoadQuestionsFunc(ctx, sessionID)
	}
	panic("MockSessionService.LoadQuestionsFunc not implemented")
}

func (m *MockSessionService) View(ctx context.Context, sessionID string) (player.View, error) {
	if m.ViewFunc != nil {
		return m.ViewFunc(ctx, sessionID)
	}
	panic("MockSessionService.ViewFunc not implemented")
}

func (m *MockSessionService) Next(ctx context.Context, sessionID string) (player.View, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx, sessionID)
	}
	panic("MockSessionService.NextFunc not implemented")
}

func (m *MockSessionService) Prev(ctx context.Context, sessionID string) (player.View, error) {
	if m.PrevFunc != nil {
		return m.PrevFunc(ctx, sessionID)
	}
	panic("MockSessionService.PrevFunc not implemented")
}

func (m *MockSessionService) Seek(ctx context.Context, sessionID string, index int) (player.View, error) {
	if m.SeekFunc != nil {
		return m.SeekFunc(ctx, sessionID, index)
	}
	panic("MockSessionService.SeekFunc not implemented")
}

func (m *MockSessionService) Reveal(ctx context.Context, sessionID string) (player.View, error) {
	if m.RevealFunc != nil {
		return m.RevealFunc(ctx, sessionID)
	}
	panic("MockSessionService.RevealFunc not implemented")
}

func (m *MockSessionService) Answer(ctx context.Context, sessionID, choiceID string) (*service.AnswerOutcome, error) {
	if m.AnswerFunc != nil {
		return m.AnswerFunc(ctx, sessionID, choiceID)
	}
	panic("MockSessionService.AnswerFunc not implemented")
}

type MockAuthService struct {
	ValidateJWTFunc func(ctx context.Context, token string) (*auth.Principal, error)
	LogoutFunc      func(ctx context.Context, principal *auth.Principal) error
	GetProfileFunc  func(ctx context.Context, principal *auth.Principal) (*dto.MeResponse, error)
}

func (m *MockAuthService) ValidateJWT(ctx context.Context, token string) (*auth.Principal, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, token)
	}
	return nil, service.ErrInvalidJWTToken
}

func (m *MockAuthService) Logout(ctx context.Context, principal *auth.Principal) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, principal)
	}
	panic("MockAuthService.LogoutFunc not implemented")
}

func (m *MockAuthService) GetProfile(ctx context.Context, principal *auth.Principal) (*dto.MeResponse, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, principal)
	}
	panic("MockAuthService.GetProfileFunc not implemented")
}

const (
	testSessionID = "01HZX4ABCDEFGHJKMNPQRSTVWX"
	testToken     = "good-token"
	testUserID    = "6f1d2c9e-2b1a-4f7e-9a55-0d8c3e4b7a10"
)

// tokenAuth accepts testToken as testUserID and rejects everything else.
func tokenAuth() *MockAuthService {
	return &MockAuthService{
		ValidateJWTFunc: func(ctx context.Context, token string) (*auth.Principal, error) {
			if token == testToken {
				return &auth.Principal{UserID: testUserID, Email: "amel@example.com", TokenID: "jti-1"}, nil
			}
			return nil, service.ErrInvalidJWTToken
		},
	}
}

// newTestApp mounts the real routes over the given mocks.
func newTestApp(catalog *MockCatalogService, sessions *MockSessionService, authSvc *MockAuthService) *fiber.App {
	if catalog == nil {
		catalog = &MockCatalogService{}
	}
	if sessions == nil {
		sessions = &MockSessionService{}
	}
	if authSvc == nil {
		authSvc = tokenAuth()
	}
	v := validation.NewValidator()

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.SetupRoutes(app, handler.Handlers{
		Catalog:    handler.NewCatalogHandler(catalog),
		Qbank:      handler.NewQbankHandler(catalog, sessions, v),
		Session:    handler.NewSessionHandler(sessions, v),
		Auth:       handler.NewAuthHandler(authSvc),
		Validation: middleware.NewValidationMiddleware(v),
	}, authSvc)
	return app
}
