package middleware_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"medqbank/internal/auth"
	"medqbank/internal/dto"
	"medqbank/internal/middleware"
	"medqbank/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct {
	mock.Mock
}

var _ service.AuthService = (*MockAuthService)(nil)

func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*auth.Principal, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Principal), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, principal *auth.Principal) error {
	args := m.Called(ctx, principal)
	return args.Error(0)
}

func (m *MockAuthService) GetProfile(ctx context.Context, principal *auth.Principal) (*dto.MeResponse, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MeResponse), args.Error(1)
}

// whoami echoes the user id seen by both the locals and the user context.
func whoami(c *fiber.Ctx) error {
	local, _ := c.Locals(middleware.UserIDKey).(string)
	return c.SendString(local + "|" + auth.UserID(c.UserContext()))
}

func doRequest(t *testing.T, app *fiber.App, header string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/test", nil)
	if header != "" {
		req.Header.Set(middleware.AuthorizationHeader, header)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name         string
		authHeader   string
		setupMock    func(m *MockAuthService)
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Missing header",
			authHeader:   "",
			expectedCode: fiber.StatusUnauthorized,
			expectedBody: "MISSING_AUTH_HEADER",
		},
		{
			name:         "Wrong scheme",
			authHeader:   "Basic abc",
			expectedCode: fiber.StatusUnauthorized,
			expectedBody: "INVALID_AUTH_SCHEME",
		},
		{
			name:         "Empty token",
			authHeader:   "Bearer ",
			expectedCode: fiber.StatusUnauthorized,
			expectedBody: "EMPTY_TOKEN",
		},
		{
			name:       "Invalid token",
			authHeader: "Bearer bad",
			setupMock: func(m *MockAuthService) {
				m.On("ValidateJWT", mock.Anything, "bad").Return(nil, service.ErrInvalidJWTToken).Once()
			},
			expectedCode: fiber.StatusUnauthorized,
			expectedBody: "INVALID_TOKEN",
		},
		{
			name:       "Valid token",
			authHeader: "Bearer good",
			setupMock: func(m *MockAuthService) {
				m.On("ValidateJWT", mock.Anything, "good").Return(&auth.Principal{UserID: "user123"}, nil).Once()
			},
			expectedCode: fiber.StatusOK,
			expectedBody: "user123|user123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockAuthService)
			if tt.setupMock != nil {
				tt.setupMock(mockSvc)
			}
			app := fiber.New()
			app.Get("/test", middleware.Protected(mockSvc), whoami)

			status, body := doRequest(t, app, tt.authHeader)
			assert.Equal(t, tt.expectedCode, status)
			assert.Contains(t, body, tt.expectedBody)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	tests := []struct {
		name         string
		authHeader   string
		setupMock    func(m *MockAuthService)
		expectedBody string
	}{
		{name: "No header", authHeader: "", expectedBody: "|"},
		{name: "Wrong scheme", authHeader: "Token abc", expectedBody: "|"},
		{
			name:       "Invalid token proceeds anonymously",
			authHeader: "Bearer bad",
			setupMock: func(m *MockAuthService) {
				m.On("ValidateJWT", mock.Anything, "bad").Return(nil, errors.New("expired")).Once()
			},
			expectedBody: "|",
		},
		{
			name:       "Valid token",
			authHeader: "Bearer good",
			setupMock: func(m *MockAuthService) {
				m.On("ValidateJWT", mock.Anything, "good").Return(&auth.Principal{UserID: "user123"}, nil).Once()
			},
			expectedBody: "user123|user123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockAuthService)
			if tt.setupMock != nil {
				tt.setupMock(mockSvc)
			}
			app := fiber.New()
			app.Get("/test", middleware.OptionalAuth(mockSvc), whoami)

			status, body := doRequest(t, app, tt.authHeader)
			assert.Equal(t, fiber.StatusOK, status)
			assert.Equal(t, tt.expectedBody, body)
			mockSvc.AssertExpectations(t)
		})
	}
}
