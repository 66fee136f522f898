package middleware

import (
	"strings"

	"medqbank/internal/auth"
	"medqbank/internal/logger"
	"medqbank/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID"    // Key for storing UserID in fiber.Ctx locals
	PrincipalKey        = "principal" // Key for storing *auth.Principal in fiber.Ctx locals
)

// attach makes the principal visible both to handlers (locals) and to the
// services they call (user context).
func attach(c *fiber.Ctx, principal *auth.Principal) {
	c.Locals(UserIDKey, principal.UserID)
	c.Locals(PrincipalKey, principal)
	c.SetUserContext(auth.NewContext(c.UserContext(), principal))
}

// bearerToken splits an Authorization header. ok is false when the scheme
// isn't Bearer; token may still be empty.
func bearerToken(header string) (token string, ok bool) {
	scheme, rest, _ := strings.Cut(strings.TrimSpace(header), " ")
	if !strings.EqualFold(scheme, strings.TrimSpace(BearerSchema)) {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// PrincipalFrom returns the principal set by Protected or OptionalAuth.
func PrincipalFrom(c *fiber.Ctx) (*auth.Principal, bool) {
	p, ok := c.Locals(PrincipalKey).(*auth.Principal)
	return p, ok && p != nil
}

// Protected is a middleware function that protects routes by requiring a valid JWT.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_HEADER",
				Message: "Authorization header is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_AUTH_SCHEME",
				Message: "Authorization scheme is not Bearer",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "EMPTY_TOKEN",
				Message: "Token is empty",
				Status:  fiber.StatusUnauthorized,
			})
		}

		principal, err := authService.ValidateJWT(c.UserContext(), tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
			})
		}

		attach(c, principal)
		return c.Next()
	}
}

// OptionalAuth authenticates the caller when a valid bearer token is sent and
// lets the request through anonymously otherwise.
func OptionalAuth(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Next()
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			logger.Get().Debug("OptionalAuth: Authorization scheme is not Bearer, proceeding as anonymous.")
			return c.Next()
		}

		if tokenString == "" {
			return c.Next()
		}

		principal, err := authService.ValidateJWT(c.UserContext(), tokenString)
		if err != nil {
			logger.Get().Debug("OptionalAuth: JWT validation failed, proceeding as anonymous.", zap.Error(err))
			return c.Next()
		}

		attach(c, principal)
		return c.Next()
	}
}
