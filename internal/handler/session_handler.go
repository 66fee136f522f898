package handler

import (
	"medqbank/internal/domain"
	"medqbank/internal/dto"
	"medqbank/internal/middleware"
	"medqbank/internal/player"
	"medqbank/internal/service"
	"medqbank/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler drives the session player.
type SessionHandler struct {
	service   service.SessionService
	validator *validation.Validator
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(service service.SessionService, validator *validation.Validator) *SessionHandler {
	return &SessionHandler{service: service, validator: validator}
}

func sessionIDFrom(c *fiber.Ctx) string {
	if id, ok := c.Locals(middleware.ValidatedSessionIDKey).(string); ok {
		return id
	}
	return c.Params("id")
}

func (h *SessionHandler) respondView(c *fiber.Ctx, view player.View, err error) error {
	if err != nil {
		return err
	}
	return c.JSON(toPlayerViewResponse(view))
}

// GetView godoc
// @Summary Current question of a session
// @Description Returns the player view at the caller's cursor
// @Tags session
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.PlayerViewResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /qbank/sessions/{id} [get]
func (h *SessionHandler) GetView(c *fiber.Ctx) error {
	view, err := h.service.View(c.UserContext(), sessionIDFrom(c))
	return h.respondView(c, view, err)
}

// GetSession godoc
// @Summary Session details
// @Description Returns the bank, the filter criteria and the question count of a session
// @Tags session
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /qbank/sessions/{id}/meta [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.service.GetSession(c.UserContext(), sessionIDFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(toSessionResponse(session))
}

// GetQuestions godoc
// @Summary Ordered questions of a session
// @Description Returns every question of the session in order, loaded in a single query
// @Tags session
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionQuestionsResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /qbank/sessions/{id}/questions [get]
func (h *SessionHandler) GetQuestions(c *fiber.Ctx) error {
	sessionID := sessionIDFrom(c)
	questions, err := h.service.LoadQuestions(c.UserContext(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(toSessionQuestionsResponse(sessionID, questions))
}

// Next godoc
// @Summary Next question
// @Description Moves to the next question; a no-op on the last one
// @Tags session
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.PlayerViewResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /qbank/sessions/{id}/next [post]
func (h *SessionHandler) Next(c *fiber.Ctx) error {
	view, err := h.service.Next(c.UserContext(), sessionIDFrom(c))
	return h.respondView(c, view, err)
}

// Prev godoc
// @Summary Previous question
// @Description Moves to the previous question; a no-op on the first one
// @Tags session
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.PlayerViewResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /qbank/sessions/{id}/prev [post]
func (h *SessionHandler) Prev(c *fiber.Ctx) error {
	view, err := h.service.Prev(c.UserContext(), sessionIDFrom(c))
	return h.respondView(c, view, err)
}

// Reveal godoc
// @Summary Reveal the correction
// @Description Shows the explanation and correct choice of the current question
// @Tags session
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.PlayerViewResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /qbank/sessions/{id}/reveal [post]
func (h *SessionHandler) Reveal(c *fiber.Ctx) error {
	view, err := h.service.Reveal(c.UserContext(), sessionIDFrom(c))
	return h.respondView(c, view, err)
}

// Seek godoc
// @Summary Jump to a question
// @Description Moves the cursor to index, clamped to the session
// @Tags session
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SeekRequest true "Target index"
// @Success 200 {object} dto.PlayerViewResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /qbank/sessions/{id}/cursor [put]
func (h *SessionHandler) Seek(c *fiber.Ctx) error {
	var req dto.SeekRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateStruct(&req); len(errs) > 0 {
		return errs
	}
	view, err := h.service.Seek(c.UserContext(), sessionIDFrom(c), *req.Index)
	return h.respondView(c, view, err)
}

// Answer godoc
// @Summary Answer the current question
// @Description Scores the choice, reveals the correction and records the answer for signed-in users
// @Tags session
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Param request body dto.AnswerRequest true "Selected choice"
// @Success 200 {object} dto.AnswerResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /qbank/sessions/{id}/answers [post]
func (h *SessionHandler) Answer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateStruct(&req); len(errs) > 0 {
		return errs
	}

	outcome, err := h.service.Answer(c.UserContext(), sessionIDFrom(c), req.ChoiceID)
	if err != nil {
		return err
	}
	return c.JSON(dto.AnswerResponse{
		QuestionID:      outcome.Result.QuestionID,
		ChoiceID:        outcome.Result.ChoiceID,
		CorrectChoiceID: outcome.Result.CorrectChoiceID,
		IsCorrect:       outcome.Result.IsCorrect,
		Recorded:        outcome.Recorded,
		View:            toPlayerViewResponse(outcome.View),
	})
}
