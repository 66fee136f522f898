package handler

import (
	"net/url"

	"medqbank/internal/domain"
	"medqbank/internal/dto"
	"medqbank/internal/filter"
	"medqbank/internal/logger"
	"medqbank/internal/middleware"
	"medqbank/internal/service"
	"medqbank/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QbankHandler serves the bank list, the filter panel and session creation.
type QbankHandler struct {
	catalog   service.CatalogService
	sessions  service.SessionService
	validator *validation.Validator
}

// NewQbankHandler creates a new QbankHandler instance
func NewQbankHandler(catalog service.CatalogService, sessions service.SessionService, validator *validation.Validator) *QbankHandler {
	return &QbankHandler{catalog: catalog, sessions: sessions, validator: validator}
}

func bankFrom(c *fiber.Ctx) (domain.Bank, error) {
	if bank, ok := c.Locals(middleware.ValidatedBankKey).(domain.Bank); ok {
		return bank, nil
	}
	return domain.ParseBank(c.Params("bank"))
}

// ListBanks godoc
// @Summary List question banks
// @Description Returns the available question banks
// @Tags qbank
// @Produce json
// @Success 200 {array} dto.BankResponse
// @Router /qbank [get]
func (h *QbankHandler) ListBanks(c *fiber.Ctx) error {
	banks := make([]dto.BankResponse, len(domain.Banks))
	for i, b := range domain.Banks {
		banks[i] = toBankResponse(b)
	}
	return c.JSON(banks)
}

// GetFilters godoc
// @Summary Filter panel state
// @Description Returns chapters, the modules of the selected chapter, the current selection and a preview of how many questions match
// @Tags qbank
// @Produce json
// @Param bank path string true "Bank (general or residanat)"
// @Param chapter query string false "Chapter ID"
// @Param module query string false "Module ID"
// @Param year query string false "Year 1-6 or all"
// @Param difficulty query string false "Difficulty 1-5 or all"
// @Param unseen query string false "1 to keep only unseen questions"
// @Success 200 {object} dto.FilterStateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /qbank/{bank}/filters [get]
func (h *QbankHandler) GetFilters(c *fiber.Ctx) error {
	bank, err := bankFrom(c)
	if err != nil {
		return err
	}
	query, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("query", string(c.Request().URI().QueryString()))}
	}

	ctx := c.UserContext()
	panel := filter.NewPanel(bank, h.catalog)
	defer panel.Close()

	if err := panel.ApplyQuery(query); err != nil {
		return err
	}
	panel.LoadChapters(ctx, h.catalog)
	panel.Refresh(ctx)

	resp := toFilterStateResponse(panel.State())

	count, err := panel.CountMatching(ctx, h.sessions)
	if err != nil {
		// The preview is advisory; the panel still renders without it.
		logger.Get().Debug("Filter preview count unavailable", zap.String("bank", string(bank)), zap.Error(err))
	} else {
		resp.MatchingCount = &count
	}
	return c.JSON(resp)
}

// CreateSession godoc
// @Summary Start a session
// @Description Materialises a session from the filter selection: matching questions are shuffled and the first count are kept
// @Tags qbank
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param bank path string true "Bank (general or residanat)"
// @Param request body dto.CreateSessionRequest false "Filters"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /qbank/{bank}/sessions [post]
func (h *QbankHandler) CreateSession(c *fiber.Ctx) error {
	bank, err := bankFrom(c)
	if err != nil {
		return err
	}

	var req dto.CreateSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return domain.NewInvalidInputError("Invalid request body")
		}
	}
	if errs := h.validator.ValidateStruct(&req); len(errs) > 0 {
		return errs
	}

	ctx := c.UserContext()
	panel := filter.NewPanel(bank, h.catalog)
	defer panel.Close()

	if req.ChapterID != "" {
		panel.SelectChapter(ctx, req.ChapterID)
		if loadErr := panel.LoadError(); loadErr != nil {
			return domain.NewInternalError("Failed to load modules", loadErr)
		}
	}
	if err := panel.SelectModule(req.ModuleID); err != nil {
		return err
	}
	if err := panel.SetYear(req.Year); err != nil {
		return err
	}
	if err := panel.SetDifficulty(req.Difficulty); err != nil {
		return err
	}
	panel.SetUnseenOnly(req.UnseenOnly)
	panel.SetCount(req.Count)

	session, err := panel.StartSession(ctx, h.sessions)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toSessionResponse(session))
}
