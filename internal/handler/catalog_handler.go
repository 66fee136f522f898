package handler

import (
	"medqbank/internal/dto"
	"medqbank/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves chapters and modules.
type CatalogHandler struct {
	service service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler instance
func NewCatalogHandler(service service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListChapters godoc
// @Summary List chapters
// @Description Returns every chapter ordered by sort order
// @Tags catalog
// @Produce json
// @Success 200 {array} dto.ChapterResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /chapters [get]
func (h *CatalogHandler) ListChapters(c *fiber.Ctx) error {
	chapters, err := h.service.ListChapters(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(toChapterResponses(chapters))
}

// GetChapter godoc
// @Summary Get a chapter
// @Description Returns a chapter and its modules
// @Tags catalog
// @Produce json
// @Param slug path string true "Chapter slug"
// @Success 200 {object} dto.ChapterDetailResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /chapters/{slug} [get]
func (h *CatalogHandler) GetChapter(c *fiber.Ctx) error {
	detail, err := h.service.GetChapterBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(dto.ChapterDetailResponse{
		ChapterResponse: toChapterResponse(detail.Chapter),
		Modules:         toModuleResponses(detail.Modules),
	})
}

// ListModules godoc
// @Summary List modules of a chapter
// @Description Returns the modules of a chapter ordered by sort order; an empty chapter_id yields an empty list
// @Tags catalog
// @Produce json
// @Param chapter_id query string false "Chapter ID"
// @Success 200 {array} dto.ModuleResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /modules [get]
func (h *CatalogHandler) ListModules(c *fiber.Ctx) error {
	modules, err := h.service.ListModules(c.UserContext(), c.Query("chapter_id"))
	if err != nil {
		return err
	}
	return c.JSON(toModuleResponses(modules))
}
