package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kivo-shop/kivo-api/internal/application/catalog"
	"github.com/kivo-shop/kivo-api/internal/application/dto"
)

// CategoryHandler maneja el listado público de categorías.
type CategoryHandler struct {
	uc *catalog.CategoryUseCase
}

// NewCategoryHandler construye el handler de categorías.
func NewCategoryHandler(uc *catalog.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar categorías activas
// @Tags         categorias
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categorias [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListActive()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
