package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kivo-shop/kivo-api/internal/application/catalog"
	"github.com/kivo-shop/kivo-api/internal/application/dto"
	"github.com/kivo-shop/kivo-api/internal/domain"
)

// PromotionHandler maneja el CRUD de promociones del panel de administración.
type PromotionHandler struct {
	uc *catalog.PromotionUseCase
}

// NewPromotionHandler construye el handler de promociones.
func NewPromotionHandler(uc *catalog.PromotionUseCase) *PromotionHandler {
	return &PromotionHandler{uc: uc}
}

// ListAdmin godoc
// @Summary      Listar promociones (admin)
// @Tags         promociones
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.PromotionResponse
// @Router       /api/promociones/admin [get]
func (h *PromotionHandler) ListAdmin(c *fiber.Ctx) error {
	out, err := h.uc.ListAdmin()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear promoción (admin)
// @Tags         promociones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreatePromotionRequest  true  "promoción"
// @Success      201  {object}  dto.PromotionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/promociones [post]
func (h *PromotionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePromotionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "porcentaje en [0,100] y fechas coherentes requeridos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar promoción (admin)
// @Tags         promociones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "ID de la promoción"
// @Param        body  body  dto.UpdatePromotionRequest  true  "campos a actualizar"
// @Success      200  {object}  dto.PromotionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/promociones/{id} [patch]
func (h *PromotionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePromotionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "porcentaje en [0,100] y fechas coherentes requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "promoción no encontrada"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar promoción (admin)
// @Tags         promociones
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la promoción"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/promociones/{id} [delete]
func (h *PromotionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "Promoción eliminada"})
}
