package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kivo-shop/kivo-api/internal/application/cart"
	"github.com/kivo-shop/kivo-api/internal/application/dto"
	"github.com/kivo-shop/kivo-api/internal/domain"
)

// CartHandler maneja el carrito anónimo por sesión.
type CartHandler struct {
	uc *cart.CartUseCase
}

// NewCartHandler construye el handler del carrito.
func NewCartHandler(uc *cart.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// List godoc
// @Summary      Obtener el carrito de una sesión
// @Tags         carrito
// @Produce      json
// @Param        sesionId  path  string  true  "ID de sesión"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/carrito/{sesionId} [get]
func (h *CartHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Params("sesionId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Agregar producto al carrito
// @Tags         carrito
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartItemRequest  true  "sesion_id, producto_id, cantidad"
// @Success      201  {object}  dto.CartItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carrito [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Add(in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sesion_id, producto_id y cantidad > 0 son requeridos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado o inactivo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Fijar la cantidad de una línea del carrito
// @Tags         carrito
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la línea"
// @Param        body  body  dto.UpdateCartItemRequest  true  "cantidad (<= 0 elimina la línea)"
// @Success      200  {object}  dto.CartItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carrito/{id} [patch]
func (h *CartHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetQuantity(c.Params("id"), in.Quantity)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "línea de carrito no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.JSON(dto.MessageResponse{Message: "Producto eliminado del carrito"})
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Eliminar una línea del carrito
// @Tags         carrito
// @Produce      json
// @Param        id  path  string  true  "ID de la línea"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/carrito/{id} [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "Producto eliminado del carrito"})
}

// Clear godoc
// @Summary      Vaciar el carrito de una sesión
// @Tags         carrito
// @Produce      json
// @Param        sesionId  path  string  true  "ID de sesión"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/carrito/sesion/{sesionId} [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.Params("sesionId")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "Carrito vaciado"})
}
