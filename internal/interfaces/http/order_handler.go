package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kivo-shop/kivo-api/internal/application/checkout"
	"github.com/kivo-shop/kivo-api/internal/application/dto"
	"github.com/kivo-shop/kivo-api/internal/domain"
)

// OrderHandler maneja la creación y consulta de pedidos.
type OrderHandler struct {
	uc *checkout.CheckoutUseCase
}

// NewOrderHandler construye el handler de pedidos.
func NewOrderHandler(uc *checkout.CheckoutUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido desde el carrito de la sesión
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "sesion_id y datos del cliente"
// @Success      201  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/pedidos [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateOrder(c.UserContext(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sesion_id y nombre_cliente son requeridos"})
		}
		if err == domain.ErrEmptyCart {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: "el carrito está vacío"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto del carrito no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByCode godoc
// @Summary      Consultar pedido por código de compra
// @Tags         pedidos
// @Produce      json
// @Param        codigo  path  string  true  "código KIVO-XXXXXXXX"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{codigo} [get]
func (h *OrderHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.Params("codigo"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
	}
	return c.JSON(out)
}
