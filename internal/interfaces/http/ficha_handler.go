package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kivo-shop/kivo-api/internal/application/dto"
	"github.com/kivo-shop/kivo-api/internal/application/loyalty"
	"github.com/kivo-shop/kivo-api/internal/domain"
)

// FichaHandler maneja el ciclo de vida de las fichas de fidelidad.
type FichaHandler struct {
	uc *loyalty.FichaUseCase
}

// NewFichaHandler construye el handler de fichas.
func NewFichaHandler(uc *loyalty.FichaUseCase) *FichaHandler {
	return &FichaHandler{uc: uc}
}

// Generate godoc
// @Summary      Generar la ficha de un pedido (admin)
// @Tags         fichas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.FichaCodeRequest  true  "codigo_compra"
// @Success      201  {object}  dto.GenerateFichaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/fichas/generar [post]
func (h *FichaHandler) Generate(c *fiber.Ctx) error {
	var in dto.FichaCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Generate(in.PurchaseCode)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "codigo_compra es requerido"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "FICHA_EXISTS", Message: "Ya existe una ficha para este pedido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Validate godoc
// @Summary      Validar la ficha de un código de compra
// @Tags         fichas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FichaCodeRequest  true  "codigo_compra"
// @Success      200  {object}  dto.FichaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fichas/validar [post]
func (h *FichaHandler) Validate(c *fiber.Ctx) error {
	var in dto.FichaCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Validate(in.PurchaseCode)
	if err != nil {
		return fichaError(c, err)
	}
	return c.JSON(out)
}

// Redeem godoc
// @Summary      Canjear una ficha (vía QR)
// @Tags         fichas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FichaCodeRequest  true  "codigo_compra"
// @Success      200  {object}  dto.RedeemFichaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fichas/canjear [post]
func (h *FichaHandler) Redeem(c *fiber.Ctx) error {
	var in dto.FichaCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Redeem(in.PurchaseCode)
	if err != nil {
		return fichaError(c, err)
	}
	return c.JSON(out)
}

// RedeemManual godoc
// @Summary      Canjear una ficha manualmente (admin)
// @Tags         fichas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.FichaCodeRequest  true  "codigo_compra"
// @Success      200  {object}  dto.RedeemFichaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/fichas/canjear-manual [post]
func (h *FichaHandler) RedeemManual(c *fiber.Ctx) error {
	var in dto.FichaCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RedeemManual(in.PurchaseCode)
	if err != nil {
		return fichaError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de pedidos con su ficha (admin)
// @Tags         fichas
// @Produce      json
// @Security     BearerAuth
// @Param        estado    query  string  false  "activo | canjeado | expirado"
// @Param        fecha     query  string  false  "YYYY-MM-DD"
// @Param        busqueda  query  string  false  "código de compra o nombre de cliente"
// @Success      200  {array}  dto.FichaHistoryEntryResponse
// @Router       /api/admin/fichas [get]
func (h *FichaHandler) History(c *fiber.Ctx) error {
	var in dto.FichaHistoryRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.History(in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// fichaError mapeo común de los errores de dominio de la ficha.
func fichaError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ficha no encontrada"})
	case domain.ErrFichaUsed:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "FICHA_USED", Message: "la ficha ya fue canjeada o está expirada"})
	case domain.ErrFichaExpired:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "FICHA_EXPIRED", Message: "la ficha ha expirado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
