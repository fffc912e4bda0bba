package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pampazon/wms-api/internal/application/despacho"
	"github.com/pampazon/wms-api/internal/application/dto"
)

// DespachoHandler maneja el protocolo de despacho sobre HTTP (protegido).
type DespachoHandler struct {
	uc *despacho.UseCase
}

// NewDespachoHandler construye el handler.
func NewDespachoHandler(uc *despacho.UseCase) *DespachoHandler {
	return &DespachoHandler{uc: uc}
}

// Create godoc
// @Summary      Iniciar despacho
// @Tags         despachos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDespachoRequest  true  "Datos del despacho"
// @Success      201   {object}  dto.DespachoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/despachos [post]
func (h *DespachoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDespachoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener despacho por ID
// @Tags         despachos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del despacho"
// @Success      200  {object}  dto.DespachoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/despachos/{id} [get]
func (h *DespachoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "despacho no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar despachos
// @Tags         despachos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DespachoResponse
// @Router       /api/despachos [get]
func (h *DespachoHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AgregarOrden godoc
// @Summary      Asociar una orden preparada al despacho
// @Tags         despachos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del despacho"
// @Param        body  body  dto.AgregarOrdenRequest  true  "Número de la orden"
// @Success      200   {object}  dto.DespachoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/despachos/{id}/ordenes [post]
func (h *DespachoHandler) AgregarOrden(c *fiber.Ctx) error {
	var in dto.AgregarOrdenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.NumeroOrden == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "numero_orden es requerido"})
	}
	out, err := h.uc.AgregarOrden(c.Context(), c.Params("id"), in.NumeroOrden)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Finalizar godoc
// @Summary      Finalizar despacho (las órdenes preparadas pasan a despachadas)
// @Tags         despachos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del despacho"
// @Success      200  {object}  dto.DespachoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/despachos/{id}/finalizar [post]
func (h *DespachoHandler) Finalizar(c *fiber.Ctx) error {
	out, err := h.uc.Finalizar(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
