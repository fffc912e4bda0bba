package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pampazon/wms-api/internal/application/dto"
	"github.com/pampazon/wms-api/internal/application/ingreso"
)

// RemitoHandler maneja el protocolo de ingreso sobre HTTP (protegido).
type RemitoHandler struct {
	uc *ingreso.UseCase
}

// NewRemitoHandler construye el handler.
func NewRemitoHandler(uc *ingreso.UseCase) *RemitoHandler {
	return &RemitoHandler{uc: uc}
}

// Create godoc
// @Summary      Crear remito pendiente de ingreso
// @Tags         remitos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRemitoRequest  true  "Remito con líneas declaradas"
// @Success      201   {object}  dto.RemitoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/remitos [post]
func (h *RemitoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRemitoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateRemito(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener remito por ID
// @Tags         remitos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del remito"
// @Success      200  {object}  dto.RemitoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/remitos/{id} [get]
func (h *RemitoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "remito no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar remitos
// @Tags         remitos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RemitoResponse
// @Router       /api/remitos [get]
func (h *RemitoHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Ingresar godoc
// @Summary      Confirmar el ingreso físico del remito (acredita stock)
// @Tags         remitos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del remito"
// @Param        body  body  dto.IngresarRemitoRequest  true  "Líneas confirmadas"
// @Success      200   {object}  dto.RemitoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/remitos/{id}/ingresar [post]
func (h *RemitoHandler) Ingresar(c *fiber.Ctx) error {
	var in dto.IngresarRemitoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.IngresarMercaderia(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Rechazar godoc
// @Summary      Rechazar el remito (no toca el stock)
// @Tags         remitos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del remito"
// @Success      200  {object}  dto.RemitoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/remitos/{id}/rechazar [post]
func (h *RemitoHandler) Rechazar(c *fiber.Ctx) error {
	out, err := h.uc.Rechazar(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
