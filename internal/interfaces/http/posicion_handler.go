package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pampazon/wms-api/internal/application/dto"
	"github.com/pampazon/wms-api/internal/application/usecase"
)

// PosicionHandler maneja las peticiones HTTP para Posicion (protegido).
type PosicionHandler struct {
	uc *usecase.PosicionUseCase
}

// NewPosicionHandler construye el handler.
func NewPosicionHandler(uc *usecase.PosicionUseCase) *PosicionHandler {
	return &PosicionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear posición
// @Tags         posiciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePosicionRequest  true  "Datos de la posición"
// @Success      201   {object}  dto.PosicionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/posiciones [post]
func (h *PosicionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePosicionRequest
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
// @Summary      Obtener posición por ID
// @Tags         posiciones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la posición"
// @Success      200  {object}  dto.PosicionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/posiciones/{id} [get]
func (h *PosicionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "posición no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar posiciones
// @Tags         posiciones
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PosicionResponse
// @Router       /api/posiciones [get]
func (h *PosicionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar posición
// @Tags         posiciones
// @Security     Bearer
// @Param        id  path  string  true  "ID de la posición"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/posiciones/{id} [delete]
func (h *PosicionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
