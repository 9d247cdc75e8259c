package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Arriendos-api/internal/application/dto"
	"github.com/jhoicas/Arriendos-api/internal/application/usecase"
)

// RentalHandler CRUD de arriendos.
type RentalHandler struct {
	uc *usecase.RentalUseCase
}

// NewRentalHandler construye el handler.
func NewRentalHandler(uc *usecase.RentalUseCase) *RentalHandler {
	return &RentalHandler{uc: uc}
}

// Create godoc
// @Summary      Crear arriendo
// @Description  La maquinaria debe existir.
// @Tags         arriendos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RentalRequest  true  "Datos del arriendo"
// @Success      201   {object}  dto.RentalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/arriendos [post]
func (h *RentalHandler) Create(c *fiber.Ctx) error {
	var in dto.RentalRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar arriendos
// @Tags         arriendos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RentalResponse
// @Router       /api/arriendos [get]
func (h *RentalHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener arriendo
// @Tags         arriendos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.RentalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/arriendos/{id} [get]
func (h *RentalHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar arriendo
// @Tags         arriendos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "ID"
// @Param        body  body  dto.RentalRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.RentalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/arriendos/{id} [put]
func (h *RentalHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var in dto.RentalRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar arriendo
// @Tags         arriendos
// @Security     Bearer
// @Param        id   path  int  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/arriendos/{id} [delete]
func (h *RentalHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
