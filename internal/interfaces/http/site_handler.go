package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Arriendos-api/internal/application/dto"
	"github.com/jhoicas/Arriendos-api/internal/application/usecase"
)

// SiteHandler CRUD de obras.
type SiteHandler struct {
	uc *usecase.SiteUseCase
}

func NewSiteHandler(uc *usecase.SiteUseCase) *SiteHandler {
	return &SiteHandler{uc: uc}
}

// Create godoc
// @Summary      Crear obra
// @Tags         obras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SiteRequest  true  "Datos de la obra"
// @Success      201   {object}  dto.SiteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/obras [post]
func (h *SiteHandler) Create(c *fiber.Ctx) error {
	var in dto.SiteRequest
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
// @Summary      Listar obras
// @Tags         obras
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SiteResponse
// @Router       /api/obras [get]
func (h *SiteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener obra
// @Tags         obras
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.SiteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/obras/{id} [get]
func (h *SiteHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Actualizar obra
// @Tags         obras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "ID"
// @Param        body  body  dto.SiteRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.SiteResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/obras/{id} [put]
func (h *SiteHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var in dto.SiteRequest
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
// @Summary      Eliminar obra
// @Tags         obras
// @Security     Bearer
// @Param        id   path  int  true  "ID"
// @Success      204
// @Router       /api/obras/{id} [delete]
func (h *SiteHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
