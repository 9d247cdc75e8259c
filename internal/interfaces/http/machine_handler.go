package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Arriendos-api/internal/application/dto"
	"github.com/jhoicas/Arriendos-api/internal/application/usecase"
)

// MachineHandler CRUD de maquinarias (protegido).
type MachineHandler struct {
	uc *usecase.MachineUseCase
}

// NewMachineHandler construye el handler.
func NewMachineHandler(uc *usecase.MachineUseCase) *MachineHandler {
	return &MachineHandler{uc: uc}
}

// Create godoc
// @Summary      Crear maquinaria
// @Description  La categoría acepta etiquetas de la UI (elevador, camion, carga...).
// @Tags         maquinarias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MachineRequest  true  "Datos de la máquina"
// @Success      201   {object}  dto.MachineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/maquinarias [post]
func (h *MachineHandler) Create(c *fiber.Ctx) error {
	var in dto.MachineRequest
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
// @Summary      Listar maquinarias
// @Tags         maquinarias
// @Security     Bearer
// @Produce      json
// @Param        query  query  string  false  "serie exacta, marca o modelo"
// @Success      200  {array}  dto.MachineResponse
// @Router       /api/maquinarias [get]
func (h *MachineHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("query"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener maquinaria
// @Tags         maquinarias
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.MachineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/maquinarias/{id} [get]
func (h *MachineHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Actualizar maquinaria
// @Description  Solo se modifican los campos enviados.
// @Tags         maquinarias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "ID"
// @Param        body  body  dto.MachineRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.MachineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/maquinarias/{id} [put]
func (h *MachineHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var in dto.MachineRequest
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
// @Summary      Eliminar maquinaria
// @Tags         maquinarias
// @Security     Bearer
// @Param        id   path  int  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/maquinarias/{id} [delete]
func (h *MachineHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// History godoc
// @Summary      Historial de arriendos de la máquina
// @Tags         maquinarias
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {array}  dto.MachineHistoryRow
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/maquinarias/{id}/historial [get]
func (h *MachineHandler) History(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.uc.History(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
