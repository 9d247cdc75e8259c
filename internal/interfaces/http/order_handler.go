package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Arriendos-api/internal/application/dto"
	"github.com/jhoicas/Arriendos-api/internal/application/orders"
	"github.com/jhoicas/Arriendos-api/internal/domain/repository"
)

// OrderHandler órdenes de trabajo, emisión de documentos y vistas de estado.
type OrderHandler struct {
	uc *orders.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de trabajo
// @Description  ALTA y PROL sin arriendo abren uno nuevo; RETI exige arriendo.
// @Tags         ordenes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Orden"
// @Success      201   {object}  dto.WorkOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ordenes [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateOrder(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes de trabajo
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Param        solo_pendientes             query  string  false  "1 = solo pendientes"
// @Param        solo_facturacion_pendiente  query  string  false  "1 = facturables sin factura"
// @Success      200  {array}  dto.WorkOrderResponse
// @Router       /api/ordenes [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	f := repository.WorkOrderFilter{
		OnlyPending:        dto.IsTruthy(c.Query("solo_pendientes")),
		OnlyBillingPending: dto.IsTruthy(c.Query("solo_facturacion_pendiente")),
	}
	out, err := h.uc.ListOrders(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener orden de trabajo
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la OT"
// @Success      200  {object}  dto.WorkOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.uc.GetOrder(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Emit godoc
// @Summary      Emitir guía o factura desde la OT
// @Tags         ordenes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID de la OT"
// @Param        body  body  dto.EmitDocumentRequest  true  "tipo_documento GD|FACT, facturable"
// @Success      200   {object}  dto.WorkOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id}/emitir [post]
func (h *OrderHandler) Emit(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var in dto.EmitDocumentRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.EmitDocument(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RentalStatus godoc
// @Summary      Estado de arriendos activos
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Param        query  query  string  false  "cliente, RUT, marca, modelo o serie"
// @Success      200  {array}  dto.RentalStatusRow
// @Router       /api/ordenes/estado-arriendos [get]
func (h *OrderHandler) RentalStatus(c *fiber.Ctx) error {
	out, err := h.uc.RentalStatus(c.UserContext(), c.Query("query"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// WarehouseStatus godoc
// @Summary      Máquinas en bodega
// @Tags         ordenes
// @Security     Bearer
// @Produce      json
// @Param        query  query  string  false  "marca, modelo o serie"
// @Success      200  {array}  dto.WarehouseRow
// @Router       /api/ordenes/estado-bodega [get]
func (h *OrderHandler) WarehouseStatus(c *fiber.Ctx) error {
	out, err := h.uc.WarehouseStatus(c.UserContext(), c.Query("query"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
