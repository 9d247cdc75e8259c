package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Arriendos-api/internal/application/dto"
	"github.com/jhoicas/Arriendos-api/internal/domain"
)

// errorMapping código HTTP y código de error por sentinel de dominio.
var errorMapping = []struct {
	kind   error
	status int
	code   string
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrPrecondition, fiber.StatusBadRequest, "PRECONDITION"},
	{domain.ErrUserExists, fiber.StatusConflict, "USER_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrAccountLocked, fiber.StatusForbidden, "ACCOUNT_LOCKED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// statusOf código HTTP y código de error para err; 500 si no es un error de dominio.
func statusOf(err error) (int, string) {
	for _, m := range errorMapping {
		if errors.Is(err, m.kind) {
			return m.status, m.code
		}
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// writeError responde {"code", "detail"} según el error de dominio.
// Los errores internos no exponen su texto.
func writeError(c *fiber.Ctx, err error) error {
	status, code := statusOf(err)
	detail := domain.DetailOf(err)
	if status == fiber.StatusInternalServerError {
		c.Locals(LocalError, err)
		detail = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Detail: detail})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Detail: "cuerpo inválido"})
}

// paramID lee :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}

func badID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Detail: "id inválido"})
}

// ErrorHandler handler de errores de fiber: errores de fiber conservan su código, el resto va por writeError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP", Detail: fe.Message})
	}
	return writeError(c, err)
}
