package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Arriendos-api/internal/application/billing"
	"github.com/jhoicas/Arriendos-api/internal/application/dto"
	"github.com/jhoicas/Arriendos-api/internal/application/usecase"
)

// HeaderDTEDigest digest del elemento Documento del XML.
const HeaderDTEDigest = "X-DTE-Digest"

// DocumentHandler consulta de documentos y descarga PDF/XML (solo lectura).
type DocumentHandler struct {
	uc     *usecase.DocumentUseCase
	render *billing.RenderUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *usecase.DocumentUseCase, render *billing.RenderUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc, render: render}
}

// List godoc
// @Summary      Listar documentos
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        tipo     query  string  false  "FACT, GD, NC, ND"
// @Param        numero   query  string  false  "parte del número"
// @Param        cliente  query  string  false  "razón social o RUT"
// @Param        desde    query  string  false  "YYYY-MM-DD"
// @Param        hasta    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/documentos [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var f dto.DocumentFilter
	if err := c.QueryParser(&f); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de documento
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.DocumentDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documentos/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
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

// PDF godoc
// @Summary      Descargar PDF del documento
// @Tags         documentos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documentos/{id}/pdf [get]
func (h *DocumentHandler) PDF(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	body, name, err := h.render.DownloadPDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(body)
}

// XML godoc
// @Summary      Descargar XML del documento
// @Description  El header X-DTE-Digest trae el SHA-1 (base64) del Documento canonicalizado.
// @Tags         documentos
// @Security     Bearer
// @Produce      application/xml
// @Param        id   path  int  true  "ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documentos/{id}/xml [get]
func (h *DocumentHandler) XML(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	body, digest, name, err := h.render.DownloadXML(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=ISO-8859-1")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Set(HeaderDTEDigest, digest)
	return c.Send(body)
}
