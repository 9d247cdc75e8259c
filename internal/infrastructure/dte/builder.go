// Package dte arma el XML tipo DTE del SII para los documentos emitidos (sin firma ni envío).
package dte

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/Arriendos-api/internal/application/billing"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
	"github.com/jhoicas/Arriendos-api/pkg/rut"
)

// IVAPercent tasa informada en TasaIVA.
const IVAPercent = "19"

var _ billing.XMLRenderer = (*Builder)(nil)

// Builder implementa billing.XMLRenderer.
type Builder struct{}

// NewBuilder construye el generador de XML.
func NewBuilder() *Builder { return &Builder{} }

// RenderXML devuelve el XML en ISO-8859-1 y el digest SHA-1 (base64) de la forma C14N de <Documento>.
func (b *Builder) RenderXML(_ context.Context, v *billing.DocumentView) ([]byte, string, error) {
	if v == nil || v.Document == nil {
		return nil, "", fmt.Errorf("dte: documento vacío")
	}
	siiType := billing.SIIType(v.Document.Type)
	if siiType == 0 {
		return nil, "", fmt.Errorf("dte: tipo de documento %q sin código SII", v.Document.Type)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="ISO-8859-1"`)
	root := doc.CreateElement("DTE")
	root.CreateAttr("version", "1.0")
	documento := root.CreateElement("Documento")
	documento.CreateAttr("ID", fmt.Sprintf("T%dF%s", siiType, folio(v.Document.Number)))

	buildHeader(documento.CreateElement("Encabezado"), v, siiType)
	buildDetail(documento, v)
	if v.Related != nil {
		buildReference(documento.CreateElement("Referencia"), v.Related)
	}
	doc.Indent(2)

	digest, err := Digest(documento)
	if err != nil {
		return nil, "", err
	}

	utf8XML, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("dte: serializar: %w", err)
	}
	latin1, err := toLatin1(utf8XML)
	if err != nil {
		return nil, "", err
	}
	return latin1, digest, nil
}

func buildHeader(enc *etree.Element, v *billing.DocumentView, siiType int) {
	d := v.Document

	id := enc.CreateElement("IdDoc")
	id.CreateElement("TipoDTE").SetText(strconv.Itoa(siiType))
	id.CreateElement("Folio").SetText(folio(d.Number))
	id.CreateElement("FchEmis").SetText(d.IssueDate.Format(entity.DateLayout))
	if d.Type == entity.DocGuide {
		id.CreateElement("IndTraslado").SetText(strconv.Itoa(billing.TransferIndicator(d)))
	}

	em := enc.CreateElement("Emisor")
	em.CreateElement("RUTEmisor").SetText(siiRUT(v.Issuer.RUT))
	em.CreateElement("RznSoc").SetText(v.Issuer.Name)

	rec := enc.CreateElement("Receptor")
	if c := v.Client; c != nil {
		rec.CreateElement("RUTRecep").SetText(siiRUT(c.RUT))
		rec.CreateElement("RznSocRecep").SetText(c.LegalName)
		if c.Address != "" {
			rec.CreateElement("DirRecep").SetText(c.Address)
		}
	} else {
		rec.CreateElement("RUTRecep").SetText("66666666-6")
	}

	if d.Type == entity.DocGuide && v.Destination != nil {
		tr := enc.CreateElement("Transporte")
		dest := v.Destination.Address
		if dest == "" {
			dest = v.Destination.Name
		}
		tr.CreateElement("DirDest").SetText(dest)
	}

	tot := enc.CreateElement("Totales")
	tot.CreateElement("MntNeto").SetText(amount(d.NetAmount))
	tot.CreateElement("TasaIVA").SetText(IVAPercent)
	tot.CreateElement("IVA").SetText(amount(d.TaxAmount))
	tot.CreateElement("MntTotal").SetText(amount(d.TotalAmount))
}

// buildDetail una línea <Detalle> por línea de la OT; sin OT, una línea por el neto del documento.
func buildDetail(parent *etree.Element, v *billing.DocumentView) {
	lines := v.Lines()
	if len(lines) == 0 {
		det := parent.CreateElement("Detalle")
		det.CreateElement("NroLinDet").SetText("1")
		det.CreateElement("NmbItem").SetText(itemName("", v.Machine))
		det.CreateElement("QtyItem").SetText("1")
		det.CreateElement("MontoItem").SetText(amount(v.Document.NetAmount))
		return
	}
	for i, l := range lines {
		qty := l.PeriodCount
		if qty < 1 {
			qty = 1
		}
		det := parent.CreateElement("Detalle")
		det.CreateElement("NroLinDet").SetText(strconv.Itoa(i + 1))
		det.CreateElement("NmbItem").SetText(itemName(l.Serial, v.Machine))
		det.CreateElement("QtyItem").SetText(strconv.Itoa(qty))
		if l.Unit != "" {
			det.CreateElement("UnmdItem").SetText(l.Unit)
		}
		det.CreateElement("PrcItem").SetText(l.Net.Div(decimal.NewFromInt(int64(qty))).Round(0).StringFixed(0))
		det.CreateElement("MontoItem").SetText(l.Net.Round(0).StringFixed(0))
	}
}

func buildReference(ref *etree.Element, rel *entity.Document) {
	ref.CreateElement("NroLinRef").SetText("1")
	ref.CreateElement("TpoDocRef").SetText(strconv.Itoa(billing.SIIType(rel.Type)))
	ref.CreateElement("FolioRef").SetText(folio(rel.Number))
	ref.CreateElement("FchRef").SetText(rel.IssueDate.Format(entity.DateLayout))
}

// Digest SHA-1 en base64 de la forma canónica (C14N 1.0) del elemento.
func Digest(el *etree.Element) (string, error) {
	part := etree.NewDocument()
	part.SetRoot(el.Copy())
	raw, err := part.WriteToBytes()
	if err != nil {
		return "", fmt.Errorf("dte: serializar documento: %w", err)
	}
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("dte: canonicalizar: %w", err)
	}
	sum := sha1.Sum(canonical)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func toLatin1(b []byte) ([]byte, error) {
	out, err := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()).Bytes(b)
	if err != nil {
		return nil, fmt.Errorf("dte: codificar ISO-8859-1: %w", err)
	}
	return out, nil
}

// folio número sin ceros a la izquierda ("0007" → "7").
func folio(number string) string {
	if n, err := strconv.Atoi(number); err == nil {
		return strconv.Itoa(n)
	}
	return number
}

// siiRUT RUT sin puntos y con guion, como lo pide el SII.
func siiRUT(s string) string {
	return strings.ReplaceAll(rut.Format(s), ".", "")
}

func amount(d decimal.NullDecimal) string {
	if !d.Valid {
		return "0"
	}
	return d.Decimal.Round(0).StringFixed(0)
}

func itemName(serial string, m *entity.Machine) string {
	if m != nil && (serial == "" || strings.EqualFold(serial, m.Serial)) {
		return "Arriendo " + m.Label()
	}
	if serial != "" {
		return "Arriendo equipo serie " + serial
	}
	return "Arriendo de maquinaria"
}
