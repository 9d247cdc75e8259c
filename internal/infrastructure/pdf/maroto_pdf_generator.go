// Package pdf genera la representación impresa de facturas, guías y notas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  EMISOR: Razón social + RUT  │  Recuadro tipo + folio        │
//	│  RECEPTOR: cliente + RUT + dirección                         │
//	│  TRASLADO (guías): obra origen → obra destino                │
//	│  TABLA: Serie | Detalle | Periodo | Valor | Flete | Neto     │
//	│  TOTALES: Neto / IVA / TOTAL                                 │
//	│  TIMBRE: QR con los datos del documento                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Arriendos-api/internal/application/billing"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 178, Green: 34, Blue: 34}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ billing.PDFRenderer = (*MarotoRenderer)(nil)

// MarotoRenderer implementa billing.PDFRenderer con Maroto v2.
type MarotoRenderer struct{}

// NewMarotoRenderer construye el renderizador.
func NewMarotoRenderer() *MarotoRenderer { return &MarotoRenderer{} }

// RenderPDF genera el PDF y devuelve sus bytes.
func (g *MarotoRenderer) RenderPDF(_ context.Context, v *billing.DocumentView) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title(v.Document), true).
		WithAuthor(v.Issuer.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(v))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(receiverRow(v))
	if v.Document.Type == entity.DocGuide {
		m.AddRows(transferRow(v))
	}
	if v.Related != nil {
		m.AddRows(referenceRow(v.Related))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range detailRows(v) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(v.Document))
	m.AddRows(line.NewRow(3))
	m.AddRows(stampRow(v))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func title(d *entity.Document) string {
	return strings.ToUpper(entity.DocTypeDisplay(d.Type)) + " ELECTRÓNICA"
}

// headerRow emisor a la izquierda y recuadro con tipo y folio a la derecha.
func headerRow(v *billing.DocumentView) core.Row {
	d := v.Document
	return row.New(22).Add(
		col.New(7).Add(
			text.New(v.Issuer.Name, props.Text{Style: fontstyle.Bold, Size: 13, Top: 1}),
			text.New("Arriendo de maquinaria", props.Text{Size: 9, Top: 8, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("R.U.T.: "+v.Issuer.RUT, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center, Color: colorPrimary, Top: 1,
			}),
			text.New(title(d), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Center, Color: colorPrimary, Top: 7,
			}),
			text.New("N° "+d.Label(), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: colorPrimary, Top: 13,
			}),
		),
	)
}

func receiverRow(v *billing.DocumentView) core.Row {
	name, rut, address := "—", "—", "—"
	if c := v.Client; c != nil {
		name, rut, address = nonEmpty(c.LegalName, "—"), nonEmpty(c.RUT, "—"), nonEmpty(c.Address, "—")
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New("SEÑOR(ES)", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New("R.U.T.: "+rut+"   |   Dirección: "+address, props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Fecha emisión: "+v.Document.IssueDate.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 5,
			}),
		),
	)
}

// transferRow obras de origen y destino de una guía.
func transferRow(v *billing.DocumentView) core.Row {
	kind := "Despacho"
	if v.Document.IsWithdrawal {
		kind = "Retiro"
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Traslado: %s   |   Origen: %s   |   Destino: %s",
			kind, siteName(v.Origin), siteName(v.Destination)), props.Text{Size: 8, Top: 2}),
	))
}

func referenceRow(rel *entity.Document) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Referencia: %s %s del %s", entity.DocTypeDisplay(rel.Type), rel.Number,
			rel.IssueDate.Format("02/01/2006")), props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Serie", 2, align.Left),
		h("Detalle", 4, align.Left),
		h("Periodo", 2, align.Center),
		h("Valor", 1, align.Right),
		h("Flete", 1, align.Right),
		h("Neto", 2, align.Right),
	)
}

// detailRows una fila por línea de la OT; sin OT, una sola línea con la máquina.
func detailRows(v *billing.DocumentView) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	lines := v.Lines()
	if len(lines) == 0 {
		detail := "Arriendo de maquinaria"
		if v.Machine != nil {
			detail = v.Machine.Label()
		}
		return []core.Row{row.New(7).Add(cell(detail, 12, align.Left))}
	}
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		detail := describeLine(l, v.Machine)
		period := fmt.Sprintf("%d %s", l.PeriodCount, l.Unit)
		if l.From != "" || l.To != "" {
			period = nonEmpty(l.From, "…") + " / " + nonEmpty(l.To, "…")
		}
		out = append(out, row.New(7).Add(
			cell(nonEmpty(l.Serial, "—"), 2, align.Left),
			cell(detail, 4, align.Left),
			cell(period, 2, align.Center),
			cell(money(l.Value), 1, align.Right),
			cell(money(l.Freight), 1, align.Right),
			cell(money(l.Net), 2, align.Right),
		))
	}
	return out
}

func describeLine(l entity.LineItem, m *entity.Machine) string {
	if m != nil && strings.EqualFold(m.Serial, l.Serial) {
		return m.Label()
	}
	if l.FreightType != "" {
		return "Arriendo + flete " + l.FreightType
	}
	return "Arriendo"
}

func totalsRow(d *entity.Document) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(d decimal.NullDecimal) core.Component {
		s := "—"
		if d.Valid {
			s = money(d.Decimal)
		}
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(18).Add(
		col.New(6),
		col.New(3).Add(label("Monto neto:"), label("IVA 19%:"), label("TOTAL:")),
		col.New(3).Add(value(d.NetAmount), value(d.TaxAmount), value(d.TotalAmount)),
	)
}

func stampRow(v *billing.DocumentView) core.Row {
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(billing.StampData(v), props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("Timbre del documento", props.Text{Style: fontstyle.Bold, Size: 8, Top: 4, Left: 3}),
			text.New(fmt.Sprintf("Tipo %d   |   Folio %s", billing.SIIType(v.Document.Type), v.Document.Number),
				props.Text{Size: 8, Top: 10, Left: 3, Color: colorGray}),
		),
	)
}

func siteName(s *entity.Site) string {
	if s == nil {
		return "—"
	}
	return s.Name
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money "$1.234.567" sin decimales.
func money(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	n := len(s)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if neg {
		return "-$" + string(buf)
	}
	return "$" + string(buf)
}
