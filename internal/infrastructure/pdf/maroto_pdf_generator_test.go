package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Arriendos-api/internal/application/billing"
	"github.com/jhoicas/Arriendos-api/internal/domain/entity"
)

func TestMoney_SeparadorDeMiles(t *testing.T) {
	assert.Equal(t, "$0", money(decimal.Zero))
	assert.Equal(t, "$950", money(decimal.NewFromInt(950)))
	assert.Equal(t, "$71.400", money(decimal.NewFromInt(71400)))
	assert.Equal(t, "$1.234.568", money(decimal.RequireFromString("1234567.6")))
	assert.Equal(t, "-$11.400", money(decimal.NewFromInt(-11400)))
}

func TestRenderPDF_GeneraDocumento(t *testing.T) {
	doc := &entity.Document{
		ID: 1, Type: entity.DocGuide, Number: "0007", RentalID: 1,
		IssueDate: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
	}
	doc.SetAmounts(decimal.NewFromInt(60000), decimal.NewFromInt(11400), decimal.NewFromInt(71400))
	v := &billing.DocumentView{
		Document: doc,
		Issuer:   billing.Issuer{Name: "Franz Heim SPA", RUT: "16.357.179-K"},
		Client:   &entity.Client{LegalName: "Constructora Andes", RUT: "76.086.428-5"},
		Machine:  &entity.Machine{Brand: "Genie", Model: "GS-1930", Serial: "S1"},
		Order: &entity.WorkOrder{Lines: []entity.LineItem{{
			Serial: "S1", Unit: "Mes", PeriodCount: 1,
			Value: decimal.NewFromInt(50000), Freight: decimal.NewFromInt(10000), Net: decimal.NewFromInt(60000),
		}}},
	}

	out, err := NewMarotoRenderer().RenderPDF(context.Background(), v)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
