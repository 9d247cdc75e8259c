package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Arriendos-api/internal/application/auth"
	"github.com/jhoicas/Arriendos-api/internal/application/billing"
	"github.com/jhoicas/Arriendos-api/internal/application/orders"
	"github.com/jhoicas/Arriendos-api/internal/application/usecase"
	"github.com/jhoicas/Arriendos-api/internal/infrastructure/dte"
	"github.com/jhoicas/Arriendos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Arriendos-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Arriendos-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor completo sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	tokens := testTokens()

	deps := apphttp.RouterDeps{
		AuthUC:     auth.NewUseCase(store.Users(), tokens, nil),
		OrdersUC:   orders.NewUseCase(store, repos, orders.DefaultConfig()),
		MachineUC:  usecase.NewMachineUseCase(repos.Machines, repos.Rentals, repos.Sites, repos.Documents),
		ClientUC:   usecase.NewClientUseCase(repos.Clients),
		SiteUC:     usecase.NewSiteUseCase(repos.Sites),
		RentalUC:   usecase.NewRentalUseCase(repos.Rentals, repos.Machines),
		DocumentUC: usecase.NewDocumentUseCase(repos.Documents, repos.Clients),
		UserUC:     usecase.NewUserUseCase(store.Users()),
		Render: billing.NewRenderUseCase(billing.Repos{
			Documents:  repos.Documents,
			Clients:    repos.Clients,
			Rentals:    repos.Rentals,
			Machines:   repos.Machines,
			Sites:      repos.Sites,
			WorkOrders: repos.WorkOrders,
		}, billing.Issuer{Name: "Franz Heim SPA", RUT: "16.357.179-K"}, pdf.NewMarotoRenderer(), dte.NewBuilder()),
		Tokens: tokens,
	}
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Middlewares(app, deps)
	apphttp.Router(app, deps)
	return app
}

// call hace la petición con cuerpo JSON opcional y token opcional.
func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// login registra un usuario común y devuelve su access token.
func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	creds := map[string]string{"username": "operador", "password": "clave-segura"}
	resp := call(t, app, http.MethodPost, "/api/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	decode(t, resp, &out)
	require.NotEmpty(t, out.Access)
	return out.Access
}

// ─── Auth ────────────────────────────────────────────────────────────────────

func TestRouter_RegistroDuplicadoDevuelve400(t *testing.T) {
	app := newTestServer(t)
	creds := map[string]string{"username": "Operador", "password": "clave"}

	resp := call(t, app, http.MethodPost, "/api/auth/register", "", creds)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	creds["username"] = "operador"
	resp = call(t, app, http.MethodPost, "/api/auth/register", "", creds)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "El usuario ya existe.", body["detail"])
}

func TestRouter_RecoverSinCorreoDevuelve400(t *testing.T) {
	app := newTestServer(t)
	resp := call(t, app, http.MethodPost, "/api/auth/recover", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "Falta correo electrónico.", body["detail"])
}

func TestRouter_RutasDeNegocioExigenToken(t *testing.T) {
	app := newTestServer(t)
	for _, path := range []string{"/api/ordenes", "/api/maquinarias", "/api/documentos", "/api/clientes"} {
		resp := call(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestRouter_UsuariosSoloStaff(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app)

	resp := call(t, app, http.MethodGet, "/api/users", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

// ─── Catálogo ────────────────────────────────────────────────────────────────

func TestRouter_ClienteRUTInvalidoYDuplicado(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app)

	resp := call(t, app, http.MethodPost, "/api/clientes", token, map[string]string{"razon_social": "Uno", "rut": "11.111.111-2"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/clientes", token, map[string]string{"razon_social": "Uno", "rut": "111111111"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]any
	decode(t, resp, &created)
	assert.Equal(t, "11.111.111-1", created["rut"])

	resp = call(t, app, http.MethodPost, "/api/clientes", token, map[string]string{"razon_social": "Otro", "rut": "11.111.111-1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "El RUT ya existe.", body["detail"])
}

func TestRouter_IDNoNumericoDevuelve400(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app)

	resp := call(t, app, http.MethodGet, "/api/maquinarias/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/maquinarias/99", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// ─── Flujo OT → guía → factura → descarga ────────────────────────────────────

func TestRouter_FlujoCompletoDeOrden(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app)

	resp := call(t, app, http.MethodPost, "/api/clientes", token, map[string]string{"razon_social": "Constructora Uno Ltda", "rut": "11.111.111-1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = call(t, app, http.MethodPost, "/api/maquinarias", token, map[string]string{"marca": "Genie", "modelo": "GS-1932", "serie": "X1", "categoria": "elevador"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	order := map[string]any{
		"tipo":           "ALTA",
		"meta_cliente":   "Constructora Uno Ltda - 11.111.111-1",
		"meta_obra":      "Edificio Central",
		"meta_direccion": "Av. Siempre Viva 123",
		"lineas": []map[string]any{
			{"serie": "X1", "unidad": "Dia", "desde": "2026-10-01", "valor": 50000, "flete": "10000"},
		},
	}
	resp = call(t, app, http.MethodPost, "/api/ordenes", token, order)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID    int64           `json:"id"`
		Total decimal.Decimal `json:"monto_total"`
	}
	decode(t, resp, &created)
	assert.True(t, decimal.NewFromInt(71400).Equal(created.Total), "total %s", created.Total)

	path := "/api/ordenes/" + itoa(created.ID)

	resp = call(t, app, http.MethodPost, path+"/emitir", token, map[string]any{"tipo_documento": "GD", "facturable": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var afterGuide struct {
		State    string `json:"estado"`
		Billable bool   `json:"es_facturable"`
		Guide    *struct {
			ID int64 `json:"id"`
		} `json:"guia"`
	}
	decode(t, resp, &afterGuide)
	assert.Equal(t, "PEND", afterGuide.State)
	assert.True(t, afterGuide.Billable)
	require.NotNil(t, afterGuide.Guide)

	resp = call(t, app, http.MethodGet, "/api/ordenes?solo_facturacion_pendiente=1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pending []map[string]any
	decode(t, resp, &pending)
	assert.Len(t, pending, 1)

	resp = call(t, app, http.MethodPost, path+"/emitir", token, map[string]any{"tipo_documento": "FACT"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var afterInvoice struct {
		State    string `json:"estado"`
		Billable bool   `json:"es_facturable"`
	}
	decode(t, resp, &afterInvoice)
	assert.Equal(t, "PROC", afterInvoice.State)
	assert.False(t, afterInvoice.Billable)

	// Segunda factura rechazada.
	resp = call(t, app, http.MethodPost, path+"/emitir", token, map[string]any{"tipo_documento": "FACT"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/documentos", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var docs []map[string]any
	decode(t, resp, &docs)
	assert.Len(t, docs, 2)

	guidePath := "/api/documentos/" + itoa(afterGuide.Guide.ID)
	resp = call(t, app, http.MethodGet, guidePath+"/xml", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderDTEDigest))
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<TipoDTE>52</TipoDTE>")

	resp = call(t, app, http.MethodGet, guidePath+"/pdf", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp = call(t, app, http.MethodGet, "/api/ordenes/estado-arriendos?query=genie", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rows []map[string]any
	decode(t, resp, &rows)
	assert.Len(t, rows, 1)
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
