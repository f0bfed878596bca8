package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/DropZone-api/internal/application/drop"
	"github.com/jhoicas/DropZone-api/internal/application/dto"
	"github.com/jhoicas/DropZone-api/internal/domain"
	apphttp "github.com/jhoicas/DropZone-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs de casos de uso
// ──────────────────────────────────────────────────────────────────────────────

type stubDrops struct{}

func (stubDrops) Create(_ context.Context, _ dto.Actor, in dto.CreateDropRequest) (*dto.DropResponse, error) {
	return &dto.DropResponse{ID: "drop-new", Name: in.Name, Status: "scheduled"}, nil
}

func (stubDrops) Open(context.Context, dto.Actor, string) (*dto.DropResponse, error) {
	return &dto.DropResponse{ID: "drop-1", Status: "open"}, nil
}

func (stubDrops) Get(_ context.Context, id string) (*dto.DropDetailResponse, error) {
	if id != "drop-1" {
		return nil, nil
	}
	return &dto.DropDetailResponse{
		DropResponse: dto.DropResponse{ID: id, Status: "open", CurrentDiscount: decimal.NewFromInt(11)},
	}, nil
}

func (stubDrops) List(_ context.Context, status string, _ dto.PageRequest) (*dto.DropListResponse, error) {
	if status == "bogus" {
		return nil, domain.ErrInvalidInput
	}
	return &dto.DropListResponse{Items: []dto.DropResponse{{ID: "drop-1"}}}, nil
}

func (stubDrops) ListReservations(context.Context, dto.Actor, string) ([]dto.ReservationResponse, error) {
	return []dto.ReservationResponse{}, nil
}

type stubSettler struct {
	lastActor dto.Actor
}

func (s *stubSettler) CloseByActor(_ context.Context, actor dto.Actor, id string) (*dto.DropSettlementResponse, error) {
	s.lastActor = actor
	return &dto.DropSettlementResponse{DropID: id, FinalDiscount: decimal.NewFromInt(15)}, nil
}

func (s *stubSettler) Cancel(context.Context, dto.Actor, string) (*dto.DropResponse, error) {
	return nil, domain.ErrDropClosed
}

func (s *stubSettler) RetryCharges(_ context.Context, id string) (*dto.DropSettlementResponse, error) {
	return &dto.DropSettlementResponse{DropID: id}, nil
}

type stubReservations struct {
	last drop.ReserveInput
	err  error
}

func (s *stubReservations) Reserve(_ context.Context, in drop.ReserveInput) (*dto.ReservationResponse, error) {
	s.last = in
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ReservationResponse{ID: "res-1", DropID: in.DropID, Quantity: in.Quantity, Status: "authorized"}, nil
}

func (s *stubReservations) ListMine(_ context.Context, userID string, _ dto.PageRequest) (*dto.ReservationListResponse, error) {
	return &dto.ReservationListResponse{Items: []dto.ReservationResponse{{ID: "res-1", UserID: userID}}}, nil
}

type stubReceipts struct{}

func (stubReceipts) Generate(_ context.Context, _ dto.Actor, id string) ([]byte, error) {
	if id == "pendiente" {
		return nil, domain.ErrConflict
	}
	return []byte("%PDF-1.3 fake"), nil
}

type testEnv struct {
	app          *fiber.App
	settler      *stubSettler
	reservations *stubReservations
}

func newTestEnv(limiter *apphttp.RateLimiter) *testEnv {
	env := &testEnv{settler: &stubSettler{}, reservations: &stubReservations{}}
	env.app = fiber.New()
	apphttp.Router(env.app, apphttp.RouterDeps{
		Drops:          stubDrops{},
		Settler:        env.settler,
		Reservations:   env.reservations,
		Receipts:       stubReceipts{},
		ReserveLimiter: limiter,
		JWTSecret:      testJWTSecret,
	})
	return env
}

func (e *testEnv) do(t *testing.T, method, path, auth, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Drops
// ──────────────────────────────────────────────────────────────────────────────

func TestDrops_ConsultaPublica(t *testing.T) {
	env := newTestEnv(nil)

	resp := env.do(t, http.MethodGet, "/api/drops/drop-1", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.DropDetailResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	assert.True(t, out.CurrentDiscount.Equal(decimal.NewFromInt(11)))

	resp = env.do(t, http.MethodGet, "/api/drops/no-existe", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/api/drops?status=bogus", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestDrops_GestionRequiereRol(t *testing.T) {
	env := newTestEnv(nil)

	resp := env.do(t, http.MethodPost, "/api/drops/drop-1/close", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPost, "/api/drops/drop-1/close", tokenForRole(t, "customer"), "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPost, "/api/drops/drop-1/close", tokenForRole(t, "supplier"), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, testSupplierID, env.settler.lastActor.SupplierID)

	resp = env.do(t, http.MethodPost, "/api/drops/drop-1/retry-charges", tokenForRole(t, "supplier"), "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "solo admin reintenta cobros")
	resp.Body.Close()

	resp = env.do(t, http.MethodPost, "/api/drops/drop-1/cancel", tokenForRole(t, "admin"), "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DROP_CLOSED", errorCode(t, resp))
}

func TestDrops_CreateValidaCuerpo(t *testing.T) {
	env := newTestEnv(nil)
	resp := env.do(t, http.MethodPost, "/api/drops", tokenForRole(t, "supplier"), `{"name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPost, "/api/drops", tokenForRole(t, "supplier"),
		`{"name":"Drop sábado","supplier_list_id":"l1","pickup_point_id":"p1","starts_at":"2026-05-10T10:00:00Z","ends_at":"2026-05-10T18:00:00Z"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Reservas
// ──────────────────────────────────────────────────────────────────────────────

func TestReserve_SoloClientes(t *testing.T) {
	env := newTestEnv(nil)
	body := `{"item_id":"item-1","quantity":5}`

	resp := env.do(t, http.MethodPost, "/api/drops/drop-1/reservations", tokenForRole(t, "supplier"), body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPost, "/api/drops/drop-1/reservations", tokenForRole(t, "customer"), body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, drop.ReserveInput{UserID: testUserID, DropID: "drop-1", ItemID: "item-1", Quantity: 5}, env.reservations.last)
}

func TestReserve_MapeaErroresDeDominio(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrDropNotOpen, http.StatusConflict, "DROP_NOT_OPEN"},
		{domain.ErrPaymentDeclined, http.StatusPaymentRequired, "PAYMENT_DECLINED"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION"},
		{assert.AnError, http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		env := newTestEnv(nil)
		env.reservations.err = tc.err
		resp := env.do(t, http.MethodPost, "/api/drops/drop-1/reservations", tokenForRole(t, "customer"), `{"item_id":"item-1","quantity":1}`)
		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())
		assert.Equal(t, tc.code, errorCode(t, resp))
	}
}

func TestReserve_CantidadInvalida(t *testing.T) {
	env := newTestEnv(nil)
	resp := env.do(t, http.MethodPost, "/api/drops/drop-1/reservations", tokenForRole(t, "customer"), `{"item_id":"item-1","quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestReserve_RateLimitPorUsuario(t *testing.T) {
	env := newTestEnv(apphttp.NewRateLimiter(0.01, 1, zerolog.Nop()))
	body := `{"item_id":"item-1","quantity":1}`

	resp := env.do(t, http.MethodPost, "/api/drops/drop-1/reservations", tokenForRole(t, "customer"), body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPost, "/api/drops/drop-1/reservations", tokenForRole(t, "customer"), body)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	assert.Equal(t, "RATE_LIMITED", errorCode(t, resp))
}

func TestMisReservasYComprobante(t *testing.T) {
	env := newTestEnv(nil)

	resp := env.do(t, http.MethodGet, "/api/me/reservations", tokenForRole(t, "customer"), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ReservationListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	require.Len(t, list.Items, 1)
	assert.Equal(t, testUserID, list.Items[0].UserID)

	resp = env.do(t, http.MethodGet, "/api/reservations/res-1/receipt", tokenForRole(t, "customer"), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "comprobante-res-1.pdf")
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/api/reservations/pendiente/receipt", tokenForRole(t, "customer"), "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}
