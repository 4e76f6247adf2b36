package http_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipcleaners/pos-api/internal/application/dto"
	"github.com/vipcleaners/pos-api/internal/domain"
	apphttp "github.com/vipcleaners/pos-api/internal/interfaces/http"
)

// failingOrders devuelve err en todas las operaciones.
type failingOrders struct{ err error }

func (f failingOrders) Create(context.Context, string, dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	return nil, f.err
}

func (f failingOrders) GetByID(context.Context, string) (*dto.OrderResponse, error) { return nil, f.err }

func (f failingOrders) List(context.Context, string, int, int) (*dto.OrderListResponse, error) {
	return nil, f.err
}

func (f failingOrders) ChangeStatus(context.Context, string, string, string) (*dto.OrderResponse, error) {
	return nil, f.err
}

type failingBookings struct{ err error }

func (f failingBookings) Create(context.Context, dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	return nil, f.err
}

func (f failingBookings) List(context.Context, string, int, int) ([]dto.BookingResponse, error) {
	return nil, f.err
}

func (f failingBookings) UpdateStatus(context.Context, string, string) (*dto.BookingResponse, error) {
	return nil, f.err
}

type failingClients struct{ err error }

func (f failingClients) Create(context.Context, dto.CreateClientRequest) (*dto.ClientResponse, error) {
	return nil, f.err
}

func (f failingClients) GetByID(context.Context, string) (*dto.ClientResponse, error) {
	return nil, f.err
}

func (f failingClients) List(context.Context, string, int, int) (*dto.ClientListResponse, error) {
	return nil, f.err
}

type failingCatalog struct{ err error }

func (f failingCatalog) Create(context.Context, dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	return nil, f.err
}

func (f failingCatalog) Update(context.Context, string, dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	return nil, f.err
}

func (f failingCatalog) List(context.Context, bool) ([]dto.ServiceResponse, error) {
	return nil, f.err
}

func protectedApp(mount func(r fiber.Router)) *fiber.App {
	app := fiber.New()
	mount(app.Group("/api", apphttp.AuthMiddleware(testJWTSecret)))
	return app
}

type errorCase struct {
	name   string
	err    error
	method string
	path   string
	body   string
	status int
	code   string
}

func runErrorCases(t *testing.T, build func(err error) *fiber.App, cases []errorCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := send(t, build(tc.err), tc.method, tc.path, tc.body)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decodeError(t, resp).Code)
		})
	}
}

func TestOrderHandler_MapeoDeErrores(t *testing.T) {
	build := func(err error) *fiber.App {
		h := apphttp.NewOrderHandler(failingOrders{err: err})
		return protectedApp(func(r fiber.Router) {
			r.Post("/orders", h.Create)
			r.Get("/orders", h.List)
			r.Get("/orders/:id", h.GetByID)
			r.Patch("/orders/:id/status", h.ChangeStatus)
		})
	}
	const order = `{"client_id":"c1","items":[{"service_id":"s1"}]}`
	runErrorCases(t, build, []errorCase{
		{"cliente inexistente", domain.ErrNotFound, http.MethodPost, "/api/orders", order, http.StatusNotFound, "NOT_FOUND"},
		{"entrada inválida", domain.ErrInvalidInput, http.MethodPost, "/api/orders", order, http.StatusBadRequest, "VALIDATION"},
		{"sin ítems", nil, http.MethodPost, "/api/orders", `{"client_id":"c1","items":[]}`, http.StatusBadRequest, "VALIDATION"},
		{"cuerpo roto", nil, http.MethodPost, "/api/orders", `{`, http.StatusBadRequest, "INVALID_BODY"},
		{"orden inexistente", domain.ErrNotFound, http.MethodGet, "/api/orders/o1", "", http.StatusNotFound, "NOT_FOUND"},
		{"transición inválida", domain.ErrInvalidTransition, http.MethodPatch, "/api/orders/o1/status", `{"status":"Received"}`, http.StatusConflict, "INVALID_TRANSITION"},
		{"estado vacío", nil, http.MethodPatch, "/api/orders/o1/status", `{}`, http.StatusBadRequest, "VALIDATION"},
		{"fallo interno", errors.New("db caída"), http.MethodGet, "/api/orders", "", http.StatusInternalServerError, "INTERNAL"},
	})
}

func TestBookingHandler_MapeoDeErrores(t *testing.T) {
	build := func(err error) *fiber.App {
		h := apphttp.NewBookingHandler(failingBookings{err: err})
		return protectedApp(func(r fiber.Router) {
			r.Post("/bookings", h.Create)
			r.Get("/bookings", h.List)
			r.Patch("/bookings/:id/status", h.UpdateStatus)
		})
	}
	const booking = `{"name":"Ana","phone":"3001234567","pickup_date":"2026-10-20T10:00:00Z"}`
	runErrorCases(t, build, []errorCase{
		{"servicio inexistente", domain.ErrNotFound, http.MethodPost, "/api/bookings", booking, http.StatusNotFound, "NOT_FOUND"},
		{"sin fecha", nil, http.MethodPost, "/api/bookings", `{"name":"Ana","phone":"300"}`, http.StatusBadRequest, "VALIDATION"},
		{"reserva inexistente", domain.ErrNotFound, http.MethodPatch, "/api/bookings/b1/status", `{"status":"confirmed"}`, http.StatusNotFound, "NOT_FOUND"},
		{"reserva cerrada", domain.ErrInvalidTransition, http.MethodPatch, "/api/bookings/b1/status", `{"status":"confirmed"}`, http.StatusConflict, "INVALID_TRANSITION"},
		{"estado inválido", domain.ErrInvalidInput, http.MethodPatch, "/api/bookings/b1/status", `{"status":"x"}`, http.StatusBadRequest, "VALIDATION"},
		{"fallo interno", errors.New("db caída"), http.MethodGet, "/api/bookings", "", http.StatusInternalServerError, "INTERNAL"},
	})
}

func TestClientHandler_MapeoDeErrores(t *testing.T) {
	build := func(err error) *fiber.App {
		h := apphttp.NewClientHandler(failingClients{err: err})
		return protectedApp(func(r fiber.Router) {
			r.Post("/clients", h.Create)
			r.Get("/clients", h.List)
			r.Get("/clients/:id", h.GetByID)
		})
	}
	const client = `{"name":"Ana","phone":"3001234567"}`
	runErrorCases(t, build, []errorCase{
		{"teléfono duplicado", domain.ErrDuplicate, http.MethodPost, "/api/clients", client, http.StatusConflict, "DUPLICATE"},
		{"sin teléfono", nil, http.MethodPost, "/api/clients", `{"name":"Ana"}`, http.StatusBadRequest, "VALIDATION"},
		{"cliente inexistente sin error", nil, http.MethodGet, "/api/clients/c1", "", http.StatusNotFound, "NOT_FOUND"},
		{"error envuelto", fmt.Errorf("buscar: %w", domain.ErrNotFound), http.MethodGet, "/api/clients/c1", "", http.StatusNotFound, "NOT_FOUND"},
		{"fallo interno", errors.New("db caída"), http.MethodGet, "/api/clients?q=ana", "", http.StatusInternalServerError, "INTERNAL"},
	})
}

func TestServiceHandler_MapeoDeErrores(t *testing.T) {
	build := func(err error) *fiber.App {
		h := apphttp.NewServiceHandler(failingCatalog{err: err})
		return protectedApp(func(r fiber.Router) {
			r.Post("/services", h.Create)
			r.Put("/services/:id", h.Update)
			r.Get("/services", h.List)
		})
	}
	runErrorCases(t, build, []errorCase{
		{"nombre duplicado", domain.ErrDuplicate, http.MethodPost, "/api/services", `{"name":"Lavado","price":"25000"}`, http.StatusConflict, "DUPLICATE"},
		{"sin nombre", nil, http.MethodPost, "/api/services", `{"price":"25000"}`, http.StatusBadRequest, "VALIDATION"},
		{"precio inválido", domain.ErrInvalidInput, http.MethodPut, "/api/services/s1", `{"price":"-1"}`, http.StatusBadRequest, "VALIDATION"},
		{"servicio inexistente sin error", nil, http.MethodPut, "/api/services/s1", `{"active":false}`, http.StatusNotFound, "NOT_FOUND"},
		{"fallo interno", errors.New("db caída"), http.MethodGet, "/api/services", "", http.StatusInternalServerError, "INTERNAL"},
	})
}

func TestOrderHandler_CreaConEmpleadoDelToken(t *testing.T) {
	rec := &recordingOrders{}
	h := apphttp.NewOrderHandler(rec)
	app := protectedApp(func(r fiber.Router) { r.Post("/orders", h.Create) })

	resp := send(t, app, http.MethodPost, "/api/orders", `{"client_id":"c1","items":[{"service_id":"s1","box":"A1"}]}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, testUserID, rec.employeeID)
	require.Len(t, rec.in.Items, 1)
	assert.Equal(t, "A1", rec.in.Items[0].Box)
}

type recordingOrders struct {
	failingOrders
	employeeID string
	in         dto.CreateOrderRequest
}

func (r *recordingOrders) Create(_ context.Context, employeeID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	r.employeeID = employeeID
	r.in = in
	return &dto.OrderResponse{}, nil
}
