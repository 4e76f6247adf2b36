package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipcleaners/pos-api/internal/application/dto"
	appstorage "github.com/vipcleaners/pos-api/internal/application/storage"
	"github.com/vipcleaners/pos-api/internal/domain"
	apphttp "github.com/vipcleaners/pos-api/internal/interfaces/http"
)

type stubStorage struct {
	generated   string
	validated   string
	assignIn    appstorage.AssignInput
	assignErr   error
	listErr     error
	slotErr     error
	labelsErr   error
	labelsBytes []byte
}

func (s *stubStorage) Generate(_ context.Context, box string) dto.GenerateCodeResponse {
	s.generated = box
	return dto.GenerateCodeResponse{Code: "ESTA-F1-P1", Box: box, Mode: appstorage.ModeManual}
}

func (s *stubStorage) Validate(_ context.Context, code string) dto.ValidateCodeResponse {
	s.validated = code
	return dto.ValidateCodeResponse{Valid: true, Available: true, Message: "ok"}
}

func (s *stubStorage) ListByBox(_ context.Context, box string) (*dto.BoxLocationsResponse, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return &dto.BoxLocationsResponse{Box: box, SuggestedNextCode: "ESTA-F1-P1"}, nil
}

func (s *stubStorage) Assign(_ context.Context, in appstorage.AssignInput) (*dto.StorageSlotResponse, error) {
	s.assignIn = in
	if s.assignErr != nil {
		return nil, s.assignErr
	}
	code := in.Code
	return &dto.StorageSlotResponse{ItemID: in.ItemID, Box: in.Box, LocationCode: &code, Mode: appstorage.ModeOverride}, nil
}

func (s *stubStorage) GetSlot(_ context.Context, itemID string) (*dto.StorageSlotResponse, error) {
	if s.slotErr != nil {
		return nil, s.slotErr
	}
	return &dto.StorageSlotResponse{ItemID: itemID}, nil
}

func (s *stubStorage) BoxLabels(_ context.Context, box string) ([]byte, string, error) {
	if s.labelsErr != nil {
		return nil, "", s.labelsErr
	}
	return s.labelsBytes, "etiquetas-" + box + ".pdf", nil
}

// buildStorageApp monta las rutas de ubicaciones detrás de AuthMiddleware.
func buildStorageApp(stub *stubStorage) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/storage", apphttp.AuthMiddleware(testJWTSecret))
	apphttp.RegisterStorageRoutes(group, apphttp.NewStorageHandler(stub, stub))
	return app
}

func send(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, "empleado"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

func TestStorage_GenerateCode(t *testing.T) {
	stub := &stubStorage{}
	app := buildStorageApp(stub)

	resp := send(t, app, http.MethodPost, "/api/storage/generate-code", `{"box":"A1"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.GenerateCodeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ESTA-F1-P1", out.Code)
	assert.Equal(t, "A1", stub.generated)
}

func TestStorage_GenerateCode_SinCaja(t *testing.T) {
	resp := send(t, buildStorageApp(&stubStorage{}), http.MethodPost, "/api/storage/generate-code", `{"box":"  "}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, resp).Code)
}

func TestStorage_ValidateCode(t *testing.T) {
	stub := &stubStorage{}
	resp := send(t, buildStorageApp(stub), http.MethodPost, "/api/storage/validate-code", `{"code":"esta-f1-p1"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "esta-f1-p1", stub.validated, "la normalización es responsabilidad del servicio")
}

func TestStorage_ListLocations(t *testing.T) {
	stub := &stubStorage{}
	app := buildStorageApp(stub)

	resp := send(t, app, http.MethodGet, "/api/storage/locations?box=B2", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	missing := send(t, app, http.MethodGet, "/api/storage/locations", "")
	defer missing.Body.Close()
	assert.Equal(t, http.StatusBadRequest, missing.StatusCode)

	stub.listErr = errors.New("conexión perdida")
	failed := send(t, app, http.MethodGet, "/api/storage/locations?box=B2", "")
	defer failed.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, failed.StatusCode)
	assert.Equal(t, "INTERNAL", decodeError(t, failed).Code)
}

func TestStorage_Assign(t *testing.T) {
	stub := &stubStorage{}
	resp := send(t, buildStorageApp(stub), http.MethodPut, "/api/storage/items/item-1/location",
		`{"box":"A1","code":"ESTA-F1-P3","special_notes":"caja de cartón"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "item-1", stub.assignIn.ItemID)
	assert.Equal(t, testUserID, stub.assignIn.EmployeeID, "el empleado sale del token")
	assert.Equal(t, "caja de cartón", stub.assignIn.SpecialNotes)
}

func TestStorage_Assign_MapeoDeErrores(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"ocupado", domain.ErrLocationTaken, http.StatusConflict, "LOCATION_TAKEN"},
		{"formato", domain.ErrInvalidLocationCode, http.StatusBadRequest, "INVALID_CODE"},
		{"no existe", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"orden cerrada", domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{"envuelto", errors.Join(errors.New("tx"), domain.ErrLocationTaken), http.StatusConflict, "LOCATION_TAKEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubStorage{assignErr: tt.err}
			resp := send(t, buildStorageApp(stub), http.MethodPut, "/api/storage/items/i1/location", `{"box":"A1"}`)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, decodeError(t, resp).Code)
		})
	}
}

func TestStorage_GetItem_NoEncontrado(t *testing.T) {
	resp := send(t, buildStorageApp(&stubStorage{slotErr: domain.ErrNotFound}), http.MethodGet, "/api/storage/items/zz", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStorage_Labels(t *testing.T) {
	stub := &stubStorage{labelsBytes: []byte("%PDF-1.3 fake")}
	resp := send(t, buildStorageApp(stub), http.MethodGet, "/api/storage/labels?box=A1", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "etiquetas-A1.pdf")
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF-1.3 fake", string(body))
}

func TestStorage_SinToken(t *testing.T) {
	app := buildStorageApp(&stubStorage{})
	req := httptest.NewRequest(http.MethodGet, "/api/storage/locations?box=A1", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
