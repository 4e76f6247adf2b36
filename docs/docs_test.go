package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	_ "github.com/vipcleaners/pos-api/docs"
)

func TestSwagger_RegistraRutasDeUbicaciones(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		Paths map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	for _, p := range []string{
		"/api/storage/generate-code",
		"/api/storage/validate-code",
		"/api/storage/locations",
		"/api/storage/items/{itemId}/location",
	} {
		assert.Contains(t, doc.Paths, p)
	}
}
