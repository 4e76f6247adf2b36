package storage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vipcleaners/pos-api/internal/domain/storage"
)

func TestParseBoxLabel(t *testing.T) {
	cases := []struct {
		in, letter, number string
	}{
		{"A1", "A", "1"},
		{"  b12 ", "B", "12"},
		{"AB7", "A", "7"},
		{"warehouse-3", "W", "1"},
		{"caja", "C", "1"},
		{"", "X", "1"},
		{"   ", "X", "1"},
		{"7", "7", "1"},
	}
	for _, tc := range cases {
		letter, number := storage.ParseBoxLabel(tc.in)
		assert.Equal(t, tc.letter, letter, "letra para %q", tc.in)
		assert.Equal(t, tc.number, number, "número para %q", tc.in)
	}
}

func TestIsStrictBoxLabel(t *testing.T) {
	assert.True(t, storage.IsStrictBoxLabel("A1"))
	assert.True(t, storage.IsStrictBoxLabel(" c15 "))
	assert.False(t, storage.IsStrictBoxLabel("AB1"), "más de una letra no es estricto")
	assert.False(t, storage.IsStrictBoxLabel("A"))
	assert.False(t, storage.IsStrictBoxLabel("warehouse-3"))
	assert.False(t, storage.IsStrictBoxLabel(""))
}

func TestIsValidFormat(t *testing.T) {
	valid := []string{"ESTA-F1-P1", "estb-f2-p10", " ESTZ-F10-P3-123 "}
	for _, c := range valid {
		assert.True(t, storage.IsValidFormat(c), c)
	}
	invalid := []string{"", "   ", "banana", "EST-AUTO-123456", "ESTAB-F1-P1", "ESTA-F1", "ESTA-F1-P1-", "ESTA-FX-P1"}
	for _, c := range invalid {
		assert.False(t, storage.IsValidFormat(c), c)
	}
}

func TestBuildCode(t *testing.T) {
	assert.Equal(t, "ESTA-F1-P1", storage.BuildCode("A", "1", 1))
	assert.Equal(t, "ESTB-F2-P4", storage.BuildCode("B", "2", 4))
}

func TestBoxPrefix_EtiquetasEquivalentes(t *testing.T) {
	assert.Equal(t, "ESTA-F1", storage.BoxPrefix("A1"))
	assert.Equal(t, "ESTA-F1", storage.BoxPrefix(" a1 "))
	assert.Equal(t, "ESTB-F12", storage.BoxPrefix("b12"))
	assert.NotEqual(t, storage.BoxPrefix("A1"), storage.BoxPrefix("A12"))
}

func TestDisambiguate_UltimosTresDigitosDelTimestamp(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_042)
	assert.Equal(t, "ESTA-F1-P1-042", storage.Disambiguate("ESTA-F1-P1", now))
	assert.Regexp(t, `^ESTA-F1-P1-\d{3}$`, storage.Disambiguate("ESTA-F1-P1", time.Now()))
}

func TestFallbackCode(t *testing.T) {
	now := time.UnixMilli(1_700_000_123_456)
	assert.Equal(t, "EST-AUTO-123456", storage.FallbackCode(now))
}

func TestExampleCodes_SonValidasYCopia(t *testing.T) {
	ex := storage.ExampleCodes()
	assert.GreaterOrEqual(t, len(ex), 2)
	assert.LessOrEqual(t, len(ex), 3)
	for _, c := range ex {
		assert.True(t, storage.IsValidFormat(c), c)
	}
	ex[0] = "mutado"
	assert.NotEqual(t, "mutado", storage.ExampleCodes()[0])
}
