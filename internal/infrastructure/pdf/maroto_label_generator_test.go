package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipcleaners/pos-api/internal/application/storage"
	"github.com/vipcleaners/pos-api/internal/infrastructure/pdf"
)

func TestRenderBoxLabels(t *testing.T) {
	gen := pdf.NewMarotoLabelGenerator()
	out, err := gen.RenderBoxLabels(context.Background(), storage.LabelSheet{
		Box:         "A1",
		GeneratedAt: time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
		Labels: []storage.Label{
			{LocationCode: "ESTA-F1-P1", OrderReference: "VIP-20260115-AB12", ClientName: "Ana Ruiz", OrderStatus: "Ready", Occupants: 1},
			{LocationCode: "ESTA-F1-P2", OrderReference: "VIP-20260115-CD34", OrderStatus: "Received", Occupants: 2},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
