// Package pdf genera las hojas de etiquetas de almacenamiento con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: VIP Cleaners + Caja  │  Fecha de impresión          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ETIQUETA: QR │ Código grande / Orden / Cliente / Estado     │
//	│  ETIQUETA: ...                                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/vipcleaners/pos-api/internal/application/storage"
)

var (
	colorPrimary = &props.Color{Red: 20, Green: 20, Blue: 20}
	colorAccent  = &props.Color{Red: 184, Green: 134, Blue: 11}
	colorGray    = &props.Color{Red: 110, Green: 110, Blue: 110}
)

var _ storage.LabelRenderer = (*MarotoLabelGenerator)(nil)

// MarotoLabelGenerator implementa storage.LabelRenderer usando Maroto v2.
type MarotoLabelGenerator struct{}

// NewMarotoLabelGenerator construye el generador.
func NewMarotoLabelGenerator() *MarotoLabelGenerator { return &MarotoLabelGenerator{} }

// RenderBoxLabels genera el PDF y devuelve sus bytes.
func (g *MarotoLabelGenerator) RenderBoxLabels(_ context.Context, sheet storage.LabelSheet) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Etiquetas caja "+sheet.Box, true).
		WithAuthor("VIP Cleaners", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorAccent, Thickness: 0.5}))
	for _, l := range sheet.Labels {
		m.AddRows(labelRow(l))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: marca + caja (izq) y fecha + total de etiquetas (der).
func headerRow(sheet storage.LabelSheet) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("VIP CLEANERS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Caja "+sheet.Box, props.Text{
				Size: 10, Top: 8, Color: colorAccent, Style: fontstyle.Bold,
			}),
		),
		col.New(5).Add(
			text.New("Impreso: "+sheet.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%d etiqueta(s)", len(sheet.Labels)), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// labelRow: QR con el código (izq) y datos legibles (der).
func labelRow(l storage.Label) core.Row {
	client := l.ClientName
	if client == "" {
		client = "-"
	}
	details := []core.Component{
		text.New(l.LocationCode, props.Text{
			Style: fontstyle.Bold, Size: 16, Top: 2, Left: 3, Color: colorPrimary,
		}),
		text.New("Orden: "+l.OrderReference, props.Text{Size: 9, Top: 12, Left: 3}),
		text.New("Cliente: "+client, props.Text{Size: 9, Top: 17, Left: 3}),
		text.New("Estado: "+l.OrderStatus, props.Text{Size: 8, Top: 22, Left: 3, Color: colorGray}),
	}
	if l.Occupants > 1 {
		details = append(details, text.New(fmt.Sprintf("Compartido por %d pares", l.Occupants), props.Text{
			Size: 8, Top: 27, Left: 3, Style: fontstyle.Bold, Color: colorAccent,
		}))
	}
	return row.New(34).Add(
		col.New(3).Add(code.NewQr(l.LocationCode, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(9).Add(details...),
	)
}
