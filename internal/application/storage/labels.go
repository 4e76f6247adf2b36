package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vipcleaners/pos-api/internal/domain"
)

// LabelUseCase arma la hoja de etiquetas imprimibles de una caja.
type LabelUseCase struct {
	svc      *Service
	renderer LabelRenderer
	now      func() time.Time
}

// NewLabelUseCase construye el caso de uso.
func NewLabelUseCase(svc *Service, renderer LabelRenderer) *LabelUseCase {
	return &LabelUseCase{svc: svc, renderer: renderer, now: time.Now}
}

// BoxLabels genera el PDF con una etiqueta por código activo de la caja.
// Retorna domain.ErrNotFound si la caja no tiene códigos activos.
func (uc *LabelUseCase) BoxLabels(ctx context.Context, box string) ([]byte, string, error) {
	box = strings.TrimSpace(box)
	occupants, err := uc.svc.ActiveOccupants(ctx, box)
	if err != nil {
		return nil, "", err
	}
	if len(occupants) == 0 {
		return nil, "", domain.ErrNotFound
	}

	sheet := LabelSheet{Box: box, GeneratedAt: uc.now()}
	index := map[string]int{}
	for _, occ := range occupants {
		if i, ok := index[occ.LocationCode]; ok {
			sheet.Labels[i].Occupants++
			continue
		}
		index[occ.LocationCode] = len(sheet.Labels)
		sheet.Labels = append(sheet.Labels, Label{
			LocationCode:   occ.LocationCode,
			OrderReference: occ.OrderReference,
			ClientName:     occ.ClientDisplayName,
			OrderStatus:    string(occ.OrderStatus),
			Occupants:      1,
		})
	}

	pdf, err := uc.renderer.RenderBoxLabels(ctx, sheet)
	if err != nil {
		return nil, "", fmt.Errorf("etiquetas: generar pdf: %w", err)
	}
	return pdf, fmt.Sprintf("etiquetas-%s.pdf", box), nil
}
