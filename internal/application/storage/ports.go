package storage

import (
	"context"
	"time"

	"github.com/vipcleaners/pos-api/internal/domain/repository"
)

// AutoCodeGenerator genera un código del lado de la base de datos para cajas con formato estricto.
// Un string vacío significa "sin resultado"; el servicio cae entonces a la generación manual.
type AutoCodeGenerator interface {
	TryGenerate(ctx context.Context, box string) (string, error)
}

// TxRunner ejecuta fn dentro de una transacción con el repositorio de slots atado a ella.
type TxRunner interface {
	RunStorage(ctx context.Context, fn func(slots repository.StorageSlotRepository) error) error
}

// Recorder recibe eventos para métricas. Puede ser nil.
type Recorder interface {
	CodeGenerated(mode string)
	CodeValidated(result string)
	LocationAssigned(mode string)
}

// LabelRenderer genera el PDF de etiquetas de una caja.
type LabelRenderer interface {
	RenderBoxLabels(ctx context.Context, sheet LabelSheet) ([]byte, error)
}

// LabelSheet datos de la hoja de etiquetas: una etiqueta por código activo.
type LabelSheet struct {
	Box         string
	GeneratedAt time.Time
	Labels      []Label
}

// Label una etiqueta con su código de ubicación y a quién pertenece.
type Label struct {
	LocationCode   string
	OrderReference string
	ClientName     string
	OrderStatus    string
	// Occupants > 1 indica un código compartido por varios ítems activos.
	Occupants int
}
