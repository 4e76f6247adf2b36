package dto

// Límites de paginación de los listados.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageRequest ?limit=&offset= de un listado.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Normalize acota Limit a [1, MaxPageLimit] (0 o negativo = DefaultPageLimit) y Offset a >= 0.
func (p PageRequest) Normalize() PageRequest {
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultPageLimit
	case p.Limit > MaxPageLimit:
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// PageResponse metadatos de la página devuelta.
type PageResponse struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

// NewPage arma los metadatos a partir del total de filas que cumplen el filtro.
func NewPage(limit, offset, total int) PageResponse {
	return PageResponse{Limit: limit, Offset: offset, Total: total, HasMore: offset+limit < total}
}

// ErrorResponse cuerpo de todas las respuestas de error. Code es estable para el frontend.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
