package postgres

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"

	"github.com/vipcleaners/pos-api/internal/application/storage"
)

var _ storage.AutoCodeGenerator = (*AutoCodeFunction)(nil)

var functionName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// AutoCodeFunction delega la generación automática en una función SQL (box text) RETURNS text.
type AutoCodeFunction struct {
	q     Querier
	query string
}

// NewAutoCodeFunction valida el nombre de la función configurada y arma la consulta.
func NewAutoCodeFunction(q Querier, name string) (*AutoCodeFunction, error) {
	if !functionName.MatchString(name) {
		return nil, fmt.Errorf("nombre de función inválido: %q", name)
	}
	return &AutoCodeFunction{
		q:     q,
		query: fmt.Sprintf("SELECT %s($1)", pgx.Identifier{name}.Sanitize()),
	}, nil
}

// TryGenerate devuelve "" cuando la función responde NULL.
func (f *AutoCodeFunction) TryGenerate(ctx context.Context, box string) (string, error) {
	var code *string
	if err := f.q.QueryRow(ctx, f.query, box).Scan(&code); err != nil {
		return "", fmt.Errorf("generar código automático: %w", err)
	}
	if code == nil {
		return "", nil
	}
	return *code, nil
}
