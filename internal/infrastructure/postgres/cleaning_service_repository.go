package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vipcleaners/pos-api/internal/domain"
	"github.com/vipcleaners/pos-api/internal/domain/entity"
	"github.com/vipcleaners/pos-api/internal/domain/repository"
)

var _ repository.CleaningServiceRepository = (*CleaningServiceRepo)(nil)

// CleaningServiceRepo implementación de CleaningServiceRepository.
type CleaningServiceRepo struct {
	q Querier
}

// NewCleaningServiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCleaningServiceRepository(q Querier) *CleaningServiceRepo {
	return &CleaningServiceRepo{q: q}
}

const serviceColumns = `id, name, description, price, active, created_at, updated_at`

// Create persiste un servicio.
func (r *CleaningServiceRepo) Create(ctx context.Context, s *entity.CleaningService) error {
	query := `INSERT INTO cleaning_services (` + serviceColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Description, s.Price, s.Active, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cleaning service: %w", err)
	}
	return nil
}

// GetByID obtiene un servicio por ID.
func (r *CleaningServiceRepo) GetByID(ctx context.Context, id string) (*entity.CleaningService, error) {
	s, err := scanService(r.q.QueryRow(ctx, `SELECT `+serviceColumns+` FROM cleaning_services WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cleaning service: %w", err)
	}
	return s, nil
}

// Update guarda nombre, descripción, precio y estado.
func (r *CleaningServiceRepo) Update(ctx context.Context, s *entity.CleaningService) error {
	query := `
		UPDATE cleaning_services
		SET name = $2, description = $3, price = $4, active = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Description, s.Price, s.Active, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update cleaning service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista el catálogo ordenado por precio.
func (r *CleaningServiceRepo) List(ctx context.Context, onlyActive bool) ([]*entity.CleaningService, error) {
	query := `SELECT ` + serviceColumns + ` FROM cleaning_services`
	if onlyActive {
		query += ` WHERE active`
	}
	query += ` ORDER BY price, name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cleaning services: %w", err)
	}
	defer rows.Close()
	var list []*entity.CleaningService
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cleaning service: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanService(row pgx.Row) (*entity.CleaningService, error) {
	var s entity.CleaningService
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
