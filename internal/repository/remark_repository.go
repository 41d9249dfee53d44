package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// RemarkRepository stores the append-only remark log. There is no
// update or delete on purpose.
type RemarkRepository interface {
	Create(ctx context.Context, remark *domain.Remark) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Remark, error)
}

type remarkRepository struct {
	pool *pgxpool.Pool
}

// NewRemarkRepository builds repository.
func NewRemarkRepository(pool *pgxpool.Pool) RemarkRepository {
	return &remarkRepository{pool: pool}
}

func (r *remarkRepository) Create(ctx context.Context, remark *domain.Remark) error {
	const query = `
        INSERT INTO ticket_remarks (ticket_id, body, author_id, author_name)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		remark.TicketID,
		remark.Body,
		remark.AuthorID,
		remark.AuthorName,
	).Scan(&remark.ID, &remark.CreatedAt)
}

func (r *remarkRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Remark, error) {
	const query = `
        SELECT id, ticket_id, body, author_id, author_name, created_at
        FROM ticket_remarks WHERE ticket_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Remark
	for rows.Next() {
		var remark domain.Remark
		if err := rows.Scan(
			&remark.ID,
			&remark.TicketID,
			&remark.Body,
			&remark.AuthorID,
			&remark.AuthorName,
			&remark.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, remark)
	}
	return result, rows.Err()
}
