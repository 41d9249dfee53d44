package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// CompanyRepository manages the derived company directory.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	Update(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	GetByName(ctx context.Context, name string) (*domain.Company, error)
	List(ctx context.Context) ([]domain.Company, error)
}

type companyRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository builds the repository.
func NewCompanyRepository(pool *pgxpool.Pool) CompanyRepository {
	return &companyRepository{pool: pool}
}

const companyColumns = `id, name, domain, status, employee_count, total_tickets, resolved_tickets,
       pending_tickets, average_support_time, average_rating, created_at, updated_at, refreshed_at`

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	const query = `
        INSERT INTO companies (name, domain, status)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		company.Name,
		company.Domain,
		company.Status,
	).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
}

func (r *companyRepository) Update(ctx context.Context, company *domain.Company) error {
	const query = `
        UPDATE companies SET name=$1, domain=$2, status=$3, employee_count=$4, total_tickets=$5,
            resolved_tickets=$6, pending_tickets=$7, average_support_time=$8, average_rating=$9,
            refreshed_at=$10, updated_at=NOW()
        WHERE id=$11`
	cmd, err := r.pool.Exec(ctx, query,
		company.Name,
		company.Domain,
		company.Status,
		company.EmployeeCount,
		company.TotalTickets,
		company.ResolvedTickets,
		company.PendingTickets,
		company.AverageSupportTime,
		company.AverageRating,
		company.RefreshedAt,
		company.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	return r.fetchSingle(ctx, `SELECT `+companyColumns+` FROM companies WHERE id=$1`, id)
}

func (r *companyRepository) GetByName(ctx context.Context, name string) (*domain.Company, error) {
	return r.fetchSingle(ctx, `SELECT `+companyColumns+` FROM companies WHERE name=$1`, name)
}

func (r *companyRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Company, error) {
	var company domain.Company
	if err := r.pool.QueryRow(ctx, query, arg).Scan(companyScanTargets(&company)...); err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) List(ctx context.Context) ([]domain.Company, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Company
	for rows.Next() {
		var company domain.Company
		if err := rows.Scan(companyScanTargets(&company)...); err != nil {
			return nil, err
		}
		result = append(result, company)
	}
	return result, rows.Err()
}

func companyScanTargets(company *domain.Company) []any {
	return []any{
		&company.ID,
		&company.Name,
		&company.Domain,
		&company.Status,
		&company.EmployeeCount,
		&company.TotalTickets,
		&company.ResolvedTickets,
		&company.PendingTickets,
		&company.AverageSupportTime,
		&company.AverageRating,
		&company.CreatedAt,
		&company.UpdatedAt,
		&company.RefreshedAt,
	}
}

