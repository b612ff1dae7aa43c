package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prospel/prospel_backend/internal/apperrors"
	"github.com/prospel/prospel_backend/internal/core/domain"
	portsrepo "github.com/prospel/prospel_backend/internal/core/ports/repositories"
)

type PgxIncomeRepository struct {
	db *pgxpool.Pool
}

func newPgxIncomeRepository(db *pgxpool.Pool) portsrepo.IncomeRepositoryFacade {
	return &PgxIncomeRepository{db: db}
}

// Ensure PgxIncomeRepository implements portsrepo.IncomeRepositoryFacade
var _ portsrepo.IncomeRepositoryFacade = (*PgxIncomeRepository)(nil)

const incomeColumns = `income_id, issued_date, invoice_number, invoice_year, client_id, client_name, description, amount_rsd, currency, paid_date, status, project_id, contract_id, bank_reference, note, created_at, created_by, last_updated_at, last_updated_by`

func scanIncome(row pgx.Row) (*domain.Income, error) {
	var i domain.Income
	err := row.Scan(
		&i.IncomeID,
		&i.IssuedDate,
		&i.InvoiceNumber,
		&i.InvoiceYear,
		&i.ClientID,
		&i.ClientName,
		&i.Description,
		&i.AmountRSD,
		&i.Currency,
		&i.PaidDate,
		&i.Status,
		&i.ProjectID,
		&i.ContractID,
		&i.BankReference,
		&i.Note,
		&i.CreatedAt,
		&i.CreatedBy,
		&i.LastUpdatedAt,
		&i.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func collectIncomes(rows pgx.Rows) ([]domain.Income, error) {
	defer rows.Close()
	incomes := []domain.Income{}
	for rows.Next() {
		income, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan income row: %w", err)
		}
		incomes = append(incomes, *income)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating income rows: %w", rows.Err())
	}
	return incomes, nil
}

func (r *PgxIncomeRepository) SaveIncome(ctx context.Context, income domain.Income) error {
	query := `
        INSERT INTO incomes (` + incomeColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
    `
	_, err := r.db.Exec(ctx, query,
		income.IncomeID,
		income.IssuedDate,
		income.InvoiceNumber,
		income.InvoiceYear,
		income.ClientID,
		income.ClientName,
		income.Description,
		income.AmountRSD,
		income.Currency,
		income.PaidDate,
		income.Status,
		income.ProjectID,
		income.ContractID,
		income.BankReference,
		income.Note,
		income.CreatedAt,
		income.CreatedBy,
		income.LastUpdatedAt,
		income.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save income: %w", mapUniqueViolation(err))
	}
	return nil
}

func (r *PgxIncomeRepository) FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE income_id = $1;`
	income, err := scanIncome(r.db.QueryRow(ctx, query, incomeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find income by ID %s: %w", incomeID, err)
	}
	return income, nil
}

func (r *PgxIncomeRepository) FindIncomes(ctx context.Context, filter portsrepo.IncomeFilter) ([]domain.Income, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE 1=1`
	args := []any{}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(` AND issued_date >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(` AND issued_date <= $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		query += fmt.Sprintf(` AND client_id = $%d`, len(args))
	}
	if filter.ProjectID != "" {
		args = append(args, filter.ProjectID)
		query += fmt.Sprintf(` AND project_id = $%d`, len(args))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		query += fmt.Sprintf(` AND invoice_year = $%d`, len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY issued_date, invoice_number LIMIT $%d`, len(args))
	args = append(args, offset)
	query += fmt.Sprintf(` OFFSET $%d;`, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query incomes: %w", err)
	}
	return collectIncomes(rows)
}

// FindIncomesForReporting pulls rows that touch the window through either
// their issue date or their paid date, so both accrual and cash aggregation
// see every relevant row.
func (r *PgxIncomeRepository) FindIncomesForReporting(ctx context.Context, from, to domain.Date) ([]domain.Income, error) {
	query := `
		SELECT ` + incomeColumns + `
		FROM incomes
		WHERE (issued_date BETWEEN $1 AND $2) OR (paid_date BETWEEN $1 AND $2)
		ORDER BY issued_date, invoice_number;
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query incomes for reporting: %w", err)
	}
	return collectIncomes(rows)
}

func (r *PgxIncomeRepository) FindOutstandingIncomes(ctx context.Context) ([]domain.Income, error) {
	query := `
		SELECT ` + incomeColumns + `
		FROM incomes
		WHERE status <> 'cancelled' AND paid_date IS NULL
		ORDER BY issued_date, invoice_number;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query outstanding incomes: %w", err)
	}
	return collectIncomes(rows)
}

func (r *PgxIncomeRepository) FindRecentIncomes(ctx context.Context, limit int) ([]domain.Income, error) {
	query := `
		SELECT ` + incomeColumns + `
		FROM incomes
		ORDER BY issued_date DESC, invoice_number DESC
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent incomes: %w", err)
	}
	return collectIncomes(rows)
}

func (r *PgxIncomeRepository) UpdateIncome(ctx context.Context, income domain.Income) error {
	query := `
        UPDATE incomes
        SET issued_date = $1, client_id = $2, client_name = $3, description = $4, amount_rsd = $5,
            paid_date = $6, status = $7, project_id = $8, contract_id = $9, bank_reference = $10,
            note = $11, last_updated_at = $12, last_updated_by = $13
        WHERE income_id = $14;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		income.IssuedDate,
		income.ClientID,
		income.ClientName,
		income.Description,
		income.AmountRSD,
		income.PaidDate,
		income.Status,
		income.ProjectID,
		income.ContractID,
		income.BankReference,
		income.Note,
		income.LastUpdatedAt,
		income.LastUpdatedBy,
		income.IncomeID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update income query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("income not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// AllocateInvoiceNumber increments the yearly counter atomically and returns
// the new value.
func (r *PgxIncomeRepository) AllocateInvoiceNumber(ctx context.Context, year int) (int, error) {
	query := `
        INSERT INTO invoice_sequence (year, counter)
        VALUES ($1, 1)
        ON CONFLICT (year) DO UPDATE SET counter = invoice_sequence.counter + 1
        RETURNING counter;
    `
	var counter int
	if err := r.db.QueryRow(ctx, query, year).Scan(&counter); err != nil {
		return 0, fmt.Errorf("failed to allocate invoice number for %d: %w", year, err)
	}
	return counter, nil
}

// PeekInvoiceNumber returns the next counter value without consuming it.
func (r *PgxIncomeRepository) PeekInvoiceNumber(ctx context.Context, year int) (int, error) {
	query := `SELECT counter + 1 FROM invoice_sequence WHERE year = $1;`
	var next int
	err := r.db.QueryRow(ctx, query, year).Scan(&next)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 1, nil
		}
		return 0, fmt.Errorf("failed to peek invoice number for %d: %w", year, err)
	}
	return next, nil
}
