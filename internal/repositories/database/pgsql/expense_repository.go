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

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepositoryFacade
var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, expense_date, description, amount, currency, category, bank_reference, paid_date, status, is_tax_related, source, reversed_expense_id, reversal_of_id, project_id, note, created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(
		&e.ExpenseID,
		&e.Date,
		&e.Description,
		&e.Amount,
		&e.Currency,
		&e.Category,
		&e.BankReference,
		&e.PaidDate,
		&e.Status,
		&e.IsTaxRelated,
		&e.Source,
		&e.ReversedExpenseID,
		&e.ReversalOfID,
		&e.ProjectID,
		&e.Note,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func collectExpenses(rows pgx.Rows) ([]domain.Expense, error) {
	defer rows.Close()
	expenses := []domain.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, *expense)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", rows.Err())
	}
	return expenses, nil
}

const insertExpenseQuery = `
    INSERT INTO expenses (` + expenseColumns + `)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
`

func expenseInsertArgs(e domain.Expense) []any {
	return []any{
		e.ExpenseID,
		e.Date,
		e.Description,
		e.Amount,
		e.Currency,
		e.Category,
		e.BankReference,
		e.PaidDate,
		e.Status,
		e.IsTaxRelated,
		e.Source,
		e.ReversedExpenseID,
		e.ReversalOfID,
		e.ProjectID,
		e.Note,
		e.CreatedAt,
		e.CreatedBy,
		e.LastUpdatedAt,
		e.LastUpdatedBy,
	}
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	_, err := r.Pool.Exec(ctx, insertExpenseQuery, expenseInsertArgs(expense)...)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", mapUniqueViolation(err))
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	expense, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}
	return expense, nil
}

func (r *PgxExpenseRepository) FindExpenses(ctx context.Context, filter portsrepo.ExpenseFilter) ([]domain.Expense, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE 1=1`
	args := []any{}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(` AND expense_date >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(` AND expense_date <= $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if filter.ProjectID != "" {
		args = append(args, filter.ProjectID)
		query += fmt.Sprintf(` AND project_id = $%d`, len(args))
	}
	if !filter.IncludeReversals {
		query += ` AND reversal_of_id IS NULL AND reversed_expense_id IS NULL`
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY expense_date DESC LIMIT $%d`, len(args))
	args = append(args, offset)
	query += fmt.Sprintf(` OFFSET $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	return collectExpenses(rows)
}

// FindExpensesForReporting pulls rows that touch the window through either
// their booking date or their paid date.
func (r *PgxExpenseRepository) FindExpensesForReporting(ctx context.Context, from, to domain.Date) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE (expense_date BETWEEN $1 AND $2) OR (paid_date BETWEEN $1 AND $2)
		ORDER BY expense_date;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses for reporting: %w", err)
	}
	return collectExpenses(rows)
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	query := `
        UPDATE expenses
        SET expense_date = $1, description = $2, amount = $3, category = $4, bank_reference = $5,
            paid_date = $6, status = $7, is_tax_related = $8, project_id = $9, note = $10,
            last_updated_at = $11, last_updated_by = $12
        WHERE expense_id = $13;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		expense.Date,
		expense.Description,
		expense.Amount,
		expense.Category,
		expense.BankReference,
		expense.PaidDate,
		expense.Status,
		expense.IsTaxRelated,
		expense.ProjectID,
		expense.Note,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
		expense.ExpenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update expense query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("expense not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// CreateReversal inserts the storno row and back-links the original in a
// single transaction. The original may be reversed only once.
func (r *PgxExpenseRepository) CreateReversal(ctx context.Context, reversal domain.Expense, originalID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, insertExpenseQuery, expenseInsertArgs(reversal)...); err != nil {
		return fmt.Errorf("failed to insert reversal: %w", mapUniqueViolation(err))
	}

	linkQuery := `
        UPDATE expenses
        SET reversed_expense_id = $1, last_updated_at = $2, last_updated_by = $3
        WHERE expense_id = $4 AND reversed_expense_id IS NULL;
    `
	cmdTag, err := tx.Exec(ctx, linkQuery,
		reversal.ExpenseID,
		reversal.LastUpdatedAt,
		reversal.LastUpdatedBy,
		originalID,
	)
	if err != nil {
		return fmt.Errorf("failed to link reversal to expense %s: %w", originalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("expense %s already reversed or missing: %w", originalID, apperrors.ErrConflict)
	}

	return r.Commit(ctx, tx)
}
