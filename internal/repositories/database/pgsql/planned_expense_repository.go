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

type PgxPlannedExpenseRepository struct {
	db *pgxpool.Pool
}

func newPgxPlannedExpenseRepository(db *pgxpool.Pool) portsrepo.PlannedExpenseRepositoryFacade {
	return &PgxPlannedExpenseRepository{db: db}
}

// Ensure PgxPlannedExpenseRepository implements portsrepo.PlannedExpenseRepositoryFacade
var _ portsrepo.PlannedExpenseRepositoryFacade = (*PgxPlannedExpenseRepository)(nil)

const plannedExpenseColumns = `planned_expense_id, name, description, amount, currency, category, period, payment_day, payment_day_of_week, start_date, end_date, reminder_days, is_active, note, created_at, created_by, last_updated_at, last_updated_by`

func scanPlannedExpense(row pgx.Row) (*domain.PlannedExpense, error) {
	var pe domain.PlannedExpense
	err := row.Scan(
		&pe.PlannedExpenseID,
		&pe.Name,
		&pe.Description,
		&pe.Amount,
		&pe.Currency,
		&pe.Category,
		&pe.Period,
		&pe.PaymentDay,
		&pe.PaymentDayOfWeek,
		&pe.StartDate,
		&pe.EndDate,
		&pe.ReminderDays,
		&pe.IsActive,
		&pe.Note,
		&pe.CreatedAt,
		&pe.CreatedBy,
		&pe.LastUpdatedAt,
		&pe.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &pe, nil
}

func (r *PgxPlannedExpenseRepository) SavePlannedExpense(ctx context.Context, plannedExpense domain.PlannedExpense) error {
	query := `
        INSERT INTO planned_expenses (` + plannedExpenseColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
    `
	_, err := r.db.Exec(ctx, query,
		plannedExpense.PlannedExpenseID,
		plannedExpense.Name,
		plannedExpense.Description,
		plannedExpense.Amount,
		plannedExpense.Currency,
		plannedExpense.Category,
		plannedExpense.Period,
		plannedExpense.PaymentDay,
		plannedExpense.PaymentDayOfWeek,
		plannedExpense.StartDate,
		plannedExpense.EndDate,
		plannedExpense.ReminderDays,
		plannedExpense.IsActive,
		plannedExpense.Note,
		plannedExpense.CreatedAt,
		plannedExpense.CreatedBy,
		plannedExpense.LastUpdatedAt,
		plannedExpense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save planned expense: %w", err)
	}
	return nil
}

func (r *PgxPlannedExpenseRepository) FindPlannedExpenseByID(ctx context.Context, plannedExpenseID string) (*domain.PlannedExpense, error) {
	query := `SELECT ` + plannedExpenseColumns + ` FROM planned_expenses WHERE planned_expense_id = $1;`
	pe, err := scanPlannedExpense(r.db.QueryRow(ctx, query, plannedExpenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find planned expense by ID %s: %w", plannedExpenseID, err)
	}
	return pe, nil
}

func (r *PgxPlannedExpenseRepository) FindPlannedExpenses(ctx context.Context, activeOnly bool) ([]domain.PlannedExpense, error) {
	query := `SELECT ` + plannedExpenseColumns + ` FROM planned_expenses`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query planned expenses: %w", err)
	}
	defer rows.Close()

	items := []domain.PlannedExpense{}
	for rows.Next() {
		pe, err := scanPlannedExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan planned expense row: %w", err)
		}
		items = append(items, *pe)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating planned expense rows: %w", rows.Err())
	}
	return items, nil
}

func (r *PgxPlannedExpenseRepository) UpdatePlannedExpense(ctx context.Context, plannedExpense domain.PlannedExpense) error {
	query := `
        UPDATE planned_expenses
        SET name = $1, description = $2, amount = $3, category = $4, period = $5, payment_day = $6,
            payment_day_of_week = $7, start_date = $8, end_date = $9, reminder_days = $10,
            is_active = $11, note = $12, last_updated_at = $13, last_updated_by = $14
        WHERE planned_expense_id = $15;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		plannedExpense.Name,
		plannedExpense.Description,
		plannedExpense.Amount,
		plannedExpense.Category,
		plannedExpense.Period,
		plannedExpense.PaymentDay,
		plannedExpense.PaymentDayOfWeek,
		plannedExpense.StartDate,
		plannedExpense.EndDate,
		plannedExpense.ReminderDays,
		plannedExpense.IsActive,
		plannedExpense.Note,
		plannedExpense.LastUpdatedAt,
		plannedExpense.LastUpdatedBy,
		plannedExpense.PlannedExpenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update planned expense query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("planned expense not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxPlannedExpenseRepository) DeletePlannedExpense(ctx context.Context, plannedExpenseID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM planned_expenses WHERE planned_expense_id = $1;`, plannedExpenseID)
	if err != nil {
		return fmt.Errorf("failed to delete planned expense: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("planned expense not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxPlannedExpenseRepository) SaveOccurrencePayment(ctx context.Context, payment domain.OccurrencePayment) error {
	query := `
        INSERT INTO occurrence_payments (payment_id, planned_expense_id, due_date, paid_date, expense_id, note)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.db.Exec(ctx, query,
		payment.PaymentID,
		payment.PlannedExpenseID,
		payment.DueDate,
		payment.PaidDate,
		payment.ExpenseID,
		payment.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to save occurrence payment: %w", mapUniqueViolation(err))
	}
	return nil
}

func (r *PgxPlannedExpenseRepository) FindOccurrencePayments(ctx context.Context, from, to domain.Date) ([]domain.OccurrencePayment, error) {
	query := `
		SELECT payment_id, planned_expense_id, due_date, paid_date, expense_id, note
		FROM occurrence_payments
		WHERE due_date BETWEEN $1 AND $2
		ORDER BY due_date;
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query occurrence payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.OccurrencePayment{}
	for rows.Next() {
		var p domain.OccurrencePayment
		if err := rows.Scan(&p.PaymentID, &p.PlannedExpenseID, &p.DueDate, &p.PaidDate, &p.ExpenseID, &p.Note); err != nil {
			return nil, fmt.Errorf("failed to scan occurrence payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating occurrence payment rows: %w", rows.Err())
	}
	return payments, nil
}

func (r *PgxPlannedExpenseRepository) FindOccurrencePayment(ctx context.Context, plannedExpenseID string, dueDate domain.Date) (*domain.OccurrencePayment, error) {
	query := `
		SELECT payment_id, planned_expense_id, due_date, paid_date, expense_id, note
		FROM occurrence_payments
		WHERE planned_expense_id = $1 AND due_date = $2;
	`
	var p domain.OccurrencePayment
	err := r.db.QueryRow(ctx, query, plannedExpenseID, dueDate).
		Scan(&p.PaymentID, &p.PlannedExpenseID, &p.DueDate, &p.PaidDate, &p.ExpenseID, &p.Note)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find occurrence payment: %w", err)
	}
	return &p, nil
}

func (r *PgxPlannedExpenseRepository) DeleteOccurrencePayment(ctx context.Context, paymentID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM occurrence_payments WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete occurrence payment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("occurrence payment not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
