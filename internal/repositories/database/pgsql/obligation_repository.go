package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prospel/prospel_backend/internal/apperrors"
	"github.com/prospel/prospel_backend/internal/core/domain"
	portsrepo "github.com/prospel/prospel_backend/internal/core/ports/repositories"
)

type PgxObligationRepository struct {
	db *pgxpool.Pool
}

func newPgxObligationRepository(db *pgxpool.Pool) portsrepo.ObligationRepositoryFacade {
	return &PgxObligationRepository{db: db}
}

// Ensure PgxObligationRepository implements portsrepo.ObligationRepositoryFacade
var _ portsrepo.ObligationRepositoryFacade = (*PgxObligationRepository)(nil)

func (r *PgxObligationRepository) FindPaymentTypes(ctx context.Context) ([]domain.PaymentType, error) {
	query := `
		SELECT payment_type_id, code, name_sr, name_ru, sort_order
		FROM payment_types
		ORDER BY sort_order;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment types: %w", err)
	}
	defer rows.Close()

	types := []domain.PaymentType{}
	for rows.Next() {
		var t domain.PaymentType
		if err := rows.Scan(&t.PaymentTypeID, &t.Code, &t.NameSr, &t.NameRu, &t.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan payment type row: %w", err)
		}
		types = append(types, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating payment type rows: %w", rows.Err())
	}
	return types, nil
}

const decisionColumns = `decision_id, year, payment_type_id, period_start, period_end, monthly_amount, recipient_name, recipient_account, sifra_placanja, model, poziv_na_broj, poziv_na_broj_next, payment_purpose, currency, is_provisional, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanDecision(row pgx.Row) (*domain.YearDecision, error) {
	var d domain.YearDecision
	err := row.Scan(
		&d.DecisionID,
		&d.Year,
		&d.PaymentTypeID,
		&d.PeriodStart,
		&d.PeriodEnd,
		&d.MonthlyAmount,
		&d.RecipientName,
		&d.RecipientAccount,
		&d.SifraPlacanja,
		&d.Model,
		&d.PozivNaBroj,
		&d.PozivNaBrojNext,
		&d.PaymentPurpose,
		&d.Currency,
		&d.IsProvisional,
		&d.IsActive,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgxObligationRepository) FindYearDecisions(ctx context.Context, year int) ([]domain.YearDecision, error) {
	query := `
		SELECT ` + decisionColumns + `
		FROM year_decisions
		WHERE year = $1 AND is_active
		ORDER BY payment_type_id;
	`
	rows, err := r.db.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query year decisions: %w", err)
	}
	defer rows.Close()

	decisions := []domain.YearDecision{}
	for rows.Next() {
		decision, err := scanDecision(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan year decision row: %w", err)
		}
		decisions = append(decisions, *decision)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating year decision rows: %w", rows.Err())
	}
	return decisions, nil
}

func (r *PgxObligationRepository) FindDecisionByID(ctx context.Context, decisionID string) (*domain.YearDecision, error) {
	query := `SELECT ` + decisionColumns + ` FROM year_decisions WHERE decision_id = $1;`
	decision, err := scanDecision(r.db.QueryRow(ctx, query, decisionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find decision by ID %s: %w", decisionID, err)
	}
	return decision, nil
}

// UpsertYearDecision deactivates any previous decision for the same year and
// payment type, then inserts the new one, in a single transaction.
func (r *PgxObligationRepository) UpsertYearDecision(ctx context.Context, decision domain.YearDecision) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	deactivate := `
        UPDATE year_decisions
        SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
        WHERE year = $3 AND payment_type_id = $4 AND is_active;
    `
	if _, err := tx.Exec(ctx, deactivate, decision.LastUpdatedAt, decision.LastUpdatedBy, decision.Year, decision.PaymentTypeID); err != nil {
		return fmt.Errorf("failed to deactivate previous decision: %w", err)
	}

	insert := `
        INSERT INTO year_decisions (` + decisionColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
    `
	_, err = tx.Exec(ctx, insert,
		decision.DecisionID,
		decision.Year,
		decision.PaymentTypeID,
		decision.PeriodStart,
		decision.PeriodEnd,
		decision.MonthlyAmount,
		decision.RecipientName,
		decision.RecipientAccount,
		decision.SifraPlacanja,
		decision.Model,
		decision.PozivNaBroj,
		decision.PozivNaBrojNext,
		decision.PaymentPurpose,
		decision.Currency,
		decision.IsProvisional,
		decision.IsActive,
		decision.CreatedAt,
		decision.CreatedBy,
		decision.LastUpdatedAt,
		decision.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert year decision: %w", mapUniqueViolation(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit year decision: %w", err)
	}
	return nil
}

const obligationColumns = `obligation_id, year, month, payment_type_id, decision_id, amount, deadline, paid_date, payment_reference, expense_id, note, created_at, created_by, last_updated_at, last_updated_by`

func scanObligation(row pgx.Row) (*domain.MonthlyObligation, error) {
	var o domain.MonthlyObligation
	var month int
	err := row.Scan(
		&o.ObligationID,
		&o.Year,
		&month,
		&o.PaymentTypeID,
		&o.DecisionID,
		&o.Amount,
		&o.Deadline,
		&o.PaidDate,
		&o.PaymentReference,
		&o.ExpenseID,
		&o.Note,
		&o.CreatedAt,
		&o.CreatedBy,
		&o.LastUpdatedAt,
		&o.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	o.Month = time.Month(month)
	return &o, nil
}

func collectObligations(rows pgx.Rows) ([]domain.MonthlyObligation, error) {
	defer rows.Close()
	obligations := []domain.MonthlyObligation{}
	for rows.Next() {
		obligation, err := scanObligation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment row: %w", err)
		}
		obligations = append(obligations, *obligation)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating installment rows: %w", rows.Err())
	}
	return obligations, nil
}

func (r *PgxObligationRepository) FindObligationByID(ctx context.Context, obligationID string) (*domain.MonthlyObligation, error) {
	query := `SELECT ` + obligationColumns + ` FROM monthly_obligations WHERE obligation_id = $1;`
	obligation, err := scanObligation(r.db.QueryRow(ctx, query, obligationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find installment by ID %s: %w", obligationID, err)
	}
	return obligation, nil
}

func (r *PgxObligationRepository) FindMonthlyObligations(ctx context.Context, year int) ([]domain.MonthlyObligation, error) {
	query := `
		SELECT ` + obligationColumns + `
		FROM monthly_obligations
		WHERE year = $1
		ORDER BY month, payment_type_id;
	`
	rows, err := r.db.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query installments: %w", err)
	}
	return collectObligations(rows)
}

func (r *PgxObligationRepository) FindUnpaidObligations(ctx context.Context, until domain.Date) ([]domain.MonthlyObligation, error) {
	query := `
		SELECT ` + obligationColumns + `
		FROM monthly_obligations
		WHERE paid_date IS NULL AND deadline <= $1
		ORDER BY deadline, payment_type_id;
	`
	rows, err := r.db.Query(ctx, query, until)
	if err != nil {
		return nil, fmt.Errorf("failed to query unpaid installments: %w", err)
	}
	return collectObligations(rows)
}

// SaveMonthlyObligations batch-inserts generated installments.
func (r *PgxObligationRepository) SaveMonthlyObligations(ctx context.Context, obligations []domain.MonthlyObligation) error {
	if len(obligations) == 0 {
		return nil
	}

	query := `
        INSERT INTO monthly_obligations (` + obligationColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	batch := &pgx.Batch{}
	for _, o := range obligations {
		batch.Queue(query,
			o.ObligationID,
			o.Year,
			int(o.Month),
			o.PaymentTypeID,
			o.DecisionID,
			o.Amount,
			o.Deadline,
			o.PaidDate,
			o.PaymentReference,
			o.ExpenseID,
			o.Note,
			o.CreatedAt,
			o.CreatedBy,
			o.LastUpdatedAt,
			o.LastUpdatedBy,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert installments: %w", mapUniqueViolation(err))
	}
	return nil
}

func (r *PgxObligationRepository) UpdateObligation(ctx context.Context, obligation domain.MonthlyObligation) error {
	query := `
        UPDATE monthly_obligations
        SET decision_id = $1, amount = $2, deadline = $3, paid_date = $4, payment_reference = $5,
            expense_id = $6, note = $7, last_updated_at = $8, last_updated_by = $9
        WHERE obligation_id = $10;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		obligation.DecisionID,
		obligation.Amount,
		obligation.Deadline,
		obligation.PaidDate,
		obligation.PaymentReference,
		obligation.ExpenseID,
		obligation.Note,
		obligation.LastUpdatedAt,
		obligation.LastUpdatedBy,
		obligation.ObligationID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update installment query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("installment not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
