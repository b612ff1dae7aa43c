package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prospel/prospel_backend/internal/core/domain"
	portsrepo "github.com/prospel/prospel_backend/internal/core/ports/repositories"
)

type PgxEnterpriseRepository struct {
	db *pgxpool.Pool
}

func newPgxEnterpriseRepository(db *pgxpool.Pool) portsrepo.EnterpriseRepositoryFacade {
	return &PgxEnterpriseRepository{db: db}
}

// Ensure PgxEnterpriseRepository implements portsrepo.EnterpriseRepositoryFacade
var _ portsrepo.EnterpriseRepositoryFacade = (*PgxEnterpriseRepository)(nil)

// The enterprise table holds the single business profile row.
func (r *PgxEnterpriseRepository) GetEnterprise(ctx context.Context) (*domain.Enterprise, error) {
	query := `
		SELECT enterprise_id, name, address, pib, maticni_broj, bank_name, bank_account, bank_swift,
		       main_activity_code, opening_cash_balance, opening_cash_date,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM enterprise
		LIMIT 1;
	`
	var e domain.Enterprise
	err := r.db.QueryRow(ctx, query).Scan(
		&e.EnterpriseID,
		&e.Name,
		&e.Address,
		&e.PIB,
		&e.MaticniBroj,
		&e.BankName,
		&e.BankAccount,
		&e.BankSwift,
		&e.MainActivityCode,
		&e.OpeningCashBalance,
		&e.OpeningCashDate,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load enterprise profile: %w", err)
	}
	return &e, nil
}

func (r *PgxEnterpriseRepository) SaveEnterprise(ctx context.Context, enterprise domain.Enterprise) error {
	query := `
        INSERT INTO enterprise (
            enterprise_id, name, address, pib, maticni_broj, bank_name, bank_account, bank_swift,
            main_activity_code, opening_cash_balance, opening_cash_date,
            created_at, created_by, last_updated_at, last_updated_by
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        ON CONFLICT (enterprise_id) DO UPDATE SET
            name = EXCLUDED.name,
            address = EXCLUDED.address,
            pib = EXCLUDED.pib,
            maticni_broj = EXCLUDED.maticni_broj,
            bank_name = EXCLUDED.bank_name,
            bank_account = EXCLUDED.bank_account,
            bank_swift = EXCLUDED.bank_swift,
            main_activity_code = EXCLUDED.main_activity_code,
            opening_cash_balance = EXCLUDED.opening_cash_balance,
            opening_cash_date = EXCLUDED.opening_cash_date,
            last_updated_at = EXCLUDED.last_updated_at,
            last_updated_by = EXCLUDED.last_updated_by;
    `
	_, err := r.db.Exec(ctx, query,
		enterprise.EnterpriseID,
		enterprise.Name,
		enterprise.Address,
		enterprise.PIB,
		enterprise.MaticniBroj,
		enterprise.BankName,
		enterprise.BankAccount,
		enterprise.BankSwift,
		enterprise.MainActivityCode,
		enterprise.OpeningCashBalance,
		enterprise.OpeningCashDate,
		enterprise.CreatedAt,
		enterprise.CreatedBy,
		enterprise.LastUpdatedAt,
		enterprise.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save enterprise profile: %w", err)
	}
	return nil
}
