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

type PgxContractRepository struct {
	db *pgxpool.Pool
}

func newPgxContractRepository(db *pgxpool.Pool) portsrepo.ContractRepositoryFacade {
	return &PgxContractRepository{db: db}
}

// Ensure PgxContractRepository implements portsrepo.ContractRepositoryFacade
var _ portsrepo.ContractRepositoryFacade = (*PgxContractRepository)(nil)

const contractColumns = `contract_id, number, contract_date, client_id, project_id, contract_type, subject, amount, currency, validity_start, validity_end, status, note, created_at, created_by, last_updated_at, last_updated_by`

func scanContract(row pgx.Row) (*domain.Contract, error) {
	var c domain.Contract
	err := row.Scan(
		&c.ContractID,
		&c.Number,
		&c.Date,
		&c.ClientID,
		&c.ProjectID,
		&c.ContractType,
		&c.Subject,
		&c.Amount,
		&c.Currency,
		&c.ValidityStart,
		&c.ValidityEnd,
		&c.Status,
		&c.Note,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxContractRepository) SaveContract(ctx context.Context, contract domain.Contract) error {
	query := `
        INSERT INTO contracts (` + contractColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
    `
	_, err := r.db.Exec(ctx, query,
		contract.ContractID,
		contract.Number,
		contract.Date,
		contract.ClientID,
		contract.ProjectID,
		contract.ContractType,
		contract.Subject,
		contract.Amount,
		contract.Currency,
		contract.ValidityStart,
		contract.ValidityEnd,
		contract.Status,
		contract.Note,
		contract.CreatedAt,
		contract.CreatedBy,
		contract.LastUpdatedAt,
		contract.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save contract: %w", mapUniqueViolation(err))
	}
	return nil
}

func (r *PgxContractRepository) FindContractByID(ctx context.Context, contractID string) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE contract_id = $1;`
	contract, err := scanContract(r.db.QueryRow(ctx, query, contractID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find contract by ID %s: %w", contractID, err)
	}
	return contract, nil
}

func (r *PgxContractRepository) FindContracts(ctx context.Context, filter portsrepo.ContractFilter) ([]domain.Contract, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + contractColumns + ` FROM contracts WHERE 1=1`
	args := []any{}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		query += fmt.Sprintf(` AND client_id = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY contract_date DESC LIMIT $%d`, len(args))
	args = append(args, offset)
	query += fmt.Sprintf(` OFFSET $%d;`, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	defer rows.Close()

	contracts := []domain.Contract{}
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract row: %w", err)
		}
		contracts = append(contracts, *contract)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating contract rows: %w", rows.Err())
	}
	return contracts, nil
}

func (r *PgxContractRepository) UpdateContract(ctx context.Context, contract domain.Contract) error {
	query := `
        UPDATE contracts
        SET number = $1, contract_date = $2, client_id = $3, project_id = $4, contract_type = $5,
            subject = $6, amount = $7, currency = $8, validity_start = $9, validity_end = $10,
            status = $11, note = $12, last_updated_at = $13, last_updated_by = $14
        WHERE contract_id = $15;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		contract.Number,
		contract.Date,
		contract.ClientID,
		contract.ProjectID,
		contract.ContractType,
		contract.Subject,
		contract.Amount,
		contract.Currency,
		contract.ValidityStart,
		contract.ValidityEnd,
		contract.Status,
		contract.Note,
		contract.LastUpdatedAt,
		contract.LastUpdatedBy,
		contract.ContractID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update contract query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("contract not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
