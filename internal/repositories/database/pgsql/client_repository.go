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

type PgxClientRepository struct {
	db *pgxpool.Pool
}

func newPgxClientRepository(db *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{db: db}
}

// Ensure PgxClientRepository implements portsrepo.ClientRepositoryFacade
var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientColumns = `client_id, name, address, pib, contact, client_type, is_archived, created_at, created_by, last_updated_at, last_updated_by`

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ClientID,
		&c.Name,
		&c.Address,
		&c.PIB,
		&c.Contact,
		&c.ClientType,
		&c.IsArchived,
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

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	query := `
        INSERT INTO clients (` + clientColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.db.Exec(ctx, query,
		client.ClientID,
		client.Name,
		client.Address,
		client.PIB,
		client.Contact,
		client.ClientType,
		client.IsArchived,
		client.CreatedAt,
		client.CreatedBy,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save client: %w", mapUniqueViolation(err))
	}
	return nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1;`
	client, err := scanClient(r.db.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}
	return client, nil
}

func (r *PgxClientRepository) FindClients(ctx context.Context, filter portsrepo.ClientFilter) ([]domain.Client, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + clientColumns + ` FROM clients WHERE 1=1`
	args := []any{}
	if !filter.IncludeArchived {
		query += ` AND is_archived = FALSE`
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(` AND (name ILIKE $%d OR pib ILIKE $%d)`, len(args), len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY name LIMIT $%d`, len(args))
	args = append(args, offset)
	query += fmt.Sprintf(` OFFSET $%d;`, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients := []domain.Client{}
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, *client)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", rows.Err())
	}
	return clients, nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	query := `
        UPDATE clients
        SET name = $1, address = $2, pib = $3, contact = $4, client_type = $5, is_archived = $6, last_updated_at = $7, last_updated_by = $8
        WHERE client_id = $9;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		client.Name,
		client.Address,
		client.PIB,
		client.Contact,
		client.ClientType,
		client.IsArchived,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
		client.ClientID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update client query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("client not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
