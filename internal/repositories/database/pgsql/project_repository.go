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

type PgxProjectRepository struct {
	db *pgxpool.Pool
}

func newPgxProjectRepository(db *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{db: db}
}

// Ensure PgxProjectRepository implements portsrepo.ProjectRepositoryFacade
var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

const projectColumns = `project_id, code, name, client_id, contract_id, status, start_date, end_date, planned_income, planned_expense, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ProjectID,
		&p.Code,
		&p.Name,
		&p.ClientID,
		&p.ContractID,
		&p.Status,
		&p.StartDate,
		&p.EndDate,
		&p.PlannedIncome,
		&p.PlannedExpense,
		&p.Notes,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	query := `
        INSERT INTO projects (` + projectColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err := r.db.Exec(ctx, query,
		project.ProjectID,
		project.Code,
		project.Name,
		project.ClientID,
		project.ContractID,
		project.Status,
		project.StartDate,
		project.EndDate,
		project.PlannedIncome,
		project.PlannedExpense,
		project.Notes,
		project.CreatedAt,
		project.CreatedBy,
		project.LastUpdatedAt,
		project.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", mapUniqueViolation(err))
	}
	return nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1;`
	project, err := scanProject(r.db.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find project by ID %s: %w", projectID, err)
	}
	return project, nil
}

func (r *PgxProjectRepository) FindProjects(ctx context.Context, filter portsrepo.ProjectFilter) ([]domain.Project, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + projectColumns + ` FROM projects WHERE 1=1`
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		query += fmt.Sprintf(` AND client_id = $%d`, len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY code DESC LIMIT $%d`, len(args))
	args = append(args, offset)
	query += fmt.Sprintf(` OFFSET $%d;`, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, *project)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", rows.Err())
	}
	return projects, nil
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	query := `
        UPDATE projects
        SET name = $1, client_id = $2, contract_id = $3, status = $4, start_date = $5, end_date = $6,
            planned_income = $7, planned_expense = $8, notes = $9, last_updated_at = $10, last_updated_by = $11
        WHERE project_id = $12;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		project.Name,
		project.ClientID,
		project.ContractID,
		project.Status,
		project.StartDate,
		project.EndDate,
		project.PlannedIncome,
		project.PlannedExpense,
		project.Notes,
		project.LastUpdatedAt,
		project.LastUpdatedBy,
		project.ProjectID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update project query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("project not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// AllocateProjectNumber increments the yearly counter atomically and returns
// the new value.
func (r *PgxProjectRepository) AllocateProjectNumber(ctx context.Context, year int) (int, error) {
	query := `
        INSERT INTO project_sequence (year, counter)
        VALUES ($1, 1)
        ON CONFLICT (year) DO UPDATE SET counter = project_sequence.counter + 1
        RETURNING counter;
    `
	var counter int
	if err := r.db.QueryRow(ctx, query, year).Scan(&counter); err != nil {
		return 0, fmt.Errorf("failed to allocate project number for %d: %w", year, err)
	}
	return counter, nil
}
