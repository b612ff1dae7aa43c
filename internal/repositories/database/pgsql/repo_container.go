package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/prospel/prospel_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:           newPgxUserRepository(dbPool),
		ClientRepo:         newPgxClientRepository(dbPool),
		EnterpriseRepo:     newPgxEnterpriseRepository(dbPool),
		ProjectRepo:        newPgxProjectRepository(dbPool),
		ContractRepo:       newPgxContractRepository(dbPool),
		IncomeRepo:         newPgxIncomeRepository(dbPool),
		ExpenseRepo:        newPgxExpenseRepository(dbPool),
		ObligationRepo:     newPgxObligationRepository(dbPool),
		PlannedExpenseRepo: newPgxPlannedExpenseRepository(dbPool),
	}
}
