package services

import (
	portsrepo "github.com/prospel/prospel_backend/internal/core/ports/repositories"
	portssvc "github.com/prospel/prospel_backend/internal/core/ports/services"
	"github.com/prospel/prospel_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Client = NewClientService(repos.ClientRepo, repos.UserRepo)
	container.Enterprise = NewEnterpriseService(repos.EnterpriseRepo, repos.UserRepo)
	container.Project = NewProjectService(repos.ProjectRepo, repos.UserRepo)
	container.Contract = NewContractService(repos.ContractRepo, repos.ClientRepo, repos.UserRepo)
	container.Income = NewIncomeService(repos.IncomeRepo, repos.ClientRepo, repos.UserRepo)
	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.UserRepo)
	container.Obligation = NewObligationService(repos.ObligationRepo, repos.ExpenseRepo, repos.UserRepo)
	container.PlannedExpense = NewPlannedExpenseService(repos.PlannedExpenseRepo, repos.ExpenseRepo, repos.UserRepo)
	container.Finance = NewFinanceService(repos.IncomeRepo, repos.ExpenseRepo, repos.ProjectRepo, repos.EnterpriseRepo, repos.UserRepo)
	container.Dashboard = NewDashboardService(cfg, repos.IncomeRepo, repos.ExpenseRepo, container.Obligation, container.PlannedExpense, repos.UserRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.UserSvcFacade           = (*userService)(nil)
	_ portssvc.IncomeSvcFacade         = (*incomeService)(nil)
	_ portssvc.ExpenseSvcFacade        = (*expenseService)(nil)
	_ portssvc.ObligationSvcFacade     = (*obligationService)(nil)
	_ portssvc.PlannedExpenseSvcFacade = (*plannedExpenseService)(nil)
	_ portssvc.FinanceSvcFacade        = (*financeService)(nil)
)
