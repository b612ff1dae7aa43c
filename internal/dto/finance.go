package dto

// FinanceQueryParams defines the shared query surface of the finance report
// endpoints: a quick-select period token with optional explicit bounds, a
// bucket granularity and a recognition mode.
type FinanceQueryParams struct {
	QuickRange string `form:"quickRange,default=month" binding:"omitempty,oneof=month quarter year custom"`
	From       string `form:"from" binding:"omitempty,dateonly"`
	To         string `form:"to" binding:"omitempty,dateonly"`
	GroupBy    string `form:"groupBy,default=month" binding:"omitempty,oneof=day month year"`
	Mode       string `form:"mode,default=both" binding:"omitempty,oneof=cash accrual both"`
}

// CashflowQueryParams is the query surface of the cash-flow report. Both
// bounds are explicit, there is no quick-select here.
type CashflowQueryParams struct {
	From    string `form:"from" binding:"required,dateonly"`
	To      string `form:"to" binding:"required,dateonly"`
	GroupBy string `form:"groupBy,default=month" binding:"omitempty,oneof=day month year"`
}

// ByProjectQueryParams is the query surface of the per-project report.
// mode=both is not meaningful for a single-figure-per-project view.
type ByProjectQueryParams struct {
	QuickRange string `form:"quickRange,default=month" binding:"omitempty,oneof=month quarter year custom"`
	From       string `form:"from" binding:"omitempty,dateonly"`
	To         string `form:"to" binding:"omitempty,dateonly"`
	Mode       string `form:"mode,default=accrual" binding:"omitempty,oneof=cash accrual"`
}
