package domain

// UserRole controls what a user may do. Observers are read-only; cashiers may
// only record payments.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleAccountant UserRole = "accountant"
	RoleObserver   UserRole = "observer"
	RoleCashier    UserRole = "cashier"
)

// User represents a system user.
type User struct {
	UserID       string   `json:"userID"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	FullName     string   `json:"fullName"`
	Role         UserRole `json:"role"`
	IsActive     bool     `json:"isActive"`
	AuditFields
}

// CanWrite reports whether the role may create or modify ledger entries.
func (u User) CanWrite() bool {
	return u.Role == RoleAdmin || u.Role == RoleAccountant
}

// CanRecordPayments reports whether the role may mark items paid.
func (u User) CanRecordPayments() bool {
	return u.CanWrite() || u.Role == RoleCashier
}
