package dto

import (
	"time"

	"github.com/prospel/prospel_backend/internal/core/domain"
)

// RegisterUserRequest defines the data needed to create a new user.
type RegisterUserRequest struct {
	Username string          `json:"username" binding:"required,min=3,max=64"`
	Password string          `json:"password" binding:"required,min=8"`
	FullName string          `json:"fullName" binding:"required"`
	Role     domain.UserRole `json:"role" binding:"required,oneof=admin accountant observer cashier"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	FullName *string          `json:"fullName"`
	Role     *domain.UserRole `json:"role" binding:"omitempty,oneof=admin accountant observer cashier"`
	IsActive *bool            `json:"isActive"`
}

// LoginRequest defines the credentials for password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID    string          `json:"userID"`
	Username  string          `json:"username"`
	FullName  string          `json:"fullName"`
	Role      domain.UserRole `json:"role"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// ToListUsersResponse converts a slice of domain.User to ListUsersResponse DTO.
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	res := make([]UserResponse, len(users))
	for i, u := range users {
		res[i] = ToUserResponse(&u)
	}
	return ListUsersResponse{Users: res}
}
