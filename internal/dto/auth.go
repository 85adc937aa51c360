package dto

import (
	"time"

	"github.com/hroffice/hroffice_backend/internal/core/domain"
)

// LoginRequest authenticates an employee account.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// CreateUserRequest registers an employee account.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=EMPLOYEE APPROVER_L1 APPROVER_L2 HR_ADMIN"`
}

// UserResponse is the public view of an employee account.
type UserResponse struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// ToUserResponse converts a domain user, dropping credential fields.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{UserID: u.UserID, Username: u.Username, Name: u.Name, Role: string(u.Role)}
}
