package transfer

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/maheshrc27/dreamwall/internal/models"
)

type CustomClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

type RegisterRequest struct {
	Name        string `json:"name" validate:"required,max=60"`
	PhoneNumber string `json:"phoneNumber" validate:"required,max=20"`
	Email       string `json:"email" validate:"omitempty,email,max=50"`
	Password    string `json:"password" validate:"omitempty,min=6,max=72"`
}

type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,max=20"`
	Password    string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type CreateAdminRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

type UpdateProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=60"`
	Email       *string `json:"email" validate:"omitempty,email,max=50"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,min=1,max=20"`
}

type UserStats struct {
	TotalPosts    int64  `json:"totalPosts"`
	TotalLikes    int64  `json:"totalLikes"`
	TotalComments int64  `json:"totalComments"`
	JoinDate      string `json:"joinDate"`
}
