package dto

import (
	"time"

	"hellostore_backend/internal/models"
)

// UserResponse is the user record as exposed to templates and the admin
// panel. The password hash never crosses this boundary.
type UserResponse struct {
	ExternalID      string            `json:"externalId"`
	FirstName       string            `json:"firstName"`
	LastName        string            `json:"lastName"`
	Email           string            `json:"email"`
	Role            models.UserRole   `json:"role"`
	Status          models.UserStatus `json:"status"`
	IsEmailVerified bool              `json:"isEmailVerified"`
	Address         string            `json:"address,omitempty"`
	ContactNumber   string            `json:"contactNumber,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ExternalID:      user.ExternalID,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Email:           user.Email,
		Role:            user.Role,
		Status:          user.Status,
		IsEmailVerified: user.IsEmailVerified,
		Address:         user.Address,
		ContactNumber:   user.ContactNumber,
		CreatedAt:       user.CreatedAt,
	}
}

type UpdateUserRequest struct {
	Role   string `form:"role" json:"role" validate:"required,oneof=customer admin"`
	Status string `form:"status" json:"status" validate:"required,oneof=active inactive"`
}

type UpdateProfileRequest struct {
	Address       string `form:"address" json:"address" validate:"max=300"`
	ContactNumber string `form:"contactNumber" json:"contactNumber" validate:"max=30"`
}
