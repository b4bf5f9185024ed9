package dto

import (
	"time"

	"github.com/GlebRadaev/securebank/internal/domain"
)

type RegisterRequestDTO struct {
	Login     string `json:"login" example:"alice" validate:"required,min=3,max=50"`
	Email     string `json:"email" example:"alice@example.com" validate:"required,email"`
	Password  string `json:"password" example:"s3cret-pass" validate:"required,min=8"`
	FirstName string `json:"first_name" example:"Alice" validate:"required"`
	LastName  string `json:"last_name" example:"Smith" validate:"required"`
	Phone     string `json:"phone" example:"+1 555 0100" validate:"required"`
	Address   string `json:"address" example:"1 Main St" validate:"required"`
}

// HasEmptyFields reports whether any registration field is blank.
func (r RegisterRequestDTO) HasEmptyFields() bool {
	for _, v := range []string{r.Login, r.Email, r.Password, r.FirstName, r.LastName, r.Phone, r.Address} {
		if v == "" {
			return true
		}
	}
	return false
}

type RegisterResponseDTO struct {
	Message string `json:"message"`
}

type LoginRequestDTO struct {
	Login    string `json:"login" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponseDTO struct {
	Message string `json:"message"`
}

type LogoutResponseDTO struct {
	Message string `json:"message"`
}

type ProfileResponseDTO struct {
	Login     string    `json:"login" example:"alice"`
	FirstName string    `json:"first_name" example:"Alice"`
	LastName  string    `json:"last_name" example:"Smith"`
	Email     string    `json:"email" example:"alice@example.com"`
	Phone     string    `json:"phone" example:"+1 555 0100"`
	Address   string    `json:"address" example:"1 Main St"`
	CreatedAt time.Time `json:"created_at" example:"2024-05-01T09:00:00Z"`
}

func NewProfileResponse(u domain.User) ProfileResponseDTO {
	return ProfileResponseDTO{
		Login:     u.Login,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
	}
}
