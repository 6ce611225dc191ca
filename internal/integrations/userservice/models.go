package userservice

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// User профиль пользователя из UserService
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ToDomain профиль как владелец бронирования
func (u *User) ToDomain() *domain.Customer {
	return &domain.Customer{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
	}
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
