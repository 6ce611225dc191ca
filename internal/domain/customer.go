package domain

// Customer is the booking owner as known to the user service.
// Only the ID is guaranteed; the rest is filled when the user service answers.
type Customer struct {
	ID    string
	Name  string
	Email string
	Phone string
}
