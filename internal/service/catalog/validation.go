package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// validateService проверяет ограничения услуги после создания или применения обновления
func validateService(svc *domain.Service) error {
	verr := domain.NewValidationError(ErrInvalidInput)

	name := strings.TrimSpace(svc.Name)
	switch {
	case name == "":
		verr.Add("name", "Service name is required")
	case utf8.RuneCountInString(name) > domain.MaxServiceNameLength:
		verr.Add("name", fmt.Sprintf("Service name cannot exceed %d characters", domain.MaxServiceNameLength))
	}

	if utf8.RuneCountInString(svc.Description) > domain.MaxServiceDescription {
		verr.Add("description", fmt.Sprintf("Description cannot exceed %d characters", domain.MaxServiceDescription))
	}

	if svc.DurationMinutes < domain.MinServiceDurationMinutes || svc.DurationMinutes > domain.MaxServiceDurationMinutes {
		verr.Add("duration", fmt.Sprintf("Duration must be between %d and %d minutes",
			domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes))
	}

	if svc.Price < 0 {
		verr.Add("price", "Price cannot be negative")
	}

	if !svc.Category.IsValid() {
		verr.Add("category", fmt.Sprintf("Category must be one of: %s", categoryList()))
	}

	svc.Name = name
	return verr.OrNil()
}

func categoryList() string {
	names := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
