package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name            string  `json:"name" validate:"required,max=100"`
	Description     string  `json:"description" validate:"max=500"`
	DurationMinutes int     `json:"duration" validate:"required"`
	Price           float64 `json:"price" validate:"gte=0"`
	Category        string  `json:"category" validate:"required"`
	Available       *bool   `json:"available,omitempty"`
	ImageURL        string  `json:"image,omitempty" validate:"omitempty,url"`
}

// ToDomainService конвертирует запрос в domain модель. По умолчанию услуга доступна.
func (r *CreateServiceRequest) ToDomainService() *domain.Service {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return &domain.Service{
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
		Category:        domain.Category(r.Category),
		Available:       available,
		ImageURL:        r.ImageURL,
	}
}

// UpdateServiceRequest частичное обновление: nil поля не меняются
type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,max=100"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=500"`
	DurationMinutes *int     `json:"duration,omitempty"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category        *string  `json:"category,omitempty"`
	Available       *bool    `json:"available,omitempty"`
	ImageURL        *string  `json:"image,omitempty" validate:"omitempty,url"`
}

// ApplyToService применяет заданные поля к услуге
func (r *UpdateServiceRequest) ApplyToService(svc *domain.Service) {
	if r.Name != nil {
		svc.Name = *r.Name
	}
	if r.Description != nil {
		svc.Description = *r.Description
	}
	if r.DurationMinutes != nil {
		svc.DurationMinutes = *r.DurationMinutes
	}
	if r.Price != nil {
		svc.Price = *r.Price
	}
	if r.Category != nil {
		svc.Category = domain.Category(*r.Category)
	}
	if r.Available != nil {
		svc.Available = *r.Available
	}
	if r.ImageURL != nil {
		svc.ImageURL = *r.ImageURL
	}
}

// ListServicesRequest фильтры каталога
type ListServicesRequest struct {
	Category  *string
	Available *bool
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration"`
	Price           float64   `json:"price"`
	Category        string    `json:"category"`
	Available       bool      `json:"available"`
	ImageURL        string    `json:"image,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Count    int               `json:"count"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Category:        string(s.Category),
		Available:       s.Available,
		ImageURL:        s.ImageURL,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for _, s := range services {
		resp.Services = append(resp.Services, *FromDomainService(s))
	}
	resp.Count = len(resp.Services)
	return resp
}
