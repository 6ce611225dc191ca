package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

// Service сервис каталога услуг салона
type Service struct {
	serviceRepo ServiceRepository
	bookings    BookingCounter
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	serviceRepo ServiceRepository,
	bookings BookingCounter,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		bookings:    bookings,
		logger:      logger,
	}
}

// List возвращает услуги каталога. Публичный метод.
func (s *Service) List(ctx context.Context, req *models.ListServicesRequest) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching services, category=%v, available=%v", ptr.Value(req.Category), req.Available)

	filter := domain.ServicesFilter{Available: req.Available}
	if req.Category != nil {
		category := domain.Category(*req.Category)
		if !category.IsValid() {
			verr := domain.NewValidationError(ErrInvalidInput)
			verr.Add("category", fmt.Sprintf("Category must be one of: %s", categoryList()))
			return nil, verr
		}
		filter.Category = &category
	}

	services, err := s.serviceRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

// GetService получает услугу по ID. Публичный метод.
func (s *Service) GetService(ctx context.Context, id string) (*models.ServiceResponse, error) {
	s.logger.Info("GetService: fetching service id=%s", id)

	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrServiceNotFound) {
			s.logger.Warn("GetService: service id=%s not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetService - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(svc), nil
}

// Create создает услугу. Доступно только администраторам.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%q by user=%s", req.Name, actor.UserID)

	// 1. Проверяем права доступа
	if !actor.Capability.IsAdministrator() {
		s.logger.Warn("Create: user=%s is not an administrator", actor.UserID)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем данные
	svc := req.ToDomainService()
	if err := validateService(svc); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем
	created, err := s.serviceRepo.Create(ctx, svc)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%s", created.ID)
	return models.FromDomainService(created), nil
}

// Update частично обновляет услугу. Доступно только администраторам.
func (s *Service) Update(ctx context.Context, actor domain.Actor, id string, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%s by user=%s", id, actor.UserID)

	// 1. Проверяем права доступа
	if !actor.Capability.IsAdministrator() {
		s.logger.Warn("Update: user=%s is not an administrator", actor.UserID)
		return nil, ErrAccessDenied
	}

	// 2. Получаем существующую услугу
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%s not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 3. Применяем и валидируем
	req.ApplyToService(svc)
	if err := validateService(svc); err != nil {
		s.logger.Warn("Update: validation failed for service id=%s: %v", id, err)
		return nil, err
	}

	// 4. Сохраняем
	updated, err := s.serviceRepo.Update(ctx, svc)
	if err != nil {
		if errors.Is(err, storage.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%s not found during update", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated service id=%s", id)
	return models.FromDomainService(updated), nil
}

// Delete удаляет услугу без бронирований. Доступно только администраторам.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	s.logger.Info("Delete: deleting service id=%s by user=%s", id, actor.UserID)

	// 1. Проверяем права доступа
	if !actor.Capability.IsAdministrator() {
		s.logger.Warn("Delete: user=%s is not an administrator", actor.UserID)
		return ErrAccessDenied
	}

	// 2. Бронирования никогда не удаляются, поэтому услуга с историей остаётся в каталоге
	refs, err := s.bookings.Count(ctx, domain.BookingsFilter{ServiceID: &id})
	if err != nil {
		s.logger.Error("Delete: failed to count bookings for service id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - count bookings: %v", ErrInternal, err)
	}
	if refs > 0 {
		s.logger.Warn("Delete: service id=%s has %d bookings", id, refs)
		return ErrServiceInUse
	}

	// 3. Удаляем
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrServiceNotFound):
			s.logger.Warn("Delete: service id=%s not found", id)
			return ErrServiceNotFound
		case errors.Is(err, storage.ErrServiceInUse):
			s.logger.Warn("Delete: service id=%s got bookings concurrently", id)
			return ErrServiceInUse
		}
		s.logger.Error("Delete: repository error for service id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted service id=%s", id)
	return nil
}
