package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями: чтение и отмена
type Service struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	userClient   UserServiceClient
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	userClient UserServiceClient,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		userClient:   userClient,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование может только его владелец или администратор
func (s *Service) GetByID(ctx context.Context, id string, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, actor.UserID)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := checkAccess(booking, actor); err != nil {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", actor.UserID, id)
		return nil, err
	}

	svc := s.lookupService(ctx, booking.ServiceID)
	customer := s.lookupCustomer(ctx, booking.CustomerID)

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking, svc, customer, s.timeProvider.Now()), nil
}

// GetCustomerBookings получает историю бронирований пользователя, новые первыми.
// Опционально фильтрует по статусу.
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for user=%s, status=%v", req.CustomerID, req.Status)

	if req.CustomerID == "" {
		return nil, fmt.Errorf("%w: customer is required", ErrInvalidInput)
	}

	filter := domain.BookingsFilter{CustomerID: &req.CustomerID}
	if req.Status != nil {
		status, ok := models.ToDomainBookingStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for user=%s", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Statuses = []domain.BookingStatus{status}
	}

	// Статистика считается по всем бронированиям клиента, без фильтра статуса
	counts, err := s.bookingRepo.CountByStatus(ctx, domain.BookingsFilter{CustomerID: &req.CustomerID})
	if err != nil {
		s.logger.Error("GetCustomerBookings: count by status failed for user=%s: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - count by status: %v", ErrInternal, err)
	}

	resp, err := s.page(ctx, filter, req.Page, req.Limit)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for user=%s: %v", req.CustomerID, err)
		return nil, err
	}

	resp.Stats = make(map[string]int, len(counts))
	for _, c := range counts {
		resp.Stats[string(c.Status)] = c.Count
	}

	// Все бронирования принадлежат одному клиенту, запрашиваем его один раз
	if len(resp.Bookings) > 0 {
		customer := models.FromDomainCustomer(s.lookupCustomer(ctx, req.CustomerID))
		for i := range resp.Bookings {
			resp.Bookings[i].Customer = customer
		}
	}

	s.logger.Info("GetCustomerBookings: successfully fetched %d bookings for user=%s", len(resp.Bookings), req.CustomerID)
	return resp, nil
}

// List административная выборка бронирований с фильтрами по дате, статусу и услуге.
// При заданной дате сортировка по времени начала, иначе новые первыми.
func (s *Service) List(ctx context.Context, actor domain.Actor, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings by user=%s, date=%v, status=%v, service=%v",
		actor.UserID, req.Date, req.Status, req.ServiceID)

	if !actor.Capability.IsAdministrator() {
		s.logger.Warn("List: user=%s is not an administrator", actor.UserID)
		return nil, ErrAccessDenied
	}

	var filter domain.BookingsFilter
	if req.Date != nil {
		date, err := domain.ParseDate(*req.Date)
		if err != nil {
			s.logger.Warn("List: invalid date=%s: %v", *req.Date, err)
			return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
		}
		filter.Date = &date
	}
	if req.Status != nil {
		status, ok := models.ToDomainBookingStatus(*req.Status)
		if !ok {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Statuses = []domain.BookingStatus{status}
	}
	if req.ServiceID != nil && *req.ServiceID != "" {
		filter.ServiceID = req.ServiceID
	}

	resp, err := s.page(ctx, filter, req.Page, req.Limit)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, err
	}

	s.logger.Info("List: successfully fetched %d of %d bookings", len(resp.Bookings), resp.Pagination.Total)
	return resp, nil
}

// Cancel отменяет бронирование
// Отменить может владелец или администратор, только из статусов pending и confirmed
func (s *Service) Cancel(ctx context.Context, id string, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", id, actor.UserID)

	// 1. Получаем бронирование
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. Проверяем права доступа
	if err := checkAccess(booking, actor); err != nil {
		s.logger.Warn("Cancel: access denied for user=%s to booking id=%s", actor.UserID, id)
		return nil, err
	}

	// 3. Проверяем, можно ли отменить
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", id, booking.Status)
		return nil, ErrCannotCancel
	}

	// 4. Условное обновление: параллельная отмена получит ErrNotCancellable
	now := s.timeProvider.Now()
	cancelled, err := s.bookingRepo.Cancel(ctx, id, now)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotCancellable):
			s.logger.Warn("Cancel: booking id=%s was cancelled concurrently", id)
			return nil, ErrCannotCancel
		case errors.Is(err, storage.ErrBookingNotFound):
			s.logger.Warn("Cancel: booking id=%s not found during cancel", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: failed to cancel booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.metrics.IncBookingCancelled()

	// 5. Публикуем событие, ошибка не отменяет результат
	if err := s.publisher.PublishBookingCancelled(ctx, cancelled, actor.UserID); err != nil {
		s.logger.Warn("Cancel: failed to publish event for booking id=%s: %v", id, err)
	}

	svc := s.lookupService(ctx, cancelled.ServiceID)
	customer := s.lookupCustomer(ctx, cancelled.CustomerID)

	s.logger.Info("Cancel: successfully cancelled booking id=%s", id)
	return models.FromDomainBooking(cancelled, svc, customer, now), nil
}

func (s *Service) getBooking(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			s.logger.Warn("getBooking: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("getBooking: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

// page выбирает страницу бронирований и считает общее количество
func (s *Service) page(ctx context.Context, filter domain.BookingsFilter, page, limit int) (*models.BookingListResponse, error) {
	page, limit = normalizePage(page, limit)

	total, err := s.bookingRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: count bookings: %v", ErrInternal, err)
	}

	filter.Limit = limit
	filter.Offset = (page - 1) * limit
	list, err := s.bookingRepo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: find bookings: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	services := make(map[string]*domain.Service)
	resp := &models.BookingListResponse{
		Bookings:   make([]models.BookingResponse, 0, len(list)),
		Pagination: models.NewPagination(page, limit, total),
	}
	for _, b := range list {
		svc, ok := services[b.ServiceID]
		if !ok {
			svc = s.lookupService(ctx, b.ServiceID)
			services[b.ServiceID] = svc
		}
		resp.Bookings = append(resp.Bookings, *models.FromDomainBooking(b, svc, nil, now))
	}

	return resp, nil
}

// lookupService услуга для ответа. Отсутствие услуги не ошибка: бронирование остаётся видимым.
func (s *Service) lookupService(ctx context.Context, id string) *domain.Service {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Warn("lookupService: service id=%s unavailable: %v", id, err)
		return nil
	}
	return svc
}

// lookupCustomer данные клиента из UserService, при недоступности только ID
func (s *Service) lookupCustomer(ctx context.Context, id string) *domain.Customer {
	customer, err := s.userClient.GetCustomer(ctx, id)
	if err != nil {
		s.logger.Warn("lookupCustomer: user service degraded for user=%s: %v", id, err)
		return &domain.Customer{ID: id}
	}
	return customer
}

// checkAccess владелец или администратор
func checkAccess(booking *domain.Booking, actor domain.Actor) error {
	if actor.Capability.IsAdministrator() || booking.IsOwnedBy(actor.UserID) {
		return nil
	}
	return ErrAccessDenied
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = domain.DefaultPageLimit
	}
	if limit > domain.MaxPageLimit {
		limit = domain.MaxPageLimit
	}
	return page, limit
}
