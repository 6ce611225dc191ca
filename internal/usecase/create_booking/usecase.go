package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	serviceRepo ServiceRepository
	userClient  UserServiceClient
	publisher   EventPublisher
	metrics     Metrics
	hours       domain.OperatingHours
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	userClient UserServiceClient,
	publisher EventPublisher,
	metrics Metrics,
	hours domain.OperatingHours,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
		userClient:  userClient,
		publisher:   publisher,
		metrics:     metrics,
		hours:       hours,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования.
// Транзакции нет: предварительная проверка отсекает очевидные конфликты,
// гонку разрешает уникальный индекс хранилища.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%s, service=%s, date=%s, time=%s",
		req.CustomerID, req.ServiceID, req.Date, req.StartTime)

	// 1. Валидация входных данных
	input, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, storage.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Вычисляем время окончания
	endTime, err := computeEndTime(input.startTime, service.DurationMinutes, uc.hours)
	if err != nil {
		uc.logger.Warn("CreateBooking: %s + %d min rejected: %v", input.startTime, service.DurationMinutes, err)
		return nil, err
	}

	// 4. Предварительная проверка занятости слота
	existing, err := uc.bookingRepo.Find(ctx, domain.SlotFilter(service.ID, input.date, input.startTime))
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check slot: %v", err)
		return nil, fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
	}
	if len(existing) > 0 {
		uc.logger.Warn("CreateBooking: slot %s %s for service=%s already booked (id=%s)",
			input.date.Format(domain.DateFormat), input.startTime, service.ID, existing[0].ID)
		uc.metrics.IncBookingConflict(metrics.ConflictSourcePrecheck)
		return nil, ErrSlotTaken
	}

	// 5. Сохраняем бронирование
	booking := &domain.Booking{
		CustomerID: req.CustomerID,
		ServiceID:  service.ID,
		Date:       input.date,
		StartTime:  input.startTime,
		EndTime:    endTime,
		Status:     domain.StatusConfirmed,
		Notes:      input.notes,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, storage.ErrSlotTaken) {
			uc.logger.Warn("CreateBooking: lost race for slot %s %s, service=%s",
				input.date.Format(domain.DateFormat), input.startTime, service.ID)
			uc.metrics.IncBookingConflict(metrics.ConflictSourceConstraint)
			return nil, ErrSlotTaken
		}
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.metrics.IncBookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%s", created.ID)

	// 6. Событие (best effort)
	if err := uc.publisher.PublishBookingCreated(ctx, created); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%s: %v", created.ID, err)
	}

	// 7. Данные клиента. При недоступности UserService отдаём только ID.
	customer, err := uc.userClient.GetCustomer(ctx, created.CustomerID)
	if err != nil {
		uc.logger.Warn("CreateBooking: customer details unavailable for id=%s: %v", created.CustomerID, err)
		customer = &domain.Customer{ID: created.CustomerID}
	}

	return &Response{
		Booking:  created,
		Service:  service,
		Customer: customer,
	}, nil
}
