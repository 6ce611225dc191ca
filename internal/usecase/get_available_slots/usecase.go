package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
)

// UseCase use case для получения свободных и занятых слотов услуги на дату
type UseCase struct {
	bookingRepo BookingRepository
	serviceRepo ServiceRepository
	hours       domain.OperatingHours
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	hours domain.OperatingHours,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
		hours:       hours,
		logger:      logger,
	}
}

// Execute выполняет use case получения слотов. Только чтение.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, date=%s", req.ServiceID, req.Date)

	// 1. Валидация входных данных
	date, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, storage.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Все слоты дня
	allSlots := uc.hours.Slots()

	// 4. Активные бронирования услуги на дату
	bookings, err := uc.bookingRepo.Find(ctx, domain.DayFilter(service.ID, date))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Разбиение. Бронирования вне сетки слотов в разбиение не попадают.
	partition := domain.PartitionSlots(allSlots, takenStartTimes(bookings))

	uc.logger.Info("GetAvailableSlots: service=%s, date=%s: %d available, %d booked",
		service.ID, date.Format(domain.DateFormat), len(partition.Available), len(partition.Booked))

	return &Response{
		Service:         service,
		Date:            date,
		DurationMinutes: service.DurationMinutes,
		AllSlots:        partition.All,
		AvailableSlots:  partition.Available,
		BookedSlots:     partition.Booked,
	}, nil
}
