package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// bookingDocument хранимое представление. Дата хранится строкой YYYY-MM-DD,
// active дублирует статус для частичного уникального индекса.
type bookingDocument struct {
	ID          string     `bson:"_id"`
	CustomerID  string     `bson:"customer_id"`
	ServiceID   string     `bson:"service_id"`
	Date        string     `bson:"date"`
	StartTime   string     `bson:"start_time"`
	EndTime     string     `bson:"end_time"`
	Status      string     `bson:"status"`
	Active      bool       `bson:"active"`
	Notes       *string    `bson:"notes,omitempty"`
	CancelledAt *time.Time `bson:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at"`
}

func toBookingDocument(b *domain.Booking) bookingDocument {
	return bookingDocument{
		ID:          b.ID,
		CustomerID:  b.CustomerID,
		ServiceID:   b.ServiceID,
		Date:        b.Date.Format(domain.DateFormat),
		StartTime:   b.StartTime.String(),
		EndTime:     b.EndTime.String(),
		Status:      string(b.Status),
		Active:      b.IsActive(),
		Notes:       b.Notes,
		CancelledAt: b.CancelledAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (d bookingDocument) toDomain() (*domain.Booking, error) {
	date, err := time.Parse(domain.DateFormat, d.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: booking %s date: %v", ErrDecode, d.ID, err)
	}
	return &domain.Booking{
		ID:          d.ID,
		CustomerID:  d.CustomerID,
		ServiceID:   d.ServiceID,
		Date:        date,
		StartTime:   types.TimeString(d.StartTime),
		EndTime:     types.TimeString(d.EndTime),
		Status:      domain.BookingStatus(d.Status),
		Notes:       d.Notes,
		CancelledAt: d.CancelledAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

// BookingRepository бронирования в MongoDB
type BookingRepository struct {
	coll *mongo.Collection
}

// Create duplicate key на индексе активного слота возвращается как ErrSlotTaken
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	booking.Date = domain.DateOnly(booking.Date)
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, toBookingDocument(booking)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create booking: %v", ErrQuery, err)
	}

	return booking, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var doc bookingDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID booking %s: %v", ErrQuery, id, err)
	}
	return doc.toDomain()
}

func (r *BookingRepository) Find(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	opts := options.Find()
	if filter.Date != nil {
		opts.SetSort(bson.D{{Key: "start_time", Value: 1}})
	} else {
		opts.SetSort(bson.D{{Key: "date", Value: -1}, {Key: "start_time", Value: -1}})
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}

	cursor, err := r.coll.Find(ctx, bookingQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: Find bookings: %v", ErrQuery, err)
	}
	defer cursor.Close(ctx)

	var docs []bookingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: Find bookings: %v", ErrDecode, err)
	}

	bookings := make([]*domain.Booking, 0, len(docs))
	for _, doc := range docs {
		b, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *BookingRepository) Count(ctx context.Context, filter domain.BookingsFilter) (int, error) {
	count, err := r.coll.CountDocuments(ctx, bookingQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("%w: Count bookings: %v", ErrQuery, err)
	}
	return int(count), nil
}

func (r *BookingRepository) CountByStatus(ctx context.Context, filter domain.BookingsFilter) ([]domain.StatusCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bookingQuery(filter)}},
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$status"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus: %v", ErrQuery, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int    `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus: %v", ErrDecode, err)
	}

	counts := make([]domain.StatusCount, len(rows))
	for i, row := range rows {
		counts[i] = domain.StatusCount{Status: domain.BookingStatus(row.Status), Count: row.Count}
	}
	return counts, nil
}

// Cancel условное обновление: срабатывает только для активного бронирования
func (r *BookingRepository) Cancel(ctx context.Context, id string, at time.Time) (*domain.Booking, error) {
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": statusStrings(domain.ActiveStatuses)},
	}
	update := bson.M{"$set": bson.M{
		"status":       string(domain.StatusCancelled),
		"active":       false,
		"cancelled_at": at,
		"updated_at":   at,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc bookingDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrNotCancellable
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Cancel booking %s: %v", ErrQuery, id, err)
	}

	return doc.toDomain()
}

func bookingQuery(filter domain.BookingsFilter) bson.M {
	query := bson.M{}
	if filter.CustomerID != nil {
		query["customer_id"] = *filter.CustomerID
	}
	if filter.ServiceID != nil {
		query["service_id"] = *filter.ServiceID
	}
	if filter.Date != nil {
		query["date"] = filter.Date.Format(domain.DateFormat)
	}
	if filter.StartTime != nil {
		query["start_time"] = filter.StartTime.String()
	}
	if len(filter.Statuses) > 0 {
		query["status"] = bson.M{"$in": statusStrings(filter.Statuses)}
	}
	return query
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
