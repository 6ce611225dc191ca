// Package mongostore is the MongoDB storage backend selected with
// storage.driver = "mongo".
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
)

const (
	collectionBookings = "bookings"
	collectionServices = "services"

	activeSlotIndex = "bookings_active_slot_uniq"

	indexTimeout = 10 * time.Second
)

var (
	ErrBookingNotFound = storage.ErrBookingNotFound
	ErrServiceNotFound = storage.ErrServiceNotFound
	ErrSlotTaken       = storage.ErrSlotTaken
	ErrNotCancellable  = storage.ErrNotCancellable
	ErrServiceInUse    = storage.ErrServiceInUse

	ErrQuery  = errors.New("mongostore: query failed")
	ErrDecode = errors.New("mongostore: failed to decode document")
)

// Store коллекции бронирований и услуг одной базы
type Store struct {
	bookings *mongo.Collection
	services *mongo.Collection
}

// Connect подключается к MongoDB и проверяет соединение
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// NewStore создаёт хранилище и индексы, в том числе частичный уникальный индекс активного слота
func NewStore(ctx context.Context, db *mongo.Database) (*Store, error) {
	s := &Store{
		bookings: db.Collection(collectionBookings),
		services: db.Collection(collectionServices),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{coll: s.bookings}
}

func (s *Store) Services() *ServiceRepository {
	return &ServiceRepository{coll: s.services, bookings: s.bookings}
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	bookingIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}, {Key: "service_id", Value: 1}},
			Options: options.Index().
				SetName(activeSlotIndex).
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"active": true}),
		},
		{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "service_id", Value: 1}, {Key: "date", Value: 1}}},
	}
	if _, err := s.bookings.Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	serviceIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}}},
	}
	if _, err := s.services.Indexes().CreateMany(ctx, serviceIndexes); err != nil {
		return fmt.Errorf("failed to create service indexes: %w", err)
	}

	return nil
}
