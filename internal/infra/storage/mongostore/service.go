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
)

type serviceDocument struct {
	ID              string    `bson:"_id"`
	Name            string    `bson:"name"`
	Description     string    `bson:"description"`
	DurationMinutes int       `bson:"duration_minutes"`
	Price           float64   `bson:"price"`
	Category        string    `bson:"category"`
	Available       bool      `bson:"available"`
	ImageURL        string    `bson:"image_url"`
	CreatedAt       time.Time `bson:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

func toServiceDocument(s *domain.Service) serviceDocument {
	return serviceDocument{
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

func (d serviceDocument) toDomain() *domain.Service {
	return &domain.Service{
		ID:              d.ID,
		Name:            d.Name,
		Description:     d.Description,
		DurationMinutes: d.DurationMinutes,
		Price:           d.Price,
		Category:        domain.Category(d.Category),
		Available:       d.Available,
		ImageURL:        d.ImageURL,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// ServiceRepository каталог услуг в MongoDB
type ServiceRepository struct {
	coll     *mongo.Collection
	bookings *mongo.Collection
}

func (r *ServiceRepository) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	svc.CreatedAt = now
	svc.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, toServiceDocument(svc)); err != nil {
		return nil, fmt.Errorf("%w: Create service: %v", ErrQuery, err)
	}
	return svc, nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	var doc serviceDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID service %s: %v", ErrQuery, id, err)
	}
	return doc.toDomain(), nil
}

func (r *ServiceRepository) List(ctx context.Context, filter domain.ServicesFilter) ([]*domain.Service, error) {
	query := bson.M{}
	if filter.Category != nil {
		query["category"] = string(*filter.Category)
	}
	if filter.Available != nil {
		query["available"] = *filter.Available
	}

	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: List services: %v", ErrQuery, err)
	}
	defer cursor.Close(ctx)

	var docs []serviceDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: List services: %v", ErrDecode, err)
	}

	services := make([]*domain.Service, len(docs))
	for i, doc := range docs {
		services[i] = doc.toDomain()
	}
	return services, nil
}

func (r *ServiceRepository) Update(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	update := bson.M{"$set": bson.M{
		"name":             svc.Name,
		"description":      svc.Description,
		"duration_minutes": svc.DurationMinutes,
		"price":            svc.Price,
		"category":         string(svc.Category),
		"available":        svc.Available,
		"image_url":        svc.ImageURL,
		"updated_at":       time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc serviceDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": svc.ID}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update service %s: %v", ErrQuery, svc.ID, err)
	}
	return doc.toDomain(), nil
}

// Delete отказывает, если на услугу ссылаются бронирования
func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	refs, err := r.bookings.CountDocuments(ctx, bson.M{"service_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("%w: Delete service %s: %v", ErrQuery, id, err)
	}
	if refs > 0 {
		return ErrServiceInUse
	}

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%w: Delete service %s: %v", ErrQuery, id, err)
	}
	if result.DeletedCount == 0 {
		return ErrServiceNotFound
	}
	return nil
}
