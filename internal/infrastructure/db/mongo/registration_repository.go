package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/opencampus/campus-cms/internal/core/domain"
)

const registrationCollection = "registrations"

type RegistrationRepository struct {
	coll *mongo.Collection
}

func NewRegistrationRepository(db *mongo.Database) *RegistrationRepository {
	return &RegistrationRepository{coll: db.Collection(registrationCollection)}
}

type registrationDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	AccountID string             `bson:"account_id"`
	EventID   string             `bson:"event_id"`
	EventName string             `bson:"event_name"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *registrationDoc) toDomain() domain.Registration {
	return domain.Registration{
		ID:        d.ID.Hex(),
		AccountID: d.AccountID,
		EventID:   d.EventID,
		EventName: d.EventName,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Status:    d.Status,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *RegistrationRepository) Create(ctx context.Context, registration *domain.Registration) (*domain.Registration, error) {
	doc := registrationDoc{
		AccountID: registration.AccountID,
		EventID:   registration.EventID,
		EventName: registration.EventName,
		Name:      registration.Name,
		Email:     registration.Email,
		Phone:     registration.Phone,
		Status:    registration.Status,
		CreatedAt: registration.CreatedAt,
		UpdatedAt: registration.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	created := *registration
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	return r.list(ctx, bson.M{"event_id": eventID})
}

func (r *RegistrationRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.Registration, error) {
	return r.list(ctx, bson.M{"account_id": accountID})
}

func (r *RegistrationRepository) list(ctx context.Context, filter bson.M) ([]domain.Registration, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer cursor.Close(ctx)

	var registrations []domain.Registration
	for cursor.Next(ctx) {
		var doc registrationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode registration: %w", err)
		}
		registrations = append(registrations, doc.toDomain())
	}
	return registrations, cursor.Err()
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id string) (*domain.Registration, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc registrationDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	registration := doc.toDomain()
	return &registration, nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RegistrationRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("delete registrations: %w", err)
	}
	return nil
}
