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

const feedbackCollection = "feedback"

type FeedbackRepository struct {
	coll *mongo.Collection
}

func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{coll: db.Collection(feedbackCollection)}
}

type feedbackDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	EventID   string             `bson:"event_id"`
	AccountID string             `bson:"account_id,omitempty"`
	Rating    int                `bson:"rating"`
	Anonymous bool               `bson:"anonymous"`
	Message   string             `bson:"message"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *feedbackDoc) toDomain() domain.Feedback {
	return domain.Feedback{
		ID:        d.ID.Hex(),
		EventID:   d.EventID,
		AccountID: d.AccountID,
		Rating:    d.Rating,
		Anonymous: d.Anonymous,
		Message:   d.Message,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) (*domain.Feedback, error) {
	doc := feedbackDoc{
		EventID:   feedback.EventID,
		AccountID: feedback.AccountID,
		Rating:    feedback.Rating,
		Anonymous: feedback.Anonymous,
		Message:   feedback.Message,
		CreatedAt: feedback.CreatedAt,
		UpdatedAt: feedback.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert feedback: %w", err)
	}

	created := *feedback
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *FeedbackRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"event_id": eventID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []domain.Feedback
	for cursor.Next(ctx) {
		var doc feedbackDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode feedback: %w", err)
		}
		entries = append(entries, doc.toDomain())
	}
	return entries, cursor.Err()
}

func (r *FeedbackRepository) FindByID(ctx context.Context, id string) (*domain.Feedback, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc feedbackDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	feedback := doc.toDomain()
	return &feedback, nil
}

func (r *FeedbackRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
