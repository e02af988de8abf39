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

const newsletterCollection = "newsletters"

type NewsletterRepository struct {
	coll *mongo.Collection
}

func NewNewsletterRepository(db *mongo.Database) *NewsletterRepository {
	return &NewsletterRepository{coll: db.Collection(newsletterCollection)}
}

type newsletterDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Date        time.Time          `bson:"date"`
	Media       string             `bson:"media"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *newsletterDoc) toDomain() domain.Newsletter {
	return domain.Newsletter{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Date:        d.Date,
		Media:       d.Media,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func newsletterToDoc(n *domain.Newsletter) newsletterDoc {
	return newsletterDoc{
		Title:       n.Title,
		Description: n.Description,
		Date:        n.Date,
		Media:       n.Media,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func (r *NewsletterRepository) Create(ctx context.Context, newsletter *domain.Newsletter) (*domain.Newsletter, error) {
	res, err := r.coll.InsertOne(ctx, newsletterToDoc(newsletter))
	if err != nil {
		return nil, fmt.Errorf("insert newsletter: %w", err)
	}

	created := *newsletter
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *NewsletterRepository) List(ctx context.Context) ([]domain.Newsletter, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list newsletters: %w", err)
	}
	defer cursor.Close(ctx)

	var newsletters []domain.Newsletter
	for cursor.Next(ctx) {
		var doc newsletterDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode newsletter: %w", err)
		}
		newsletters = append(newsletters, doc.toDomain())
	}
	return newsletters, cursor.Err()
}

func (r *NewsletterRepository) FindByID(ctx context.Context, id string) (*domain.Newsletter, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc newsletterDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find newsletter: %w", err)
	}
	newsletter := doc.toDomain()
	return &newsletter, nil
}

func (r *NewsletterRepository) Update(ctx context.Context, newsletter *domain.Newsletter) error {
	oid, err := primitive.ObjectIDFromHex(newsletter.ID)
	if err != nil {
		return domain.ErrNotFound
	}

	doc := newsletterToDoc(newsletter)
	doc.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update newsletter: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *NewsletterRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete newsletter: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
