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

const galleryCollection = "galleries"

type GalleryRepository struct {
	coll *mongo.Collection
}

func NewGalleryRepository(db *mongo.Database) *GalleryRepository {
	return &GalleryRepository{coll: db.Collection(galleryCollection)}
}

type galleryImageDoc struct {
	URL        string    `bson:"url"`
	PublicID   string    `bson:"public_id"`
	UploadedAt time.Time `bson:"uploaded_at"`
}

type galleryDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Images      []galleryImageDoc  `bson:"images"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *galleryDoc) toDomain() domain.Gallery {
	images := make([]domain.GalleryImage, 0, len(d.Images))
	for _, img := range d.Images {
		images = append(images, domain.GalleryImage{
			URL:        img.URL,
			PublicID:   img.PublicID,
			UploadedAt: img.UploadedAt,
		})
	}
	return domain.Gallery{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Images:      images,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *GalleryRepository) Create(ctx context.Context, gallery *domain.Gallery) (*domain.Gallery, error) {
	images := make([]galleryImageDoc, 0, len(gallery.Images))
	for _, img := range gallery.Images {
		images = append(images, galleryImageDoc{URL: img.URL, PublicID: img.PublicID, UploadedAt: img.UploadedAt})
	}
	doc := galleryDoc{
		Title:       gallery.Title,
		Description: gallery.Description,
		Images:      images,
		CreatedAt:   gallery.CreatedAt,
		UpdatedAt:   gallery.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert gallery: %w", err)
	}

	created := *gallery
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *GalleryRepository) List(ctx context.Context) ([]domain.Gallery, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list galleries: %w", err)
	}
	defer cursor.Close(ctx)

	var galleries []domain.Gallery
	for cursor.Next(ctx) {
		var doc galleryDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode gallery: %w", err)
		}
		galleries = append(galleries, doc.toDomain())
	}
	return galleries, cursor.Err()
}

func (r *GalleryRepository) FindByID(ctx context.Context, id string) (*domain.Gallery, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc galleryDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find gallery: %w", err)
	}
	gallery := doc.toDomain()
	return &gallery, nil
}

func (r *GalleryRepository) AddImage(ctx context.Context, id string, image domain.GalleryImage) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	update := bson.M{
		"$push": bson.M{"images": galleryImageDoc{
			URL:        image.URL,
			PublicID:   image.PublicID,
			UploadedAt: image.UploadedAt,
		}},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("add gallery image: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GalleryRepository) RemoveImage(ctx context.Context, id, url string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	update := bson.M{
		"$pull": bson.M{"images": bson.M{"url": url}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("remove gallery image: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete gallery: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
