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

const facultyCollection = "faculty"

type FacultyRepository struct {
	coll *mongo.Collection
}

func NewFacultyRepository(db *mongo.Database) *FacultyRepository {
	return &FacultyRepository{coll: db.Collection(facultyCollection)}
}

type facultyDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Group       string             `bson:"group"`
	Name        string             `bson:"name"`
	Designation string             `bson:"designation"`
	Image       string             `bson:"image"`
	Testimonial string             `bson:"testimonial,omitempty"`
	Department  string             `bson:"department"`
	Email       string             `bson:"email"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *facultyDoc) toDomain() domain.FacultyMember {
	return domain.FacultyMember{
		ID:          d.ID.Hex(),
		Group:       d.Group,
		Name:        d.Name,
		Designation: d.Designation,
		Image:       d.Image,
		Testimonial: d.Testimonial,
		Department:  d.Department,
		Email:       d.Email,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func facultyToDoc(m *domain.FacultyMember) facultyDoc {
	return facultyDoc{
		Group:       m.Group,
		Name:        m.Name,
		Designation: m.Designation,
		Image:       m.Image,
		Testimonial: m.Testimonial,
		Department:  m.Department,
		Email:       m.Email,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *FacultyRepository) Create(ctx context.Context, member *domain.FacultyMember) (*domain.FacultyMember, error) {
	res, err := r.coll.InsertOne(ctx, facultyToDoc(member))
	if err != nil {
		return nil, fmt.Errorf("insert faculty member: %w", err)
	}

	created := *member
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *FacultyRepository) List(ctx context.Context, group string) ([]domain.FacultyMember, error) {
	filter := bson.M{}
	if group != "" {
		filter["group"] = group
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list faculty: %w", err)
	}
	defer cursor.Close(ctx)

	var members []domain.FacultyMember
	for cursor.Next(ctx) {
		var doc facultyDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode faculty member: %w", err)
		}
		members = append(members, doc.toDomain())
	}
	return members, cursor.Err()
}

func (r *FacultyRepository) FindByID(ctx context.Context, id string) (*domain.FacultyMember, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc facultyDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find faculty member: %w", err)
	}
	member := doc.toDomain()
	return &member, nil
}

func (r *FacultyRepository) Update(ctx context.Context, member *domain.FacultyMember) error {
	oid, err := primitive.ObjectIDFromHex(member.ID)
	if err != nil {
		return domain.ErrNotFound
	}

	doc := facultyToDoc(member)
	doc.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update faculty member: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *FacultyRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete faculty member: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
