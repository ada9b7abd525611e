package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cinenotes/cinenotes/backend/go-services/internal/ident"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/movie"
)

// movieRecord is the stored shape; _id is a real ObjectID.
type movieRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Category    string             `bson:"category"`
	Image       string             `bson:"image"`
	Description string             `bson:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (r *movieRecord) toMovie() *movie.Movie {
	return &movie.Movie{
		ID:          r.ID.Hex(),
		Title:       r.Title,
		Category:    r.Category,
		Image:       r.Image,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// MongoRepo implements Repository on a MongoDB collection.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

// Mongo keeps millisecond precision; truncate so returned values match later reads.
func now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

func (m *MongoRepo) List(ctx context.Context) ([]*movie.Movie, error) {
	cur, err := m.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*movie.Movie{}
	for cur.Next(ctx) {
		var r movieRecord
		if err := cur.Decode(&r); err != nil {
			return nil, err
		}
		out = append(out, r.toMovie())
	}
	return out, cur.Err()
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*movie.Movie, error) {
	oid, ok := ident.ObjectID(id)
	if !ok {
		return nil, ErrNotFound
	}
	var r movieRecord
	if err := m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&r); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r.toMovie(), nil
}

func (m *MongoRepo) Create(ctx context.Context, mv *movie.Movie) error {
	ts := now()
	r := movieRecord{
		ID:          primitive.NewObjectID(),
		Title:       mv.Title,
		Category:    mv.Category,
		Image:       mv.Image,
		Description: mv.Description,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if _, err := m.col.InsertOne(ctx, r); err != nil {
		return err
	}
	mv.ID = r.ID.Hex()
	mv.CreatedAt = ts
	mv.UpdatedAt = ts
	return nil
}

func (m *MongoRepo) Update(ctx context.Context, id string, p movie.Patch) (*movie.Movie, error) {
	oid, ok := ident.ObjectID(id)
	if !ok {
		return nil, ErrNotFound
	}
	set := bson.M{"updatedAt": now()}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.Image != nil {
		set["image"] = *p.Image
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var r movieRecord
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&r); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r.toMovie(), nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) error {
	oid, ok := ident.ObjectID(id)
	if !ok {
		return nil
	}
	_, err := m.col.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
