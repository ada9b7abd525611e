package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cinenotes/cinenotes/backend/go-services/internal/comment"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/ident"
)

// commentRecord is the stored shape; movieId is kept as an ObjectID reference.
type commentRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Text      string             `bson:"text"`
	Username  string             `bson:"username"`
	MovieID   primitive.ObjectID `bson:"movieId"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (r *commentRecord) toComment() *comment.Comment {
	return &comment.Comment{
		ID:        r.ID.Hex(),
		Text:      r.Text,
		Username:  r.Username,
		MovieID:   r.MovieID.Hex(),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// MongoRepo implements Repository on a MongoDB collection.
type MongoRepo struct {
	col *mongo.Collection
}

// NewMongoRepo ensures the {movieId: 1, createdAt: -1} index that backs
// ListByMovie and returns the repository.
func NewMongoRepo(ctx context.Context, col *mongo.Collection) (*MongoRepo, error) {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "movieId", Value: 1}, {Key: "createdAt", Value: -1}}}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, fmt.Errorf("create comment index: %w", err)
	}
	return &MongoRepo{col: col}, nil
}

func now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

func (m *MongoRepo) ListByMovie(ctx context.Context, movieID string, limit int) ([]*comment.Comment, error) {
	oid, ok := ident.ObjectID(movieID)
	if !ok {
		return []*comment.Comment{}, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := m.col.Find(ctx, bson.M{"movieId": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*comment.Comment{}
	for cur.Next(ctx) {
		var r commentRecord
		if err := cur.Decode(&r); err != nil {
			return nil, err
		}
		out = append(out, r.toComment())
	}
	return out, cur.Err()
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*comment.Comment, error) {
	oid, ok := ident.ObjectID(id)
	if !ok {
		return nil, ErrNotFound
	}
	var r commentRecord
	if err := m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&r); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r.toComment(), nil
}

func (m *MongoRepo) Create(ctx context.Context, c *comment.Comment) error {
	movieOID, ok := ident.ObjectID(c.MovieID)
	if !ok {
		return fmt.Errorf("invalid movie id %q", c.MovieID)
	}
	ts := now()
	r := commentRecord{
		ID:        primitive.NewObjectID(),
		Text:      c.Text,
		Username:  c.Username,
		MovieID:   movieOID,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if _, err := m.col.InsertOne(ctx, r); err != nil {
		return err
	}
	c.ID = r.ID.Hex()
	c.CreatedAt = ts
	c.UpdatedAt = ts
	return nil
}

func (m *MongoRepo) UpdateText(ctx context.Context, id, text string) (*comment.Comment, error) {
	oid, ok := ident.ObjectID(id)
	if !ok {
		return nil, ErrNotFound
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"text": text, "updatedAt": now()}}
	var r commentRecord
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&r); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r.toComment(), nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) error {
	oid, ok := ident.ObjectID(id)
	if !ok {
		return ErrNotFound
	}
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
