package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/NoahOriano/see-your-future/internal/model"
)

// ErrSessionNotFound is returned when no session exists for the given ID.
var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id string) (*model.Session, error)
	Update(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, id string) error
}

type sessionRepository struct {
	collection *mongo.Collection
}

// NewSessionRepository creates a session repository backed by the given
// database. Session IDs are UUID strings assigned by the service layer.
func NewSessionRepository(client *mongo.Client, database string) SessionRepository {
	db := client.Database(database)
	return &sessionRepository{
		collection: db.Collection("sessions"),
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	now := time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, session)
	return err
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &session, nil
}

func (r *sessionRepository) Update(ctx context.Context, session *model.Session) error {
	session.UpdatedAt = time.Now()

	update := bson.M{"$set": session}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": session.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
