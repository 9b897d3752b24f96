package eventRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"partnerhub/database/repository"
	"partnerhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const CollectionName = "events"

// MongoEventRepo implements EventRepository using MongoDB.
type MongoEventRepo struct {
	coll *mongo.Collection
}

func NewMongoEventRepo(db *mongo.Database, logger *zap.Logger) EventRepository {
	repo := &MongoEventRepo{coll: db.Collection(CollectionName)}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("event repository: index setup failed", zap.Error(err))
	}
	return repo
}

func (r *MongoEventRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "trainerId", Value: 1}, {Key: "date", Value: 1}, {Key: "status", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoEventRepo) Create(ctx context.Context, ev *models.Event) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, ev); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *MongoEventRepo) Update(ctx context.Context, ev *models.Event) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": ev.ID}, ev)
	if err != nil {
		return fmt.Errorf("failed to update event %s: %w", ev.ID, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoEventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	var ev models.Event
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&ev); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch event %s: %w", id, err)
	}
	return &ev, nil
}

func (r *MongoEventRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoEventRepo) find(ctx context.Context, filter bson.M) ([]models.Event, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

func (r *MongoEventRepo) List(ctx context.Context, f Filter) ([]models.Event, error) {
	filter := bson.M{}
	if f.TrainerID != "" {
		filter["trainerId"] = f.TrainerID
	}
	// YYYY-MM-DD strings order lexically.
	dateRange := bson.M{}
	if f.From != "" {
		dateRange["$gte"] = f.From
	}
	if f.To != "" {
		dateRange["$lte"] = f.To
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}
	return r.find(ctx, filter)
}

func (r *MongoEventRepo) FindActiveByTrainerAndDate(ctx context.Context, trainerID, date string) ([]models.Event, error) {
	return r.find(ctx, bson.M{
		"trainerId": trainerID,
		"date":      date,
		"status":    bson.M{"$ne": models.EventCancelled},
	})
}
