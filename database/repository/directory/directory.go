package directoryRepo

import (
	"context"
	"errors"
	"fmt"

	"partnerhub/database/repository"
	"partnerhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName is the external partner directory, owned by the admin panel.
const CollectionName = "commercials"

// DirectoryRepository looks partners up in the external directory.
type DirectoryRepository interface {
	// GetByPartnerID returns repository.ErrNotFound when absent.
	GetByPartnerID(ctx context.Context, partnerID string) (*models.DirectoryEntry, error)
}

type MongoDirectoryRepo struct {
	coll *mongo.Collection
}

func NewMongoDirectoryRepo(db *mongo.Database) DirectoryRepository {
	return &MongoDirectoryRepo{coll: db.Collection(CollectionName)}
}

func (r *MongoDirectoryRepo) GetByPartnerID(ctx context.Context, partnerID string) (*models.DirectoryEntry, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	var entry models.DirectoryEntry
	if err := r.coll.FindOne(ctx, bson.M{"partnerId": partnerID}).Decode(&entry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch directory entry %s: %w", partnerID, err)
	}
	return &entry, nil
}
