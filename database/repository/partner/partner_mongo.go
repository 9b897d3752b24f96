package partnerRepo

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

// CollectionName holds partner progression aggregates.
const CollectionName = "partners_progression"

// MongoPartnerRepo implements PartnerRepository using MongoDB.
type MongoPartnerRepo struct {
	coll *mongo.Collection
}

// NewMongoPartnerRepo creates a new instance of PartnerRepository using MongoDB.
func NewMongoPartnerRepo(db *mongo.Database, logger *zap.Logger) PartnerRepository {
	repo := &MongoPartnerRepo{coll: db.Collection(CollectionName)}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("partner repository: index setup failed", zap.Error(err))
	}
	return repo
}

func (r *MongoPartnerRepo) GetByPartnerID(ctx context.Context, partnerID string) (*models.Partner, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	var p models.Partner
	if err := r.coll.FindOne(ctx, bson.M{"partnerId": partnerID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch partner %s: %w", partnerID, err)
	}
	return &p, nil
}

// Provision upserts with $setOnInsert so that concurrent first logins create one document.
func (r *MongoPartnerRepo) Provision(ctx context.Context, p *models.Partner) (*models.Partner, bool, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"partnerId": p.PartnerID},
		bson.M{"$setOnInsert": p},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to provision partner %s: %w", p.PartnerID, err)
	}

	var stored models.Partner
	if err := r.coll.FindOne(ctx, bson.M{"partnerId": p.PartnerID}).Decode(&stored); err != nil {
		return nil, false, fmt.Errorf("failed to reload provisioned partner %s: %w", p.PartnerID, err)
	}
	return &stored, res.UpsertedCount > 0, nil
}

func (r *MongoPartnerRepo) Save(ctx context.Context, p *models.Partner, expectedVersion int) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	p.Version = expectedVersion + 1
	p.UpdatedAt = time.Now()

	filter := bson.M{"partnerId": p.PartnerID, "version": expectedVersion}
	res, err := r.coll.ReplaceOne(ctx, filter, p)
	if err != nil {
		p.Version = expectedVersion
		return fmt.Errorf("failed to save partner %s: %w", p.PartnerID, err)
	}
	if res.MatchedCount == 0 {
		p.Version = expectedVersion
		return repository.ErrVersionConflict
	}
	return nil
}

func (r *MongoPartnerRepo) find(ctx context.Context, filter bson.M) ([]models.Partner, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query partners: %w", err)
	}
	defer cursor.Close(ctx)

	var partners []models.Partner
	for cursor.Next(ctx) {
		var p models.Partner
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode partner: %w", err)
		}
		partners = append(partners, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return partners, nil
}

func (r *MongoPartnerRepo) ListActiveByTier(ctx context.Context, tier int) ([]models.Partner, error) {
	return r.find(ctx, bson.M{"active": true, "tier": tier})
}

func (r *MongoPartnerRepo) ListWithPendingStats(ctx context.Context) ([]models.Partner, error) {
	return r.find(ctx, bson.M{
		"sales": bson.M{"$elemMatch": bson.M{
			"status":       models.SaleConfirmed,
			"statsApplied": false,
			"serviceId":    bson.M{"$nin": bson.A{"", nil}},
		}},
	})
}

// updateOne applies update and bumps the version so in-flight Saves retry.
func (r *MongoPartnerRepo) updateOne(ctx context.Context, filter bson.M, update bson.M) (*mongo.UpdateResult, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	update["$inc"] = bson.M{"version": 1}
	if set, ok := update["$set"].(bson.M); ok {
		set["updatedAt"] = time.Now()
	} else {
		update["$set"] = bson.M{"updatedAt": time.Now()}
	}
	return r.coll.UpdateOne(ctx, filter, update)
}

func (r *MongoPartnerRepo) MarkSaleStatsApplied(ctx context.Context, partnerID, saleID string) error {
	res, err := r.updateOne(ctx,
		bson.M{"partnerId": partnerID, "sales.id": saleID},
		bson.M{"$set": bson.M{"sales.$.statsApplied": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark sale %s applied: %w", saleID, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoPartnerRepo) AddAssignedService(ctx context.Context, partnerID string, svc models.AssignedService) error {
	res, err := r.updateOne(ctx,
		bson.M{"partnerId": partnerID, "assignedServices.serviceId": bson.M{"$ne": svc.ServiceID}},
		bson.M{"$push": bson.M{"assignedServices": svc}},
	)
	if err != nil {
		return fmt.Errorf("failed to assign service %s to %s: %w", svc.ServiceID, partnerID, err)
	}
	if res.MatchedCount == 0 {
		return r.exists(ctx, partnerID)
	}
	return nil
}

func (r *MongoPartnerRepo) RemoveAssignedService(ctx context.Context, partnerID, serviceID string) error {
	res, err := r.updateOne(ctx,
		bson.M{"partnerId": partnerID},
		bson.M{"$pull": bson.M{"assignedServices": bson.M{"serviceId": serviceID}}},
	)
	if err != nil {
		return fmt.Errorf("failed to unassign service %s from %s: %w", serviceID, partnerID, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoPartnerRepo) Deactivate(ctx context.Context, partnerID string) error {
	res, err := r.updateOne(ctx,
		bson.M{"partnerId": partnerID},
		bson.M{"$set": bson.M{"active": false}},
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate partner %s: %w", partnerID, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoPartnerRepo) exists(ctx context.Context, partnerID string) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"partnerId": partnerID}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("failed to look up partner %s: %w", partnerID, err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
