package serviceRepo

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

const CollectionName = "services"

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

func NewMongoServiceRepo(db *mongo.Database, logger *zap.Logger) ServiceRepository {
	repo := &MongoServiceRepo{coll: db.Collection(CollectionName)}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("service repository: index setup failed", zap.Error(err))
	}
	return repo
}

func (r *MongoServiceRepo) Create(ctx context.Context, svc *models.Service) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	svc.CreatedAt = now
	svc.UpdatedAt = now
	if svc.AuthorizedPartners == nil {
		svc.AuthorizedPartners = []models.AuthorizedPartner{}
	}
	if svc.AppliedSales == nil {
		svc.AppliedSales = []string{}
	}

	if _, err := r.coll.InsertOne(ctx, svc); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *MongoServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	// appliedSales can grow large and is never needed by readers.
	opts := options.FindOne().SetProjection(bson.M{"appliedSales": 0})

	var svc models.Service
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch service %s: %w", id, err)
	}
	return &svc, nil
}

func (r *MongoServiceRepo) find(ctx context.Context, filter bson.M) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"appliedSales": 0}).SetSort(bson.D{{Key: "title", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer cursor.Close(ctx)

	services := []models.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

func (r *MongoServiceRepo) List(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	return r.find(ctx, filter)
}

func (r *MongoServiceRepo) ListForPartner(ctx context.Context, partnerID string) ([]models.Service, error) {
	return r.find(ctx, bson.M{"active": true, "authorizedPartners.partnerId": partnerID})
}

func (r *MongoServiceRepo) AuthorizePartner(ctx context.Context, serviceID string, ap models.AuthorizedPartner) (bool, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	filter := bson.M{"id": serviceID, "authorizedPartners.partnerId": bson.M{"$ne": ap.PartnerID}}
	update := bson.M{
		"$push": bson.M{"authorizedPartners": ap},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to authorize %s on service %s: %w", ap.PartnerID, serviceID, err)
	}
	if res.MatchedCount == 0 {
		return false, r.exists(ctx, serviceID)
	}
	return true, nil
}

func (r *MongoServiceRepo) RevokePartner(ctx context.Context, serviceID, partnerID string) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	update := bson.M{
		"$pull": bson.M{"authorizedPartners": bson.M{"partnerId": partnerID}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": serviceID}, update)
	if err != nil {
		return fmt.Errorf("failed to revoke %s on service %s: %w", partnerID, serviceID, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ApplySaleStats increments the stats and records saleID in one conditional update, so
// retries after a partial failure never double count.
func (r *MongoServiceRepo) ApplySaleStats(ctx context.Context, serviceID, saleID string, amount, commission float64) (bool, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	filter := bson.M{"id": serviceID, "appliedSales": bson.M{"$ne": saleID}}
	update := bson.M{
		"$inc": bson.M{
			"stats.totalSales":          1,
			"stats.revenueGenerated":    amount,
			"stats.totalCommissionPaid": commission,
		},
		"$push": bson.M{"appliedSales": saleID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to apply sale %s to service %s: %w", saleID, serviceID, err)
	}
	if res.MatchedCount == 0 {
		return false, r.exists(ctx, serviceID)
	}
	return true, nil
}

func (r *MongoServiceRepo) Deactivate(ctx context.Context, id string) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"active": false, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to deactivate service %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoServiceRepo) exists(ctx context.Context, id string) error {
	n, err := r.coll.CountDocuments(ctx, bson.M{"id": id}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("failed to look up service %s: %w", id, err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
