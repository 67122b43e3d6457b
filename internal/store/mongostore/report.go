package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mining-ops-api-server/internal/models"
	"mining-ops-api-server/internal/store"
)

type ReportStore struct {
	c *mongo.Collection
}

func (s *ReportStore) Create(ctx context.Context, r *models.Report) error {
	if err := ensureUniqueID(ctx, s.c, "reportId", r.ReportID, nil); err != nil {
		return err
	}

	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now

	result, err := s.c.InsertOne(ctx, r)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		r.ID = id
	}
	return nil
}

func (s *ReportStore) GetByID(ctx context.Context, id string) (*models.Report, error) {
	objectID, err := oid(id)
	if err != nil {
		return nil, err
	}

	var report models.Report
	err = s.c.FindOne(ctx, bson.M{"_id": objectID}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *ReportStore) List(ctx context.Context, filter store.ReportFilter) ([]models.Report, error) {
	query := bson.M{}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	dateFilter(query, "createdAt", filter.Created)

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.c.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []models.Report
	if err = cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []models.Report{}
	}
	return reports, nil
}

func (s *ReportStore) Update(ctx context.Context, id string, upd store.ReportUpdate) (*models.Report, error) {
	objectID, err := oid(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if upd.ReportID != nil {
		if err := ensureUniqueID(ctx, s.c, "reportId", *upd.ReportID, &objectID); err != nil {
			return nil, err
		}
		set["reportId"] = *upd.ReportID
	}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Type != nil {
		set["type"] = *upd.Type
	}
	if upd.DateFrom != nil {
		set["dateFrom"] = *upd.DateFrom
	}
	if upd.DateTo != nil {
		set["dateTo"] = *upd.DateTo
	}
	if upd.Data != nil {
		set["data"] = upd.Data
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}

	var report models.Report
	if err := findOneAndUpdate(ctx, s.c, objectID, set, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *ReportStore) Delete(ctx context.Context, id string) error {
	objectID, err := oid(id)
	if err != nil {
		return err
	}
	return deleteByID(ctx, s.c, objectID)
}
