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

type ProductionStore struct {
	c *mongo.Collection
}

func (s *ProductionStore) Create(ctx context.Context, r *models.ProductionRecord) error {
	if err := ensureUniqueID(ctx, s.c, "recordId", r.RecordID, nil); err != nil {
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

func (s *ProductionStore) GetByID(ctx context.Context, id string) (*models.ProductionRecord, error) {
	objectID, err := oid(id)
	if err != nil {
		return nil, err
	}

	var record models.ProductionRecord
	err = s.c.FindOne(ctx, bson.M{"_id": objectID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *ProductionStore) List(ctx context.Context, filter store.ProductionFilter) ([]models.ProductionRecord, error) {
	query := bson.M{}
	if filter.Mineral != "" {
		mineralID, err := oid(filter.Mineral)
		if err != nil {
			return []models.ProductionRecord{}, nil
		}
		query["mineral"] = mineralID
	}
	if filter.Shift != "" {
		shiftID, err := oid(filter.Shift)
		if err != nil {
			return []models.ProductionRecord{}, nil
		}
		query["shift"] = shiftID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	dateFilter(query, "date", filter.Date)

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.c.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.ProductionRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.ProductionRecord{}
	}
	return records, nil
}

func (s *ProductionStore) Update(ctx context.Context, id string, upd store.ProductionUpdate) (*models.ProductionRecord, error) {
	objectID, err := oid(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if upd.RecordID != nil {
		if err := ensureUniqueID(ctx, s.c, "recordId", *upd.RecordID, &objectID); err != nil {
			return nil, err
		}
		set["recordId"] = *upd.RecordID
	}
	if upd.Date != nil {
		set["date"] = *upd.Date
	}
	if upd.Quantity != nil {
		set["quantity"] = *upd.Quantity
	}
	if upd.Mineral != nil {
		mineralID, err := oid(*upd.Mineral)
		if err != nil {
			return nil, err
		}
		set["mineral"] = mineralID
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.Shift != nil {
		shiftID, err := oid(*upd.Shift)
		if err != nil {
			return nil, err
		}
		set["shift"] = shiftID
	}
	if upd.Supervisor != nil {
		supervisorID, err := oid(*upd.Supervisor)
		if err != nil {
			return nil, err
		}
		set["supervisor"] = supervisorID
	}
	if upd.FieldOperator != nil {
		operatorID, err := oid(*upd.FieldOperator)
		if err != nil {
			return nil, err
		}
		set["fieldOperator"] = operatorID
	}
	if upd.WorkingHours != nil {
		set["workingHours"] = *upd.WorkingHours
	}
	if upd.Remarks != nil {
		set["remarks"] = *upd.Remarks
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}

	var record models.ProductionRecord
	if err := findOneAndUpdate(ctx, s.c, objectID, set, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *ProductionStore) Delete(ctx context.Context, id string) error {
	objectID, err := oid(id)
	if err != nil {
		return err
	}
	return deleteByID(ctx, s.c, objectID)
}
