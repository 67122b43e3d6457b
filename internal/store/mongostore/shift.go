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

type ShiftStore struct {
	c *mongo.Collection
}

func (s *ShiftStore) Create(ctx context.Context, shift *models.Shift) error {
	if err := ensureUniqueID(ctx, s.c, "shiftId", shift.ShiftID, nil); err != nil {
		return err
	}

	now := time.Now()
	shift.CreatedAt = now
	shift.UpdatedAt = now

	result, err := s.c.InsertOne(ctx, shift)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		shift.ID = id
	}
	return nil
}

func (s *ShiftStore) GetByID(ctx context.Context, id string) (*models.Shift, error) {
	objectID, err := oid(id)
	if err != nil {
		return nil, err
	}

	var shift models.Shift
	err = s.c.FindOne(ctx, bson.M{"_id": objectID}).Decode(&shift)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (s *ShiftStore) List(ctx context.Context, activeOnly bool) ([]models.Shift, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var shifts []models.Shift
	if err = cursor.All(ctx, &shifts); err != nil {
		return nil, err
	}
	if shifts == nil {
		shifts = []models.Shift{}
	}
	return shifts, nil
}

func (s *ShiftStore) Update(ctx context.Context, id string, upd store.ShiftUpdate) (*models.Shift, error) {
	objectID, err := oid(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if upd.ShiftID != nil {
		if err := ensureUniqueID(ctx, s.c, "shiftId", *upd.ShiftID, &objectID); err != nil {
			return nil, err
		}
		set["shiftId"] = *upd.ShiftID
	}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.StartTime != nil {
		set["startTime"] = *upd.StartTime
	}
	if upd.EndTime != nil {
		set["endTime"] = *upd.EndTime
	}
	if upd.IsActive != nil {
		set["isActive"] = *upd.IsActive
	}

	var shift models.Shift
	if err := findOneAndUpdate(ctx, s.c, objectID, set, &shift); err != nil {
		return nil, err
	}
	return &shift, nil
}

func (s *ShiftStore) Delete(ctx context.Context, id string) error {
	objectID, err := oid(id)
	if err != nil {
		return err
	}
	return deleteByID(ctx, s.c, objectID)
}
