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

type EquipmentStore struct {
	c *mongo.Collection
}

func (s *EquipmentStore) Create(ctx context.Context, e *models.Equipment) error {
	if err := ensureUniqueID(ctx, s.c, "equipmentId", e.EquipmentID, nil); err != nil {
		return err
	}

	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	result, err := s.c.InsertOne(ctx, e)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		e.ID = id
	}
	return nil
}

func (s *EquipmentStore) GetByID(ctx context.Context, id string) (*models.Equipment, error) {
	objectID, err := oid(id)
	if err != nil {
		return nil, err
	}

	var equipment models.Equipment
	err = s.c.FindOne(ctx, bson.M{"_id": objectID}).Decode(&equipment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &equipment, nil
}

func (s *EquipmentStore) List(ctx context.Context, filter store.EquipmentFilter) ([]models.Equipment, error) {
	query := bson.M{}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Location != "" {
		query["location"] = filter.Location
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.c.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var equipment []models.Equipment
	if err = cursor.All(ctx, &equipment); err != nil {
		return nil, err
	}
	if equipment == nil {
		equipment = []models.Equipment{}
	}
	return equipment, nil
}

func (s *EquipmentStore) Update(ctx context.Context, id string, upd store.EquipmentUpdate) (*models.Equipment, error) {
	objectID, err := oid(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if upd.EquipmentID != nil {
		if err := ensureUniqueID(ctx, s.c, "equipmentId", *upd.EquipmentID, &objectID); err != nil {
			return nil, err
		}
		set["equipmentId"] = *upd.EquipmentID
	}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Type != nil {
		set["type"] = *upd.Type
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.LastMaintenanceDate != nil {
		set["lastMaintenanceDate"] = *upd.LastMaintenanceDate
	}
	if upd.NextMaintenanceDate != nil {
		set["nextMaintenanceDate"] = *upd.NextMaintenanceDate
	}
	if upd.AssignedTo != nil {
		assignee, err := oid(*upd.AssignedTo)
		if err != nil {
			return nil, err
		}
		set["assignedTo"] = assignee
	}

	var equipment models.Equipment
	if err := findOneAndUpdate(ctx, s.c, objectID, set, &equipment); err != nil {
		return nil, err
	}
	return &equipment, nil
}

func (s *EquipmentStore) Delete(ctx context.Context, id string) error {
	objectID, err := oid(id)
	if err != nil {
		return err
	}
	return deleteByID(ctx, s.c, objectID)
}
