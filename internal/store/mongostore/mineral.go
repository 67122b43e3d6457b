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

type MineralStore struct {
	c *mongo.Collection
}

func (s *MineralStore) Create(ctx context.Context, m *models.Mineral) error {
	if err := ensureUniqueID(ctx, s.c, "mineralId", m.MineralID, nil); err != nil {
		return err
	}

	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	result, err := s.c.InsertOne(ctx, m)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		m.ID = id
	}
	return nil
}

func (s *MineralStore) GetByID(ctx context.Context, id string) (*models.Mineral, error) {
	objectID, err := oid(id)
	if err != nil {
		return nil, err
	}

	var mineral models.Mineral
	err = s.c.FindOne(ctx, bson.M{"_id": objectID}).Decode(&mineral)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &mineral, nil
}

func (s *MineralStore) List(ctx context.Context) ([]models.Mineral, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var minerals []models.Mineral
	if err = cursor.All(ctx, &minerals); err != nil {
		return nil, err
	}
	if minerals == nil {
		minerals = []models.Mineral{}
	}
	return minerals, nil
}

func (s *MineralStore) Update(ctx context.Context, id string, upd store.MineralUpdate) (*models.Mineral, error) {
	objectID, err := oid(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if upd.MineralID != nil {
		if err := ensureUniqueID(ctx, s.c, "mineralId", *upd.MineralID, &objectID); err != nil {
			return nil, err
		}
		set["mineralId"] = *upd.MineralID
	}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Grade != nil {
		set["grade"] = *upd.Grade
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}

	var mineral models.Mineral
	if err := findOneAndUpdate(ctx, s.c, objectID, set, &mineral); err != nil {
		return nil, err
	}
	return &mineral, nil
}

func (s *MineralStore) Delete(ctx context.Context, id string) error {
	objectID, err := oid(id)
	if err != nil {
		return err
	}
	return deleteByID(ctx, s.c, objectID)
}
