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

type IncidentStore struct {
	c *mongo.Collection
}

func (s *IncidentStore) Create(ctx context.Context, i *models.Incident) error {
	if err := ensureUniqueID(ctx, s.c, "incidentId", i.IncidentID, nil); err != nil {
		return err
	}

	now := time.Now()
	i.CreatedAt = now
	i.UpdatedAt = now

	result, err := s.c.InsertOne(ctx, i)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		i.ID = id
	}
	return nil
}

func (s *IncidentStore) GetByID(ctx context.Context, id string) (*models.Incident, error) {
	objectID, err := oid(id)
	if err != nil {
		return nil, err
	}

	var incident models.Incident
	err = s.c.FindOne(ctx, bson.M{"_id": objectID}).Decode(&incident)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &incident, nil
}

func (s *IncidentStore) List(ctx context.Context, filter store.IncidentFilter) ([]models.Incident, error) {
	query := bson.M{}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Severity != "" {
		query["severity"] = filter.Severity
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

	var incidents []models.Incident
	if err = cursor.All(ctx, &incidents); err != nil {
		return nil, err
	}
	if incidents == nil {
		incidents = []models.Incident{}
	}
	return incidents, nil
}

func (s *IncidentStore) Update(ctx context.Context, id string, upd store.IncidentUpdate) (*models.Incident, error) {
	objectID, err := oid(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if upd.IncidentID != nil {
		if err := ensureUniqueID(ctx, s.c, "incidentId", *upd.IncidentID, &objectID); err != nil {
			return nil, err
		}
		set["incidentId"] = *upd.IncidentID
	}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Type != nil {
		set["type"] = *upd.Type
	}
	if upd.Severity != nil {
		set["severity"] = *upd.Severity
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.Date != nil {
		set["date"] = *upd.Date
	}
	if upd.Equipment != nil {
		equipmentID, err := oid(*upd.Equipment)
		if err != nil {
			return nil, err
		}
		set["equipment"] = equipmentID
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.ActionTaken != nil {
		set["actionTaken"] = *upd.ActionTaken
	}
	if upd.ResolvedBy != nil {
		resolverID, err := oid(*upd.ResolvedBy)
		if err != nil {
			return nil, err
		}
		set["resolvedBy"] = resolverID
	}
	if upd.ResolvedDate != nil {
		set["resolvedDate"] = *upd.ResolvedDate
	}

	var incident models.Incident
	if err := findOneAndUpdate(ctx, s.c, objectID, set, &incident); err != nil {
		return nil, err
	}
	return &incident, nil
}

func (s *IncidentStore) Delete(ctx context.Context, id string) error {
	objectID, err := oid(id)
	if err != nil {
		return err
	}
	return deleteByID(ctx, s.c, objectID)
}

func (s *IncidentStore) AddPhoto(ctx context.Context, id string, photo models.Photo) (*models.Incident, error) {
	objectID, err := oid(id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$push": bson.M{"photos": photo},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	var incident models.Incident
	err = s.c.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&incident)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &incident, nil
}
