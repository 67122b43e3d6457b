// Package mongostore is the MongoDB implementation of the store interfaces.
package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mining-ops-api-server/internal/store"
)

// New wires every collection-backed store against db.
func New(db *mongo.Database) store.Stores {
	return store.Stores{
		Minerals:   &MineralStore{c: db.Collection("minerals")},
		Shifts:     &ShiftStore{c: db.Collection("shifts")},
		Equipment:  &EquipmentStore{c: db.Collection("equipment")},
		Users:      &UserStore{c: db.Collection("users")},
		Production: &ProductionStore{c: db.Collection("productionrecords")},
		Incidents:  &IncidentStore{c: db.Collection("incidents")},
		Reports:    &ReportStore{c: db.Collection("reports")},
	}
}

// oid converts an internal id to an ObjectID. Malformed ids behave like
// missing records.
func oid(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, store.ErrNotFound
	}
	return objectID, nil
}

// ensureUniqueID fails with ErrConflict when another document (excluding
// exclude, if non-nil) already carries value in field.
func ensureUniqueID(ctx context.Context, c *mongo.Collection, field, value string, exclude *primitive.ObjectID) error {
	filter := bson.M{field: value}
	if exclude != nil {
		filter["_id"] = bson.M{"$ne": *exclude}
	}
	count, err := c.CountDocuments(ctx, filter)
	if err != nil {
		return err
	}
	if count > 0 {
		return store.ErrConflict
	}
	return nil
}

// findOneAndUpdate applies $set and decodes the updated document into out.
func findOneAndUpdate(ctx context.Context, c *mongo.Collection, id primitive.ObjectID, set bson.M, out interface{}) error {
	set["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}

func deleteByID(ctx context.Context, c *mongo.Collection, id primitive.ObjectID) error {
	result, err := c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// dateFilter builds an inclusive $gte/$lte filter when both bounds are set.
func dateFilter(filter bson.M, field string, r store.DateRange) {
	if r.Bounded() {
		filter[field] = bson.M{"$gte": *r.From, "$lte": *r.To}
	}
}
