package mongostore

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mining-ops-api-server/internal/models"
	"mining-ops-api-server/internal/store"
)

type UserStore struct {
	c *mongo.Collection
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(u.Email)

	// userId and email are both unique.
	count, err := s.c.CountDocuments(ctx, bson.M{"$or": []bson.M{
		{"userId": u.UserID},
		{"email": u.Email},
	}})
	if err != nil {
		return err
	}
	if count > 0 {
		return store.ErrConflict
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	result, err := s.c.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		u.ID = id
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	objectID, err := oid(id)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = s.c.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.c.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (s *UserStore) Update(ctx context.Context, id string, upd store.UserUpdate) (*models.User, error) {
	objectID, err := oid(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if upd.UserName != nil {
		set["userName"] = *upd.UserName
	}
	if upd.Email != nil {
		email := strings.ToLower(*upd.Email)
		if err := ensureUniqueID(ctx, s.c, "email", email, &objectID); err != nil {
			return nil, err
		}
		set["email"] = email
	}
	if upd.Role != nil {
		set["role"] = *upd.Role
	}
	if upd.Password != nil {
		set["password"] = *upd.Password
	}
	if upd.IsActive != nil {
		set["isActive"] = *upd.IsActive
	}

	var user models.User
	if err := findOneAndUpdate(ctx, s.c, objectID, set, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	objectID, err := oid(id)
	if err != nil {
		return err
	}
	return deleteByID(ctx, s.c, objectID)
}
