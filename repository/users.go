package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prithidevghosh/speerNote/model"
	"github.com/prithidevghosh/speerNote/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const UsersCollection = "users"

type UserRepo struct {
	MongoCollection *mongo.Collection
}

func GetUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{
		MongoCollection: db.Collection(UsersCollection),
	}
}

// CreateUser inserts user and fills in its ID and timestamps. Email
// uniqueness is enforced by the unique index, so two concurrent signups for
// the same address cannot both succeed.
func (r *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", UsersCollection)
	defer timer.ObserveDuration()

	now := time.Now().UTC()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.MongoCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.TrackError("database", "duplicate_email")
			return ErrDuplicateEmail
		}
		utils.TrackError("database", "user_creation_failed")
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepo) FindUserByID(ctx context.Context, userID primitive.ObjectID) (*model.User, error) {
	return r.findOne(ctx, bson.M{"_id": userID})
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	timer := utils.TrackDBOperation("find", UsersCollection)
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		utils.TrackError("database", "user_lookup_error")
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}
