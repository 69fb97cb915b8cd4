package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the indexes the stores depend on. CreateMany is a
// no-op for indexes that already exist with the same definition.
func SetupIndexes(ctx context.Context, db *mongo.Database) error {
	userIndexes := []mongo.IndexModel{
		// Registration relies on this to reject duplicates
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("email_unique").
				SetUnique(true),
		},
	}

	noteIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "owner", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().
				SetName("owner_notes_date"),
		},
		// Text search index
		{
			Keys: bson.D{{Key: "text", Value: "text"}},
			Options: options.Index().
				SetName("text_search").
				SetDefaultLanguage("english"),
		},
	}

	if _, err := db.Collection(UsersCollection).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create users indexes: %w", err)
	}

	if _, err := db.Collection(NotesCollection).Indexes().CreateMany(ctx, noteIndexes); err != nil {
		return fmt.Errorf("failed to create notes indexes: %w", err)
	}

	return nil
}
