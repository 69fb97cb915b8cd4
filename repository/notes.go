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
	"go.mongodb.org/mongo-driver/mongo/options"
)

const NotesCollection = "notes"

type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(db *mongo.Database) *NotesRepo {
	return &NotesRepo{
		MongoCollection: db.Collection(NotesCollection),
	}
}

// CreateNote creates a new note
func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	timer := utils.TrackDBOperation("insert", NotesCollection)
	defer timer.ObserveDuration()

	if note.Owner.IsZero() {
		return errors.New("note owner is required")
	}

	now := time.Now().UTC()
	if note.ID.IsZero() {
		note.ID = primitive.NewObjectID()
	}
	if note.SharedWith == nil {
		note.SharedWith = []primitive.ObjectID{}
	}
	note.CreatedAt = now
	note.UpdatedAt = now

	if _, err := r.MongoCollection.InsertOne(ctx, note); err != nil {
		utils.TrackError("database", "note_creation_failed")
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// GetUserNotes retrieves all notes owned by ownerID, newest first
func (r *NotesRepo) GetUserNotes(ctx context.Context, ownerID primitive.ObjectID) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", NotesCollection)
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.findMany(ctx, bson.M{"owner": ownerID}, opts)
}

// GetNote retrieves a note by ID regardless of owner; callers decide what the
// principal may do with it.
func (r *NotesRepo) GetNote(ctx context.Context, noteID primitive.ObjectID) (*model.Note, error) {
	timer := utils.TrackDBOperation("find", NotesCollection)
	defer timer.ObserveDuration()

	var note model.Note
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": noteID}).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		utils.TrackError("database", "note_lookup_error")
		return nil, fmt.Errorf("find note: %w", err)
	}
	return &note, nil
}

// SearchNotes runs a $text query over the owner's notes, best match first.
// Notes with equal scores come back in whatever order the server returns.
func (r *NotesRepo) SearchNotes(ctx context.Context, ownerID primitive.ObjectID, query string) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("search", NotesCollection)
	defer timer.ObserveDuration()

	filter := bson.M{
		"$text": bson.M{"$search": query},
		"owner": ownerID,
	}
	score := bson.M{"$meta": "textScore"}
	opts := options.Find().
		SetProjection(bson.M{"score": score}).
		SetSort(bson.D{{Key: "score", Value: score}})

	return r.findMany(ctx, filter, opts)
}

// UpdateNoteText replaces the text of a note owned by ownerID and returns the
// updated document. ErrNotFound covers both a missing note and a note owned
// by someone else.
func (r *NotesRepo) UpdateNoteText(ctx context.Context, noteID, ownerID primitive.ObjectID, text string) (*model.Note, error) {
	timer := utils.TrackDBOperation("update", NotesCollection)
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":   noteID,
		"owner": ownerID,
	}
	update := bson.M{
		"$set": bson.M{
			"text":      text,
			"updatedAt": time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var note model.Note
	err := r.MongoCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		utils.TrackError("database", "note_update_failed")
		return nil, fmt.Errorf("update note: %w", err)
	}
	return &note, nil
}

// AddSharedUser appends targetID to the share list in a single conditional
// write: the filter only matches while ownerID owns the note and targetID is
// not yet present. ErrNotFound means the filter matched nothing.
func (r *NotesRepo) AddSharedUser(ctx context.Context, noteID, ownerID, targetID primitive.ObjectID) error {
	timer := utils.TrackDBOperation("update", NotesCollection)
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":        noteID,
		"owner":      ownerID,
		"sharedWith": bson.M{"$ne": targetID},
	}
	update := bson.M{
		"$push": bson.M{"sharedWith": targetID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "note_share_failed")
		return fmt.Errorf("share note: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteNote deletes a note owned by ownerID
func (r *NotesRepo) DeleteNote(ctx context.Context, noteID, ownerID primitive.ObjectID) error {
	timer := utils.TrackDBOperation("delete", NotesCollection)
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":   noteID,
		"owner": ownerID,
	}

	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		utils.TrackError("database", "note_delete_failed")
		return fmt.Errorf("delete note: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotesRepo) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Note, error) {
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "note_query_failed")
		return nil, fmt.Errorf("find notes: %w", err)
	}
	defer cursor.Close(ctx)

	notes := make([]*model.Note, 0)
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	return notes, nil
}
