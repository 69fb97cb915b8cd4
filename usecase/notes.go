package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prithidevghosh/speerNote/model"
	"github.com/prithidevghosh/speerNote/repository"
	"github.com/prithidevghosh/speerNote/utils"
)

// NoteStore is the subset of repository.NotesRepo the service needs. Writes
// that change an existing note are filtered by owner, so a concurrent owner
// change or delete can never be overwritten.
type NoteStore interface {
	CreateNote(ctx context.Context, note *model.Note) error
	GetUserNotes(ctx context.Context, ownerID primitive.ObjectID) ([]*model.Note, error)
	GetNote(ctx context.Context, noteID primitive.ObjectID) (*model.Note, error)
	SearchNotes(ctx context.Context, ownerID primitive.ObjectID, query string) ([]*model.Note, error)
	UpdateNoteText(ctx context.Context, noteID, ownerID primitive.ObjectID, text string) (*model.Note, error)
	AddSharedUser(ctx context.Context, noteID, ownerID, targetID primitive.ObjectID) error
	DeleteNote(ctx context.Context, noteID, ownerID primitive.ObjectID) error
}

type NotesService struct {
	Notes NoteStore
	Users UserStore
}

func NewNotesService(notes NoteStore, users UserStore) *NotesService {
	return &NotesService{Notes: notes, Users: users}
}

// List returns the notes the principal owns, newest first. Notes shared with
// the principal are not included.
func (svc *NotesService) List(ctx context.Context, principal *model.User) ([]*model.Note, error) {
	if principal == nil {
		return nil, ErrUnauthenticated
	}

	notes, err := svc.Notes.GetUserNotes(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	utils.TrackNoteOperation("list")
	return notes, nil
}

func (svc *NotesService) Create(ctx context.Context, principal *model.User, text string) (*model.Note, error) {
	if principal == nil {
		return nil, ErrUnauthenticated
	}
	if text == "" {
		return nil, fmt.Errorf("%w: note text is required", ErrInvalidInput)
	}

	note := &model.Note{
		Text:       text,
		Owner:      principal.ID,
		SharedWith: []primitive.ObjectID{},
	}
	if err := svc.Notes.CreateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	utils.TrackNoteOperation("create")
	return note, nil
}

// Search runs a full-text query over the principal's own notes, best match
// first.
func (svc *NotesService) Search(ctx context.Context, principal *model.User, query string) ([]*model.Note, error) {
	if principal == nil {
		return nil, ErrUnauthenticated
	}
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidInput)
	}

	notes, err := svc.Notes.SearchNotes(ctx, principal.ID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}
	utils.TrackNoteOperation("search")
	return notes, nil
}

// Share adds targetUserID to the note's share list. Checks run in this order:
// target exists, note exists, principal owns it, target is not the owner,
// target not already present.
func (svc *NotesService) Share(ctx context.Context, principal *model.User, noteID, targetUserID string) error {
	if principal == nil {
		return ErrUnauthenticated
	}

	targetID, err := primitive.ObjectIDFromHex(targetUserID)
	if err != nil {
		return ErrTargetNotFound
	}
	if _, err := svc.Users.FindUserByID(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTargetNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	id, err := parseNoteID(noteID)
	if err != nil {
		return err
	}
	note, err := svc.getNote(ctx, id)
	if err != nil {
		return err
	}
	if err := checkShareable(note, principal.ID, targetID); err != nil {
		return err
	}

	err = svc.Notes.AddSharedUser(ctx, id, principal.ID, targetID)
	if errors.Is(err, repository.ErrNotFound) {
		// The note changed between the read and the write.
		note, err := svc.getNote(ctx, id)
		if err != nil {
			return err
		}
		if err := checkShareable(note, principal.ID, targetID); err != nil {
			return err
		}
		return fmt.Errorf("failed to share note: conditional update matched nothing")
	}
	if err != nil {
		return fmt.Errorf("failed to share note: %w", err)
	}

	utils.TrackNoteOperation("share")
	return nil
}

// Update replaces the text of a note the principal owns. A missing note or
// a non-owner is reported before empty text.
func (svc *NotesService) Update(ctx context.Context, principal *model.User, noteID, text string) (*model.Note, error) {
	if principal == nil {
		return nil, ErrUnauthenticated
	}

	id, err := parseNoteID(noteID)
	if err != nil {
		return nil, err
	}

	if text == "" {
		if err := svc.checkOwner(ctx, id, principal.ID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: note text is required", ErrInvalidInput)
	}

	updated, err := svc.Notes.UpdateNoteText(ctx, id, principal.ID, text)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, svc.classifyMiss(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	utils.TrackNoteOperation("update")
	return updated, nil
}

// Delete permanently removes a note the principal owns.
func (svc *NotesService) Delete(ctx context.Context, principal *model.User, noteID string) error {
	if principal == nil {
		return ErrUnauthenticated
	}

	id, err := parseNoteID(noteID)
	if err != nil {
		return err
	}

	err = svc.Notes.DeleteNote(ctx, id, principal.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return svc.classifyMiss(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	utils.TrackNoteOperation("delete")
	return nil
}

func (svc *NotesService) getNote(ctx context.Context, id primitive.ObjectID) (*model.Note, error) {
	note, err := svc.Notes.GetNote(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: note", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return note, nil
}

// classifyMiss explains why an owner-filtered write matched nothing.
func (svc *NotesService) classifyMiss(ctx context.Context, id primitive.ObjectID) error {
	if _, err := svc.getNote(ctx, id); err != nil {
		return err
	}
	return ErrForbidden
}

func (svc *NotesService) checkOwner(ctx context.Context, id, ownerID primitive.ObjectID) error {
	note, err := svc.getNote(ctx, id)
	if err != nil {
		return err
	}
	if !note.IsOwnedBy(ownerID) {
		return ErrForbidden
	}
	return nil
}

func checkShareable(note *model.Note, ownerID, targetID primitive.ObjectID) error {
	switch {
	case !note.IsOwnedBy(ownerID):
		return ErrForbidden
	case note.IsOwnedBy(targetID):
		return fmt.Errorf("%w: cannot share a note with its owner", ErrInvalidInput)
	case note.IsSharedWith(targetID):
		return ErrAlreadyShared
	}
	return nil
}

// parseNoteID treats anything that is not an ObjectID as an id that does not
// resolve.
func parseNoteID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: note", ErrNotFound)
	}
	return id, nil
}
