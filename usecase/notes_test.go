package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prithidevghosh/speerNote/model"
	"github.com/prithidevghosh/speerNote/repository"
	"github.com/prithidevghosh/speerNote/testutils"
)

type notesFixture struct {
	svc   *NotesService
	notes *testutils.MemoryNotes
	users *testutils.MemoryUsers
}

func setupNotesTest(t *testing.T) *notesFixture {
	t.Helper()

	notes := testutils.NewMemoryNotes()
	users := testutils.NewMemoryUsers()
	return &notesFixture{
		svc:   NewNotesService(notes, users),
		notes: notes,
		users: users,
	}
}

func (f *notesFixture) addUser(t *testing.T, name string) *model.User {
	t.Helper()

	user := &model.User{Name: name, Email: name + "@example.com", Password: "hash"}
	require.NoError(t, f.users.CreateUser(context.Background(), user))
	return user
}

func TestNotesService_CreateAndList(t *testing.T) {
	f := setupNotesTest(t)
	ctx := context.Background()
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")

	notes, err := f.svc.List(ctx, alice)
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)

	first, err := f.svc.Create(ctx, alice, "first")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, first.Owner)
	assert.NotNil(t, first.SharedWith)
	assert.Empty(t, first.SharedWith)

	_, err = f.svc.Create(ctx, alice, "second")
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, bob, "bob's")
	require.NoError(t, err)

	notes, err = f.svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "second", notes[0].Text)
	assert.Equal(t, "first", notes[1].Text)
}

func TestNotesService_CreateRequiresText(t *testing.T) {
	f := setupNotesTest(t)
	alice := f.addUser(t, "alice")

	_, err := f.svc.Create(context.Background(), alice, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Only absent text is rejected; blank text is still text.
	note, err := f.svc.Create(context.Background(), alice, "   ")
	require.NoError(t, err)
	assert.Equal(t, "   ", note.Text)
}

func TestNotesService_RequiresPrincipal(t *testing.T) {
	f := setupNotesTest(t)
	ctx := context.Background()

	_, err := f.svc.List(ctx, nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = f.svc.Create(ctx, nil, "text")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.ErrorIs(t, f.svc.Delete(ctx, nil, primitive.NewObjectID().Hex()), ErrUnauthenticated)
}

func TestNotesService_SearchMeeting(t *testing.T) {
	f := setupNotesTest(t)
	ctx := context.Background()
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")

	meeting, err := f.svc.Create(ctx, alice, "team meeting notes")
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, alice, "groceries")
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, bob, "meeting with alice")
	require.NoError(t, err)

	results, err := f.svc.Search(ctx, alice, "meeting")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, meeting.ID, results[0].ID)
	assert.Equal(t, alice.ID, results[0].Owner)
}

func TestNotesService_SearchRanksByRelevance(t *testing.T) {
	f := setupNotesTest(t)
	ctx := context.Background()
	alice := f.addUser(t, "alice")

	_, err := f.svc.Create(ctx, alice, "meeting")
	require.NoError(t, err)
	best, err := f.svc.Create(ctx, alice, "meeting about the next meeting")
	require.NoError(t, err)

	results, err := f.svc.Search(ctx, alice, "meeting")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, best.ID, results[0].ID)
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
}

func TestNotesService_SearchRequiresQuery(t *testing.T) {
	f := setupNotesTest(t)
	alice := f.addUser(t, "alice")

	_, err := f.svc.Search(context.Background(), alice, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	results, err := f.svc.Search(context.Background(), alice, " ")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestNotesService_OwnerOnlyMutations(t *testing.T) {
	f := setupNotesTest(t)
	ctx := context.Background()
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")
	carol := f.addUser(t, "carol")

	note, err := f.svc.Create(ctx, alice, "alice's note")
	require.NoError(t, err)
	id := note.ID.Hex()

	_, err = f.svc.Update(ctx, bob, id, "hijacked")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.svc.Update(ctx, bob, id, "")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, f.svc.Share(ctx, bob, id, carol.ID.Hex()), ErrForbidden)
	assert.ErrorIs(t, f.svc.Delete(ctx, bob, id), ErrForbidden)

	stored, err := f.notes.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice's note", stored.Text)
	assert.Empty(t, stored.SharedWith)

	updated, err := f.svc.Update(ctx, alice, id, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)
	assert.NoError(t, f.svc.Share(ctx, alice, id, carol.ID.Hex()))
	assert.NoError(t, f.svc.Delete(ctx, alice, id))
}

func TestNotesService_ShareTwice(t *testing.T) {
	f := setupNotesTest(t)
	ctx := context.Background()
	alice := f.addUser(t, "alice")
	carol := f.addUser(t, "carol")

	note, err := f.svc.Create(ctx, alice, "shared")
	require.NoError(t, err)

	require.NoError(t, f.svc.Share(ctx, alice, note.ID.Hex(), carol.ID.Hex()))
	err = f.svc.Share(ctx, alice, note.ID.Hex(), carol.ID.Hex())
	assert.ErrorIs(t, err, ErrAlreadyShared)

	stored, err := f.notes.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{carol.ID}, stored.SharedWith)
}

func TestNotesService_ShareConcurrently(t *testing.T) {
	f := setupNotesTest(t)
	ctx := context.Background()
	alice := f.addUser(t, "alice")
	carol := f.addUser(t, "carol")
	dave := f.addUser(t, "dave")

	note, err := f.svc.Create(ctx, alice, "shared")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 10; i++ {
		for _, target := range []*model.User{carol, dave} {
			wg.Add(1)
			go func(target *model.User) {
				defer wg.Done()
				errs <- f.svc.Share(ctx, alice, note.ID.Hex(), target.ID.Hex())
			}(target)
		}
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrAlreadyShared)
	}
	assert.Equal(t, 2, succeeded)

	stored, err := f.notes.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []primitive.ObjectID{carol.ID, dave.ID}, stored.SharedWith)
}

func TestNotesService_ShareValidation(t *testing.T) {
	f := setupNotesTest(t)
	ctx := context.Background()
	alice := f.addUser(t, "alice")
	carol := f.addUser(t, "carol")

	note, err := f.svc.Create(ctx, alice, "shared")
	require.NoError(t, err)

	tests := []struct {
		name    string
		noteID  string
		target  string
		wantErr error
	}{
		{"unknown target", note.ID.Hex(), primitive.NewObjectID().Hex(), ErrTargetNotFound},
		{"malformed target", note.ID.Hex(), "not-an-id", ErrTargetNotFound},
		{"unknown note", primitive.NewObjectID().Hex(), carol.ID.Hex(), ErrNotFound},
		{"malformed note", "not-an-id", carol.ID.Hex(), ErrNotFound},
		{"share with owner", note.ID.Hex(), alice.ID.Hex(), ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.svc.Share(ctx, alice, tt.noteID, tt.target)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNotesService_UpdateValidation(t *testing.T) {
	f := setupNotesTest(t)
	ctx := context.Background()
	alice := f.addUser(t, "alice")

	note, err := f.svc.Create(ctx, alice, "original")
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, alice, note.ID.Hex(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Update(ctx, alice, primitive.NewObjectID().Hex(), "text")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Update(ctx, alice, "xyz", "text")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Update(ctx, alice, primitive.NewObjectID().Hex(), "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Update(ctx, alice, "xyz", "")
	assert.ErrorIs(t, err, ErrNotFound)

	stored, err := f.notes.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Text)
}

func TestNotesService_DeleteThenList(t *testing.T) {
	f := setupNotesTest(t)
	ctx := context.Background()
	alice := f.addUser(t, "alice")

	keep, err := f.svc.Create(ctx, alice, "keep")
	require.NoError(t, err)
	drop, err := f.svc.Create(ctx, alice, "drop")
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, alice, drop.ID.Hex()))

	notes, err := f.svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, keep.ID, notes[0].ID)

	err = f.svc.Delete(ctx, alice, drop.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

type failingNotes struct {
	*testutils.MemoryNotes
}

func (failingNotes) GetUserNotes(context.Context, primitive.ObjectID) ([]*model.Note, error) {
	return nil, errors.New("connection reset")
}

func (failingNotes) DeleteNote(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	return errors.New("connection reset")
}

func TestNotesService_StoreErrorsAreInternal(t *testing.T) {
	users := testutils.NewMemoryUsers()
	svc := NewNotesService(failingNotes{testutils.NewMemoryNotes()}, users)
	alice := &model.User{ID: primitive.NewObjectID()}

	_, err := svc.List(context.Background(), alice)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))

	err = svc.Delete(context.Background(), alice, primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.False(t, errors.Is(err, repository.ErrNotFound))
	assert.False(t, errors.Is(err, ErrNotFound))
}
