// Package testutils holds in-memory stand-ins for the Mongo and Redis stores
// shared by the service and router tests.
package testutils

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prithidevghosh/speerNote/model"
	"github.com/prithidevghosh/speerNote/repository"
	"github.com/prithidevghosh/speerNote/services"
)

// CheapArgon2Params keeps hashing fast in tests.
var CheapArgon2Params = services.Argon2Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// MemoryUsers mirrors repository.UserRepo, including the unique email index.
type MemoryUsers struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*model.User
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[primitive.ObjectID]*model.User)}
}

func (m *MemoryUsers) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *MemoryUsers) FindUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			found := *user
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MemoryUsers) FindUserByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := *user
	return &found, nil
}

// Delete removes a user as if the account had been dropped from the database.
func (m *MemoryUsers) Delete(id primitive.ObjectID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
}

func (m *MemoryUsers) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// MemoryNotes mirrors repository.NotesRepo: owner-filtered writes and a
// term-count stand-in for the $text score.
type MemoryNotes struct {
	mu    sync.Mutex
	notes map[primitive.ObjectID]*model.Note
	order []primitive.ObjectID
}

func NewMemoryNotes() *MemoryNotes {
	return &MemoryNotes{notes: make(map[primitive.ObjectID]*model.Note)}
}

func cloneNote(n *model.Note) *model.Note {
	c := *n
	c.SharedWith = append([]primitive.ObjectID{}, n.SharedWith...)
	return &c
}

func (m *MemoryNotes) CreateNote(_ context.Context, note *model.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if note.ID.IsZero() {
		note.ID = primitive.NewObjectID()
	}
	if note.SharedWith == nil {
		note.SharedWith = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	note.CreatedAt, note.UpdatedAt = now, now

	m.notes[note.ID] = cloneNote(note)
	m.order = append(m.order, note.ID)
	return nil
}

// GetUserNotes returns owned notes, newest first.
func (m *MemoryNotes) GetUserNotes(_ context.Context, ownerID primitive.ObjectID) ([]*model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	notes := make([]*model.Note, 0)
	for i := len(m.order) - 1; i >= 0; i-- {
		if note, ok := m.notes[m.order[i]]; ok && note.Owner == ownerID {
			notes = append(notes, cloneNote(note))
		}
	}
	return notes, nil
}

func (m *MemoryNotes) GetNote(_ context.Context, noteID primitive.ObjectID) (*model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	note, ok := m.notes[noteID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneNote(note), nil
}

// SearchNotes scores each owned note by how many of its words match a query
// term, case-insensitively, and drops notes that score zero.
func (m *MemoryNotes) SearchNotes(_ context.Context, ownerID primitive.ObjectID, query string) ([]*model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	terms := strings.Fields(strings.ToLower(query))
	notes := make([]*model.Note, 0)
	for _, id := range m.order {
		note, ok := m.notes[id]
		if !ok || note.Owner != ownerID {
			continue
		}
		var score float64
		for _, word := range strings.Fields(strings.ToLower(note.Text)) {
			for _, term := range terms {
				if word == term {
					score++
				}
			}
		}
		if score > 0 {
			found := cloneNote(note)
			found.Score = score
			notes = append(notes, found)
		}
	}
	sort.SliceStable(notes, func(i, j int) bool { return notes[i].Score > notes[j].Score })
	return notes, nil
}

func (m *MemoryNotes) UpdateNoteText(_ context.Context, noteID, ownerID primitive.ObjectID, text string) (*model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	note, ok := m.notes[noteID]
	if !ok || note.Owner != ownerID {
		return nil, repository.ErrNotFound
	}
	note.Text = text
	note.UpdatedAt = time.Now().UTC()
	return cloneNote(note), nil
}

func (m *MemoryNotes) AddSharedUser(_ context.Context, noteID, ownerID, targetID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	note, ok := m.notes[noteID]
	if !ok || note.Owner != ownerID || note.IsSharedWith(targetID) {
		return repository.ErrNotFound
	}
	note.SharedWith = append(note.SharedWith, targetID)
	return nil
}

func (m *MemoryNotes) DeleteNote(_ context.Context, noteID, ownerID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	note, ok := m.notes[noteID]
	if !ok || note.Owner != ownerID {
		return repository.ErrNotFound
	}
	delete(m.notes, noteID)
	return nil
}

// MemoryRevocations is a revocation store without expiry. Setting Err makes
// every call fail, like an unreachable Redis.
type MemoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	Err     error
}

func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{revoked: make(map[string]time.Time)}
}

func (m *MemoryRevocations) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.revoked[tokenID] = expiresAt
	return nil
}

func (m *MemoryRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.revoked[tokenID]
	return ok, nil
}
