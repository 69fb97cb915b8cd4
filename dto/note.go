package dto

import (
	"time"

	"github.com/prithidevghosh/speerNote/model"
)

// NoteTextRequest is the body of create and update. Text is checked by the
// service rather than by binding so both paths report the same error.
type NoteTextRequest struct {
	Text string `json:"text"`
}

type NoteResponse struct {
	ID         string    `json:"_id"`
	Text       string    `json:"text"`
	Owner      string    `json:"owner"`
	SharedWith []string  `json:"sharedWith"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Score      float64   `json:"score,omitempty"`
}

// Convert a single note to NoteResponse
func ToNoteResponse(note *model.Note) NoteResponse {
	sharedWith := make([]string, len(note.SharedWith))
	for i, id := range note.SharedWith {
		sharedWith[i] = id.Hex()
	}

	return NoteResponse{
		ID:         note.ID.Hex(),
		Text:       note.Text,
		Owner:      note.Owner.Hex(),
		SharedWith: sharedWith,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
		Score:      note.Score,
	}
}

// Convert slice of notes to slice of NoteResponse; never returns nil
func ToNoteResponses(notes []*model.Note) []NoteResponse {
	responses := make([]NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = ToNoteResponse(note)
	}
	return responses
}
