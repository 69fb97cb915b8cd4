package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prithidevghosh/speerNote/dto"
	"github.com/prithidevghosh/speerNote/usecase"
	"github.com/prithidevghosh/speerNote/utils"
)

func GetUserNotesHandler(c *gin.Context, notesService *usecase.NotesService, logger *zap.Logger) {
	user, ok := principal(c)
	if !ok {
		return
	}

	notes, err := notesService.List(c.Request.Context(), user)
	if err != nil {
		respondError(c, logger, err, msgInvalidRequest)
		return
	}

	message := "Notes retrieved successfully."
	if len(notes) == 0 {
		message = "No notes available for your account."
	}
	utils.Data(c, http.StatusOK, message, dto.ToNoteResponses(notes))
}

func CreateNoteHandler(c *gin.Context, notesService *usecase.NotesService, logger *zap.Logger) {
	user, ok := principal(c)
	if !ok {
		return
	}

	text, ok := bindNoteText(c)
	if !ok {
		return
	}

	note, err := notesService.Create(c.Request.Context(), user, text)
	if err != nil {
		respondError(c, logger, err, "Text field is required for creating a note.")
		return
	}

	utils.Data(c, http.StatusCreated, "Note created successfully.", dto.ToNoteResponse(note))
}

func SearchNotesHandler(c *gin.Context, notesService *usecase.NotesService, logger *zap.Logger) {
	user, ok := principal(c)
	if !ok {
		return
	}

	notes, err := notesService.Search(c.Request.Context(), user, c.Query("q"))
	if err != nil {
		respondError(c, logger, err, `Query parameter "q" is required for search.`)
		return
	}

	utils.Data(c, http.StatusOK, "Search results retrieved successfully.", dto.ToNoteResponses(notes))
}

func ShareNoteHandler(c *gin.Context, notesService *usecase.NotesService, logger *zap.Logger) {
	user, ok := principal(c)
	if !ok {
		return
	}

	err := notesService.Share(c.Request.Context(), user, c.Param("noteid"), c.Param("shareduserid"))
	if err != nil {
		respondError(c, logger, err, msgSelfShare)
		return
	}

	utils.OK(c, "Note shared successfully.")
}

func UpdateNoteHandler(c *gin.Context, notesService *usecase.NotesService, logger *zap.Logger) {
	user, ok := principal(c)
	if !ok {
		return
	}

	text, ok := bindNoteText(c)
	if !ok {
		return
	}

	note, err := notesService.Update(c.Request.Context(), user, c.Param("noteid"), text)
	if err != nil {
		respondError(c, logger, err, "Text field is required for updating a note.")
		return
	}

	utils.UpdatedNote(c, "Note updated successfully.", dto.ToNoteResponse(note))
}

func DeleteNoteHandler(c *gin.Context, notesService *usecase.NotesService, logger *zap.Logger) {
	user, ok := principal(c)
	if !ok {
		return
	}

	if err := notesService.Delete(c.Request.Context(), user, c.Param("noteid")); err != nil {
		respondError(c, logger, err, msgInvalidRequest)
		return
	}

	utils.OK(c, "Note deleted successfully.")
}

// bindNoteText reads the text field. A missing or unreadable body counts as
// no text, so the service reports it like an empty field; only an oversized
// body is rejected here.
func bindNoteText(c *gin.Context) (string, bool) {
	var req dto.NoteTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.Fail(c, http.StatusRequestEntityTooLarge, "Request body too large")
			return "", false
		}
		return "", true
	}
	return req.Text, true
}
