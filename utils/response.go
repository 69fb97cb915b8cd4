package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the body shared by every notes endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DataEnvelope carries a payload under "data". Data is never omitted, so an
// empty list is rendered as [].
type DataEnvelope struct {
	Envelope
	Data interface{} `json:"data"`
}

// UpdatedNoteEnvelope is the update endpoint's body.
type UpdatedNoteEnvelope struct {
	Envelope
	UpdatedNote interface{} `json:"updatedNote"`
}

// MessageResponse is the auth endpoints' body: the payload itself sits under
// "message" (a user on signup, a token on login, an error string on failure).
type MessageResponse struct {
	Message interface{} `json:"message"`
}

func OK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

func Data(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, DataEnvelope{
		Envelope: Envelope{Success: true, Message: message},
		Data:     data,
	})
}

func UpdatedNote(c *gin.Context, message string, note interface{}) {
	c.JSON(http.StatusOK, UpdatedNoteEnvelope{
		Envelope:    Envelope{Success: true, Message: message},
		UpdatedNote: note,
	})
}

func Message(c *gin.Context, status int, message interface{}) {
	c.JSON(status, MessageResponse{Message: message})
}

// Fail writes a failure envelope and stops the handler chain.
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message})
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context) {
	Fail(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

func InternalError(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, "Internal Server Error")
}
