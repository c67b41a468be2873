package transport

import (
	"encoding/json"
	"time"

	"github.com/fastygo/alle/domain"
)

// Envelope is the standard API response wrapper used for both success and error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope with optional metadata.
func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// ErrorBody is the flat error payload of the upload and blob endpoints.
type ErrorBody struct {
	Error string `json:"error"`
}

type UploadResponse struct {
	ID          int32  `json:"id"`
	FileName    string `json:"file_name"`
	FileSize    int64  `json:"file_size"`
	StoragePath string `json:"storage_path"`
	Message     string `json:"message"`
}

type TaskResponse struct {
	ID        int32   `json:"id"`
	Title     string  `json:"title"`
	Completed bool    `json:"completed"`
	Date      *string `json:"date"`
	ListID    *int32  `json:"list_id"`
	Position  *int32  `json:"position"`
	Notes     *string `json:"notes"`
	Color     *string `json:"color"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// NewTaskResponse flattens a task for JSON.
func NewTaskResponse(t domain.Task) TaskResponse {
	date, listID, position := t.Placement.Columns()
	resp := TaskResponse{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		ListID:    listID,
		Position:  position,
		Notes:     t.Notes,
		Color:     t.Color,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if date != nil {
		formatted := date.UTC().Format(time.RFC3339)
		resp.Date = &formatted
	}
	return resp
}

func NewTaskResponses(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskResponse(t))
	}
	return out
}
