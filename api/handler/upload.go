package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/alle/api/transport"
	"github.com/fastygo/alle/pkg/httpcontext"
	attachmentUC "github.com/fastygo/alle/usecase/attachment"
)

// multipartSlack covers boundaries and part headers around the file.
const multipartSlack = 64 * 1024

// UploadHandler accepts task attachments as multipart/form-data.
type UploadHandler struct {
	baseHandler
	attachments *attachmentUC.Service
	maxBytes    int
}

func NewUploadHandler(attachments *attachmentUC.Service, maxBytes int, adapter *httpcontext.Adapter, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		baseHandler: newBaseHandler(adapter, logger),
		attachments: attachments,
		maxBytes:    maxBytes,
	}
}

// TooLargeMessage is the error text for uploads above maxBytes.
func TooLargeMessage(maxBytes int) string {
	return fmt.Sprintf("File size exceeds maximum of %d MB", maxBytes/1024/1024)
}

// @Summary Upload task attachment
// @Tags attachments
// @Router /api/upload [post]
func (h *UploadHandler) Upload(ctx *fasthttp.RequestCtx) {
	if len(ctx.Request.Body()) > h.maxBytes+multipartSlack {
		h.respondMessage(ctx, http.StatusRequestEntityTooLarge, TooLargeMessage(h.maxBytes))
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		h.respondMessage(ctx, http.StatusBadRequest, "Failed to read multipart form: "+err.Error())
		return
	}
	defer ctx.Request.RemoveMultipartFormFiles()

	values := form.Value["task_id"]
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		h.respondMessage(ctx, http.StatusBadRequest, "task_id is required")
		return
	}
	taskID, err := strconv.ParseInt(strings.TrimSpace(values[0]), 10, 32)
	if err != nil {
		h.respondMessage(ctx, http.StatusBadRequest, "Invalid task_id")
		return
	}

	files := form.File["file"]
	if len(files) == 0 || files[0].Filename == "" {
		h.respondMessage(ctx, http.StatusBadRequest, "file is required")
		return
	}
	header := files[0]
	if header.Size > int64(h.maxBytes) {
		h.respondMessage(ctx, http.StatusRequestEntityTooLarge, TooLargeMessage(h.maxBytes))
		return
	}

	file, err := header.Open()
	if err != nil {
		h.respondMessage(ctx, http.StatusBadRequest, "Failed to read file data: "+err.Error())
		return
	}
	defer file.Close()

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	record, err := h.attachments.Upload(stdCtx, attachmentUC.Upload{
		TaskID:      int32(taskID),
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		status, _ := mapError(err)
		message := err.Error()
		if status == http.StatusInternalServerError {
			h.log(stdCtx).Error("upload failed", zap.Int64("task_id", taskID), zap.Error(err))
			message = "Failed to upload file: " + message
		}
		h.respondMessage(ctx, status, message)
		return
	}

	h.writeJSON(ctx, http.StatusOK, transport.UploadResponse{
		ID:          record.ID,
		FileName:    record.FileName,
		FileSize:    record.FileSize,
		StoragePath: record.StoragePath,
		Message:     "File uploaded successfully",
	})
}
