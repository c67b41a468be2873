package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/alle/internal/infrastructure/storage"
	"github.com/fastygo/alle/pkg/httpcontext"
)

// BlobHandler serves objects of the local blob store through presigned URLs.
type BlobHandler struct {
	baseHandler
	store *storage.BoltStore
}

func NewBlobHandler(store *storage.BoltStore, adapter *httpcontext.Adapter, logger *zap.Logger) *BlobHandler {
	return &BlobHandler{
		baseHandler: newBaseHandler(adapter, logger),
		store:       store,
	}
}

// @Summary Download blob
// @Tags attachments
// @Router /api/blobs/{key} [get]
func (h *BlobHandler) Download(ctx *fasthttp.RequestCtx) {
	key, _ := ctx.UserValue("key").(string)
	token := string(ctx.QueryArgs().Peek("token"))
	if key == "" || token == "" {
		h.respondMessage(ctx, http.StatusNotFound, "not found")
		return
	}
	if err := h.store.Verify(key, token); err != nil {
		h.respondMessage(ctx, http.StatusForbidden, err.Error())
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	info, data, err := h.store.Get(stdCtx, key)
	if err != nil {
		status, _ := mapError(err)
		h.respondMessage(ctx, status, err.Error())
		return
	}
	ctx.Response.Header.SetContentType(info.ContentType)
	ctx.Response.Header.Set("Cache-Control", "private, max-age=0")
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBody(data)
}
