package httpcontext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/alle/pkg/logger"
)

func TestAttachReusesInboundRequestID(t *testing.T) {
	var rc fasthttp.RequestCtx
	rc.Request.Header.Set(RequestIDHeader, "abc")

	ctx, cancel := NewAdapter(time.Second).Attach(&rc)
	defer cancel()

	assert.Equal(t, "abc", appLogger.RequestID(ctx))
	assert.Equal(t, "abc", string(rc.Response.Header.Peek(RequestIDHeader)))
	_, hasDeadline := ctx.Deadline()
	assert.True(t, hasDeadline)
}

func TestRequestIDIsStablePerRequest(t *testing.T) {
	var rc fasthttp.RequestCtx
	first := RequestID(&rc)
	assert.NotEmpty(t, first)
	assert.Equal(t, first, RequestID(&rc))
}
