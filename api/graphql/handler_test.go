package graphql

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/alle/pkg/httpcontext"
)

func newHandler(t *testing.T, playground bool) *Handler {
	t.Helper()
	schema, _ := newSchema(t)
	return NewHandler(schema, httpcontext.NewAdapter(5*time.Second), playground, nil)
}

func post(h *Handler, body string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.SetRequestURI("/graphql")
	ctx.Request.SetBodyString(body)
	h.Serve(ctx)
	return ctx
}

func TestServeExecutesQuery(t *testing.T) {
	h := newHandler(t, false)

	ctx := post(h, `{"query":"mutation($t: String!) { createTask(input: {title: $t}) { title } }","variables":{"t":"Buy milk"}}`)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))

	var out struct {
		Data struct {
			CreateTask struct{ Title string }
		}
		Errors []json.RawMessage
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &out))
	assert.Empty(t, out.Errors)
	assert.Equal(t, "Buy milk", out.Data.CreateTask.Title)
	assert.NotEmpty(t, ctx.Response.Header.Peek(httpcontext.RequestIDHeader))
}

func TestServeReportsResolverErrorsWith200(t *testing.T) {
	h := newHandler(t, false)

	ctx := post(h, `{"query":"mutation { updateTask(id: 404, input: {title: \"x\"}) { id } }"}`)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())

	var out struct {
		Errors []struct{ Message string }
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &out))
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "task not found", out.Errors[0].Message)
}

func TestServeRejectsMalformedBody(t *testing.T) {
	h := newHandler(t, false)

	for _, body := range []string{"not json", `{"variables":{}}`} {
		ctx := post(h, body)
		assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode(), body)
	}
}

func TestPlayground(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	newHandler(t, true).Playground(ctx)
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "GraphiQL")

	ctx = &fasthttp.RequestCtx{}
	newHandler(t, false).Playground(ctx)
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
}
