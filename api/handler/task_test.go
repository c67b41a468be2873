package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/alle/api/transport"
	"github.com/fastygo/alle/internal/apptest"
	"github.com/fastygo/alle/internal/infrastructure/monitor"
)

func request(method, body string, id string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	if body != "" {
		ctx.Request.SetBodyString(body)
	}
	if id != "" {
		ctx.SetUserValue("id", id)
	}
	return ctx
}

type envelope struct {
	Status string          `json:"status"`
	Code   string          `json:"code"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func decode(t *testing.T, ctx *fasthttp.RequestCtx) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &env))
	return env
}

func TestTaskHandlerLifecycle(t *testing.T) {
	env := apptest.New(t)
	h := NewTaskHandler(env.Container.TaskService, nil, nil)

	ctx := request(fasthttp.MethodPost, `{"title":"Buy milk","date":"2026-05-01T08:00:00+02:00","notes":"2l"}`, "")
	h.CreateTask(ctx)
	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode(), string(ctx.Response.Body()))

	var created transport.TaskResponse
	require.NoError(t, json.Unmarshal(decode(t, ctx).Data, &created))
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.Completed)
	require.NotNil(t, created.Date)
	assert.Equal(t, "2026-05-01T06:00:00Z", *created.Date)
	id := strconv.Itoa(int(created.ID))

	ctx = request(fasthttp.MethodPut, `{"completed":true,"notes":null}`, id)
	h.UpdateTask(ctx)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))
	var updated transport.TaskResponse
	require.NoError(t, json.Unmarshal(decode(t, ctx).Data, &updated))
	assert.True(t, updated.Completed)
	assert.Equal(t, "Buy milk", updated.Title)
	assert.Nil(t, updated.Notes)
	assert.Equal(t, created.Date, updated.Date)

	ctx = request(fasthttp.MethodGet, "", "")
	h.GetIncompleteTasks(ctx)
	var incomplete []transport.TaskResponse
	require.NoError(t, json.Unmarshal(decode(t, ctx).Data, &incomplete))
	assert.Empty(t, incomplete)

	ctx = request(fasthttp.MethodGet, "", id)
	h.GetTask(ctx)
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())

	ctx = request(fasthttp.MethodDelete, "", id)
	h.DeleteTask(ctx)
	assert.Equal(t, http.StatusNoContent, ctx.Response.StatusCode())

	ctx = request(fasthttp.MethodGet, "", "")
	h.GetTasks(ctx)
	var all []transport.TaskResponse
	require.NoError(t, json.Unmarshal(decode(t, ctx).Data, &all))
	assert.Empty(t, all)

	ctx = request(fasthttp.MethodDelete, "", id)
	h.DeleteTask(ctx)
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	assert.Equal(t, "NOT_FOUND", decode(t, ctx).Code)
}

func TestTaskHandlerErrors(t *testing.T) {
	env := apptest.New(t)
	h := NewTaskHandler(env.Container.TaskService, nil, nil)

	cases := []struct {
		name   string
		call   func(*fasthttp.RequestCtx)
		body   string
		id     string
		status int
		code   string
	}{
		{"bad id", h.GetTask, "", "abc", http.StatusBadRequest, "INVALID"},
		{"missing", h.GetTask, "", "404", http.StatusNotFound, "NOT_FOUND"},
		{"bad json", h.CreateTask, "{", "", http.StatusBadRequest, "INVALID"},
		{"empty title", h.CreateTask, `{"title":""}`, "", http.StatusBadRequest, "INVALID"},
		{"bad date", h.CreateTask, `{"title":"x","date":"soon"}`, "", http.StatusBadRequest, "INVALID"},
		{"date and list", h.CreateTask, `{"title":"x","date":"2026-01-01T00:00:00Z","list_id":1}`, "", http.StatusBadRequest, "INVALID"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := request(fasthttp.MethodPost, tc.body, tc.id)
			tc.call(ctx)
			assert.Equal(t, tc.status, ctx.Response.StatusCode())
			assert.Equal(t, tc.code, decode(t, ctx).Code)
		})
	}
}

func TestHealthCheck(t *testing.T) {
	mon := monitor.New(0, nil)
	h := NewHealthHandler(mon, nil, nil)

	ctx := &fasthttp.RequestCtx{}
	h.Check(ctx)
	assert.Equal(t, http.StatusServiceUnavailable, ctx.Response.StatusCode(), "no check has run")

	online := true
	mon.Register("database", monitor.PingFunc(func(context.Context) error {
		if online {
			return nil
		}
		return errors.New("down")
	}))
	mon.Refresh(context.Background())
	ctx = &fasthttp.RequestCtx{}
	h.Check(ctx)
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "success", decode(t, ctx).Status)

	online = false
	mon.Refresh(context.Background())
	ctx = &fasthttp.RequestCtx{}
	h.Check(ctx)
	assert.Equal(t, http.StatusServiceUnavailable, ctx.Response.StatusCode())
	assert.Equal(t, "DEGRADED", decode(t, ctx).Code)
}
