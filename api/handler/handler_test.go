package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/alle/domain"
	"github.com/fastygo/alle/internal/apptest"
	"github.com/fastygo/alle/pkg/httpcontext"
)

const maxUpload = 50 * 1024 * 1024

type part struct {
	field, fileName string
	data            []byte
}

func multipartCtx(t *testing.T, fields map[string]string, file *part) *fasthttp.RequestCtx {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		fw, err := w.CreateFormFile(file.field, file.fileName)
		require.NoError(t, err)
		_, err = fw.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.SetRequestURI("/api/upload")
	ctx.Request.Header.SetContentType(w.FormDataContentType())
	ctx.Request.SetBody(buf.Bytes())
	return ctx
}

func errorBody(t *testing.T, ctx *fasthttp.RequestCtx) string {
	t.Helper()
	var body struct{ Error string }
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
	return body.Error
}

func newUploadEnv(t *testing.T) (*UploadHandler, *apptest.Env, int32) {
	t.Helper()
	env := apptest.New(t)
	task, err := env.Container.TaskService.CreateTask(context.Background(), domain.NewTask{Title: "with files"})
	require.NoError(t, err)
	h := NewUploadHandler(env.Container.AttachmentService, maxUpload, httpcontext.NewAdapter(5*time.Second), nil)
	return h, env, task.ID
}

func TestUploadStoresBlobAndRecord(t *testing.T) {
	h, env, taskID := newUploadEnv(t)
	id := strconv.Itoa(int(taskID))

	ctx := multipartCtx(t, map[string]string{"task_id": id}, &part{field: "file", fileName: "notes v1.txt", data: []byte("hello")})
	h.Upload(ctx)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))

	var resp struct {
		ID          int32  `json:"id"`
		FileName    string `json:"file_name"`
		FileSize    int64  `json:"file_size"`
		StoragePath string `json:"storage_path"`
		Message     string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, "notes v1.txt", resp.FileName)
	assert.Equal(t, int64(5), resp.FileSize)
	assert.Equal(t, "File uploaded successfully", resp.Message)
	assert.True(t, strings.HasPrefix(resp.StoragePath, "tasks/"+id+"/"))
	assert.True(t, strings.HasSuffix(resp.StoragePath, "_notes_v1.txt"))

	exists, err := env.Blobs.Exists(context.Background(), resp.StoragePath)
	require.NoError(t, err)
	assert.True(t, exists)

	records, err := env.Container.Attachments.FindByTask(context.Background(), taskID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, resp.ID, records[0].ID)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	h, env, taskID := newUploadEnv(t)

	big := make([]byte, 60*1024*1024)
	ctx := multipartCtx(t, map[string]string{"task_id": strconv.Itoa(int(taskID))}, &part{field: "file", fileName: "big.bin", data: big})
	h.Upload(ctx)

	assert.Equal(t, http.StatusRequestEntityTooLarge, ctx.Response.StatusCode())
	assert.Equal(t, "File size exceeds maximum of 50 MB", errorBody(t, ctx))

	records, err := env.Container.Attachments.FindByTask(context.Background(), taskID)
	require.NoError(t, err)
	assert.Empty(t, records)
	blobs, err := env.Blobs.Size()
	require.NoError(t, err)
	assert.Zero(t, blobs)
}

func TestUploadFileSizeCheckedAfterParsing(t *testing.T) {
	env := apptest.New(t)
	h := NewUploadHandler(env.Container.AttachmentService, 1024*1024, nil, nil)

	// just over the limit but inside the multipart slack
	data := make([]byte, 1024*1024+10)
	ctx := multipartCtx(t, map[string]string{"task_id": "1"}, &part{field: "file", fileName: "a.bin", data: data})
	h.Upload(ctx)
	assert.Equal(t, http.StatusRequestEntityTooLarge, ctx.Response.StatusCode())
	assert.Equal(t, "File size exceeds maximum of 1 MB", errorBody(t, ctx))
}

func TestUploadValidation(t *testing.T) {
	h, _, taskID := newUploadEnv(t)
	id := strconv.Itoa(int(taskID))
	file := &part{field: "file", fileName: "a.txt", data: []byte("a")}

	cases := []struct {
		name   string
		fields map[string]string
		file   *part
		status int
		want   string
	}{
		{"missing task id", nil, file, http.StatusBadRequest, "task_id is required"},
		{"bad task id", map[string]string{"task_id": "abc"}, file, http.StatusBadRequest, "Invalid task_id"},
		{"missing file", map[string]string{"task_id": id}, nil, http.StatusBadRequest, "file is required"},
		{"unknown task", map[string]string{"task_id": strconv.Itoa(int(taskID) + 1)}, file, http.StatusNotFound, "task not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := multipartCtx(t, tc.fields, tc.file)
			h.Upload(ctx)
			assert.Equal(t, tc.status, ctx.Response.StatusCode())
			assert.Equal(t, tc.want, errorBody(t, ctx))
		})
	}
}

func TestUploadRequiresMultipart(t *testing.T) {
	h, _, _ := newUploadEnv(t)
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.Header.SetContentType("application/json")
	ctx.Request.SetBodyString(`{}`)
	h.Upload(ctx)
	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
}

func TestBlobDownload(t *testing.T) {
	env := apptest.New(t)
	bg := context.Background()
	key := "tasks/1/abc_a.txt"
	require.NoError(t, env.Blobs.Put(bg, key, strings.NewReader("hello"), 5, "text/plain"))

	signed, err := env.Blobs.PresignGet(bg, key, time.Minute)
	require.NoError(t, err)
	u, err := url.Parse(signed)
	require.NoError(t, err)

	h := NewBlobHandler(env.Blobs, nil, nil)

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI(u.RequestURI())
	ctx.SetUserValue("key", key)
	h.Download(ctx)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "hello", string(ctx.Response.Body()))
	assert.Equal(t, "text/plain", string(ctx.Response.Header.ContentType()))

	// token is bound to its key
	ctx = &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI(u.RequestURI())
	ctx.SetUserValue("key", "tasks/1/other.txt")
	h.Download(ctx)
	assert.Equal(t, http.StatusForbidden, ctx.Response.StatusCode())

	ctx = &fasthttp.RequestCtx{}
	ctx.SetUserValue("key", key)
	h.Download(ctx)
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
}
