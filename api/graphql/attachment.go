package graphql

import (
	"context"

	"github.com/fastygo/alle/domain"
	"github.com/fastygo/alle/internal/app"
	attachmentUC "github.com/fastygo/alle/usecase/attachment"
)

var attachmentModule = Module{
	Name: "attachments",
	Types: `
type TaskAttachment {
	id: Int!
	taskId: Int!
	fileName: String!
	fileSize: Int!
	mimeType: String!
	uploadedAt: String!
	downloadUrl: String
}

input CreateTaskAttachmentInput {
	taskId: Int!
	fileName: String!
	fileSize: Int!
	mimeType: String!
	storagePath: String!
}
`,
	Queries: `
taskAttachments(taskId: Int!): [TaskAttachment!]!
taskAttachment(id: Int!): TaskAttachment
`,
	Mutations: `
createTaskAttachment(input: CreateTaskAttachmentInput!): TaskAttachment!
deleteTaskAttachment(id: Int!): Boolean!
deleteAllTaskAttachments(taskId: Int!): Boolean!
`,
}

type attachmentAPI struct {
	c *app.Container
}

func (a *attachmentAPI) TaskAttachments(ctx context.Context, args struct{ TaskID int32 }) ([]*attachmentResolver, error) {
	items, err := a.c.AttachmentService.ListByTask(ctx, args.TaskID)
	if err != nil {
		return nil, err
	}
	out := make([]*attachmentResolver, 0, len(items))
	for _, item := range items {
		out = append(out, &attachmentResolver{a: item})
	}
	return out, nil
}

func (a *attachmentAPI) TaskAttachment(ctx context.Context, args struct{ ID int32 }) (*attachmentResolver, error) {
	item, err := a.c.AttachmentService.Get(ctx, args.ID)
	if domain.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attachmentResolver{a: *item}, nil
}

func (a *attachmentAPI) CreateTaskAttachment(ctx context.Context, args struct {
	Input struct {
		TaskID      int32
		FileName    string
		FileSize    int32
		MimeType    string
		StoragePath string
	}
}) (*attachmentResolver, error) {
	in := args.Input
	record, err := a.c.AttachmentService.Register(ctx, domain.TaskAttachment{
		TaskID:      in.TaskID,
		FileName:    in.FileName,
		FileSize:    int64(in.FileSize),
		MimeType:    in.MimeType,
		StoragePath: in.StoragePath,
	})
	if err != nil {
		return nil, err
	}
	return &attachmentResolver{a: attachmentUC.Attachment{TaskAttachment: *record}}, nil
}

func (a *attachmentAPI) DeleteTaskAttachment(ctx context.Context, args struct{ ID int32 }) (bool, error) {
	return a.c.AttachmentService.Delete(ctx, args.ID)
}

func (a *attachmentAPI) DeleteAllTaskAttachments(ctx context.Context, args struct{ TaskID int32 }) (bool, error) {
	n, err := a.c.AttachmentService.DeleteAllForTask(ctx, args.TaskID)
	return n > 0, err
}

type attachmentResolver struct {
	a attachmentUC.Attachment
}

func (r *attachmentResolver) ID() int32          { return r.a.ID }
func (r *attachmentResolver) TaskID() int32      { return r.a.TaskID }
func (r *attachmentResolver) FileName() string   { return r.a.FileName }
func (r *attachmentResolver) FileSize() int32    { return int32(r.a.FileSize) }
func (r *attachmentResolver) MimeType() string   { return r.a.MimeType }
func (r *attachmentResolver) UploadedAt() string { return formatTime(r.a.UploadedAt) }

func (r *attachmentResolver) DownloadURL() *string {
	return nullable(r.a.DownloadURL, r.a.DownloadURL != "")
}
