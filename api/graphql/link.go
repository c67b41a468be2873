package graphql

import (
	"context"

	graphqlgo "github.com/graph-gophers/graphql-go"

	"github.com/fastygo/alle/domain"
	"github.com/fastygo/alle/internal/app"
)

var linkModule = Module{
	Name: "links",
	Types: `
type TaskLink {
	id: Int!
	taskId: Int!
	url: String!
	title: String
	position: Int!
	createdAt: String!
}

input AddTaskLinkInput {
	taskId: Int!
	url: String!
	title: String
}

input UpdateTaskLinkInput {
	url: String
	title: String
}
`,
	Queries: `
taskLinks(taskId: Int!): [TaskLink!]!
`,
	Mutations: `
addTaskLink(input: AddTaskLinkInput!): TaskLink!
updateTaskLink(id: Int!, input: UpdateTaskLinkInput!): TaskLink!
deleteTaskLink(id: Int!): Boolean!
deleteAllTaskLinks(taskId: Int!): Boolean!
`,
}

type linkAPI struct {
	c *app.Container
}

func (a *linkAPI) TaskLinks(ctx context.Context, args struct{ TaskID int32 }) ([]*taskLinkResolver, error) {
	links, err := a.c.Links.FindByTask(ctx, args.TaskID)
	if err != nil {
		return nil, err
	}
	out := make([]*taskLinkResolver, 0, len(links))
	for _, l := range links {
		out = append(out, &taskLinkResolver{l: l})
	}
	return out, nil
}

func (a *linkAPI) AddTaskLink(ctx context.Context, args struct {
	Input struct {
		TaskID int32
		URL    string
		Title  *string
	}
}) (*taskLinkResolver, error) {
	in := args.Input
	link, err := a.c.Links.Add(ctx, in.TaskID, in.URL, in.Title)
	if err != nil {
		return nil, err
	}
	return &taskLinkResolver{l: *link}, nil
}

func (a *linkAPI) UpdateTaskLink(ctx context.Context, args struct {
	ID    int32
	Input struct {
		URL   *string
		Title graphqlgo.NullString
	}
}) (*taskLinkResolver, error) {
	link, err := a.c.Links.Update(ctx, args.ID, domain.TaskLinkPatch{
		URL:   keepOrSet(args.Input.URL),
		Title: stringField(args.Input.Title),
	})
	if err != nil {
		return nil, err
	}
	return &taskLinkResolver{l: *link}, nil
}

func (a *linkAPI) DeleteTaskLink(ctx context.Context, args struct{ ID int32 }) (bool, error) {
	n, err := a.c.Links.Delete(ctx, args.ID)
	return n > 0, err
}

func (a *linkAPI) DeleteAllTaskLinks(ctx context.Context, args struct{ TaskID int32 }) (bool, error) {
	n, err := a.c.Links.DeleteByTask(ctx, args.TaskID)
	return n > 0, err
}

type taskLinkResolver struct {
	l domain.TaskLink
}

func (r *taskLinkResolver) ID() int32         { return r.l.ID }
func (r *taskLinkResolver) TaskID() int32     { return r.l.TaskID }
func (r *taskLinkResolver) URL() string       { return r.l.URL }
func (r *taskLinkResolver) Title() *string    { return r.l.Title }
func (r *taskLinkResolver) Position() int32   { return r.l.Position }
func (r *taskLinkResolver) CreatedAt() string { return formatTime(r.l.CreatedAt) }
