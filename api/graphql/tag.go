package graphql

import (
	"context"

	"github.com/fastygo/alle/domain"
	"github.com/fastygo/alle/internal/app"
)

var tagModule = Module{
	Name: "tags",
	Types: `
type TaskTag {
	id: Int!
	taskId: Int!
	tagName: String!
	createdAt: String!
}

input AddTaskTagInput {
	taskId: Int!
	tagName: String!
}
`,
	Queries: `
taskTags(taskId: Int!): [TaskTag!]!
allTagNames: [String!]!
`,
	Mutations: `
addTaskTag(input: AddTaskTagInput!): TaskTag!
removeTaskTag(id: Int!): Boolean!
removeAllTaskTags(taskId: Int!): Boolean!
`,
}

type tagAPI struct {
	c *app.Container
}

func (a *tagAPI) TaskTags(ctx context.Context, args struct{ TaskID int32 }) ([]*taskTagResolver, error) {
	tags, err := a.c.Tags.FindByTask(ctx, args.TaskID)
	if err != nil {
		return nil, err
	}
	out := make([]*taskTagResolver, 0, len(tags))
	for _, t := range tags {
		out = append(out, &taskTagResolver{t: t})
	}
	return out, nil
}

func (a *tagAPI) AllTagNames(ctx context.Context) ([]string, error) {
	return a.c.Tags.AllNames(ctx)
}

func (a *tagAPI) AddTaskTag(ctx context.Context, args struct {
	Input struct {
		TaskID  int32
		TagName string
	}
}) (*taskTagResolver, error) {
	tag, err := a.c.Tags.Add(ctx, args.Input.TaskID, args.Input.TagName)
	if err != nil {
		return nil, err
	}
	return &taskTagResolver{t: *tag}, nil
}

func (a *tagAPI) RemoveTaskTag(ctx context.Context, args struct{ ID int32 }) (bool, error) {
	n, err := a.c.Tags.Delete(ctx, args.ID)
	return n > 0, err
}

func (a *tagAPI) RemoveAllTaskTags(ctx context.Context, args struct{ TaskID int32 }) (bool, error) {
	n, err := a.c.Tags.DeleteByTask(ctx, args.TaskID)
	return n > 0, err
}

type taskTagResolver struct {
	t domain.TaskTag
}

func (r *taskTagResolver) ID() int32         { return r.t.ID }
func (r *taskTagResolver) TaskID() int32     { return r.t.TaskID }
func (r *taskTagResolver) TagName() string   { return r.t.TagName }
func (r *taskTagResolver) CreatedAt() string { return formatTime(r.t.CreatedAt) }
