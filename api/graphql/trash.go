package graphql

import (
	"context"

	"github.com/fastygo/alle/domain"
	"github.com/fastygo/alle/internal/app"
)

var trashModule = Module{
	Name: "trash",
	Types: `
type TrashItem {
	id: Int!
	taskId: String!
	taskText: String!
	taskDate: String!
	taskCompleted: Boolean!
	deletedAt: String!
	taskType: String!
	somedayListId: Int
}

input CreateTrashInput {
	taskId: String!
	taskText: String!
	taskDate: String!
	taskCompleted: Boolean!
	taskType: String!
	somedayListId: Int
}
`,
	Queries: `
trash: [TrashItem!]!
`,
	Mutations: `
createTrashItem(input: CreateTrashInput!): TrashItem!
deleteTrashItem(id: Int!): Boolean!
# removes items trashed more than seven days ago
cleanOldTrash: Boolean!
`,
}

type trashAPI struct {
	c *app.Container
}

func (a *trashAPI) Trash(ctx context.Context) ([]*trashResolver, error) {
	items, err := a.c.Trash.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*trashResolver, 0, len(items))
	for _, item := range items {
		out = append(out, &trashResolver{t: item})
	}
	return out, nil
}

func (a *trashAPI) CreateTrashItem(ctx context.Context, args struct {
	Input struct {
		TaskID        string
		TaskText      string
		TaskDate      string
		TaskCompleted bool
		TaskType      string
		SomedayListID *int32
	}
}) (*trashResolver, error) {
	in := args.Input
	date, err := parseDate(in.TaskDate)
	if err != nil {
		return nil, err
	}
	item, err := a.c.Trash.Create(ctx, domain.NewTrashItem{
		TaskID:        in.TaskID,
		TaskText:      in.TaskText,
		TaskDate:      date,
		TaskCompleted: in.TaskCompleted,
		TaskType:      domain.TrashKind(in.TaskType),
		SomedayListID: in.SomedayListID,
	})
	if err != nil {
		return nil, err
	}
	return &trashResolver{t: *item}, nil
}

func (a *trashAPI) DeleteTrashItem(ctx context.Context, args struct{ ID int32 }) (bool, error) {
	n, err := a.c.Trash.Delete(ctx, args.ID)
	return n > 0, err
}

func (a *trashAPI) CleanOldTrash(ctx context.Context) (bool, error) {
	if _, err := a.c.TrashService.CleanOld(ctx); err != nil {
		return false, err
	}
	return true, nil
}

type trashResolver struct {
	t domain.TrashItem
}

func (r *trashResolver) ID() int32             { return r.t.ID }
func (r *trashResolver) TaskID() string        { return r.t.TaskID }
func (r *trashResolver) TaskText() string      { return r.t.TaskText }
func (r *trashResolver) TaskDate() string      { return formatTime(r.t.TaskDate) }
func (r *trashResolver) TaskCompleted() bool   { return r.t.TaskCompleted }
func (r *trashResolver) DeletedAt() string     { return formatTime(r.t.DeletedAt) }
func (r *trashResolver) TaskType() string      { return string(r.t.TaskType) }
func (r *trashResolver) SomedayListID() *int32 { return r.t.SomedayListID }
