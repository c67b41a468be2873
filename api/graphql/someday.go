package graphql

import (
	"context"

	graphqlgo "github.com/graph-gophers/graphql-go"

	"github.com/fastygo/alle/domain"
	"github.com/fastygo/alle/internal/app"
)

var somedayModule = Module{
	Name: "someday",
	Types: `
type SomedayList {
	id: Int!
	name: String!
	position: Int!
	createdAt: String!
	updatedAt: String!
}

type SomedayTask {
	id: Int!
	listId: Int!
	title: String!
	description: String
	completed: Boolean!
	position: Int
	createdAt: String!
	updatedAt: String!
}

input CreateSomedayListInput {
	name: String!
	position: Int!
}

input UpdateSomedayListInput {
	id: Int!
	name: String
	position: Int
}

input CreateSomedayTaskInput {
	listId: Int!
	title: String!
	description: String
	position: Int!
}

input UpdateSomedayTaskInput {
	id: Int!
	listId: Int
	title: String
	description: String
	completed: Boolean
	position: Int
}
`,
	Queries: `
somedayLists: [SomedayList!]!
somedayTasks: [SomedayTask!]!
somedayTasksByList(listId: Int!): [SomedayTask!]!
`,
	Mutations: `
createSomedayList(input: CreateSomedayListInput!): SomedayList!
updateSomedayList(input: UpdateSomedayListInput!): SomedayList!
# tasks of a deleted list stay, detached from any list
deleteSomedayList(id: Int!): Boolean!
createSomedayTask(input: CreateSomedayTaskInput!): SomedayTask!
updateSomedayTask(input: UpdateSomedayTaskInput!): SomedayTask!
toggleSomedayTask(id: Int!): SomedayTask!
deleteSomedayTask(id: Int!): Boolean!
`,
}

type somedayAPI struct {
	c *app.Container
}

func (a *somedayAPI) SomedayLists(ctx context.Context) ([]*somedayListResolver, error) {
	lists, err := a.c.SomedayLists.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*somedayListResolver, 0, len(lists))
	for _, l := range lists {
		out = append(out, &somedayListResolver{l: l})
	}
	return out, nil
}

func (a *somedayAPI) SomedayTasks(ctx context.Context) ([]*somedayTaskResolver, error) {
	tasks, err := a.c.SomedayTasks.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return somedayTaskResolvers(tasks), nil
}

func (a *somedayAPI) SomedayTasksByList(ctx context.Context, args struct{ ListID int32 }) ([]*somedayTaskResolver, error) {
	tasks, err := a.c.SomedayTasks.FindByList(ctx, args.ListID)
	if err != nil {
		return nil, err
	}
	return somedayTaskResolvers(tasks), nil
}

func (a *somedayAPI) CreateSomedayList(ctx context.Context, args struct {
	Input struct {
		Name     string
		Position int32
	}
}) (*somedayListResolver, error) {
	list, err := a.c.SomedayLists.Create(ctx, args.Input.Name, args.Input.Position)
	if err != nil {
		return nil, err
	}
	return &somedayListResolver{l: *list}, nil
}

func (a *somedayAPI) UpdateSomedayList(ctx context.Context, args struct {
	Input struct {
		ID       int32
		Name     *string
		Position *int32
	}
}) (*somedayListResolver, error) {
	in := args.Input
	list, err := a.c.SomedayLists.Update(ctx, in.ID, domain.SomedayListPatch{
		Name:     keepOrSet(in.Name),
		Position: keepOrSet(in.Position),
	})
	if err != nil {
		return nil, err
	}
	return &somedayListResolver{l: *list}, nil
}

func (a *somedayAPI) DeleteSomedayList(ctx context.Context, args struct{ ID int32 }) (bool, error) {
	n, err := a.c.SomedayLists.Delete(ctx, args.ID)
	return n > 0, err
}

func (a *somedayAPI) CreateSomedayTask(ctx context.Context, args struct {
	Input struct {
		ListID      int32
		Title       string
		Description *string
		Position    int32
	}
}) (*somedayTaskResolver, error) {
	in := args.Input
	task, err := a.c.SomedayTasks.Create(ctx, domain.NewSomedayTask{
		ListID:      in.ListID,
		Title:       in.Title,
		Description: in.Description,
		Position:    in.Position,
	})
	if err != nil {
		return nil, err
	}
	return &somedayTaskResolver{t: *task}, nil
}

func (a *somedayAPI) UpdateSomedayTask(ctx context.Context, args struct {
	Input struct {
		ID          int32
		ListID      *int32
		Title       *string
		Description graphqlgo.NullString
		Completed   *bool
		Position    graphqlgo.NullInt
	}
}) (*somedayTaskResolver, error) {
	in := args.Input
	task, err := a.c.SomedayTasks.Update(ctx, in.ID, domain.SomedayTaskPatch{
		ListID:      keepOrSet(in.ListID),
		Title:       keepOrSet(in.Title),
		Description: stringField(in.Description),
		Completed:   keepOrSet(in.Completed),
		Position:    intField(in.Position),
	})
	if err != nil {
		return nil, err
	}
	return &somedayTaskResolver{t: *task}, nil
}

func (a *somedayAPI) ToggleSomedayTask(ctx context.Context, args struct{ ID int32 }) (*somedayTaskResolver, error) {
	task, err := a.c.SomedayTasks.ToggleCompleted(ctx, args.ID)
	if err != nil {
		return nil, err
	}
	return &somedayTaskResolver{t: *task}, nil
}

func (a *somedayAPI) DeleteSomedayTask(ctx context.Context, args struct{ ID int32 }) (bool, error) {
	return a.c.TaskService.DeleteSomedayTask(ctx, args.ID)
}

type somedayListResolver struct {
	l domain.SomedayList
}

func (r *somedayListResolver) ID() int32         { return r.l.ID }
func (r *somedayListResolver) Name() string      { return r.l.Name }
func (r *somedayListResolver) Position() int32   { return r.l.Position }
func (r *somedayListResolver) CreatedAt() string { return formatTime(r.l.CreatedAt) }
func (r *somedayListResolver) UpdatedAt() string { return formatTime(r.l.UpdatedAt) }

type somedayTaskResolver struct {
	t domain.SomedayTask
}

func somedayTaskResolvers(tasks []domain.SomedayTask) []*somedayTaskResolver {
	out := make([]*somedayTaskResolver, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, &somedayTaskResolver{t: t})
	}
	return out
}

func (r *somedayTaskResolver) ID() int32            { return r.t.ID }
func (r *somedayTaskResolver) ListID() int32        { return r.t.ListID }
func (r *somedayTaskResolver) Title() string        { return r.t.Title }
func (r *somedayTaskResolver) Description() *string { return r.t.Description }
func (r *somedayTaskResolver) Completed() bool      { return r.t.Completed }
func (r *somedayTaskResolver) Position() *int32     { return r.t.Position }
func (r *somedayTaskResolver) CreatedAt() string    { return formatTime(r.t.CreatedAt) }
func (r *somedayTaskResolver) UpdatedAt() string    { return formatTime(r.t.UpdatedAt) }
