package graphql

import (
	"context"

	graphqlgo "github.com/graph-gophers/graphql-go"

	"github.com/fastygo/alle/domain"
	"github.com/fastygo/alle/internal/app"
)

var taskModule = Module{
	Name: "tasks",
	Types: `
type Task {
	id: Int!
	title: String!
	completed: Boolean!
	date: String
	listId: Int
	position: Int
	notes: String
	color: String
	createdAt: String!
	updatedAt: String!
}

input CreateTaskInput {
	title: String!
	completed: Boolean
	date: String
	listId: Int
	position: Int
	notes: String
	color: String
}

input UpdateTaskInput {
	title: String
	completed: Boolean
	date: String
	listId: Int
	position: Int
	notes: String
	color: String
}
`,
	Queries: `
tasks: [Task!]!
task(id: Int!): Task
incompleteTasks: [Task!]!
`,
	Mutations: `
createTask(input: CreateTaskInput!): Task!
updateTask(id: Int!, input: UpdateTaskInput!): Task!
deleteTask(id: Int!): Boolean!
`,
}

type taskAPI struct {
	c *app.Container
}

type createTaskInput struct {
	Title     string
	Completed *bool
	Date      *string
	ListID    *int32
	Position  *int32
	Notes     *string
	Color     *string
}

type updateTaskInput struct {
	Title     *string
	Completed *bool
	Date      graphqlgo.NullString
	ListID    graphqlgo.NullInt
	Position  graphqlgo.NullInt
	Notes     graphqlgo.NullString
	Color     graphqlgo.NullString
}

func (a *taskAPI) Tasks(ctx context.Context) ([]*taskResolver, error) {
	tasks, err := a.c.TaskService.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return taskResolvers(tasks), nil
}

func (a *taskAPI) Task(ctx context.Context, args struct{ ID int32 }) (*taskResolver, error) {
	task, err := a.c.TaskService.GetTask(ctx, args.ID)
	if domain.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &taskResolver{t: *task}, nil
}

func (a *taskAPI) IncompleteTasks(ctx context.Context) ([]*taskResolver, error) {
	tasks, err := a.c.TaskService.ListIncomplete(ctx)
	if err != nil {
		return nil, err
	}
	return taskResolvers(tasks), nil
}

func (a *taskAPI) CreateTask(ctx context.Context, args struct{ Input createTaskInput }) (*taskResolver, error) {
	in := args.Input
	date, err := parseDatePtr(in.Date)
	if err != nil {
		return nil, err
	}
	placement, err := domain.ResolvePlacement(domain.Unscheduled(),
		domain.SetPtr(date), domain.SetPtr(in.ListID), domain.SetPtr(in.Position))
	if err != nil {
		return nil, err
	}

	task, err := a.c.TaskService.CreateTask(ctx, domain.NewTask{
		Title:     in.Title,
		Completed: in.Completed != nil && *in.Completed,
		Placement: placement,
		Notes:     in.Notes,
		Color:     in.Color,
	})
	if err != nil {
		return nil, err
	}
	return &taskResolver{t: *task}, nil
}

func (a *taskAPI) UpdateTask(ctx context.Context, args struct {
	ID    int32
	Input updateTaskInput
}) (*taskResolver, error) {
	in := args.Input
	date, err := dateField(in.Date)
	if err != nil {
		return nil, err
	}
	task, err := a.c.TaskService.UpdateTask(ctx, args.ID, domain.TaskPatch{
		Title:     keepOrSet(in.Title),
		Completed: keepOrSet(in.Completed),
		Date:      date,
		ListID:    intField(in.ListID),
		Position:  intField(in.Position),
		Notes:     stringField(in.Notes),
		Color:     stringField(in.Color),
	})
	if err != nil {
		return nil, err
	}
	return &taskResolver{t: *task}, nil
}

func (a *taskAPI) DeleteTask(ctx context.Context, args struct{ ID int32 }) (bool, error) {
	return a.c.TaskService.DeleteTask(ctx, args.ID)
}

type taskResolver struct {
	t domain.Task
}

func taskResolvers(tasks []domain.Task) []*taskResolver {
	out := make([]*taskResolver, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, &taskResolver{t: t})
	}
	return out
}

func (r *taskResolver) ID() int32       { return r.t.ID }
func (r *taskResolver) Title() string   { return r.t.Title }
func (r *taskResolver) Completed() bool { return r.t.Completed }
func (r *taskResolver) Notes() *string  { return r.t.Notes }
func (r *taskResolver) Color() *string  { return r.t.Color }

func (r *taskResolver) Date() *string {
	p := r.t.Placement
	return nullable(formatTime(p.Date), p.Kind == domain.PlacementCalendar)
}

func (r *taskResolver) ListID() *int32 {
	p := r.t.Placement
	return nullable(p.ListID, p.Kind == domain.PlacementSomeday)
}

func (r *taskResolver) Position() *int32 {
	if r.t.Placement.Kind != domain.PlacementSomeday {
		return nil
	}
	return r.t.Placement.Position
}

func (r *taskResolver) CreatedAt() string { return formatTime(r.t.CreatedAt) }
func (r *taskResolver) UpdatedAt() string { return formatTime(r.t.UpdatedAt) }
