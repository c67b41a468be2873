package graphql

import (
	"context"

	"github.com/fastygo/alle/domain"
	"github.com/fastygo/alle/internal/app"
)

var presetModule = Module{
	Name: "presets",
	Types: `
type TagPreset {
	id: Int!
	name: String!
	usageCount: Int!
	createdAt: String!
}

type ColorPreset {
	id: Int!
	name: String!
	hexValue: String!
	position: Int!
	createdAt: String!
}

input CreateTagPresetInput {
	name: String!
}

input CreateColorPresetInput {
	name: String!
	hexValue: String!
}

input UpdateColorPresetInput {
	name: String
	hexValue: String
}
`,
	Queries: `
tagPresets: [TagPreset!]!
colorPresets: [ColorPreset!]!
`,
	Mutations: `
createTagPreset(input: CreateTagPresetInput!): TagPreset!
renameTagPreset(id: Int!, newName: String!): TagPreset!
incrementTagPresetUsage(id: Int!): TagPreset!
deleteTagPreset(id: Int!): Boolean!
createColorPreset(input: CreateColorPresetInput!): ColorPreset!
updateColorPreset(id: Int!, input: UpdateColorPresetInput!): ColorPreset!
reorderColorPresets(ids: [Int!]!): [ColorPreset!]!
deleteColorPreset(id: Int!): Boolean!
`,
}

type presetAPI struct {
	c *app.Container
}

func (a *presetAPI) TagPresets(ctx context.Context) ([]*tagPresetResolver, error) {
	presets, err := a.c.TagPresets.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*tagPresetResolver, 0, len(presets))
	for _, p := range presets {
		out = append(out, &tagPresetResolver{p: p})
	}
	return out, nil
}

func (a *presetAPI) CreateTagPreset(ctx context.Context, args struct{ Input struct{ Name string } }) (*tagPresetResolver, error) {
	p, err := a.c.TagPresets.Create(ctx, args.Input.Name)
	if err != nil {
		return nil, err
	}
	return &tagPresetResolver{p: *p}, nil
}

func (a *presetAPI) RenameTagPreset(ctx context.Context, args struct {
	ID      int32
	NewName string
}) (*tagPresetResolver, error) {
	p, err := a.c.TagPresets.Rename(ctx, args.ID, args.NewName)
	if err != nil {
		return nil, err
	}
	return &tagPresetResolver{p: *p}, nil
}

func (a *presetAPI) IncrementTagPresetUsage(ctx context.Context, args struct{ ID int32 }) (*tagPresetResolver, error) {
	p, err := a.c.TagPresets.IncrementUsage(ctx, args.ID)
	if err != nil {
		return nil, err
	}
	return &tagPresetResolver{p: *p}, nil
}

func (a *presetAPI) DeleteTagPreset(ctx context.Context, args struct{ ID int32 }) (bool, error) {
	n, err := a.c.TagPresets.Delete(ctx, args.ID)
	return n > 0, err
}

func (a *presetAPI) ColorPresets(ctx context.Context) ([]*colorPresetResolver, error) {
	presets, err := a.c.ColorPresets.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return colorPresetResolvers(presets), nil
}

func (a *presetAPI) CreateColorPreset(ctx context.Context, args struct {
	Input struct {
		Name     string
		HexValue string
	}
}) (*colorPresetResolver, error) {
	p, err := a.c.ColorPresets.Create(ctx, args.Input.Name, args.Input.HexValue)
	if err != nil {
		return nil, err
	}
	return &colorPresetResolver{p: *p}, nil
}

func (a *presetAPI) UpdateColorPreset(ctx context.Context, args struct {
	ID    int32
	Input struct {
		Name     *string
		HexValue *string
	}
}) (*colorPresetResolver, error) {
	p, err := a.c.ColorPresets.Update(ctx, args.ID, domain.ColorPresetPatch{
		Name:     keepOrSet(args.Input.Name),
		HexValue: keepOrSet(args.Input.HexValue),
	})
	if err != nil {
		return nil, err
	}
	return &colorPresetResolver{p: *p}, nil
}

func (a *presetAPI) ReorderColorPresets(ctx context.Context, args struct{ IDs []int32 }) ([]*colorPresetResolver, error) {
	presets, err := a.c.ColorPresets.Reorder(ctx, args.IDs)
	if err != nil {
		return nil, err
	}
	return colorPresetResolvers(presets), nil
}

func (a *presetAPI) DeleteColorPreset(ctx context.Context, args struct{ ID int32 }) (bool, error) {
	n, err := a.c.ColorPresets.Delete(ctx, args.ID)
	return n > 0, err
}

type tagPresetResolver struct {
	p domain.TagPreset
}

func (r *tagPresetResolver) ID() int32         { return r.p.ID }
func (r *tagPresetResolver) Name() string      { return r.p.Name }
func (r *tagPresetResolver) UsageCount() int32 { return r.p.UsageCount }
func (r *tagPresetResolver) CreatedAt() string { return formatTime(r.p.CreatedAt) }

type colorPresetResolver struct {
	p domain.ColorPreset
}

func colorPresetResolvers(presets []domain.ColorPreset) []*colorPresetResolver {
	out := make([]*colorPresetResolver, 0, len(presets))
	for _, p := range presets {
		out = append(out, &colorPresetResolver{p: p})
	}
	return out
}

func (r *colorPresetResolver) ID() int32         { return r.p.ID }
func (r *colorPresetResolver) Name() string      { return r.p.Name }
func (r *colorPresetResolver) HexValue() string  { return r.p.HexValue }
func (r *colorPresetResolver) Position() int32   { return r.p.Position }
func (r *colorPresetResolver) CreatedAt() string { return formatTime(r.p.CreatedAt) }
