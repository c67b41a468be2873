// Package graphql serves the task API. Every domain contributes one Module:
// SDL fragments for its types, queries and mutations, plus a resolver that
// is embedded into the single root resolver.
package graphql

import (
	"context"
	"fmt"
	"strings"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"

	"github.com/fastygo/alle/internal/app"
)

// Module is one domain's slice of the schema.
type Module struct {
	Name      string
	Types     string
	Queries   string
	Mutations string
}

func modules() []Module {
	return []Module{
		taskModule,
		somedayModule,
		tagModule,
		linkModule,
		attachmentModule,
		presetModule,
		settingsModule,
		trashModule,
	}
}

// Resolver is the root resolver. graphql-go looks fields up in its method
// set, which includes the methods promoted from every domain resolver.
type Resolver struct {
	*taskAPI
	*somedayAPI
	*tagAPI
	*linkAPI
	*attachmentAPI
	*presetAPI
	*settingsAPI
	*trashAPI
}

// NewResolver binds every domain resolver to the container.
func NewResolver(c *app.Container) *Resolver {
	return &Resolver{
		taskAPI:       &taskAPI{c: c},
		somedayAPI:    &somedayAPI{c: c},
		tagAPI:        &tagAPI{c: c},
		linkAPI:       &linkAPI{c: c},
		attachmentAPI: &attachmentAPI{c: c},
		presetAPI:     &presetAPI{c: c},
		settingsAPI:   &settingsAPI{c: c},
		trashAPI:      &trashAPI{c: c},
	}
}

// Options limits query execution.
type Options struct {
	MaxDepth       int
	MaxParallelism int
	Logger         *zap.Logger
}

// NewSchema composes the modules and parses the result against the root
// resolver. A field declared by two modules is an error.
func NewSchema(c *app.Container, opts Options) (*graphqlgo.Schema, error) {
	sdl, err := ComposeSDL(modules()...)
	if err != nil {
		return nil, err
	}

	schemaOpts := []graphqlgo.SchemaOpt{graphqlgo.Logger(panicLogger{logger: opts.Logger})}
	if opts.MaxDepth > 0 {
		schemaOpts = append(schemaOpts, graphqlgo.MaxDepth(opts.MaxDepth))
	}
	if opts.MaxParallelism > 0 {
		schemaOpts = append(schemaOpts, graphqlgo.MaxParallelism(opts.MaxParallelism))
	}
	return graphqlgo.ParseSchema(sdl, NewResolver(c), schemaOpts...)
}

// ComposeSDL joins module fragments into one document with a single Query
// and a single Mutation type.
func ComposeSDL(mods ...Module) (string, error) {
	queries, err := mergeFields("Query", mods, func(m Module) string { return m.Queries })
	if err != nil {
		return "", err
	}
	mutations, err := mergeFields("Mutation", mods, func(m Module) string { return m.Mutations })
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("schema {\n\tquery: Query\n\tmutation: Mutation\n}\n\n")
	for _, m := range mods {
		if t := strings.TrimSpace(m.Types); t != "" {
			b.WriteString(t)
			b.WriteString("\n\n")
		}
	}
	b.WriteString("type Query {\n")
	b.WriteString(queries)
	b.WriteString("}\n\ntype Mutation {\n")
	b.WriteString(mutations)
	b.WriteString("}\n")
	return b.String(), nil
}

func mergeFields(typeName string, mods []Module, fragment func(Module) string) (string, error) {
	owner := map[string]string{}
	var b strings.Builder
	for _, m := range mods {
		for _, line := range strings.Split(fragment(m), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			name := fieldName(line)
			if prev, ok := owner[name]; ok {
				return "", fmt.Errorf("graphql: %s.%s declared by both %s and %s", typeName, name, prev, m.Name)
			}
			owner[name] = m.Name
			b.WriteString("\t")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

func fieldName(line string) string {
	if i := strings.IndexAny(line, "(:"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// panicLogger reports resolver panics through zap instead of the standard
// library logger.
type panicLogger struct {
	logger *zap.Logger
}

func (l panicLogger) LogPanic(_ context.Context, value interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Error("graphql resolver panic", zap.Any("panic", value), zap.Stack("stack"))
}
