package graphql

import (
	"time"

	graphqlgo "github.com/graph-gophers/graphql-go"

	"github.com/fastygo/alle/domain"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, domain.WrapError(domain.ErrCodeInvalid, "invalid date format", err)
	}
	return t.UTC(), nil
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// keepOrSet maps an optional input of a non-nullable column: absent and null
// both keep the stored value.
func keepOrSet[T any](v *T) domain.Field[T] {
	return domain.SetPtr(v)
}

func stringField(n graphqlgo.NullString) domain.Field[string] {
	switch {
	case !n.Set:
		return domain.Keep[string]()
	case n.Value == nil:
		return domain.Clear[string]()
	}
	return domain.Set(*n.Value)
}

func intField(n graphqlgo.NullInt) domain.Field[int32] {
	switch {
	case !n.Set:
		return domain.Keep[int32]()
	case n.Value == nil:
		return domain.Clear[int32]()
	}
	return domain.Set(*n.Value)
}

func dateField(n graphqlgo.NullString) (domain.Field[time.Time], error) {
	switch {
	case !n.Set:
		return domain.Keep[time.Time](), nil
	case n.Value == nil:
		return domain.Clear[time.Time](), nil
	}
	t, err := parseDate(*n.Value)
	if err != nil {
		return domain.Keep[time.Time](), err
	}
	return domain.Set(t), nil
}

// nullable is graphql-go's Go shape for an optional output field.
func nullable[T any](v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}
