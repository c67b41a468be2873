package domain

type fieldState uint8

const (
	fieldKeep fieldState = iota
	fieldClear
	fieldSet
)

// Field carries the update intent for one column: leave it untouched,
// reset it to null, or overwrite it with a value. The zero value keeps.
type Field[T any] struct {
	state fieldState
	value T
}

// Keep leaves the stored value unchanged.
func Keep[T any]() Field[T] {
	return Field[T]{}
}

// Clear resets the stored value to null.
func Clear[T any]() Field[T] {
	return Field[T]{state: fieldClear}
}

// Set overwrites the stored value.
func Set[T any](v T) Field[T] {
	return Field[T]{state: fieldSet, value: v}
}

// SetPtr maps nil to Keep and anything else to Set.
func SetPtr[T any](v *T) Field[T] {
	if v == nil {
		return Keep[T]()
	}
	return Set(*v)
}

func (f Field[T]) IsKeep() bool  { return f.state == fieldKeep }
func (f Field[T]) IsClear() bool { return f.state == fieldClear }
func (f Field[T]) IsSet() bool   { return f.state == fieldSet }

// Value returns the assigned value when the field is Set.
func (f Field[T]) Value() (T, bool) {
	return f.value, f.state == fieldSet
}

// Apply resolves the field against the current nullable value.
func (f Field[T]) Apply(current *T) *T {
	switch f.state {
	case fieldClear:
		return nil
	case fieldSet:
		v := f.value
		return &v
	default:
		return current
	}
}

// Required resolves the field against a non-nullable value. Clear is rejected.
func (f Field[T]) Required(name string, current T) (T, error) {
	switch f.state {
	case fieldClear:
		return current, NewError(ErrCodeInvalid, name+" cannot be null")
	case fieldSet:
		return f.value, nil
	default:
		return current, nil
	}
}
