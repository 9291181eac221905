package schema

import (
	"errors"
	"fmt"

	"github.com/signadot/normal"
)

var ErrUndeclaredProperty = errors.New("undeclared property")

// Record is an instance of an entity type. Properties that are not declared
// by the type are kept after the declared ones, in the order they were set,
// unless the type is closed.
type Record struct {
	typ   *Type
	props map[string]any
	extra []string
}

func NewRecord(t *Type) *Record {
	return &Record{typ: t, props: map[string]any{}}
}

func (r *Record) Type() *Type {
	return r.typ
}

func (r *Record) Kind() normal.Kind {
	return normal.KindEntity
}

func (r *Record) Fields() []normal.Field {
	if len(r.extra) == 0 {
		return r.typ.fields
	}
	res := make([]normal.Field, 0, len(r.typ.fields)+len(r.extra))
	res = append(res, r.typ.fields...)
	for _, name := range r.extra {
		res = append(res, normal.Field{Name: name})
	}
	return res
}

func (r *Record) Property(name string) (any, bool) {
	v, ok := r.props[name]
	return v, ok
}

// Get returns the value of a property or nil.
func (r *Record) Get(name string) any {
	return r.props[name]
}

func (r *Record) SetProperty(name string, v any) error {
	if !r.typ.declares(name) {
		if r.typ.closed {
			return fmt.Errorf("%w %q of %s", ErrUndeclaredProperty, name, r.typ.name)
		}
		if _, ok := r.props[name]; !ok {
			r.extra = append(r.extra, name)
		}
	}
	r.props[name] = v
	return nil
}
