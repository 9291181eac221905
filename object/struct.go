package object

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/signadot/normal"
	"github.com/signadot/normal/ir"
)

// Struct is a pointer to a Go struct seen as an entity.
type Struct struct {
	ptr  reflect.Value
	plan *plan
}

var (
	_ normal.Entity               = (*Struct)(nil)
	_ normal.PropertyNormalizer   = (*Struct)(nil)
	_ normal.PropertyDenormalizer = (*Struct)(nil)
)

// New wraps ptr, which must be a non-nil pointer to a struct.
func New(ptr any) (*Struct, error) {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, fmt.Errorf("object: expected a non-nil pointer to a struct, got %T", ptr)
	}
	if rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("object: expected a pointer to a struct, got %T", ptr)
	}
	return wrap(rv), nil
}

// Of is like New but panics on error.
func Of(ptr any) *Struct {
	s, err := New(ptr)
	if err != nil {
		panic(err)
	}
	return s
}

func wrap(ptr reflect.Value) *Struct {
	return &Struct{ptr: ptr, plan: planFor(ptr.Type().Elem())}
}

// Interface returns the wrapped pointer.
func (s *Struct) Interface() any {
	return s.ptr.Interface()
}

func (s *Struct) Kind() normal.Kind {
	return normal.KindEntity
}

func (s *Struct) Fields() []normal.Field {
	return s.plan.decl
}

func (s *Struct) field(name string) (*fieldPlan, reflect.Value, bool) {
	i, ok := s.plan.byName[name]
	if !ok {
		return nil, reflect.Value{}, false
	}
	fp := &s.plan.fields[i]
	return fp, s.ptr.Elem().FieldByIndex(fp.index), true
}

// Property returns the value of a field. Nested structs are returned as
// *Struct values addressing the field in place. Nil pointers are absent.
func (s *Struct) Property(name string) (any, bool) {
	fp, fv, ok := s.field(name)
	if !ok {
		return nil, false
	}
	switch fp.mode {
	case structField:
		return wrap(fv.Addr()), true
	case structPtrField:
		if fv.IsNil() {
			return nil, false
		}
		return wrap(fv), true
	case typedField:
		if fv.IsNil() {
			return nil, false
		}
		return fv.Interface(), true
	case typedAddrField:
		return fv.Addr().Interface(), true
	}
	return fv.Interface(), true
}

// SetProperty assigns v to a field. Unknown names are ignored. Plain
// fields are decoded from v with weak typing, so "3" sets an int.
func (s *Struct) SetProperty(name string, v any) error {
	fp, fv, ok := s.field(name)
	if !ok {
		return nil
	}
	if v == nil {
		fv.Set(reflect.Zero(fp.typ))
		return nil
	}
	if sv, ok := v.(*Struct); ok {
		v = sv.Interface()
	}
	rv := reflect.ValueOf(v)
	switch fp.mode {
	case structField, typedAddrField:
		if rv.Type() == reflect.PointerTo(fp.typ) {
			if rv.Pointer() != fv.Addr().Pointer() {
				fv.Set(rv.Elem())
			}
			return nil
		}
	case structPtrField, typedField:
		if rv.Type().AssignableTo(fp.typ) {
			fv.Set(rv)
			return nil
		}
	}
	if rv.Type().AssignableTo(fp.typ) {
		fv.Set(rv)
		return nil
	}
	if fp.mode == typedField || fp.mode == typedAddrField {
		return fmt.Errorf("field %s of %s: cannot assign %T", fp.name, s.plan.typ, v)
	}
	dst := reflect.New(fp.typ)
	if err := decode(v, dst.Interface()); err != nil {
		return fmt.Errorf("field %s of %s: %w", fp.name, s.plan.typ, err)
	}
	fv.Set(dst.Elem())
	return nil
}

func decode(input, result any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           result,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// NormalizeProperty defers to the wrapped struct when it implements
// normal.PropertyNormalizer.
func (s *Struct) NormalizeProperty(name string, v any, ctx normal.Context) (*ir.Node, bool) {
	if pn, ok := s.ptr.Interface().(normal.PropertyNormalizer); ok {
		return pn.NormalizeProperty(name, v, ctx)
	}
	return nil, false
}

// DenormalizeProperty defers to the wrapped struct when it implements
// normal.PropertyDenormalizer.
func (s *Struct) DenormalizeProperty(name string, data *ir.Node, ctx normal.Context) (bool, error) {
	if pd, ok := s.ptr.Interface().(normal.PropertyDenormalizer); ok {
		return pd.DenormalizeProperty(name, data, ctx)
	}
	return false, nil
}
