package object

import (
	"encoding"
	"reflect"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/signadot/normal"
)

const planCacheSize = 512

var plans *lru.Cache[reflect.Type, *plan]

func init() {
	cache, err := lru.New[reflect.Type, *plan](planCacheSize)
	if err != nil {
		panic(err)
	}
	plans = cache
}

type fieldMode int

const (
	plainField fieldMode = iota
	structField
	structPtrField
	typedField
	typedAddrField
)

type fieldPlan struct {
	name  string
	index []int
	mode  fieldMode
	typ   reflect.Type
	// item is set for nested fields.
	item normal.ItemType
}

// plan is the accessor of a struct type, built once per type.
type plan struct {
	typ    reflect.Type
	fields []fieldPlan
	byName map[string]int
	decl   []normal.Field
}

var (
	typedType         = reflect.TypeFor[normal.Typed]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

func planFor(t reflect.Type) *plan {
	if p, ok := plans.Get(t); ok {
		return p
	}
	p := buildPlan(t)
	plans.Add(t, p)
	return p
}

func buildPlan(t reflect.Type) *plan {
	p := &plan{typ: t, byName: map[string]int{}}
	p.addFields(t, nil)
	p.decl = make([]normal.Field, len(p.fields))
	for i := range p.fields {
		p.decl[i] = normal.Field{Name: p.fields[i].name, Type: p.fields[i].item}
	}
	return p
}

func (p *plan) addFields(t reflect.Type, index []int) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		idx := append(append([]int(nil), index...), i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && !isTyped(sf.Type) {
			if _, tagged := sf.Tag.Lookup(tagName); !tagged {
				p.addFields(sf.Type, idx)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		name, skip := fieldName(sf)
		if skip {
			continue
		}
		if _, dup := p.byName[name]; dup {
			continue
		}
		fp := fieldPlan{name: name, index: idx, typ: sf.Type}
		fp.mode, fp.item = classifyField(sf.Type)
		p.byName[name] = len(p.fields)
		p.fields = append(p.fields, fp)
	}
}

func classifyField(ft reflect.Type) (fieldMode, normal.ItemType) {
	switch {
	case ft.Kind() == reflect.Pointer && ft.Implements(typedType):
		if ft.Elem().Kind() == reflect.Struct {
			return typedField, typedItem{typ: ft.Elem()}
		}
		return typedField, nil
	case ft.Kind() == reflect.Interface:
		return plainField, nil
	case ft.Kind() != reflect.Pointer && reflect.PointerTo(ft).Implements(typedType):
		return typedAddrField, typedItem{typ: ft}
	case isNestedStruct(ft):
		return structField, structItem{typ: ft}
	case ft.Kind() == reflect.Pointer && isNestedStruct(ft.Elem()):
		return structPtrField, structItem{typ: ft.Elem()}
	}
	return plainField, nil
}

func isTyped(t reflect.Type) bool {
	return t.Implements(typedType) || reflect.PointerTo(t).Implements(typedType)
}

// isNestedStruct reports whether values of t are entities of their own
// rather than text encoded scalars such as time.Time.
func isNestedStruct(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	return !t.Implements(textMarshalerType) && !reflect.PointerTo(t).Implements(textMarshalerType)
}

const tagName = "normal"

func fieldName(sf reflect.StructField) (string, bool) {
	for _, key := range []string{tagName, "json"} {
		tag, ok := sf.Tag.Lookup(key)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return "", true
		}
		if name != "" {
			return name, false
		}
	}
	return sf.Name, false
}

// structItem constructs entities for a struct type.
type structItem struct {
	typ reflect.Type
}

func (s structItem) Name() string {
	return s.typ.String()
}

func (s structItem) New() normal.Typed {
	return wrap(reflect.New(s.typ))
}

// typedItem constructs values of a type whose pointer is a typed node.
type typedItem struct {
	typ reflect.Type
}

func (t typedItem) Name() string {
	return t.typ.String()
}

func (t typedItem) New() normal.Typed {
	return reflect.New(t.typ).Interface().(normal.Typed)
}

// TypeFor returns the item type constructing T. T is a struct type or a type
// whose pointer implements normal.Typed.
func TypeFor[T any]() normal.ItemType {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if reflect.PointerTo(t).Implements(typedType) {
		return typedItem{typ: t}
	}
	return structItem{typ: t}
}
