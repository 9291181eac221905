package normal

// Well known context keys.
const (
	CtxProperty = "property"
	CtxKey      = "key"
	CtxClass    = "class"
	CtxFormat   = "format"
	CtxPath     = "path"
)

// Context carries metadata down the recursion. It is immutable: With
// returns an extended copy. The zero value is empty and ready to use.
type Context struct {
	head *ctxEntry
}

type ctxEntry struct {
	key  string
	val  any
	next *ctxEntry
}

func NewContext(kvs map[string]any) Context {
	ctx := Context{}
	for k, v := range kvs {
		ctx = ctx.With(k, v)
	}
	return ctx
}

// WithFormat returns a context carrying format.
func WithFormat(format string) Context {
	return Context{}.With(CtxFormat, format)
}

func (c Context) With(key string, v any) Context {
	return Context{head: &ctxEntry{key: key, val: v, next: c.head}}
}

func (c Context) Get(key string) (any, bool) {
	for e := c.head; e != nil; e = e.next {
		if e.key == key {
			return e.val, true
		}
	}
	return nil, false
}

// Map returns the visible entries of c.
func (c Context) Map() map[string]any {
	res := map[string]any{}
	for e := c.head; e != nil; e = e.next {
		if _, ok := res[e.key]; !ok {
			res[e.key] = e.val
		}
	}
	return res
}

func (c Context) string(key string) string {
	v, _ := c.Get(key)
	s, _ := v.(string)
	return s
}

func (c Context) Property() string {
	return c.string(CtxProperty)
}

func (c Context) Format() string {
	return c.string(CtxFormat)
}

// Path locates the current value, as in "lines[0].qty".
func (c Context) Path() string {
	return c.string(CtxPath)
}

func (c Context) Key() (Key, bool) {
	v, ok := c.Get(CtxKey)
	if !ok {
		return Key{}, false
	}
	k, ok := v.(Key)
	return k, ok
}

// Class is the item type of the collection being denormalized.
func (c Context) Class() ItemType {
	v, _ := c.Get(CtxClass)
	t, _ := v.(ItemType)
	return t
}

func (c Context) withProperty(name string) Context {
	return c.With(CtxProperty, name).With(CtxPath, StringKey(name).path(c.Path()))
}

func (c Context) withKey(k Key) Context {
	return c.With(CtxKey, k).With(CtxPath, k.path(c.Path()))
}
