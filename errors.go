package normal

import "fmt"

// TypeError reports plain data whose shape does not fit its target.
type TypeError struct {
	Path     string // e.g. "lines[0].qty"
	Expected string
	Actual   string
	Message  string
}

func (e *TypeError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
	}
	if e.Path != "" {
		return fmt.Sprintf("type error at %s: %s", e.Path, msg)
	}
	return fmt.Sprintf("type error: %s", msg)
}

// ConfigurationError reports a typed node that cannot be denormalized into,
// such as a collection without an item type.
type ConfigurationError struct {
	Path     string
	TypeName string
	Message  string
	Err      error
}

func (e *ConfigurationError) Error() string {
	msg := e.Message
	if e.TypeName != "" {
		msg = fmt.Sprintf("%s: %s", e.TypeName, msg)
	}
	if e.Path != "" {
		return fmt.Sprintf("configuration error at %s: %s", e.Path, msg)
	}
	return fmt.Sprintf("configuration error: %s", msg)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// DenormalizeError wraps an error returned by a typed node setter.
type DenormalizeError struct {
	Path    string
	Message string
	Err     error
}

func (e *DenormalizeError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("denormalize error at %s: %s", e.Path, msg)
	}
	return fmt.Sprintf("denormalize error: %s", msg)
}

func (e *DenormalizeError) Unwrap() error {
	return e.Err
}
