package metrics

import "reflect"

// Analyzer turns raw text into a Result. Implementations must return the
// same Result for the same text on every call.
type Analyzer interface {
	ID() string
	Name() string
	Description() string
	Compute(text string) Result
}

// Configurable is implemented by analyzers that have user-tunable settings.
type Configurable interface {
	ApplySettings(settings map[string]any) error
	DefaultSettings() map[string]any
}

// Clone creates an independent copy of an analyzer. Configurable
// analyzers are rebuilt from a zero value with their DefaultSettings
// applied, so clones never share mutable state such as caches. Other
// analyzers get a shallow struct copy.
func Clone(a Analyzer) Analyzer {
	rv := reflect.ValueOf(a)
	if rv.Kind() != reflect.Ptr {
		return a
	}

	newPtr := reflect.New(rv.Elem().Type())
	clone := newPtr.Interface().(Analyzer)
	if c, ok := a.(Configurable); ok {
		if cc, ok := clone.(Configurable); ok {
			_ = cc.ApplySettings(c.DefaultSettings())
		}
		return clone
	}

	newPtr.Elem().Set(rv.Elem())
	return clone
}
