package cells

import (
	"fmt"
	"sort"
)

// Params is the immutable parameter mapping passed to a component at
// construction. State functions and templates read it; nothing mutates it
// after construction. The zero value is an empty mapping.
type Params struct {
	values map[string]any
}

// NewParams builds a Params from a plain map. The map is copied, so later
// mutation of the argument does not leak into the component.
func NewParams(values map[string]any) Params {
	if len(values) == 0 {
		return Params{}
	}
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Params{values: copied}
}

// Get returns the value for key and whether it was present.
func (p Params) Get(key string) (any, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// String returns the value for key as a string. Missing keys yield "";
// non-string values are formatted with fmt.Sprint.
func (p Params) String(key string) string {
	v, ok := p.values[key]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns the value for key as an int, or 0 if missing or not an int.
func (p Params) Int(key string) int {
	if v, ok := p.values[key].(int); ok {
		return v
	}
	return 0
}

// Bool returns the value for key as a bool, or false if missing or not a bool.
func (p Params) Bool(key string) bool {
	if v, ok := p.values[key].(bool); ok {
		return v
	}
	return false
}

// Len returns the number of parameters.
func (p Params) Len() int {
	return len(p.values)
}

// Keys returns the parameter names in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a defensive copy of the underlying mapping.
func (p Params) Map() map[string]any {
	out := make(map[string]any, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// Merge returns a new Params containing this mapping overlaid with other.
// Keys present in other win. Neither receiver nor argument is modified.
func (p Params) Merge(other Params) Params {
	if other.Len() == 0 {
		return p
	}
	merged := make(map[string]any, len(p.values)+len(other.values))
	for k, v := range p.values {
		merged[k] = v
	}
	for k, v := range other.values {
		merged[k] = v
	}
	return Params{values: merged}
}
