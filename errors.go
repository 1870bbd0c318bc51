package cells

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pthm/cells/lib/cachekey"
)

// Sentinel errors for registry and state lookup failures. Both are fatal:
// an unresolvable component or state name is a wiring bug, never recovered.
var (
	ErrUnknownComponent = errors.New("cells: unknown component")
	ErrUnknownState     = errors.New("cells: unknown state")
)

// DoubleRenderError reports that a state function attempted to set its
// render directive more than once. This is a programmer error and is always
// surfaced from RenderState, even if the state function discards the error
// returned by the offending Render call.
type DoubleRenderError struct {
	Component string
	State     string
}

func (e *DoubleRenderError) Error() string {
	return fmt.Sprintf("cells: render or redirect called multiple times in %s#%s", e.Component, e.State)
}

// MissingTemplateError reports that a template engine found no file matching
// a template name under any of the given search paths. Whether this
// propagates to the caller depends on the registry's environment mode.
type MissingTemplateError struct {
	Name        string
	SearchPaths []string
}

func (e *MissingTemplateError) Error() string {
	if len(e.SearchPaths) == 0 {
		return fmt.Sprintf("cells: missing template %q", e.Name)
	}
	return fmt.Sprintf("cells: missing template %q (searched %s)", e.Name, strings.Join(e.SearchPaths, ", "))
}

// IsDoubleRender checks if err is a double-render error.
func IsDoubleRender(err error) bool {
	var target *DoubleRenderError
	return errors.As(err, &target)
}

// IsMissingTemplate checks if err is a missing-template error.
func IsMissingTemplate(err error) bool {
	var target *MissingTemplateError
	return errors.As(err, &target)
}

// IsNotCacheable checks if err reports a parameter value that cannot
// participate in cache-key derivation.
func IsNotCacheable(err error) bool {
	var target *cachekey.NotCacheableError
	return errors.As(err, &target)
}
