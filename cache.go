package cells

import (
	"go.uber.org/zap"

	"github.com/pthm/cells/lib/cachekey"
)

// CachedCell wraps a Component behind the StateRenderer contract and skips
// re-rendering when the fragment store already holds the output for the
// derived key.
//
// Whether a state is cached at all is decided by the definition's cache
// rules together with the process-wide enabled flag. Parameters that cannot
// be canonicalized degrade to an uncached render with a logged warning;
// they never fail the request.
type CachedCell struct {
	cell      *Component
	store     Store
	enabled   bool
	writeOpts map[string]any
	log       *zap.Logger
}

// CacheOption configures a CachedCell.
type CacheOption func(*CachedCell)

// WithWriteOptions supplies storage options (expiry and the like) passed
// through to the store on every write. They are opaque to this package.
func WithWriteOptions(opts map[string]any) CacheOption {
	return func(cc *CachedCell) {
		cc.writeOpts = opts
	}
}

// NewCachedCell wraps a component with the fragment-caching decorator.
// The enabled flag is the process-wide caching switch; when false every
// render bypasses the store.
func NewCachedCell(c *Component, store Store, enabled bool, opts ...CacheOption) *CachedCell {
	cc := &CachedCell{
		cell:    c,
		store:   store,
		enabled: enabled,
		log:     c.reg.log,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cc)
		}
	}
	return cc
}

// RenderState renders the state through the cache: on a hit the stored
// content is returned unmodified and the state function does not run; on a
// miss the state renders, the output is stored, and the freshly stored
// value is re-read and returned so hit and miss paths return
// identically-sourced content.
func (cc *CachedCell) RenderState(state string) (string, error) {
	if !cc.shouldCache(state) {
		return cc.cell.RenderState(state)
	}

	key, err := cachekey.Key(cc.cell.def.name, state, cc.cell.params.Map())
	if err != nil {
		// Un-keyable parameters degrade to an uncached render; the
		// request must not fail over a cache concern.
		cc.log.Warn("cache key derivation failed, rendering uncached",
			zap.String("component", cc.cell.def.name),
			zap.String("state", state),
			zap.Error(err),
		)
		return cc.cell.RenderState(state)
	}

	if content, ok := cc.store.Read(key); ok {
		cc.log.Debug("fragment cache hit", zap.String("key", key))
		return content, nil
	}

	out, err := cc.cell.RenderState(state)
	if err != nil {
		return "", err
	}
	cc.store.Write(key, out, cc.writeOpts)
	if stored, ok := cc.store.Read(key); ok {
		return stored, nil
	}
	// The store declined the entry; serve the rendered output directly.
	return out, nil
}

// shouldCache applies the definition's cache rules: CachesNone vetoes,
// otherwise a state-specific or all-states declaration applies, with
// predicates evaluated against the instance's parameters. The process-wide
// enabled flag gates everything.
func (cc *CachedCell) shouldCache(state string) bool {
	if !cc.enabled || cc.store == nil {
		return false
	}
	rule, ok := cc.cell.def.cacheRuleFor(state)
	if !ok {
		return false
	}
	if rule.predicate != nil {
		return rule.predicate(cc.cell.params)
	}
	return true
}
