package shortcode

// Filter transforms a value passing through a named hook.
type Filter[T any] func(T) T

// Filters holds ordered filter chains keyed by hook name.
type Filters[T any] struct {
	chains map[string][]Filter[T]
}

// NewFilters returns an empty set of chains.
func NewFilters[T any]() *Filters[T] {
	return &Filters[T]{chains: make(map[string][]Filter[T])}
}

// Add appends fn to the chain for hook.
func (f *Filters[T]) Add(hook string, fn Filter[T]) {
	f.chains[hook] = append(f.chains[hook], fn)
}

// Apply folds v through the chain for hook in registration order.
// A hook with no filters returns v unchanged.
func (f *Filters[T]) Apply(hook string, v T) T {
	for _, fn := range f.chains[hook] {
		v = fn(v)
	}
	return v
}

// Len returns how many filters are registered for hook.
func (f *Filters[T]) Len(hook string) int {
	return len(f.chains[hook])
}
