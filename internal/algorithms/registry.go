package algorithms

import (
	"fmt"
	"sort"

	"github.com/san-kum/sortviz/internal/trace"
)

// Adapter emits a full sorting trace through the builder.
type Adapter func(b *trace.Builder)

// Registry is the closed set of instrumented algorithms, selected by name.
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry() *Registry {
	r := &Registry{adapters: make(map[string]Adapter)}
	r.adapters["bubble"] = Bubble
	r.adapters["selection"] = Selection
	r.adapters["insertion"] = Insertion
	r.adapters["merge"] = Merge
	r.adapters["quicksort"] = Quicksort
	return r
}

func (r *Registry) Get(name string) (Adapter, error) {
	fn, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("unknown algorithm: %s", name)
	}
	return fn, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Record runs the named adapter over values and finalizes the trace.
func (r *Registry) Record(name string, values []int) (*trace.Trace, []int, error) {
	fn, err := r.Get(name)
	if err != nil {
		return nil, nil, err
	}
	b := trace.NewBuilder(values)
	fn(b)
	return b.Finalize()
}
