package pool

// Router selects the pool a write goes to. Unlike resolution it never fans
// out or consults the cache.
type Router struct {
	registry *Registry
}

func NewRouter(registry *Registry) *Router {
	return &Router{registry: registry}
}

// SelectForWrite returns the pool for namespace, or the first pool when
// namespace is empty.
func (r *Router) SelectForWrite(namespace string) (*Pool, error) {
	return r.registry.PoolByNamespace(namespace)
}
