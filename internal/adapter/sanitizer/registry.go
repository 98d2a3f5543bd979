package sanitizer

import (
	"fmt"
	"sort"
	"sync"

	"github.com/user/jaundice-service/internal/repository"
	"github.com/user/jaundice-service/pkg/utils"
)

// Registry maps site keys ("inosmi.ru") to their sanitizers.
type Registry struct {
	mu         sync.RWMutex
	sanitizers map[string]repository.Sanitizer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sanitizers: make(map[string]repository.Sanitizer)}
}

// NewDefaultRegistry registers the built-in article templates plus a
// readability sanitizer for every extra site.
func NewDefaultRegistry(readabilitySites ...string) *Registry {
	r := NewRegistry()
	r.Register(InosmiSiteKey, NewInosmi())
	r.Register(LentaSiteKey, NewLenta())

	if len(readabilitySites) > 0 {
		generic := NewReadability()
		for _, site := range readabilitySites {
			r.Register(site, generic)
		}
	}
	return r
}

// Register binds s to site, replacing any earlier binding.
func (r *Registry) Register(site string, s repository.Sanitizer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sanitizers[utils.SiteKey("//"+site)] = s
}

var _ repository.SanitizerRegistry = (*Registry)(nil)

// Resolve implements repository.SanitizerRegistry.
func (r *Registry) Resolve(pageURL string) (repository.Sanitizer, error) {
	key := utils.SiteKey(pageURL)

	r.mu.RLock()
	s, ok := r.sanitizers[key]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: no sanitizer for site %q", repository.ErrUnsupportedDocument, key)
	}
	return s, nil
}

// Sites lists the registered site keys in sorted order.
func (r *Registry) Sites() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sites := make([]string, 0, len(r.sanitizers))
	for site := range r.sanitizers {
		sites = append(sites, site)
	}
	sort.Strings(sites)
	return sites
}
