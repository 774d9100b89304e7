package images

import "strings"

// Resolver turns stored image references into URLs a client can load.
type Resolver struct {
	base string
}

func NewResolver(baseURL string) *Resolver {
	return &Resolver{base: strings.TrimRight(baseURL, "/")}
}

// Resolve leaves absolute http(s) and data URLs alone and joins anything else
// onto the base URL. An empty reference stays empty.
func (r *Resolver) Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "data:") {
		return ref
	}
	if r.base == "" {
		return ref
	}
	return r.base + "/" + strings.TrimLeft(ref, "/")
}
