package srcview

import (
	"context"
	"net/http"
	"time"
)

// Option is a function that configures a Resolver instance.
type Option func(*Resolver)

// WithInventory sets the cross-reference inventory to resolve against.
func WithInventory(inv Inventory) Option {
	return func(r *Resolver) {
		r.inventory = inv
	}
}

// WithProjects sets the configured project mappings whose targets form the
// root set.
func WithProjects(projects []Project) Option {
	return func(r *Resolver) {
		r.projects = projects
	}
}

// WithHTTPClient sets the HTTP client used for remote page retrieval.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) {
		if client == nil {
			return
		}

		r.client = client
	}
}

// WithTimeout bounds remote page retrieval. It applies to the default HTTP
// client only; a client supplied via [WithHTTPClient] keeps its own timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithExtractor swaps the content extractor used on fetched pages.
func WithExtractor(e Extractor) Option {
	return func(r *Resolver) {
		if e == nil {
			return
		}

		r.extractor = e
	}
}

// WithContext sets the base context used for remote page retrieval.
func WithContext(ctx context.Context) Option {
	return func(r *Resolver) {
		if ctx == nil {
			r.ctx = context.Background()
			return
		}

		r.ctx = ctx
	}
}

// SetOptions applies the given options to the [Resolver] instance.
//
// Note that applying options may override previously set values.
func (r *Resolver) SetOptions(opts ...Option) {
	for _, opt := range opts {
		opt(r)
	}
}
