// Package module provides prefix-scoped HTTP modules with per-module
// middleware stacks and a router that dispatches between them.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/myreply/docket/pkg/middleware"
)

// Module is an HTTP handler that strips its prefix and delegates to an inner
// router wrapped in its own middleware stack.
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System
}

// New creates a Module with the given single-level prefix (e.g. "/api").
// Panics if the prefix is empty, missing a leading slash, or multi-level.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
	}
}

// Prefix returns the module's path prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use adds middleware to the module's stack.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

// Serve strips the module prefix from the request path and dispatches to the
// inner router through the middleware stack.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	inner := strings.TrimPrefix(req.URL.Path, m.prefix)
	if inner == "" {
		inner = "/"
	}

	scoped := new(http.Request)
	*scoped = *req
	scoped.URL = new(url.URL)
	*scoped.URL = *req.URL
	scoped.URL.Path = inner
	scoped.URL.RawPath = ""

	m.middleware.Apply(m.router).ServeHTTP(w, scoped)
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix cannot be empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	}
	if strings.Count(prefix, "/") != 1 {
		return fmt.Errorf("module prefix must be a single-level sub-path: %s", prefix)
	}
	return nil
}
