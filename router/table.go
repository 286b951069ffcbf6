// Package router implements armature's route-matching and dispatch
// engine: a pattern compiler for {name} templates, a method-keyed route
// table with group and resource registration, and a dispatcher that
// binds matched parameters and invokes handlers. JSON handlers and
// view-rendering handlers share the same engine; both write their own
// responses through the Context.
package router

import (
	"net/http"
	"regexp"
	"strings"
)

// Handler is the invocation contract for a matched route. Handlers
// perform their own response emission; the dispatcher never inspects
// their output.
type Handler interface {
	Serve(c *Context)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(c *Context)

// Serve calls f(c).
func (f HandlerFunc) Serve(c *Context) { f(c) }

// Resource is the controller contract consumed by Table.Resource: the
// five canonical CRUD actions.
type Resource interface {
	Index(c *Context)
	Show(c *Context)
	Store(c *Context)
	Update(c *Context)
	Destroy(c *Context)
}

// Route is an immutable (method, template, handler) binding. Routes are
// created at registration time and owned by their Table; group
// registration produces new Route values with prefixed templates rather
// than mutating originals.
type Route struct {
	Method     string
	Template   string
	ParamNames []string

	matcher *regexp.Regexp
	handler Handler
}

// methods fixes a deterministic iteration order over route buckets.
var methods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// Table stores registered routes keyed by HTTP method. Matching is
// first-match-wins in registration order, so more specific routes must
// be declared before more general ones. Tables are built once at
// startup and are read-only during dispatch; registration is not safe
// for concurrent use.
type Table struct {
	buckets map[string][]*Route
}

// NewTable returns an empty route table.
func NewTable() *Table {
	return &Table{buckets: make(map[string][]*Route)}
}

// Handle compiles template and appends the route to the method bucket.
// Templates are normalized by trimming surrounding slashes, so "/users"
// and "users" register the same route.
func (t *Table) Handle(method, template string, h Handler) {
	tpl := strings.Trim(template, "/")
	matcher, names := CompilePattern(tpl)
	t.buckets[method] = append(t.buckets[method], &Route{
		Method:     method,
		Template:   tpl,
		ParamNames: names,
		matcher:    matcher,
		handler:    h,
	})
}

// Get registers a GET route.
func (t *Table) Get(template string, h HandlerFunc) { t.Handle(http.MethodGet, template, h) }

// Post registers a POST route.
func (t *Table) Post(template string, h HandlerFunc) { t.Handle(http.MethodPost, template, h) }

// Put registers a PUT route.
func (t *Table) Put(template string, h HandlerFunc) { t.Handle(http.MethodPut, template, h) }

// Patch registers a PATCH route.
func (t *Table) Patch(template string, h HandlerFunc) { t.Handle(http.MethodPatch, template, h) }

// Delete registers a DELETE route.
func (t *Table) Delete(template string, h HandlerFunc) { t.Handle(http.MethodDelete, template, h) }

// Group registers every route added by fn under prefix. fn receives the
// table and registers routes normally; once it returns, the captured
// routes are re-compiled with prefix joined to their original template
// and appended to the routes that existed before the group call. Nested
// groups compose prefixes by repeated application. The pre-group state
// is restored even if fn registers nothing.
func (t *Table) Group(prefix string, fn func(t *Table)) {
	outer := t.buckets
	t.buckets = make(map[string][]*Route)

	fn(t)

	captured := t.buckets
	t.buckets = outer
	for _, method := range methods {
		for _, r := range captured[method] {
			t.Handle(method, joinPath(prefix, r.Template), r.handler)
		}
	}
}

// Resource registers the five canonical CRUD routes for name:
//
//	GET    name       → Index
//	GET    name/{id}  → Show
//	POST   name       → Store
//	PUT    name/{id}  → Update
//	DELETE name/{id}  → Destroy
func (t *Table) Resource(name string, res Resource) {
	t.Get(name, res.Index)
	t.Get(joinPath(name, "{id}"), res.Show)
	t.Post(name, res.Store)
	t.Put(joinPath(name, "{id}"), res.Update)
	t.Delete(joinPath(name, "{id}"), res.Destroy)
}

// Match scans the method bucket in registration order and returns the
// first route whose pattern accepts path, together with its captured
// segments. path is normalized by trimming surrounding slashes.
func (t *Table) Match(method, path string) (*Route, []string, bool) {
	p := strings.Trim(path, "/")
	for _, r := range t.buckets[method] {
		if m := r.matcher.FindStringSubmatch(p); m != nil {
			return r, m[1:], true
		}
	}
	return nil, nil, false
}

// joinPath joins two template fragments with a single slash, trimming
// surrounding slashes from both sides first.
func joinPath(prefix, path string) string {
	prefix = strings.Trim(prefix, "/")
	path = strings.Trim(path, "/")
	switch {
	case prefix == "":
		return path
	case path == "":
		return prefix
	default:
		return prefix + "/" + path
	}
}
