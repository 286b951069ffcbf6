package router

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/armature-dev/armature/respond"
)

// Request is the immutable view of an inbound HTTP request consumed by
// the dispatcher. Handlers never read ambient request state; everything
// they may need is captured here.
type Request struct {
	Method   string
	Path     string
	RawQuery string
	Body     []byte
}

// Context carries the matched route's named parameters alongside the
// request and the response writer. It is created per dispatch and
// passed to exactly one handler. Ctx is the host request's cancellation
// context, for handlers that call blocking collaborators.
type Context struct {
	Ctx     context.Context
	Request Request
	Params  map[string]string
	Writer  http.ResponseWriter
}

// Param returns the captured value for the named placeholder, or ""
// when the route declares no such placeholder.
func (c *Context) Param(name string) string {
	return c.Params[name]
}

// Dispatcher resolves requests against a route table and invokes the
// bound handler. It implements http.Handler.
type Dispatcher struct {
	table  *Table
	prefix *regexp.Regexp
	log    zerolog.Logger
}

// Option configures a Dispatcher.
type Option func(d *Dispatcher)

// WithPrefix sets the pattern stripped from the start of every request
// path before matching. The default is the anchored literal "/api/".
// An empty pattern disables stripping.
func WithPrefix(pattern string) Option {
	return func(d *Dispatcher) {
		if pattern == "" {
			d.prefix = nil
			return
		}
		d.prefix = regexp.MustCompile(pattern)
	}
}

// WithLogger sets the structured logger used for dispatch logging. The
// default logger discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(d *Dispatcher) { d.log = log }
}

// New returns a Dispatcher over table.
func New(table *Table, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		table:  table,
		prefix: regexp.MustCompile(`^/api/`),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ServeHTTP adapts the host server's request into a Request and
// dispatches it. A transport failure while reading the body is logged
// and dispatched with an empty body; body-consuming handlers then
// reject it as invalid input.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		d.log.Error().Err(err).Str("path", r.URL.Path).Msg("read request body")
		body = nil
	}
	d.Dispatch(r.Context(), w, Request{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		Body:     body,
	})
}

// Dispatch normalizes the request path, finds the first matching route,
// pairs its placeholder names with the captured segments, and invokes
// the handler. Unmatched requests get a 404 envelope; a route with no
// usable handler gets a 500 envelope.
func (d *Dispatcher) Dispatch(ctx context.Context, w http.ResponseWriter, req Request) {
	path := req.Path
	if d.prefix != nil {
		path = d.prefix.ReplaceAllString(path, "")
	}
	path = strings.Trim(path, "/")

	route, captures, ok := d.table.Match(req.Method, path)
	if !ok {
		d.log.Info().Str("method", req.Method).Str("path", req.Path).Msg("no matching route")
		respond.NotFound(w, "Endpoint not found")
		return
	}
	if route.handler == nil {
		d.log.Error().Str("method", req.Method).Str("template", route.Template).Msg("route has no handler")
		respond.Internal(w, "Invalid route handler")
		return
	}

	// Positional zip of declared names against captured segments. When
	// the route declares no names, no map is built even if captures
	// exist; duplicate names resolve to the last capture.
	var params map[string]string
	if len(route.ParamNames) > 0 {
		params = make(map[string]string, len(route.ParamNames))
		for i, name := range route.ParamNames {
			if i < len(captures) {
				params[name] = captures[i]
			}
		}
	}

	d.log.Debug().
		Str("method", req.Method).
		Str("template", route.Template).
		Str("path", req.Path).
		Msg("dispatch")

	route.handler.Serve(&Context{Ctx: ctx, Request: req, Params: params, Writer: w})
}

// URL builds a concrete path from template by replacing each literal
// {key} occurrence with the value from params. Values are substituted
// verbatim with no encoding, and placeholders without a supplied value
// are left as literal {name} text. Both behaviors are intentional: URL
// is a pure string substitution, not a validator.
func URL(template string, params map[string]string) string {
	for k, v := range params {
		template = strings.ReplaceAll(template, "{"+k+"}", v)
	}
	return template
}
