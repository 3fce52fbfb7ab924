// Package routing maps navigation paths to screens and folds the guard chain
// of the matched route.
package routing

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edusaas/portal-gate/internal/core/domain"
	"github.com/edusaas/portal-gate/internal/core/guard"
)

const routeKey = "gate.route"

// Router matches paths with echo's radix tree. It is safe for concurrent use
// once built.
type Router struct {
	e      *echo.Echo
	routes map[string]Route
}

// Evaluation is the pure result of routing one path against one snapshot.
type Evaluation struct {
	Route   Route
	Matched bool
	Params  map[string]string
	// DecidedBy is the guard behind a non-allow decision.
	DecidedBy string
	Decision  domain.Decision
	// PortalSlug is set when a portal entry link named a tenant.
	PortalSlug string
}

// New builds a router for routes. Duplicate patterns are rejected.
func New(routes []Route) (*Router, error) {
	r := &Router{e: echo.New(), routes: make(map[string]Route, len(routes))}
	for _, rt := range routes {
		if _, dup := r.routes[rt.Pattern]; dup {
			return nil, fmt.Errorf("routing: duplicate pattern %q", rt.Pattern)
		}
		r.routes[rt.Pattern] = rt

		pattern := rt.Pattern
		r.e.Router().Add(http.MethodGet, pattern, func(c echo.Context) error {
			c.Set(routeKey, pattern)
			return nil
		})
	}
	return r, nil
}

// Match finds the route for path. A named param spans exactly one segment;
// echo lets a trailing one absorb the rest of the path, so such matches are
// reported as not found. Only "*" may span segments.
func (r *Router) Match(path string) (Route, map[string]string, bool) {
	path = normalize(path)

	c := r.e.NewContext(nil, nil)
	r.e.Router().Find(http.MethodGet, path, c)
	h := c.Handler()
	if h == nil || h(c) != nil {
		return NotFound, nil, false
	}
	pattern, _ := c.Get(routeKey).(string)
	rt, ok := r.routes[pattern]
	if !ok {
		return NotFound, nil, false
	}

	params := map[string]string{}
	values := c.ParamValues()
	for i, name := range c.ParamNames() {
		if i >= len(values) {
			break
		}
		v := values[i]
		if name != "*" && strings.Contains(v, "/") {
			return NotFound, nil, false
		}
		if unescaped, err := url.PathUnescape(v); err == nil {
			v = unescaped
		}
		params[name] = v
	}
	return rt, params, true
}

// Evaluate runs the global status gate, then the matched route's chain from
// the outermost guard inwards. The first non-allow decision is final.
func (r *Router) Evaluate(path string, s guard.Snapshot) Evaluation {
	rt, params, ok := r.Match(path)
	ev := Evaluation{Route: rt, Matched: ok, Params: params}

	status := guard.StatusGate{}
	if d := status.Decide(s); !d.Allowed() {
		ev.Decision, ev.DecidedBy = d, status.Name()
		return ev
	}

	ev.Decision, ev.DecidedBy = rt.Guards.Evaluate(s)
	if ev.Decision.Allowed() && rt.PortalEntry {
		ev.PortalSlug = strings.TrimSpace(params["slug"])
		ev.Decision = domain.Redirect(domain.LoginPathFor(domain.ParseRole(params["role"])), nil)
		ev.DecidedBy = "portal_entry"
	}
	return ev
}

func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}
