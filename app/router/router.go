package router

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/Bethel-nz/foodprint/internal/logger"
	"github.com/gorilla/mux"
)

// Middleware wraps an http.Handler.
type Middleware = func(http.Handler) http.Handler

// Context wraps http.ResponseWriter and *http.Request with additional utilities
type Context struct {
	http.ResponseWriter
	Request *http.Request
	Params  map[string]string
}

// Param returns a route parameter by key
func (c *Context) Param(key string) string {
	return c.Params[key]
}

// Query returns a query parameter by key
func (c *Context) Query(key string) string {
	return c.Request.URL.Query().Get(key)
}

// JSON sends a JSON response with the specified status code and data
func (c *Context) JSON(status int, v interface{}) {
	c.Header().Set("Content-Type", "application/json")
	c.WriteHeader(status)
	if err := json.NewEncoder(c).Encode(v); err != nil {
		logger.FromContext(c.Request.Context()).Error("Failed to encode JSON response", logger.Error(err))
	}
}

// Status sends a response with the specified status code and an optional message
func (c *Context) Status(code int, message ...string) {
	if len(message) > 0 {
		c.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	c.WriteHeader(code)
	if len(message) > 0 {
		c.Write([]byte(message[0]))
	}
}

// Route defines a single route
type Route struct {
	Method     string
	Path       string
	Handler    func(*Context)
	Middleware []Middleware
}

// literalCount returns the number of non-parameter segments for sorting precedence
func (r Route) literalCount() int {
	count := 0
	for _, seg := range strings.Split(strings.Trim(r.Path, "/"), "/") {
		if seg != "" && !strings.HasPrefix(seg, "{") {
			count++
		}
	}
	return count
}

type mount struct {
	prefix     string
	handler    http.Handler
	middleware []Middleware
}

// RouterGroup holds routes and subgroups with a common prefix
type RouterGroup struct {
	prefix     string
	middleware []Middleware
	routes     []Route
	mounts     []mount
	groups     []*RouterGroup
}

// NewRouter initializes a root router group
func NewRouter() *RouterGroup {
	return &RouterGroup{}
}

func join(prefix, path string) string {
	full := strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(path, "/")
	if len(full) > 1 {
		full = strings.TrimRight(full, "/")
	}
	return full
}

// Group creates a subgroup with a prefix and optional middleware
func (rg *RouterGroup) Group(prefix string, middleware ...Middleware) *RouterGroup {
	group := &RouterGroup{
		prefix:     join(rg.prefix, prefix),
		middleware: append([]Middleware{}, middleware...),
	}
	rg.groups = append(rg.groups, group)
	return group
}

// Handle registers a route with a method, path, handler, and optional middleware
func (rg *RouterGroup) Handle(method, path string, handler func(*Context), middleware ...Middleware) *RouterGroup {
	rg.routes = append(rg.routes, Route{
		Method:     method,
		Path:       join(rg.prefix, path),
		Handler:    handler,
		Middleware: middleware,
	})
	return rg
}

// Mount serves every request under prefix with handler, whatever the method.
func (rg *RouterGroup) Mount(prefix string, handler http.Handler, middleware ...Middleware) *RouterGroup {
	rg.mounts = append(rg.mounts, mount{
		prefix:     join(rg.prefix, prefix),
		handler:    handler,
		middleware: middleware,
	})
	return rg
}

// GET registers a GET route. It also answers HEAD.
func (rg *RouterGroup) GET(path string, handler func(*Context), middleware ...Middleware) *RouterGroup {
	return rg.Handle(http.MethodGet, path, handler, middleware...)
}

// POST registers a POST route
func (rg *RouterGroup) POST(path string, handler func(*Context), middleware ...Middleware) *RouterGroup {
	return rg.Handle(http.MethodPost, path, handler, middleware...)
}

// Build flattens the router group into a list of routes, most literal segments first.
func (rg *RouterGroup) Build() []Route {
	routes, _ := rg.build(nil)
	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].literalCount() > routes[j].literalCount()
	})
	return routes
}

// build recursively collects all routes and mounts with inherited middleware
func (rg *RouterGroup) build(parent []Middleware) ([]Route, []mount) {
	current := append(append([]Middleware{}, parent...), rg.middleware...)

	var routes []Route
	for _, route := range rg.routes {
		r := route
		r.Middleware = append(append([]Middleware{}, current...), route.Middleware...)
		routes = append(routes, r)
	}

	var mounts []mount
	for _, m := range rg.mounts {
		mm := m
		mm.middleware = append(append([]Middleware{}, current...), m.middleware...)
		mounts = append(mounts, mm)
	}

	for _, group := range rg.groups {
		r, m := group.build(current)
		routes = append(routes, r...)
		mounts = append(mounts, m...)
	}
	return routes, mounts
}

func chain(h http.Handler, middleware []Middleware) http.Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}

// Handler compiles the group into a gorilla/mux router.
func Handler(rg *RouterGroup) *mux.Router {
	r := mux.NewRouter()

	_, mounts := rg.build(nil)
	for _, route := range rg.Build() {
		route := route
		h := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			route.Handler(&Context{
				ResponseWriter: w,
				Request:        req,
				Params:         mux.Vars(req),
			})
		})
		methods := []string{route.Method}
		if route.Method == http.MethodGet {
			methods = append(methods, http.MethodHead)
		}
		r.Handle(route.Path, chain(h, route.Middleware)).Methods(methods...)
	}

	for _, m := range mounts {
		r.PathPrefix(m.prefix).Handler(chain(m.handler, m.middleware))
	}
	return r
}
