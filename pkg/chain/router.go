package chain

import (
	"context"
	"strings"
)

// Result is the outcome of routing a query: the branch output, the route
// name, and the model (or pseudo-model) that produced it.
type Result struct {
	Output string `json:"output"`
	Route  string `json:"route"`
	Model  string `json:"model"`
}

// Handler executes one branch of a router.
type Handler func(ctx context.Context, query string) (Result, error)

// Route pairs a match predicate with a branch handler.
type Route struct {
	Name   string
	Match  func(query string) bool
	Handle Handler
}

// Router dispatches a query to the first matching route, falling back to a
// default branch when nothing matches.
type Router struct {
	routes   []Route
	fallback Route
}

// NewRouter creates a Router with the given fallback branch.
func NewRouter(fallback Route, routes ...Route) *Router {
	return &Router{routes: routes, fallback: fallback}
}

// Route dispatches the query.
func (r *Router) Route(ctx context.Context, query string) (Result, error) {
	for _, route := range r.routes {
		if route.Match(query) {
			return route.Handle(ctx, query)
		}
	}
	return r.fallback.Handle(ctx, query)
}

// LooksArithmetic reports whether the query contains an arithmetic
// operator. Presence of an operator sends the query to the calculator
// branch.
func LooksArithmetic(query string) bool {
	return strings.ContainsAny(query, "+-*/")
}

// CalculatorFallback is returned by the calculator branch when the input
// is not a solvable expression.
const CalculatorFallback = "Sorry, I can only solve simple math problems."

// CalculatorRoute builds the math branch: evaluate the expression and
// format the answer, or return the textual fallback on bad input.
func CalculatorRoute() Route {
	return Route{
		Name:  "math",
		Match: LooksArithmetic,
		Handle: func(ctx context.Context, query string) (Result, error) {
			result := Result{Route: "math", Model: "calculator"}
			value, err := Evaluate(query)
			if err != nil {
				result.Output = CalculatorFallback
				return result, nil
			}
			result.Output = "Answer: " + FormatNumber(value)
			return result, nil
		},
	}
}

// ChainRoute wraps a Chain as a router branch, mapping the query into the
// chain's single template variable.
func ChainRoute(name, inputVar, model string, c *Chain) Route {
	return Route{
		Name: name,
		Handle: func(ctx context.Context, query string) (Result, error) {
			out, err := c.Run(ctx, map[string]string{inputVar: query})
			if err != nil {
				return Result{}, err
			}
			return Result{Output: out, Route: name, Model: model}, nil
		},
	}
}
