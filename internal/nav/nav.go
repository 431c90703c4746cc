// Package nav abstracts client-side navigation between dashboard views.
package nav

import (
	"context"
	"sync"
)

type Navigator interface {
	Navigate(ctx context.Context, route string)
}

type NavigatorFunc func(ctx context.Context, route string)

func (f NavigatorFunc) Navigate(ctx context.Context, route string) {
	f(ctx, route)
}

// Discard ignores every navigation.
var Discard Navigator = NavigatorFunc(func(context.Context, string) {})

// History tracks the current route. Navigating to the route already shown
// is a no-op, so independent triggers for the same redirect collapse.
type History struct {
	mu       sync.Mutex
	current  string
	visited  []string
	onChange func(ctx context.Context, route string)
}

func NewHistory(initial string, onChange func(ctx context.Context, route string)) *History {
	h := &History{current: initial, onChange: onChange}
	if initial != "" {
		h.visited = append(h.visited, initial)
	}
	return h
}

func (h *History) Navigate(ctx context.Context, route string) {
	h.mu.Lock()
	if route == h.current {
		h.mu.Unlock()
		return
	}
	h.current = route
	h.visited = append(h.visited, route)
	onChange := h.onChange
	h.mu.Unlock()

	if onChange != nil {
		onChange(ctx, route)
	}
}

func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Visited returns every route shown, oldest first.
func (h *History) Visited() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.visited...)
}
