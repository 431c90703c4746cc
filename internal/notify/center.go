// Package notify queues short-lived user notifications (toasts).
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jobfinder/dashboard-go/internal/config"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantSuccess     Variant = "success"
	VariantDestructive Variant = "destructive"
	VariantWarning     Variant = "warning"
)

type Toast struct {
	ID          string
	Title       string
	Description string
	Variant     Variant
	// Duration is how long the toast stays. Zero means the default;
	// negative keeps it until dismissed.
	Duration time.Duration
}

// Center owns the queue. Producers add toasts and each one is removed
// when its timer fires or it is dismissed.
type Center struct {
	mu        sync.Mutex
	toasts    []Toast
	timers    map[string]*time.Timer
	listeners []func([]Toast)
}

func NewCenter() *Center {
	return &Center{timers: map[string]*time.Timer{}}
}

// Subscribe registers fn to receive the queue after every change.
func (c *Center) Subscribe(fn func([]Toast)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Add enqueues t and returns its id.
func (c *Center) Add(t Toast) string {
	t.ID = uuid.NewString()
	if t.Variant == "" {
		t.Variant = VariantDefault
	}
	if t.Duration == 0 {
		t.Duration = config.DefaultToastDuration
	}

	c.mu.Lock()
	c.toasts = append(c.toasts, t)
	if t.Duration > 0 {
		id := t.ID
		c.timers[id] = time.AfterFunc(t.Duration, func() { c.Dismiss(id) })
	}
	c.mu.Unlock()

	c.notify()
	return t.ID
}

func (c *Center) Success(title, description string) string {
	return c.Add(Toast{Title: title, Description: description, Variant: VariantSuccess})
}

func (c *Center) Error(title, description string) string {
	return c.Add(Toast{Title: title, Description: description, Variant: VariantDestructive})
}

func (c *Center) Warning(title, description string) string {
	return c.Add(Toast{Title: title, Description: description, Variant: VariantWarning})
}

func (c *Center) Info(title, description string) string {
	return c.Add(Toast{Title: title, Description: description, Variant: VariantDefault})
}

// Dismiss removes the toast with id. Unknown ids are ignored.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}
	removed := false
	kept := c.toasts[:0]
	for _, t := range c.toasts {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	c.toasts = kept
	c.mu.Unlock()

	if removed {
		c.notify()
	}
}

// Toasts returns the queue, oldest first.
func (c *Center) Toasts() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Toast(nil), c.toasts...)
}

// Close stops every pending timer.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
}

func (c *Center) notify() {
	c.mu.Lock()
	snapshot := append([]Toast(nil), c.toasts...)
	listeners := append(([]func([]Toast))(nil), c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}
