// Package overlay defines the annotation entities drawn over the base image:
// blur regions, vector shapes and text. Entities store their geometry in
// relative units and are projected to canvas pixels through a
// transform.Mapper whenever they are hit-tested or drawn.
package overlay

import (
	"slices"
)

// Hotspot sizes in canvas pixels.
const (
	BlurHandleRadius = 6.0
	BlurDeleteRadius = 8.0

	ShapeHandleSize     = 10.0
	ShapeDeleteSize     = 16.0
	ShapeOutlinePadding = 3.0
	ArrowHitTolerance   = 5.0

	TextHandleSize     = 10.0
	TextDeleteSize     = 20.0
	TextOutlinePadding = 3.0
)

// Entity is implemented by *Blur, *Shape and *Text.
type Entity interface {
	EntityID() int
	setEntityID(id int)
}

// List is an ordered collection of one entity kind. Later entries are drawn
// on top and are hit-tested first.
type List[T Entity] struct {
	items  []T
	nextID int
}

// Add appends e, assigns it a fresh ID and returns it.
func (l *List[T]) Add(e T) T {
	l.nextID++
	e.setEntityID(l.nextID)
	l.items = append(l.items, e)
	return e
}

// Get returns the entity with the given ID.
func (l *List[T]) Get(id int) (T, bool) {
	for _, e := range l.items {
		if e.EntityID() == id {
			return e, true
		}
	}
	var zero T
	return zero, false
}

// Remove deletes the entity with the given ID and reports whether it existed.
func (l *List[T]) Remove(id int) bool {
	i := slices.IndexFunc(l.items, func(e T) bool { return e.EntityID() == id })
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	return true
}

// Items returns the entities in draw order. The slice is a copy; the
// entities are shared.
func (l *List[T]) Items() []T {
	return slices.Clone(l.items)
}

// Len returns the number of entities.
func (l *List[T]) Len() int { return len(l.items) }

// Clear removes every entity.
func (l *List[T]) Clear() { l.items = nil }

// Replace swaps in a restored set of entities, renumbering them in order.
func (l *List[T]) Replace(items []T) {
	l.items = l.items[:0]
	l.nextID = 0
	for _, e := range items {
		l.Add(e)
	}
}

// Topmost returns the last entity for which hit returns true.
func (l *List[T]) Topmost(hit func(T) bool) (T, bool) {
	for i := len(l.items) - 1; i >= 0; i-- {
		if hit(l.items[i]) {
			return l.items[i], true
		}
	}
	var zero T
	return zero, false
}
