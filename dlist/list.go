// Package dlist implements a generic doubly-linked list.
//
// A List is not safe for concurrent use. Callers that share a list between
// goroutines must serialize access themselves: one writer, and no readers
// while a mutation is in progress.
//
// Positions reference a node, or the end marker of a list. A position stays
// valid until its node is removed. Nodes moved to another list by Splice,
// Merge or Move keep their positions, which then belong to the destination.
package dlist

import (
	"errors"
	"iter"
)

var (
	ErrEmptyContainer  = errors.New("empty container")
	ErrInvalidPosition = errors.New("invalid position")
	ErrOutOfRange      = errors.New("position out of range")
)

type node[T any] struct {
	v          T
	prev, next *node[T]
	list       *List[T] // nil once removed
}

// List is a doubly-linked list. The zero value is an empty list ready to use.
type List[T any] struct {
	head, tail *node[T]
	n          int
}

func New[T any]() *List[T] {
	return new(List[T])
}

// Fill returns a list of n copies of v. If n <= 0, the list is empty.
func Fill[T any](n int, v T) *List[T] {
	l := new(List[T])
	for i := 0; i < n; i++ {
		l.PushBack(v)
	}
	return l
}

func FromSlice[T any](s []T) *List[T] {
	l := new(List[T])
	for _, v := range s {
		l.PushBack(v)
	}
	return l
}

// FromSeq copies every value produced by seq, in order.
func FromSeq[T any](seq iter.Seq[T]) *List[T] {
	l := new(List[T])
	for v := range seq {
		l.PushBack(v)
	}
	return l
}

func Of[T any](vs ...T) *List[T] {
	return FromSlice(vs)
}

// Clone returns a deep copy of l.
func (l *List[T]) Clone() *List[T] {
	c := new(List[T])
	for x := l.head; x != nil; x = x.next {
		c.PushBack(x.v)
	}
	return c
}

// Move transfers all nodes of l to a new list and leaves l empty.
// Positions of the moved nodes now belong to the returned list.
func (l *List[T]) Move() *List[T] {
	m := &List[T]{head: l.head, tail: l.tail, n: l.n}
	for x := m.head; x != nil; x = x.next {
		x.list = m
	}
	l.reset()
	return m
}

func (l *List[T]) Len() int { return l.n }

func (l *List[T]) Empty() bool { return l.n == 0 }

func (l *List[T]) Front() (T, error) {
	if l.head == nil {
		var zero T
		return zero, ErrEmptyContainer
	}
	return l.head.v, nil
}

func (l *List[T]) Back() (T, error) {
	if l.tail == nil {
		var zero T
		return zero, ErrEmptyContainer
	}
	return l.tail.v, nil
}

func (l *List[T]) PushBack(v T) Position[T] {
	return Position[T]{n: l.insertBefore(nil, v)}
}

func (l *List[T]) PushFront(v T) Position[T] {
	return Position[T]{n: l.insertBefore(l.head, v)}
}

func (l *List[T]) PopBack() (T, error) {
	if l.tail == nil {
		var zero T
		return zero, ErrEmptyContainer
	}
	x := l.tail
	v := x.v
	l.unlink(x)
	return v, nil
}

func (l *List[T]) PopFront() (T, error) {
	if l.head == nil {
		var zero T
		return zero, ErrEmptyContainer
	}
	x := l.head
	v := x.v
	l.unlink(x)
	return v, nil
}

// Insert inserts v immediately before p and returns the position of the
// new node. p may be the end marker.
func (l *List[T]) Insert(p Position[T], v T) (Position[T], error) {
	if !l.owns(p) {
		return Position[T]{}, ErrInvalidPosition
	}
	return Position[T]{n: l.insertBefore(p.n, v)}, nil
}

// Erase removes the node referenced by p and returns the position
// that followed it.
func (l *List[T]) Erase(p Position[T]) (Position[T], error) {
	if p.n == nil || p.n.list != l {
		return Position[T]{}, ErrInvalidPosition
	}
	next := p.n.next
	l.unlink(p.n)
	return l.at(next), nil
}

// Clear removes all nodes. Positions of the removed nodes become invalid.
func (l *List[T]) Clear() {
	for x := l.head; x != nil; {
		next := x.next
		*x = node[T]{}
		x = next
	}
	l.reset()
}

// All returns a forward iterator over the values of l.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for x := l.head; x != nil; x = x.next {
			if !yield(x.v) {
				return
			}
		}
	}
}

// Backward returns an iterator over the values of l, from back to front.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for x := l.tail; x != nil; x = x.prev {
			if !yield(x.v) {
				return
			}
		}
	}
}

// Values returns the values of l as a new slice.
func (l *List[T]) Values() []T {
	s := make([]T, 0, l.n)
	for x := l.head; x != nil; x = x.next {
		s = append(s, x.v)
	}
	return s
}

// FindFunc returns the position of the first value that satisfies pred,
// or the end marker.
func (l *List[T]) FindFunc(pred func(T) bool) Position[T] {
	for x := l.head; x != nil; x = x.next {
		if pred(x.v) {
			return Position[T]{n: x}
		}
	}
	return l.End()
}

// insertBefore links a new node holding v before mark. A nil mark appends.
func (l *List[T]) insertBefore(mark *node[T], v T) *node[T] {
	x := &node[T]{v: v}
	l.link(x, mark)
	return x
}

// link links the detached node x before mark. A nil mark appends.
func (l *List[T]) link(x, mark *node[T]) {
	x.list = l
	if mark == nil {
		x.next = nil
		x.prev = l.tail
		if l.tail != nil {
			l.tail.next = x
		} else {
			l.head = x
		}
		l.tail = x
	} else {
		x.next = mark
		x.prev = mark.prev
		if mark.prev != nil {
			mark.prev.next = x
		} else {
			l.head = x
		}
		mark.prev = x
	}
	l.n++
}

// Once unlink is called, x belongs to no list.
func (l *List[T]) unlink(x *node[T]) {
	if x.next != nil {
		x.next.prev = x.prev
	} else {
		l.tail = x.prev
	}
	if x.prev != nil {
		x.prev.next = x.next
	} else {
		l.head = x.next
	}
	x.next, x.prev, x.list = nil, nil, nil
	l.n--
}

func (l *List[T]) owns(p Position[T]) bool {
	if p.n == nil {
		return p.l == l
	}
	return p.n.list == l
}

func (l *List[T]) reset() {
	l.head, l.tail, l.n = nil, nil, 0
}
