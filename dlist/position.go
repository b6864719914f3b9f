package dlist

// Position references a node of a List, or the end marker of a list.
// The zero Position is invalid for every list.
//
// Two positions are equal (==) iff they reference the same node, or the
// end marker of the same list.
type Position[T any] struct {
	n *node[T]
	l *List[T] // only set for the end marker
}

// Begin returns the position of the first node, or End if l is empty.
func (l *List[T]) Begin() Position[T] {
	return l.at(l.head)
}

// End returns the end marker of l. It is not dereferenceable.
func (l *List[T]) End() Position[T] {
	return Position[T]{l: l}
}

// Last returns the position of the last node, or End if l is empty.
func (l *List[T]) Last() Position[T] {
	return l.at(l.tail)
}

// Distance returns the number of steps from Begin to p.
// The end marker is at distance Len.
func (l *List[T]) Distance(p Position[T]) (int, error) {
	if !l.owns(p) {
		return 0, ErrInvalidPosition
	}
	i := 0
	for x := l.head; x != p.n; x = x.next {
		i++
	}
	return i, nil
}

func (l *List[T]) at(x *node[T]) Position[T] {
	if x == nil {
		return l.End()
	}
	return Position[T]{n: x}
}

func (p Position[T]) IsEnd() bool {
	return p.n == nil && p.l != nil
}

// Valid reports whether p is an end marker or references a node that
// still belongs to a list.
func (p Position[T]) Valid() bool {
	return p.IsEnd() || (p.n != nil && p.n.list != nil)
}

func (p Position[T]) Value() (T, error) {
	if p.n == nil || p.n.list == nil {
		var zero T
		return zero, ErrInvalidPosition
	}
	return p.n.v, nil
}

func (p Position[T]) Set(v T) error {
	if p.n == nil || p.n.list == nil {
		return ErrInvalidPosition
	}
	p.n.v = v
	return nil
}

// Next returns the following position. Next of the last node is the end
// marker, Next of the end marker is the end marker.
// Next of an invalid position is the zero Position.
func (p Position[T]) Next() Position[T] {
	switch {
	case p.IsEnd():
		return p
	case !p.Valid():
		return Position[T]{}
	}
	return p.n.list.at(p.n.next)
}

// Prev returns the preceding position. Prev of the end marker is the last
// node. Prev of the first node is the end marker, so a backward walk
// starting at Last stops at End.
// Prev of an invalid position is the zero Position.
func (p Position[T]) Prev() Position[T] {
	switch {
	case p.IsEnd():
		return p.l.Last()
	case !p.Valid():
		return Position[T]{}
	}
	return p.n.list.at(p.n.prev)
}

// Advance moves p by k steps, backward if k is negative. Landing on the
// end marker is allowed. Moving past the end marker, or before the first
// node, returns ErrOutOfRange.
func (p Position[T]) Advance(k int) (Position[T], error) {
	if !p.Valid() {
		return Position[T]{}, ErrInvalidPosition
	}
	for ; k > 0; k-- {
		if p.IsEnd() {
			return Position[T]{}, ErrOutOfRange
		}
		p = p.Next()
	}
	for ; k < 0; k++ {
		var prev *node[T]
		if p.IsEnd() {
			prev = p.l.tail
		} else {
			prev = p.n.prev
		}
		if prev == nil {
			return Position[T]{}, ErrOutOfRange
		}
		p = Position[T]{n: prev}
	}
	return p, nil
}
