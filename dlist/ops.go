package dlist

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Find returns the position of the first node equal to v, or the end marker.
func Find[T comparable](l *List[T], v T) Position[T] {
	return l.FindFunc(func(x T) bool { return x == v })
}

// Remove removes every node equal to v and returns the number removed.
func Remove[T comparable](l *List[T], v T) int {
	return l.RemoveFunc(func(x T) bool { return x == v })
}

// Unique removes consecutive duplicates and returns the number removed.
func Unique[T comparable](l *List[T]) int {
	return l.UniqueFunc(func(a, b T) bool { return a == b })
}

// Sort sorts l in ascending order. The sort is stable.
func Sort[T constraints.Ordered](l *List[T]) {
	l.SortFunc(compare[T])
}

// Merge merges the sorted list other into the sorted list l.
// See MergeFunc.
func Merge[T constraints.Ordered](l, other *List[T]) {
	l.MergeFunc(other, compare[T])
}

func compare[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case b < a:
		return 1
	}
	return 0
}

// Reverse reverses the order of l in place.
func (l *List[T]) Reverse() {
	for x := l.head; x != nil; x = x.prev {
		x.next, x.prev = x.prev, x.next
	}
	l.head, l.tail = l.tail, l.head
}

// RemoveFunc removes every node whose value satisfies pred and returns
// the number removed. Survivors keep their relative order.
func (l *List[T]) RemoveFunc(pred func(T) bool) int {
	removed := 0
	for x := l.head; x != nil; {
		next := x.next
		if pred(x.v) {
			l.unlink(x)
			removed++
		}
		x = next
	}
	return removed
}

// UniqueFunc removes every node that is equal, by eq, to the first node of
// its run of consecutive nodes. It returns the number removed.
// eq is called as eq(first, x).
func (l *List[T]) UniqueFunc(eq func(a, b T) bool) int {
	if l.head == nil {
		return 0
	}
	removed := 0
	first := l.head
	for x := first.next; x != nil; {
		next := x.next
		if eq(first.v, x.v) {
			l.unlink(x)
			removed++
		} else {
			first = x
		}
		x = next
	}
	return removed
}

// Splice moves all nodes of other into l, immediately before p, and leaves
// other empty. No value is copied and no node is allocated.
func (l *List[T]) Splice(p Position[T], other *List[T]) error {
	if other == l {
		return fmt.Errorf("%w: cannot splice a list into itself", ErrInvalidPosition)
	}
	if !l.owns(p) {
		return ErrInvalidPosition
	}
	if other.n == 0 {
		return nil
	}

	for x := other.head; x != nil; x = x.next {
		x.list = l
	}
	first, last := other.head, other.tail
	if mark := p.n; mark == nil {
		first.prev = l.tail
		if l.tail != nil {
			l.tail.next = first
		} else {
			l.head = first
		}
		l.tail = last
	} else {
		first.prev = mark.prev
		if mark.prev != nil {
			mark.prev.next = first
		} else {
			l.head = first
		}
		last.next = mark
		mark.prev = last
	}
	l.n += other.n
	other.reset()
	return nil
}

// MergeFunc merges other into l by relinking its nodes, and leaves other
// empty. Both lists must already be sorted by cmp; this is not checked.
// The merge is stable: of two equal values, the one from l comes first.
// Merging a list with itself does nothing.
func (l *List[T]) MergeFunc(other *List[T], cmp func(a, b T) int) {
	if other == l || other.n == 0 {
		return
	}
	x := l.head
	for y := other.head; y != nil; {
		next := y.next
		for x != nil && cmp(y.v, x.v) >= 0 {
			x = x.next
		}
		l.link(y, x)
		y = next
	}
	other.reset()
}

// SortFunc sorts l by cmp. The sort is stable and runs a bottom-up merge
// sort over the links, so it neither indexes nor allocates.
func (l *List[T]) SortFunc(cmp func(a, b T) int) {
	if l.n < 2 {
		return
	}

	head := l.head
	for width := 1; width < l.n; width *= 2 {
		var sortedHead, sortedTail *node[T]
		for p := head; p != nil; {
			a := p
			b := cut(a, width)
			p = cut(b, width)
			h, t := mergeRuns(a, b, cmp)
			if sortedTail == nil {
				sortedHead = h
			} else {
				sortedTail.next = h
			}
			sortedTail = t
		}
		head = sortedHead
	}

	var prev *node[T]
	for x := head; x != nil; x = x.next {
		x.prev = prev
		prev = x
	}
	l.head, l.tail = head, prev
}

// cut detaches the chain after its first k nodes and returns the rest.
func cut[T any](x *node[T], k int) *node[T] {
	for i := 1; x != nil && i < k; i++ {
		x = x.next
	}
	if x == nil {
		return nil
	}
	rest := x.next
	x.next = nil
	return rest
}

// mergeRuns merges two nil terminated runs linked by next only.
// On ties a wins. a must not be nil.
func mergeRuns[T any](a, b *node[T], cmp func(a, b T) int) (head, tail *node[T]) {
	for a != nil && b != nil {
		var x *node[T]
		if cmp(b.v, a.v) < 0 {
			x, b = b, b.next
		} else {
			x, a = a, a.next
		}
		if tail == nil {
			head = x
		} else {
			tail.next = x
		}
		tail = x
	}

	rest := a
	if rest == nil {
		rest = b
	}
	if rest != nil {
		if tail == nil {
			head = rest
		} else {
			tail.next = rest
		}
		tail = rest
		for tail.next != nil {
			tail = tail.next
		}
	}
	return head, tail
}
