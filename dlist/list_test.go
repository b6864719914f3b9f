package dlist

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// checkList verifies the structural invariants of l.
func checkList[T any](t *testing.T, l *List[T]) {
	t.Helper()
	r := require.New(t)

	if l.n == 0 {
		r.Nil(l.head, "empty list has head")
		r.Nil(l.tail, "empty list has tail")
		return
	}
	r.NotNil(l.head)
	r.NotNil(l.tail)
	r.Nil(l.head.prev, "head has prev")
	r.Nil(l.tail.next, "tail has next")

	forward := 0
	var last *node[T]
	for x := l.head; x != nil; x = x.next {
		r.Same(l, x.list, "node owned by another list")
		if x.next != nil {
			r.Same(x, x.next.prev, "broken back link")
		}
		last = x
		forward++
		r.LessOrEqual(forward, l.n, "forward walk longer than len")
	}
	r.Same(l.tail, last)
	r.Equal(l.n, forward)

	backward := 0
	for x := l.tail; x != nil; x = x.prev {
		backward++
		r.LessOrEqual(backward, l.n, "backward walk longer than len")
	}
	r.Equal(l.n, backward)
}

func requireValues[T any](t *testing.T, l *List[T], want ...T) {
	t.Helper()
	checkList(t, l)
	if len(want) == 0 {
		require.Empty(t, l.Values())
		return
	}
	require.Equal(t, want, l.Values())
}

func Test_Construct(t *testing.T) {
	r := require.New(t)

	var zero List[int]
	requireValues(t, &zero)
	r.True(zero.Empty())

	requireValues(t, New[int]())
	requireValues(t, Fill(5, 10), 10, 10, 10, 10, 10)
	requireValues(t, Fill(0, 10))
	requireValues(t, Fill(-1, 10))
	requireValues(t, FromSlice([]int{1, 2, 3, 4, 5}), 1, 2, 3, 4, 5)
	requireValues(t, FromSeq(slices.Values([]string{"a", "b"})), "a", "b")
	requireValues(t, Of(10, 20, 30, 40, 50), 10, 20, 30, 40, 50)

	t.Run("clone", func(t *testing.T) {
		r := require.New(t)
		src := Of(1, 2, 3)
		c := src.Clone()
		requireValues(t, c, 1, 2, 3)

		r.NoError(c.Begin().Set(100))
		c.PushBack(4)
		requireValues(t, src, 1, 2, 3)
		requireValues(t, c, 100, 2, 3, 4)
	})

	t.Run("move", func(t *testing.T) {
		r := require.New(t)
		src := Of(10, 20, 30)
		p := Find(src, 20)
		m := src.Move()

		requireValues(t, src)
		requireValues(t, m, 10, 20, 30)

		// positions follow their nodes
		_, err := src.Erase(p)
		r.ErrorIs(err, ErrInvalidPosition)
		_, err = m.Erase(p)
		r.NoError(err)
		requireValues(t, m, 10, 30)

		// the source stays usable
		src.PushBack(1)
		requireValues(t, src, 1)
	})
}

func Test_PushPop(t *testing.T) {
	r := require.New(t)

	l := Of(3, 4, 5)
	l.PushBack(6)
	requireValues(t, l, 3, 4, 5, 6)
	l.PushFront(2)
	requireValues(t, l, 2, 3, 4, 5, 6)

	v, err := l.PopBack()
	r.NoError(err)
	r.Equal(6, v)
	requireValues(t, l, 2, 3, 4, 5)

	v, err = l.PopFront()
	r.NoError(err)
	r.Equal(2, v)
	requireValues(t, l, 3, 4, 5)

	// pushes minus pops
	l = New[int]()
	pushes, pops := 0, 0
	for i := 0; i < 100; i++ {
		switch i % 5 {
		case 0, 1:
			l.PushBack(i)
			pushes++
		case 2:
			l.PushFront(i)
			pushes++
		case 3:
			if _, err := l.PopBack(); err == nil {
				pops++
			}
		case 4:
			if _, err := l.PopFront(); err == nil {
				pops++
			}
		}
		checkList(t, l)
	}
	r.Equal(pushes-pops, l.Len())
}

func Test_Empty(t *testing.T) {
	r := require.New(t)
	l := New[int]()

	_, err := l.Front()
	r.ErrorIs(err, ErrEmptyContainer)
	_, err = l.Back()
	r.ErrorIs(err, ErrEmptyContainer)
	_, err = l.PopBack()
	r.ErrorIs(err, ErrEmptyContainer)
	_, err = l.PopFront()
	r.ErrorIs(err, ErrEmptyContainer)
	requireValues(t, l)

	r.True(l.Begin().IsEnd())
	r.True(l.Last().IsEnd())
	r.Equal(l.End(), l.Begin())
}

func Test_FrontBack(t *testing.T) {
	r := require.New(t)
	l := Of(10, 20, 30, 40, 50)

	v, err := l.Front()
	r.NoError(err)
	r.Equal(10, v)
	v, err = l.Back()
	r.NoError(err)
	r.Equal(50, v)

	v, err = l.Begin().Value()
	r.NoError(err)
	r.Equal(10, v)
	v, err = l.End().Prev().Value()
	r.NoError(err)
	r.Equal(50, v)
}

func Test_InsertErase(t *testing.T) {
	r := require.New(t)

	l := Of(3, 4, 5)
	p, err := l.Insert(Find(l, 4), 8)
	r.NoError(err)
	requireValues(t, l, 3, 8, 4, 5)
	v, err := p.Value()
	r.NoError(err)
	r.Equal(8, v)

	next, err := l.Erase(Find(l, 8))
	r.NoError(err)
	requireValues(t, l, 3, 4, 5)
	v, err = next.Value()
	r.NoError(err)
	r.Equal(4, v)

	// insert at end marker appends
	_, err = l.Insert(l.End(), 6)
	r.NoError(err)
	requireValues(t, l, 3, 4, 5, 6)

	// insert at begin prepends
	_, err = l.Insert(l.Begin(), 2)
	r.NoError(err)
	requireValues(t, l, 2, 3, 4, 5, 6)

	// erasing the last node returns the end marker
	next, err = l.Erase(l.Last())
	r.NoError(err)
	r.True(next.IsEnd())
	r.Equal(l.End(), next)
	requireValues(t, l, 2, 3, 4, 5)

	t.Run("invalid positions", func(t *testing.T) {
		r := require.New(t)
		l := Of(1, 2, 3)
		other := Of(1, 2, 3)

		_, err := l.Erase(l.End())
		r.ErrorIs(err, ErrInvalidPosition)

		_, err = l.Erase(other.Begin())
		r.ErrorIs(err, ErrInvalidPosition)
		_, err = l.Insert(other.End(), 0)
		r.ErrorIs(err, ErrInvalidPosition)
		_, err = l.Insert(Position[int]{}, 0)
		r.ErrorIs(err, ErrInvalidPosition)

		stale := Find(l, 2)
		_, err = l.Erase(stale)
		r.NoError(err)
		_, err = l.Erase(stale)
		r.ErrorIs(err, ErrInvalidPosition)
		_, err = l.Insert(stale, 0)
		r.ErrorIs(err, ErrInvalidPosition)
		_, err = stale.Value()
		r.ErrorIs(err, ErrInvalidPosition)
		r.ErrorIs(stale.Set(0), ErrInvalidPosition)
		r.False(stale.Valid())

		requireValues(t, l, 1, 3)
		requireValues(t, other, 1, 2, 3)
	})

	t.Run("popped and cleared positions are stale", func(t *testing.T) {
		r := require.New(t)
		l := Of(1, 2, 3)
		first, last, mid := l.Begin(), l.Last(), Find(l, 2)

		_, err := l.PopFront()
		r.NoError(err)
		r.False(first.Valid())

		_, err = l.PopBack()
		r.NoError(err)
		r.False(last.Valid())

		l.Clear()
		requireValues(t, l)
		r.False(mid.Valid())
		_, err = l.Erase(mid)
		r.ErrorIs(err, ErrInvalidPosition)
	})
}

func Test_Traversal(t *testing.T) {
	r := require.New(t)
	l := Of(10, 20, 30, 40, 50)

	var fwd []int
	for p := l.Begin(); !p.IsEnd(); p = p.Next() {
		v, err := p.Value()
		r.NoError(err)
		fwd = append(fwd, v)
	}
	r.Equal([]int{10, 20, 30, 40, 50}, fwd)

	var bwd []int
	for p := l.Last(); !p.IsEnd(); p = p.Prev() {
		v, err := p.Value()
		r.NoError(err)
		bwd = append(bwd, v)
	}
	r.Equal([]int{50, 40, 30, 20, 10}, bwd)

	r.Equal(fwd, slices.Collect(l.All()))
	r.Equal(bwd, slices.Collect(l.Backward()))

	// restartable
	r.Equal(fwd, slices.Collect(l.All()))

	// early stop
	var firstTwo []int
	for v := range l.All() {
		if len(firstTwo) == 2 {
			break
		}
		firstTwo = append(firstTwo, v)
	}
	r.Equal([]int{10, 20}, firstTwo)

	r.True(l.End().Next().IsEnd())
	r.False(Position[int]{}.Next().Valid())
}

func Test_RoundTrip(t *testing.T) {
	for _, s := range [][]int{nil, {1}, {5, 1, 4, 1, 5, 9, 2, 6}} {
		l := FromSlice(s)
		back := FromSlice(l.Values())
		requireValues(t, back, s...)
		requireValues(t, FromSeq(l.All()), s...)
	}
}

func Test_FindDistance(t *testing.T) {
	r := require.New(t)
	l := Of(10, 20, 30, 40, 50)

	p := Find(l, 30)
	r.False(p.IsEnd())
	d, err := l.Distance(p)
	r.NoError(err)
	r.Equal(2, d)

	r.True(Find(l, 31).IsEnd())
	d, err = l.Distance(l.End())
	r.NoError(err)
	r.Equal(5, d)

	_, err = l.Distance(Of(1).Begin())
	r.ErrorIs(err, ErrInvalidPosition)

	p = l.FindFunc(func(v int) bool { return v > 35 })
	v, err := p.Value()
	r.NoError(err)
	r.Equal(40, v)
}

func Test_Advance(t *testing.T) {
	r := require.New(t)
	l := Of(10, 20, 30, 40, 50)

	p, err := l.Begin().Advance(2)
	r.NoError(err)
	v, err := p.Value()
	r.NoError(err)
	r.Equal(30, v)

	end, err := p.Advance(3)
	r.NoError(err)
	r.True(end.IsEnd())

	_, err = p.Advance(10)
	r.ErrorIs(err, ErrOutOfRange)

	back, err := end.Advance(-5)
	r.NoError(err)
	r.Equal(l.Begin(), back)

	_, err = end.Advance(-6)
	r.ErrorIs(err, ErrOutOfRange)

	same, err := p.Advance(0)
	r.NoError(err)
	r.Equal(p, same)

	_, err = New[int]().End().Advance(-1)
	r.ErrorIs(err, ErrOutOfRange)

	_, err = Position[int]{}.Advance(1)
	r.ErrorIs(err, ErrInvalidPosition)
}
