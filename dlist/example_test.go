package dlist_test

import (
	"errors"
	"fmt"

	"github.com/IrineSistiana/listdemo/dlist"
)

func Example() {
	l := dlist.Of(3, 4, 5)
	l.PushBack(6)
	l.PushFront(2)
	l.Insert(dlist.Find(l, 4), 8)
	fmt.Println(l.Values())

	dlist.Sort(l)
	l.Reverse()
	fmt.Println(l.Values())

	p, _ := l.Begin().Advance(2)
	v, _ := p.Value()
	fmt.Println(v)

	_, err := p.Advance(10)
	fmt.Println(errors.Is(err, dlist.ErrOutOfRange))
	// Output:
	// [2 3 8 4 5 6]
	// [8 6 5 4 3 2]
	// 5
	// true
}
