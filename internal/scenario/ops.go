package scenario

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/IrineSistiana/listdemo/dlist"
)

var (
	errUnknownOp   = errors.New("unknown op")
	errUnknownList = errors.New("unknown list")
	errUnknownPred = errors.New("unknown predicate")
	errUnknownFn   = errors.New("unknown function")
)

var errKinds = map[string]error{
	"empty_container":  dlist.ErrEmptyContainer,
	"invalid_position": dlist.ErrInvalidPosition,
	"out_of_range":     dlist.ErrOutOfRange,
}

// errKind returns the name of the list error kind of err, or "other".
func errKind(err error) string {
	for k, e := range errKinds {
		if errors.Is(err, e) {
			return k
		}
	}
	return "other"
}

type intList = dlist.List[int]

// state is the set of named lists of one run.
type state struct {
	lists map[string]*intList
}

func (s *state) get(name string) (*intList, error) {
	l, ok := s.lists[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", errUnknownList, name)
	}
	return l, nil
}

// An op mutates or reads st.List. The returned note, if any, is printed
// after the list contents.
type opFunc func(s *state, st *Step) (note string, err error)

type opHandler struct {
	f         opFunc
	needValue bool
	needFrom  bool
	noPrint   bool // note replaces the list contents line
}

var ops map[string]opHandler

func init() {
	ops = map[string]opHandler{
		"new":   {f: opNew},
		"fill":  {f: opFill, needValue: true},
		"of":    {f: opOf},
		"range": {f: opRange, needFrom: true},
		"clone": {f: opClone, needFrom: true},
		"move":  {f: opMove, needFrom: true},
		"print": {f: opNop},
		"clear": {f: withList(func(l *intList, _ *Step) (string, error) { l.Clear(); return "", nil })},

		"push_back":  {f: withList(opPushBack), needValue: true},
		"push_front": {f: withList(opPushFront), needValue: true},
		"pop_back":   {f: withList(opPopBack)},
		"pop_front":  {f: withList(opPopFront)},
		"insert":     {f: withList(opInsert), needValue: true},
		"erase":      {f: withList(opErase)},

		"sort":      {f: withList(func(l *intList, _ *Step) (string, error) { dlist.Sort(l); return "", nil })},
		"reverse":   {f: withList(func(l *intList, _ *Step) (string, error) { l.Reverse(); return "", nil })},
		"remove":    {f: withList(opRemove), needValue: true},
		"remove_if": {f: withList(opRemoveIf)},
		"unique":    {f: withList(opUnique)},
		"splice":    {f: opSplice, needFrom: true},
		"merge":     {f: opMerge, needFrom: true},
		"transform": {f: withList(opTransform)},

		"sum":           {f: withList(opSum), noPrint: true},
		"front":         {f: withList(opFront), noPrint: true},
		"back":          {f: withList(opBack), noPrint: true},
		"find":          {f: withList(opFind), needValue: true, noPrint: true},
		"advance":       {f: withList(opAdvance), noPrint: true},
		"print_reverse": {f: withList(opPrintReverse), noPrint: true},
	}
}

func withList(f func(l *intList, st *Step) (string, error)) opFunc {
	return func(s *state, st *Step) (string, error) {
		l, err := s.get(st.List)
		if err != nil {
			return "", err
		}
		return f(l, st)
	}
}

func opNop(s *state, st *Step) (string, error) {
	_, err := s.get(st.List)
	return "", err
}

func opNew(s *state, st *Step) (string, error) {
	s.lists[st.List] = dlist.New[int]()
	return "", nil
}

func opFill(s *state, st *Step) (string, error) {
	s.lists[st.List] = dlist.Fill(st.N, *st.Value)
	return "", nil
}

func opOf(s *state, st *Step) (string, error) {
	s.lists[st.List] = dlist.Of(st.Values...)
	return "", nil
}

func opRange(s *state, st *Step) (string, error) {
	src, err := s.get(st.From)
	if err != nil {
		return "", err
	}
	s.lists[st.List] = dlist.FromSeq(src.All())
	return "", nil
}

func opClone(s *state, st *Step) (string, error) {
	src, err := s.get(st.From)
	if err != nil {
		return "", err
	}
	s.lists[st.List] = src.Clone()
	return "", nil
}

func opMove(s *state, st *Step) (string, error) {
	src, err := s.get(st.From)
	if err != nil {
		return "", err
	}
	s.lists[st.List] = src.Move()
	return "", nil
}

func opPushBack(l *intList, st *Step) (string, error) {
	l.PushBack(*st.Value)
	return "", nil
}

func opPushFront(l *intList, st *Step) (string, error) {
	l.PushFront(*st.Value)
	return "", nil
}

func opPopBack(l *intList, _ *Step) (string, error) {
	v, err := l.PopBack()
	if err != nil {
		return "", err
	}
	return "popped " + strconv.Itoa(v), nil
}

func opPopFront(l *intList, _ *Step) (string, error) {
	v, err := l.PopFront()
	if err != nil {
		return "", err
	}
	return "popped " + strconv.Itoa(v), nil
}

// position resolves the position named by st: the first node holding
// st.At, or st.Index steps from the first node. Without either it is
// the first node.
func position(l *intList, st *Step) (dlist.Position[int], error) {
	switch {
	case st.At != nil:
		return dlist.Find(l, *st.At), nil
	case st.Index != nil:
		return l.Begin().Advance(*st.Index)
	default:
		return l.Begin(), nil
	}
}

func opInsert(l *intList, st *Step) (string, error) {
	p, err := position(l, st)
	if err != nil {
		return "", err
	}
	_, err = l.Insert(p, *st.Value)
	return "", err
}

func opErase(l *intList, st *Step) (string, error) {
	p, err := position(l, st)
	if err != nil {
		return "", err
	}
	_, err = l.Erase(p)
	return "", err
}

func opRemove(l *intList, st *Step) (string, error) {
	n := dlist.Remove(l, *st.Value)
	return "removed " + strconv.Itoa(n), nil
}

func predicate(name string, arg int) (func(int) bool, error) {
	switch name {
	case "even":
		return func(v int) bool { return v%2 == 0 }, nil
	case "odd":
		return func(v int) bool { return v%2 != 0 }, nil
	case "gt":
		return func(v int) bool { return v > arg }, nil
	case "lt":
		return func(v int) bool { return v < arg }, nil
	case "eq":
		return func(v int) bool { return v == arg }, nil
	default:
		return nil, fmt.Errorf("%w %q", errUnknownPred, name)
	}
}

func opRemoveIf(l *intList, st *Step) (string, error) {
	pred, err := predicate(st.Pred, st.Arg)
	if err != nil {
		return "", err
	}
	n := l.RemoveFunc(pred)
	return "removed " + strconv.Itoa(n), nil
}

func opUnique(l *intList, _ *Step) (string, error) {
	n := dlist.Unique(l)
	return "removed " + strconv.Itoa(n), nil
}

func opSplice(s *state, st *Step) (string, error) {
	l, err := s.get(st.List)
	if err != nil {
		return "", err
	}
	other, err := s.get(st.From)
	if err != nil {
		return "", err
	}
	p, err := position(l, st)
	if err != nil {
		return "", err
	}
	return "", l.Splice(p, other)
}

func opMerge(s *state, st *Step) (string, error) {
	l, err := s.get(st.List)
	if err != nil {
		return "", err
	}
	other, err := s.get(st.From)
	if err != nil {
		return "", err
	}
	dlist.Merge(l, other)
	return "", nil
}

func opTransform(l *intList, st *Step) (string, error) {
	var f func(int) int
	switch st.Fn {
	case "mul":
		f = func(v int) int { return v * st.Arg }
	case "add":
		f = func(v int) int { return v + st.Arg }
	default:
		return "", fmt.Errorf("%w %q", errUnknownFn, st.Fn)
	}
	for p := l.Begin(); !p.IsEnd(); p = p.Next() {
		v, err := p.Value()
		if err != nil {
			return "", err
		}
		if err := p.Set(f(v)); err != nil {
			return "", err
		}
	}
	return "", nil
}

func opSum(l *intList, _ *Step) (string, error) {
	sum := 0
	for v := range l.All() {
		sum += v
	}
	return strconv.Itoa(sum), nil
}

func opFront(l *intList, _ *Step) (string, error) {
	v, err := l.Front()
	if err != nil {
		return "", err
	}
	return strconv.Itoa(v), nil
}

func opBack(l *intList, _ *Step) (string, error) {
	v, err := l.Back()
	if err != nil {
		return "", err
	}
	return strconv.Itoa(v), nil
}

func opFind(l *intList, st *Step) (string, error) {
	p := dlist.Find(l, *st.Value)
	if p.IsEnd() {
		return "not found", nil
	}
	d, err := l.Distance(p)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(d), nil
}

func opAdvance(l *intList, st *Step) (string, error) {
	k := 0
	if st.Index != nil {
		k = *st.Index
	}
	p, err := l.Begin().Advance(k)
	if err != nil {
		return "", err
	}
	v, err := p.Value()
	if err != nil {
		return "", err
	}
	return strconv.Itoa(v), nil
}

func opPrintReverse(l *intList, _ *Step) (string, error) {
	return joinInts(l.Backward()), nil
}
