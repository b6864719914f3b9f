package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"sort"
	"strconv"

	"github.com/IrineSistiana/listdemo/dlist"
	"github.com/IrineSistiana/listdemo/internal/mlog"
	"github.com/IrineSistiana/listdemo/internal/pool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

var bufPool = pool.NewBytesBufPool(256)

// StepError is returned when a step fails or does not meet its expectation.
type StepError struct {
	Idx int
	Op  string
	Err error
}

func (e *StepError) Error() string {
	return "step #" + strconv.Itoa(e.Idx) + " [" + e.Op + "]: " + e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}

type RunnerOpts struct {
	Logger *zerolog.Logger // nil for no log
}

// Runner runs scenarios. A Runner may run several scenarios concurrently;
// every run owns its lists.
type Runner struct {
	logger *zerolog.Logger

	opsTotal *prometheus.CounterVec
	errTotal *prometheus.CounterVec
	listLen  prometheus.Histogram
}

func NewRunner(opts RunnerOpts) *Runner {
	return &Runner{
		logger: mlog.NonNil(opts.Logger),
		opsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "listdemo_ops_total",
			Help: "The total number of executed list operations",
		}, []string{"op"}),
		errTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "listdemo_op_errors_total",
			Help: "The total number of failed list operations",
		}, []string{"op", "kind"}),
		listLen: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "listdemo_list_len",
			Help:    "The length of the operated list after each operation",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
}

func (r *Runner) RegisterMetricsTo(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{r.opsTotal, r.errTotal, r.listLen} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Run executes the steps of s in order and writes each labeled result
// to w. Run stops at the first step that fails without an expect_err,
// or whose result does not match its expectation.
func (r *Runner) Run(ctx context.Context, s *Scenario, w io.Writer) error {
	logger := r.logger.With().Str("scenario", s.Name).Logger()

	st := &state{lists: make(map[string]*intList, len(s.Lists))}
	names := make([]string, 0, len(s.Lists))
	for name, vs := range s.Lists {
		st.lists[name] = dlist.FromSlice(vs)
		names = append(names, name)
	}
	sort.Strings(names)

	if len(s.Name) > 0 {
		if _, err := io.WriteString(w, "--- "+s.Name+" ---\n"); err != nil {
			return err
		}
	}
	for _, name := range names {
		if err := writeLine(w, name, joinInts(st.lists[name].All())); err != nil {
			return err
		}
	}

	for i := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		step := &s.Steps[i]
		if err := r.runStep(st, step, w); err != nil {
			logger.Error().Int("step", i).Str("op", step.Op).Err(err).Msg("step failed")
			return &StepError{Idx: i, Op: step.Op, Err: err}
		}
		logger.Debug().Int("step", i).Str("op", step.Op).Str("list", step.List).Msg("step done")
	}
	logger.Info().Int("steps", len(s.Steps)).Msg("scenario done")
	return nil
}

func (r *Runner) runStep(s *state, st *Step, w io.Writer) error {
	h, ok := ops[st.Op]
	if !ok {
		return errUnknownOp
	}
	r.opsTotal.WithLabelValues(st.Op).Inc()

	label := st.Label
	if len(label) == 0 {
		label = "After " + st.Op
	}

	note, err := h.f(s, st)
	if err != nil {
		kind := errKind(err)
		r.errTotal.WithLabelValues(st.Op, kind).Inc()
		if len(st.ExpectErr) == 0 || st.ExpectErr != kind {
			return err
		}
		return writeLine(w, label, "caught "+kind+": "+err.Error())
	}
	if len(st.ExpectErr) > 0 {
		return fmt.Errorf("expected error %s, got nil", st.ExpectErr)
	}

	l, err := s.get(st.List)
	if err != nil {
		return err
	}
	r.listLen.Observe(float64(l.Len()))

	var line string
	switch {
	case h.noPrint:
		line = note
	case len(note) > 0:
		line = joinInts(l.All()) + " (" + note + ")"
	default:
		line = joinInts(l.All())
	}
	if err := writeLine(w, label, line); err != nil {
		return err
	}
	return checkExpect(l, st)
}

var errUnexpected = errors.New("unexpected list contents")

func checkExpect(l *intList, st *Step) error {
	if st.ExpectLen != nil && l.Len() != *st.ExpectLen {
		return fmt.Errorf("%w, want len %d, got %d", errUnexpected, *st.ExpectLen, l.Len())
	}
	if st.Expect != nil {
		if got := l.Values(); !slices.Equal(got, st.Expect) {
			return fmt.Errorf("%w, want %v, got %v", errUnexpected, st.Expect, got)
		}
	}
	return nil
}

func writeLine(w io.Writer, label, line string) error {
	b := bufPool.Get()
	defer bufPool.Release(b)
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(line)
	b.WriteByte('\n')
	_, err := w.Write(b.Bytes())
	return err
}

func joinInts(seq iter.Seq[int]) string {
	b := bufPool.Get()
	defer bufPool.Release(b)
	for v := range seq {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}
