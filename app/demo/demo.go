package demo

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/IrineSistiana/listdemo/app"
	"github.com/IrineSistiana/listdemo/internal/mlog"
	"github.com/IrineSistiana/listdemo/internal/pool"
	"github.com/IrineSistiana/listdemo/internal/scenario"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

//go:embed scenarios/*.yaml
var builtinFS embed.FS

var builtinScenarios = []string{"initialization.yaml", "operations.yaml", "access.yaml"}

var bufPool = pool.NewBytesBufPool(4096)

func init() {
	app.RootCmd().AddCommand(newDemoCmd(), newRunCmd(), newGenScenarioCmd())
}

type runOpts struct {
	parallel    bool
	metricsAddr string
}

func (o *runOpts) bindFlags(c *cobra.Command) {
	c.Flags().BoolVar(&o.parallel, "parallel", false, "run scenarios concurrently, output is still printed in order")
	c.Flags().StringVar(&o.metricsAddr, "metrics", "", "serve prometheus metrics at this address, and keep serving after scenarios are done")
}

func newDemoCmd() *cobra.Command {
	var opts runOpts
	c := &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in list demonstrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ss, err := loadBuiltin()
			if err != nil {
				return err
			}
			return run(cmd.Context(), ss, cmd.OutOrStdout(), opts)
		},
	}
	opts.bindFlags(c)
	return c
}

func newRunCmd() *cobra.Command {
	var (
		opts  runOpts
		files []string
	)
	c := &cobra.Command{
		Use:   "run",
		Short: "Run scenario files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ss := make([]*scenario.Scenario, 0, len(files))
			for _, f := range files {
				s, err := scenario.LoadFile(f)
				if err != nil {
					return err
				}
				if len(s.Name) == 0 {
					s.Name = filepath.Base(f)
				}
				mlog.L().Debug().Str("file", f).Msg("scenario file loaded")
				ss = append(ss, s)
			}
			return run(cmd.Context(), ss, cmd.OutOrStdout(), opts)
		},
	}
	c.Flags().StringArrayVarP(&files, "config", "c", nil, "path of a scenario file, can be repeated")
	c.MarkFlagRequired("config")
	opts.bindFlags(c)
	return c
}

func newGenScenarioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen-scenario [file|stdout]",
		Short: "Generate a scenario template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := scenario.Template().Encode()
			if err != nil {
				return fmt.Errorf("failed to encode template, %w", err)
			}
			if o := args[0]; o == "stdout" {
				_, err = cmd.OutOrStdout().Write(b)
			} else {
				err = os.WriteFile(o, b, 0644)
			}
			if err != nil {
				return fmt.Errorf("failed to write template, %w", err)
			}
			return nil
		},
	}
}

func loadBuiltin() ([]*scenario.Scenario, error) {
	ss := make([]*scenario.Scenario, 0, len(builtinScenarios))
	for _, name := range builtinScenarios {
		b, err := builtinFS.ReadFile("scenarios/" + name)
		if err != nil {
			return nil, err
		}
		s, err := scenario.Load(b)
		if err != nil {
			return nil, fmt.Errorf("builtin scenario %s: %w", name, err)
		}
		ss = append(ss, s)
	}
	return ss, nil
}

func run(ctx context.Context, ss []*scenario.Scenario, out io.Writer, opts runOpts) error {
	logger := mlog.L()
	runner := scenario.NewRunner(scenario.RunnerOpts{Logger: logger})
	reg, err := newMetricsReg(runner)
	if err != nil {
		return fmt.Errorf("failed to register metrics, %w", err)
	}

	var srvErr chan error
	if addr := opts.metricsAddr; len(addr) > 0 {
		l, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("failed to start metrics endpoint server, %w", err)
		}
		defer l.Close()
		logger.Info().Stringer("addr", l.Addr()).Msg("metrics endpoint server started")
		srvErr = make(chan error, 1)
		go func() {
			srvErr <- http.Serve(l, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		}()
	}

	if err := runAll(ctx, runner, ss, out, opts.parallel); err != nil {
		return err
	}

	if srvErr != nil {
		logger.Info().Msg("scenarios done, serving metrics until exit signal")
		select {
		case <-ctx.Done():
		case err := <-srvErr:
			return fmt.Errorf("metrics endpoint exited, %w", err)
		}
	}
	return nil
}

// runAll runs ss and writes their outputs to out in the order of ss,
// each followed by an empty line.
func runAll(ctx context.Context, runner *scenario.Runner, ss []*scenario.Scenario, out io.Writer, parallel bool) error {
	if !parallel {
		for _, s := range ss {
			if err := runner.Run(ctx, s, out); err != nil {
				return fmt.Errorf("scenario %s: %w", s.Name, err)
			}
			if _, err := io.WriteString(out, "\n"); err != nil {
				return err
			}
		}
		return nil
	}

	bufs := make([]*bytes.Buffer, len(ss))
	for i := range bufs {
		bufs[i] = bufPool.Get()
	}
	defer func() {
		for _, b := range bufs {
			bufPool.Release(b)
		}
	}()

	g, gCtx := errgroup.WithContext(ctx)
	for i, s := range ss {
		g.Go(func() error {
			if err := runner.Run(gCtx, s, bufs[i]); err != nil {
				return fmt.Errorf("scenario %s: %w", s.Name, err)
			}
			bufs[i].WriteByte('\n')
			return nil
		})
	}
	err := g.Wait()
	for _, b := range bufs {
		if _, werr := out.Write(b.Bytes()); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}
