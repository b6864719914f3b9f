package demo

import (
	"github.com/IrineSistiana/listdemo/internal/scenario"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// newMetricsReg returns a registry with the process, go runtime and
// scenario runner metrics.
func newMetricsReg(runner *scenario.Runner) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(collectors.NewGoCollector())
	if err := runner.RegisterMetricsTo(reg); err != nil {
		return nil, err
	}
	return reg, nil
}
