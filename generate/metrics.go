package generate

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	modeBFS    = "bfs"
	modeRandom = "random"
)

var (
	recordsEmitted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tapegen",
		Subsystem: "generate",
		Name:      "records_emitted_total",
		Help:      "Number of records produced by generators.",
	}, []string{"mode"})

	statesExpanded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tapegen",
		Subsystem: "generate",
		Name:      "states_expanded_total",
		Help:      "Number of work items derived by generators.",
	}, []string{"mode"})

	branchesPruned = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tapegen",
		Subsystem: "generate",
		Name:      "branches_pruned_total",
		Help:      "Number of branches dropped because they reached the character limit.",
	}, []string{"mode"})
)

func init() {
	prometheus.MustRegister(recordsEmitted, statesExpanded, branchesPruned)
}

