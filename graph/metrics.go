package graph

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baudgraph_mutations_total",
			Help: "Total number of committed mutation batches by operation",
		},
		[]string{"op"},
	)

	queriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "baudgraph_queries_total",
			Help: "Total number of executed pipe queries",
		},
	)

	queryStepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baudgraph_query_steps_total",
			Help: "Total number of evaluated query steps by kind",
		},
		[]string{"kind"},
	)

	indexEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baudgraph_index_entries_total",
			Help: "Total number of index entries written and deleted",
		},
		[]string{"op"},
	)
)
