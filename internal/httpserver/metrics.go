package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	entityReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refdata_entity_reads_total",
		Help: "Successful reference-entity reads served, by collection.",
	}, []string{"collection"})

	entityWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refdata_entity_writes_total",
		Help: "Successful reference-entity writes served, by collection and operation.",
	}, []string{"collection", "op"})
)
